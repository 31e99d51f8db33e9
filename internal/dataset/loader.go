package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
)

// Columns the loader refuses to proceed without. Everything else is optional
// and defaults to its zero value when absent.
var requiredColumns = []string{"title", "first_published", "rating"}

// Load reads one CSV dataset file into a Dataset. Files ending in .gz are
// decompressed transparently. Returns *LoadError when the file cannot be
// read and *SchemaError when it is not a CSV with the required columns.
func Load(path string) (*Dataset, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := sniff(path, data); err != nil {
		return nil, err
	}
	return parse(path, data)
}

// LoadDir discovers dataset files under dir matching the doublestar pattern
// (e.g. "*.{csv,csv.gz}"), loads each, and concatenates them in file-name
// order. Fails with *LoadError when no file matches.
func LoadDir(dir, pattern string) (*Dataset, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, &LoadError{Path: dir, Err: fmt.Errorf("bad pattern %q: %w", pattern, err)}
	}
	if len(matches) == 0 {
		return nil, &LoadError{Path: dir, Err: fmt.Errorf("no dataset files matching %q", pattern)}
	}
	sort.Strings(matches)

	combined := &Dataset{Source: dir}
	for _, path := range matches {
		ds, err := Load(path)
		if err != nil {
			return nil, err
		}
		if combined.Columns == nil {
			combined.Columns = ds.Columns
		}
		combined.Records = append(combined.Records, ds.Records...)
	}
	return combined, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return data, nil
}

// sniff rejects files whose content is not text. Catches images and other
// binaries that ended up in the data directory with a .csv name.
func sniff(path string, data []byte) error {
	mtype := mimetype.Detect(data)
	if mtype.Is("text/csv") || strings.HasPrefix(mtype.String(), "text/") {
		return nil
	}
	return &SchemaError{Path: path, Columns: []string{mtype.String()}}
}

func parse(path string, data []byte) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		col := toSnakeCase(strings.TrimSpace(h))
		columns[i] = col
		index[col] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing, Columns: columns}
	}

	ds := &Dataset{Columns: columns, Source: path}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row. Skipping here keeps the loader total; the
			// cleaner accounts for rows that parsed but are incomplete.
			continue
		}
		ds.Records = append(ds.Records, recordFromRow(row, index))
	}
	return ds, nil
}

func recordFromRow(row []string, index map[string]int) Record {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Title:       field("title"),
		PublishDate: field("publish_date"),
		Language:    field("language"),
		ISBN:        field("isbn"),
		WorkKey:     field("work_key"),
		SourceURL:   field("source_url"),
	}
	rec.Year = atoiOrZero(field("first_published"))
	rec.Rating = atofOrZero(field("rating"))
	rec.RatingCount = atoiOrZero(field("number_of_ratings"))
	rec.EditionCount = atoiOrZero(field("edition_count"))
	rec.Pages = atoiOrZero(field("pages"))
	rec.Authors = splitList(field("authors"))
	rec.Subjects = splitList(field("subjects"))
	return rec
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// splitList parses "a; b; c" into its parts, dropping empties.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toSnakeCase converts "Column Name" -> "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
