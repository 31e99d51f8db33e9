package dataset

import (
	"fmt"
	"strings"
)

// LoadError reports a dataset file that could not be read or parsed.
// It is fatal: the pipeline does not retry.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a file that parsed but does not have the expected
// tabular shape, e.g. required columns are absent.
type SchemaError struct {
	Path    string
	Missing []string // required columns not present
	Columns []string // columns actually found
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema %s: missing required columns [%s], got [%s]",
			e.Path, strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("schema %s: not a tabular dataset", e.Path)
}
