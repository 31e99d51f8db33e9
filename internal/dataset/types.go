package dataset

// Record is one book row. Records are immutable once loaded; the cleaner
// produces new records rather than mutating loaded ones.
type Record struct {
	Title        string
	Authors      []string
	Year         int // first published year; 0 when missing or unparsable
	PublishDate  string
	Rating       float64 // 0 when missing or unparsable
	RatingCount  int
	EditionCount int
	Pages        int
	Subjects     []string
	Language     string
	ISBN         string
	WorkKey      string
	SourceURL    string
}

// Decade returns the decade bucket for the record's year, e.g. 1965 -> 1960.
func (r Record) Decade() int {
	return r.Year - r.Year%10
}

// Dataset is an ordered collection of records loaded from one or more files.
// It is read-only after load.
type Dataset struct {
	Records []Record
	Columns []string // header columns of the source file, in order
	Source  string   // file or directory the data came from
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Ratings returns all rating values in row order.
func (d *Dataset) Ratings() []float64 {
	out := make([]float64, 0, d.Len())
	for _, r := range d.Records {
		out = append(out, r.Rating)
	}
	return out
}

// Years returns all publication years in row order.
func (d *Dataset) Years() []float64 {
	out := make([]float64, 0, d.Len())
	for _, r := range d.Records {
		out = append(out, float64(r.Year))
	}
	return out
}
