package dataset

// Clean returns a new Dataset containing only records with a usable title,
// publication year, and rating, plus the number of rows dropped. Type
// coercion already happened at load; what remains here is the drop policy.
//
// Clean is deterministic and idempotent: cleaning an already-clean dataset
// returns an equal dataset with zero dropped rows.
func Clean(ds *Dataset) (*Dataset, int) {
	out := &Dataset{
		Columns: ds.Columns,
		Source:  ds.Source,
		Records: make([]Record, 0, ds.Len()),
	}
	dropped := 0
	for _, rec := range ds.Records {
		if !usable(rec) {
			dropped++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, dropped
}

// usable reports whether a record has the required fields. A zero year or
// rating means the source value was missing or failed coercion.
func usable(rec Record) bool {
	return rec.Title != "" && rec.Year > 0 && rec.Rating > 0
}
