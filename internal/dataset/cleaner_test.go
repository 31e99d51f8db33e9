package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	t.Run("drops rows missing required fields", func(t *testing.T) {
		ds := &Dataset{Records: []Record{
			{Title: "Keep", Year: 1965, Rating: 4.0},
			{Title: "No year", Rating: 3.0},
			{Title: "No rating", Year: 1999},
			{Year: 2001, Rating: 5.0}, // no title
			{Title: "Keep too", Year: 2001, Rating: 5.0},
		}}

		clean, dropped := Clean(ds)
		assert.Equal(t, 3, dropped)
		require.Equal(t, 2, clean.Len())
		assert.Equal(t, "Keep", clean.Records[0].Title)
		assert.Equal(t, "Keep too", clean.Records[1].Title)
	})

	t.Run("idempotent", func(t *testing.T) {
		ds := &Dataset{Records: []Record{
			{Title: "A", Year: 1965, Rating: 4.0},
			{Title: "", Year: 1965, Rating: 4.0},
		}}

		once, dropped := Clean(ds)
		assert.Equal(t, 1, dropped)

		twice, dropped := Clean(once)
		assert.Zero(t, dropped)
		assert.Equal(t, once.Records, twice.Records)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		ds := &Dataset{Records: []Record{
			{Title: "A", Year: 1965, Rating: 4.0},
			{Title: "B"},
		}}

		_, _ = Clean(ds)
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("empty dataset stays empty", func(t *testing.T) {
		clean, dropped := Clean(&Dataset{})
		assert.Zero(t, dropped)
		assert.Zero(t, clean.Len())
	})
}

// Load followed by Clean must leave no record without the required fields.
func TestLoadThenClean(t *testing.T) {
	dir := t.TempDir()
	csv := "title,first_published,rating\n" +
		"Dune,1965,4.0\n" +
		"No year,,3.0\n" +
		"Bad rating,1999,n/a\n"
	path := writeFixture(t, dir, "books.csv", csv)

	ds, err := Load(path)
	require.NoError(t, err)

	clean, dropped := Clean(ds)
	assert.Equal(t, 2, dropped)
	for _, rec := range clean.Records {
		assert.NotEmpty(t, rec.Title)
		assert.Positive(t, rec.Year)
		assert.Positive(t, rec.Rating)
	}
}
