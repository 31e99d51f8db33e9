// Package analyze computes descriptive aggregations over a cleaned dataset.
// Every function is pure: it reads the dataset, never mutates it, and is
// deterministic given the input row order.
package analyze

import (
	"sort"

	"github.com/shelfstats/shelfstats/internal/dataset"
)

// Count is one category bucket of a grouping.
type Count struct {
	Key string `json:"key"`
	N   int    `json:"n"`
}

// CountBy groups records by the key function and counts each bucket.
// Buckets appear in first-seen row order; records with an empty key are
// ignored. An empty dataset yields an empty result.
func CountBy(ds *dataset.Dataset, key func(dataset.Record) string) []Count {
	return countKeys(ds, func(rec dataset.Record) []string {
		k := key(rec)
		if k == "" {
			return nil
		}
		return []string{k}
	})
}

// CountByEach is CountBy for multi-valued keys such as subjects: every value
// the key function returns counts once for its record.
func CountByEach(ds *dataset.Dataset, keys func(dataset.Record) []string) []Count {
	return countKeys(ds, keys)
}

func countKeys(ds *dataset.Dataset, keys func(dataset.Record) []string) []Count {
	seen := make(map[string]int)
	var out []Count
	for _, rec := range ds.Records {
		for _, k := range keys(rec) {
			if i, ok := seen[k]; ok {
				out[i].N++
				continue
			}
			seen[k] = len(out)
			out = append(out, Count{Key: k, N: 1})
		}
	}
	return out
}

// SortByCount orders buckets by descending count. Equal counts keep their
// first-seen order so results are reproducible.
func SortByCount(counts []Count) []Count {
	out := make([]Count, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	return out
}

// SortByKey orders buckets lexically by key.
func SortByKey(counts []Count) []Count {
	out := make([]Count, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Head returns at most the first n buckets.
func Head(counts []Count, n int) []Count {
	if n < 0 || n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}

// TopN returns the n records with the highest score. The sort is stable:
// when two records score equally, the one appearing first in the dataset
// retains the higher rank. n larger than the dataset returns everything.
func TopN(ds *dataset.Dataset, n int, score func(dataset.Record) float64) []dataset.Record {
	ranked := make([]dataset.Record, ds.Len())
	copy(ranked, ds.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	if n < 0 || n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ByRating is the score function for rating rankings.
func ByRating(rec dataset.Record) float64 {
	return rec.Rating
}
