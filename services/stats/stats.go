package stats

import (
	"sort"
	"strings"

	"acadport/services/record"
)

// Counts are the dashboard totals for a mirror. Records with an unknown type only
// count towards Total.
type Counts struct {
	Total        int `json:"total"`
	Achievements int `json:"achievements"`
	Results      int `json:"results"`
	Records      int `json:"records"`
}

// Bucket is a label with the number of records carrying it.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func Count(records []record.Record) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch r.Type {
		case record.TypeAchievement:
			c.Achievements++
		case record.TypeResult:
			c.Results++
		case record.TypeRecord:
			c.Records++
		}
	}
	return c
}

// TopCategories returns the most used categories, most frequent first, ties broken by
// label. Blank categories are skipped.
func TopCategories(records []record.Record, limit int) []Bucket {
	return top(records, limit, func(r record.Record) string { return r.Category })
}

// TopInstitutions returns the most used institutions, ordered like TopCategories.
func TopInstitutions(records []record.Record, limit int) []Bucket {
	return top(records, limit, func(r record.Record) string { return r.Institution })
}

func top(records []record.Record, limit int, label func(record.Record) string) []Bucket {
	counts := map[string]int{}
	for _, r := range records {
		l := strings.TrimSpace(label(r))
		if l == "" {
			continue
		}
		counts[l]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for l, c := range counts {
		buckets = append(buckets, Bucket{Label: l, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count == buckets[j].Count {
			return buckets[i].Label < buckets[j].Label
		}
		return buckets[i].Count > buckets[j].Count
	})

	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}
