package projection

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"acadport/services/record"
)

func ids(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func sample() []record.Record {
	return []record.Record{
		{ID: "1", Type: record.TypeAchievement, Title: "Dean's List", Description: "Top 5%", Date: "2024-05-01", Institution: "MIT"},
		{ID: "2", Type: record.TypeResult, Title: "calculus final", Description: "", Date: "2025-01-10", Grade: "A+"},
		{ID: "3", Type: record.TypeRecord, Title: "Attendance", Description: "Perfect term", Date: "not a date", Category: "Conduct"},
		{ID: "4", Type: record.TypeAchievement, Title: "Bursary", Description: "Merit award", Date: "2023-09-15"},
		{ID: "5", Type: record.Type("mystery"), Title: "Zeta", Description: "unknown bucket", Date: "2022-02-02"},
	}
}

func TestFilterAndDateSortScenario(t *testing.T) {
	mirror := []record.Record{
		{ID: "A", Type: record.TypeAchievement, Title: "A", Date: "2025-01-01"},
		{ID: "B", Type: record.TypeResult, Title: "B", Date: "2025-06-01"},
	}

	got := Project(mirror, Criteria{Filter: FilterResult, Sort: SortDateDesc})
	if !reflect.DeepEqual(ids(got), []string{"B"}) {
		t.Errorf("filter result = %v, want [B]", ids(got))
	}

	got = Project(mirror, Criteria{Filter: FilterAll, Sort: SortDateDesc})
	if !reflect.DeepEqual(ids(got), []string{"B", "A"}) {
		t.Errorf("date-desc = %v, want [B A]", ids(got))
	}
}

func TestFilter(t *testing.T) {
	records := sample()
	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4", "5"}},
		{FilterAchievement, []string{"1", "4"}},
		{FilterResult, []string{"2"}},
		{FilterRecord, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Project(records, Criteria{Filter: tt.filter})
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Project() = %v, want %v", ids(got), tt.want)
			}
			for _, r := range got {
				if tt.filter != FilterAll && string(r.Type) != string(tt.filter) {
					t.Errorf("record %s has type %s", r.ID, r.Type)
				}
			}
		})
	}
}

func TestSearch(t *testing.T) {
	records := sample()
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"title case-insensitive", "CALCULUS", []string{"2"}},
		{"description", "merit", []string{"4"}},
		{"grade", "a+", []string{"2"}},
		{"institution", "mit", []string{"1"}},
		{"category", "conduct", []string{"3"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(records, Criteria{Filter: FilterAll, Search: tt.term})
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Project() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSearchPartition(t *testing.T) {
	records := sample()
	term := "e"
	got := Project(records, Criteria{Filter: FilterAll, Search: term})
	in := map[string]bool{}
	for _, r := range got {
		in[r.ID] = true
	}
	for _, r := range records {
		text := strings.ToLower(strings.Join([]string{r.Title, r.Description, r.Grade, r.Institution, r.Category}, "\x00"))
		if strings.Contains(text, term) != in[r.ID] {
			t.Errorf("record %s: contains=%v, projected=%v", r.ID, !in[r.ID], in[r.ID])
		}
	}
}

func TestSortDates(t *testing.T) {
	records := sample()

	desc := Project(records, Criteria{Filter: FilterAll, Sort: SortDateDesc})
	if want := []string{"2", "1", "4", "5", "3"}; !reflect.DeepEqual(ids(desc), want) {
		t.Errorf("date-desc = %v, want %v", ids(desc), want)
	}

	asc := Project(records, Criteria{Filter: FilterAll, Sort: SortDateAsc})
	if want := []string{"5", "4", "1", "2", "3"}; !reflect.DeepEqual(ids(asc), want) {
		t.Errorf("date-asc = %v, want %v", ids(asc), want)
	}

	// Without the invalid date, descending is exactly ascending reversed.
	valid := Project(records, Criteria{Filter: FilterAll, Search: "", Sort: SortDateAsc})[:4]
	reversed := slices.Clone(ids(valid))
	slices.Reverse(reversed)
	if !reflect.DeepEqual(reversed, ids(desc)[:4]) {
		t.Errorf("reverse(asc) = %v, desc = %v", reversed, ids(desc)[:4])
	}
}

func TestSortStable(t *testing.T) {
	records := []record.Record{
		{ID: "a", Title: "Same", Date: "2024-01-01"},
		{ID: "b", Title: "Same", Date: "2024-01-01"},
		{ID: "c", Title: "Same", Date: "bad"},
		{ID: "d", Title: "Same", Date: ""},
	}
	for _, s := range []Sort{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc} {
		first := Project(records, Criteria{Filter: FilterAll, Sort: s})
		second := Project(first, Criteria{Filter: FilterAll, Sort: s})
		if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(ids(first), want) {
			t.Errorf("%s: %v, want %v", s, ids(first), want)
		}
		if !reflect.DeepEqual(ids(first), ids(second)) {
			t.Errorf("%s not idempotent: %v then %v", s, ids(first), ids(second))
		}
	}
}

func TestSortTitles(t *testing.T) {
	records := sample()
	asc := Project(records, Criteria{Filter: FilterAll, Sort: SortTitleAsc})
	// Collation ignores case, so "calculus final" sorts between "Bursary" and "Dean's List".
	if want := []string{"3", "4", "2", "1", "5"}; !reflect.DeepEqual(ids(asc), want) {
		t.Errorf("title-asc = %v, want %v", ids(asc), want)
	}
	desc := Project(records, Criteria{Filter: FilterAll, Sort: SortTitleDesc})
	if want := []string{"5", "1", "2", "4", "3"}; !reflect.DeepEqual(ids(desc), want) {
		t.Errorf("title-desc = %v, want %v", ids(desc), want)
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	records := sample()
	before := ids(records)
	Project(records, Criteria{Filter: FilterAll, Sort: SortTitleAsc})
	if !reflect.DeepEqual(ids(records), before) {
		t.Errorf("input reordered: %v", ids(records))
	}
}

func TestNewView(t *testing.T) {
	empty := NewView(Project(nil, DefaultCriteria()))
	if !empty.Empty || empty.Message != EmptyMessage || empty.Records == nil {
		t.Errorf("empty view = %+v", empty)
	}
	full := NewView(sample())
	if full.Empty || full.Message != "" {
		t.Errorf("non-empty view = %+v", full)
	}
}
