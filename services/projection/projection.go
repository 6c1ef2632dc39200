package projection

import (
	"slices"
	"strings"
	"time"

	"acadport/services/record"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Filter string

const (
	FilterAll         Filter = "all"
	FilterAchievement Filter = Filter(record.TypeAchievement)
	FilterResult      Filter = Filter(record.TypeResult)
	FilterRecord      Filter = Filter(record.TypeRecord)
)

type Sort string

const (
	SortDateDesc  Sort = "date-desc"
	SortDateAsc   Sort = "date-asc"
	SortTitleAsc  Sort = "title-asc"
	SortTitleDesc Sort = "title-desc"
)

func (f Filter) Known() bool {
	switch f {
	case FilterAll, FilterAchievement, FilterResult, FilterRecord:
		return true
	}
	return false
}

func (s Sort) Known() bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc:
		return true
	}
	return false
}

// EmptyMessage is shown in place of the list when a projection has no records.
const EmptyMessage = "No entries found"

// Criteria selects and orders the visible records.
type Criteria struct {
	Filter Filter `json:"filter"`
	Sort   Sort   `json:"sort"`
	Search string `json:"search"`
}

// DefaultCriteria is the view state of a fresh session.
func DefaultCriteria() Criteria {
	return Criteria{Filter: FilterAll, Sort: SortDateDesc}
}

// View is a computed projection.
type View struct {
	Records []record.Record `json:"records"`
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
}

func NewView(records []record.Record) View {
	v := View{Records: records}
	if len(records) == 0 {
		v.Records = []record.Record{}
		v.Empty = true
		v.Message = EmptyMessage
	}
	return v
}

// Projector computes projections. Title ordering follows the projector's locale.
type Projector struct {
	tag language.Tag
}

func NewProjector(tag language.Tag) Projector {
	return Projector{tag: tag}
}

// Project filters, searches and sorts records without modifying the input slice.
func Project(records []record.Record, c Criteria) []record.Record {
	return NewProjector(language.English).Project(records, c)
}

func (p Projector) Project(records []record.Record, c Criteria) []record.Record {
	out := make([]record.Record, 0, len(records))
	term := strings.ToLower(c.Search)
	for _, r := range records {
		if c.Filter != "" && c.Filter != FilterAll && string(r.Type) != string(c.Filter) {
			continue
		}
		if term != "" && !matches(r, term) {
			continue
		}
		out = append(out, r)
	}
	p.sort(out, c.Sort)
	return out
}

func matches(r record.Record, term string) bool {
	for _, field := range []string{r.Title, r.Description, r.Grade, r.Institution, r.Category} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (p Projector) sort(records []record.Record, s Sort) {
	switch s {
	case SortDateDesc:
		slices.SortStableFunc(records, func(a, b record.Record) int {
			return compareDates(a.Date, b.Date, true)
		})
	case SortDateAsc:
		slices.SortStableFunc(records, func(a, b record.Record) int {
			return compareDates(a.Date, b.Date, false)
		})
	case SortTitleAsc, SortTitleDesc:
		// collate.Collator is not safe for concurrent use.
		col := collate.New(p.tag)
		desc := s == SortTitleDesc
		slices.SortStableFunc(records, func(a, b record.Record) int {
			if desc {
				return col.CompareString(b.Title, a.Title)
			}
			return col.CompareString(a.Title, b.Title)
		})
	}
}

// compareDates orders valid dates ascending or descending. Invalid dates sort after
// every valid date in both directions and are equal to each other.
func compareDates(a, b string, desc bool) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	c := ta.Compare(tb)
	if desc {
		return -c
	}
	return c
}

// ParseDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
