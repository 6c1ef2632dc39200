package api

import (
	"reflect"
	"testing"

	"acadport/services/projection"
	"acadport/services/record"
	"acadport/services/session"
	"acadport/services/stats"
	"acadport/utils"
)

func TestGetSwagger(t *testing.T) {
	swagger, err := GetSwagger()
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"/records", "/records/{id}/delete", "/import/csv", "/notifications/stream"} {
		if swagger.Paths.Find(path) == nil {
			t.Errorf("path %s missing", path)
		}
	}
	if _, ok := swagger.Components.SecuritySchemes["bearerAuth"]; !ok {
		t.Error("bearerAuth scheme missing")
	}
}

func TestToFields(t *testing.T) {
	in := RecordInput{Type: "result", Title: "Final", Grade: utils.ToPointer("A")}
	want := record.Fields{Type: record.TypeResult, Title: "Final", Grade: "A"}
	if got := in.ToFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToFields() = %+v, want %+v", got, want)
	}
}

func TestMergeCriteria(t *testing.T) {
	current := projection.Criteria{Filter: projection.FilterResult, Sort: projection.SortTitleAsc, Search: "math"}

	got, changed := GetRecordsParams{}.MergeCriteria(current)
	if changed || got != current {
		t.Errorf("no params: %+v, %v", got, changed)
	}

	sort := Sort("date-asc")
	got, changed = GetRecordsParams{Sort: &sort, Search: utils.ToPointer("")}.MergeCriteria(current)
	want := projection.Criteria{Filter: projection.FilterResult, Sort: projection.SortDateAsc}
	if !changed || got != want {
		t.Errorf("MergeCriteria() = %+v, want %+v", got, want)
	}
}

func TestTransformDashboard(t *testing.T) {
	empty := TransformDashboard(session.State{
		Criteria: projection.DefaultCriteria(),
		Layout:   session.LayoutGrid,
		View:     projection.NewView(nil),
	})
	if !empty.Empty || empty.Message == nil || *empty.Message != projection.EmptyMessage || empty.Records == nil {
		t.Errorf("empty dashboard = %+v", empty)
	}

	full := TransformDashboard(session.State{
		Criteria:      projection.DefaultCriteria(),
		Layout:        session.LayoutList,
		Counts:        stats.Counts{Total: 1, Records: 1},
		View:          projection.NewView([]record.Record{{ID: "r1", Type: record.TypeRecord, Title: "Mile"}}),
		PendingDelete: "r1",
		Loaded:        true,
	})
	if full.Empty || full.Message != nil || len(full.Records) != 1 || full.Records[0].Id != "r1" {
		t.Errorf("dashboard = %+v", full)
	}
	if full.PendingDelete == nil || *full.PendingDelete != "r1" || full.Counts.Record != 1 || full.Layout != "list" {
		t.Errorf("dashboard state = %+v", full)
	}
}
