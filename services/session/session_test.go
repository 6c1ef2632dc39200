package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"acadport/services/gateway"
	"acadport/services/projection"
	"acadport/services/record"
	"acadport/services/transfer"
)

const uid = "ada"

type opCounter struct {
	mu  sync.Mutex
	ops map[record.Op]int
}

func (c *opCounter) hook(op record.Op, userID string, id string, fields record.Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops[op]++
	return nil
}

func (c *opCounter) count(op record.Op) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ops[op]
}

func newTestSession(t *testing.T) (*Session, *record.MemoryStore, *opCounter) {
	t.Helper()
	store := record.NewMemoryStore()
	counter := &opCounter{ops: make(map[record.Op]int)}
	store.SetWriteHook(counter.hook)
	s := Open(context.Background(), store, Principal{UID: uid, Email: "ada@acadport.app", DisplayName: "Ada"}, Options{
		Now: func() time.Time { return time.Date(2025, 10, 19, 9, 0, 0, 0, time.UTC) },
	})
	t.Cleanup(s.Close)
	return s, store, counter
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func titles(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func messages(s *Session) []string {
	out := []string{}
	for _, n := range s.Notifications() {
		out = append(out, n.Message)
	}
	return out
}

func hasMessage(s *Session, msg string) bool {
	for _, m := range messages(s) {
		if m == msg {
			return true
		}
	}
	return false
}

func TestSessionProjectsSnapshots(t *testing.T) {
	s, _, _ := newTestSession(t)
	waitFor(t, "first snapshot", func() bool { return s.View().Loaded })
	if st := s.View(); !st.View.Empty || st.View.Message != projection.EmptyMessage {
		t.Errorf("empty view = %+v", st.View)
	}

	ctx := context.Background()
	if err := s.Save(ctx, "", record.Fields{Type: record.TypeAchievement, Title: "A", Date: "2025-01-01"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "", record.Fields{Type: record.TypeResult, Title: "B", Date: "2025-06-01"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "two records", func() bool { return len(s.View().View.Records) == 2 })

	st := s.View()
	if got := titles(st.View.Records); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("date-desc view = %v", got)
	}
	if st.Counts.Total != 2 || st.Counts.Achievements != 1 || st.Counts.Results != 1 {
		t.Errorf("counts = %+v", st.Counts)
	}

	st, err := s.SetCriteria(projection.Criteria{Filter: projection.FilterResult})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(st.View.Records); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("filtered view = %v", got)
	}
	if st.Criteria.Sort != projection.SortDateDesc {
		t.Errorf("blank sort not defaulted: %+v", st.Criteria)
	}
	if !hasMessage(s, "Entry added!") {
		t.Errorf("notifications = %v", messages(s))
	}
}

func TestSessionRejectsUnknownCriteria(t *testing.T) {
	s, _, _ := newTestSession(t)
	if _, err := s.SetCriteria(projection.Criteria{Filter: "award"}); !errors.Is(err, ErrInvalidCriteria) {
		t.Errorf("SetCriteria() error = %v", err)
	}
	if err := s.SetLayout("table"); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("SetLayout() error = %v", err)
	}
	if err := s.SetLayout(LayoutList); err != nil || s.View().Layout != LayoutList {
		t.Errorf("SetLayout(list) = %v, layout %s", err, s.View().Layout)
	}
}

func TestSessionStreamErrorKeepsView(t *testing.T) {
	s, store, _ := newTestSession(t)
	if err := s.Save(context.Background(), "", record.Fields{Type: record.TypeRecord, Title: "Kept", Date: "2025-01-01"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "record", func() bool { return len(s.View().View.Records) == 1 })

	store.Fail(uid, errors.New("permission denied"))
	waitFor(t, "error notification", func() bool { return hasMessage(s, "Error loading data: permission denied") })

	if got := titles(s.View().View.Records); !reflect.DeepEqual(got, []string{"Kept"}) {
		t.Errorf("view after stream error = %v", got)
	}
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Error("subscription still running after stream error")
	}
}

func TestSessionDismissedDelete(t *testing.T) {
	s, store, counter := newTestSession(t)
	ctx := context.Background()
	if err := s.Save(ctx, "", record.Fields{Type: record.TypeRecord, Title: "Keep me", Date: "2025-01-01"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "record", func() bool { return len(s.View().View.Records) == 1 })
	id := s.View().View.Records[0].ID

	if err := s.RequestDelete(id); err != nil {
		t.Fatal(err)
	}
	if got := s.View().PendingDelete; got != id {
		t.Errorf("pending = %q, want %q", got, id)
	}
	s.CancelDelete()
	if err := s.ConfirmDelete(ctx); !errors.Is(err, gateway.ErrNothingPending) {
		t.Errorf("ConfirmDelete() after dismiss = %v", err)
	}
	if counter.count(record.OpDelete) != 0 || len(store.Records(uid)) != 1 {
		t.Errorf("delete issued after dismiss")
	}
	if s.View().PendingDelete != "" {
		t.Error("pending delete not cleared")
	}
}

func TestSessionConfirmedDelete(t *testing.T) {
	s, store, _ := newTestSession(t)
	ctx := context.Background()
	for _, title := range []string{"first", "second"} {
		if err := s.Save(ctx, "", record.Fields{Type: record.TypeRecord, Title: title, Date: "2025-01-01"}); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, "records", func() bool { return len(s.View().View.Records) == 2 })
	records := s.View().View.Records

	// A second request replaces the first.
	if err := s.RequestDelete(records[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.RequestDelete(records[1].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatal(err)
	}
	left := store.Records(uid)
	if len(left) != 1 || left[0].ID != records[0].ID {
		t.Errorf("records left = %+v", left)
	}
	if !hasMessage(s, "Entry deleted!") {
		t.Errorf("notifications = %v", messages(s))
	}
	if err := s.RequestDelete("missing"); !errors.Is(err, record.ErrNotFound) {
		t.Errorf("RequestDelete(missing) = %v", err)
	}
}

func TestSessionUpdateVanished(t *testing.T) {
	s, _, _ := newTestSession(t)
	err := s.Save(context.Background(), "gone", record.Fields{Type: record.TypeRecord, Title: "x"})
	if !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("Save() error = %v", err)
	}
	waitFor(t, "error notification", func() bool { return len(messages(s)) == 1 })
	if got := messages(s)[0]; got != "Error: record not found: gone" {
		t.Errorf("notification = %q", got)
	}
}

func TestSessionImports(t *testing.T) {
	s, store, counter := newTestSession(t)
	ctx := context.Background()

	n, err := s.ImportJSON(ctx, `{"type": "result", "title": "x"}`)
	if !errors.Is(err, transfer.ErrFormat) || n != 0 {
		t.Errorf("ImportJSON(object) = %d, %v", n, err)
	}
	if counter.count(record.OpCreate) != 0 {
		t.Error("writes issued for a rejected JSON import")
	}
	if !hasMessage(s, "Invalid JSON format. Expected an array.") {
		t.Errorf("notifications = %v", messages(s))
	}

	if _, err := s.ImportJSON(ctx, "   "); !errors.Is(err, transfer.ErrEmptyInput) {
		t.Errorf("ImportJSON(blank) = %v", err)
	}

	n, err = s.ImportCSV(ctx, "type,title,description,date,grade,institution,category\n")
	if err != nil || n != 0 {
		t.Errorf("ImportCSV(header only) = %d, %v", n, err)
	}
	if !hasMessage(s, "Successfully imported 0 entries!") {
		t.Errorf("notifications = %v", messages(s))
	}

	n, err = s.ImportJSON(ctx, `[{"title": "one"}, {"type": "result", "title": "two"}]`)
	if err != nil || n != 2 {
		t.Fatalf("ImportJSON() = %d, %v", n, err)
	}
	for _, r := range store.Records(uid) {
		if r.Date != "2025-10-19" {
			t.Errorf("imported date = %q, want today", r.Date)
		}
	}
}

func TestSessionExports(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	if _, err := s.ExportCSV(); !errors.Is(err, transfer.ErrNothingToExport) {
		t.Errorf("ExportCSV() on empty mirror = %v", err)
	}
	if _, err := s.Backup(); !errors.Is(err, transfer.ErrNothingToExport) {
		t.Errorf("Backup() on empty mirror = %v", err)
	}
	if !hasMessage(s, "No data to export.") || !hasMessage(s, "No data to backup.") {
		t.Errorf("notifications = %v", messages(s))
	}

	if _, err := s.ImportJSON(ctx, `[{"type": "result", "title": "B"}, {"type": "record", "title": "R"}]`); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "records", func() bool { return len(s.View().View.Records) == 2 })

	if _, err := s.SetCriteria(projection.Criteria{Search: "nothing matches"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ExportJSON(true); !errors.Is(err, transfer.ErrNothingToExport) {
		t.Errorf("ExportJSON(filtered) on empty view = %v", err)
	}
	if _, err := s.SetCriteria(projection.Criteria{Filter: projection.FilterRecord}); err != nil {
		t.Fatal(err)
	}
	file, err := s.ExportJSON(true)
	if err != nil {
		t.Fatal(err)
	}
	if file.Name != "filtered-achievements.json" || !hasMessage(s, "Exported 1 filtered entries!") {
		t.Errorf("filtered export = %s, notifications %v", file.Name, messages(s))
	}

	file, err = s.Backup()
	if err != nil {
		t.Fatal(err)
	}
	if file.Name != "backup_Ada_2025-10-19.json" {
		t.Errorf("backup name = %s", file.Name)
	}
}

func TestSessionClose(t *testing.T) {
	s, store, _ := newTestSession(t)
	ch, stop := s.Notices().Listen()
	defer stop()

	s.Close()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription not cancelled")
	}
	if _, ok := <-ch; ok {
		t.Error("notification stream left open")
	}
	if err := s.Save(context.Background(), "", record.Fields{Type: record.TypeRecord, Title: "late"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Save() after Close = %v", err)
	}
	if len(store.Records(uid)) != 0 || len(s.Notifications()) != 0 {
		t.Error("closed session still acting")
	}
	s.Close()
}

func TestManager(t *testing.T) {
	store := record.NewMemoryStore()
	m := NewManager(context.Background(), store, Options{})
	defer m.CloseAll()

	p := Principal{UID: uid}
	first := m.Open(p)
	if got, ok := m.Get(uid); !ok || got != first {
		t.Fatal("Get() did not return the open session")
	}
	if got, err := m.Ensure(p); err != nil || got != first {
		t.Errorf("Ensure() = %p, %v; want the open session", got, err)
	}

	second := m.Open(p)
	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Error("reopening did not close the previous session")
	}
	if got, _ := m.Get(uid); got != second {
		t.Error("Get() returned a stale session")
	}

	if !m.Close(uid) || m.Close(uid) {
		t.Error("Close() should report the session exactly once")
	}
	if _, ok := m.Get(uid); ok {
		t.Error("session still registered after Close")
	}
}

func TestManagerSignOut(t *testing.T) {
	signedOutAt := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	store := record.NewMemoryStore()
	m := NewManager(context.Background(), store, Options{Now: func() time.Time { return signedOutAt }})
	defer m.CloseAll()

	old := Principal{UID: uid, IssuedAt: signedOutAt.Add(-time.Minute)}
	if _, err := m.Ensure(old); err != nil {
		t.Fatal(err)
	}
	if !m.SignOut(uid) {
		t.Fatal("SignOut() found no session")
	}

	tests := []struct {
		name     string
		issuedAt time.Time
		wantErr  error
	}{
		{"token from before sign-out", signedOutAt.Add(-time.Minute), ErrSignedOut},
		{"token issued at sign-out", signedOutAt, ErrSignedOut},
		{"token without issue time", time.Time{}, ErrSignedOut},
		{"token from a later sign-in", signedOutAt.Add(time.Second), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := m.Ensure(Principal{UID: uid, IssuedAt: tt.issuedAt})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Ensure() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && s != nil {
				t.Error("Ensure() returned a session for a refused token")
			}
		})
	}
	m.Close(uid)

	m.Open(old)
	if _, err := m.Ensure(old); err != nil {
		t.Errorf("Ensure() after a new sign-in = %v", err)
	}
}
