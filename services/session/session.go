package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"acadport/services/gateway"
	"acadport/services/mirror"
	"acadport/services/notify"
	"acadport/services/projection"
	"acadport/services/record"
	"acadport/services/stats"
	"acadport/services/transfer"
)

var (
	ErrClosed          = errors.New("session closed")
	ErrInvalidCriteria = errors.New("invalid view criteria")
	ErrInvalidLayout   = errors.New("invalid layout")
)

type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

const topBuckets = 5

// Principal identifies the signed-in user.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	// IssuedAt is when the token that authenticated the principal was issued.
	IssuedAt time.Time `json:"-"`
}

// Name is the display name, falling back to the email address.
func (p Principal) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}

// State is everything a client needs to render the dashboard.
type State struct {
	Criteria      projection.Criteria `json:"criteria"`
	Layout        Layout              `json:"layout"`
	Counts        stats.Counts        `json:"counts"`
	View          projection.View     `json:"view"`
	PendingDelete string              `json:"pendingDelete,omitempty"`
	Loaded        bool                `json:"loaded"`
}

type Stats struct {
	Counts       stats.Counts   `json:"counts"`
	Categories   []stats.Bucket `json:"categories"`
	Institutions []stats.Bucket `json:"institutions"`
}

type Options struct {
	Projector projection.Projector
	NotifyTTL time.Duration
	Now       func() time.Time
}

// Session owns the live state of one signed-in user: the mirror and its
// subscription, the view criteria, the last filtered sequence, the pending delete
// and the notifications. The subscription goroutine is the only writer of the
// mirror; everything derived from it is recomputed under mu.
type Session struct {
	principal Principal
	mirror    *mirror.Mirror
	sub       *mirror.Subscription
	gateway   *gateway.Gateway
	confirm   gateway.Confirmation
	notes     *notify.Center
	projector projection.Projector
	now       func() time.Time

	mu       sync.RWMutex
	criteria projection.Criteria
	layout   Layout
	filtered []record.Record
	counts   stats.Counts
	closed   bool
}

// Open creates a session for p and starts its subscription. ctx bounds the
// subscription, not any single request.
func Open(ctx context.Context, store record.Store, p Principal, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		principal: p,
		mirror:    mirror.New(),
		gateway:   gateway.New(store, p.UID),
		notes:     notify.NewCenter(opts.NotifyTTL),
		projector: opts.Projector,
		now:       opts.Now,
		criteria:  projection.DefaultCriteria(),
		layout:    LayoutGrid,
		filtered:  []record.Record{},
	}
	s.sub = mirror.Start(ctx, store, p.UID, s.mirror, mirror.Handlers{
		OnSnapshot: s.refresh,
		OnError: func(err error) {
			s.notes.Error("Error loading data: " + err.Error())
		},
	})
	slog.Info("session opened", "uid", p.UID)
	return s
}

func (s *Session) refresh(records []record.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.recompute(records)
}

// recompute must be called with mu held.
func (s *Session) recompute(records []record.Record) {
	s.filtered = s.projector.Project(records, s.criteria)
	s.counts = stats.Count(records)
}

func (s *Session) Principal() Principal {
	return s.principal
}

// Notices is the notification center of the session.
func (s *Session) Notices() *notify.Center {
	return s.notes
}

func (s *Session) Notifications() []notify.Notification {
	return s.notes.Active()
}

// Done is closed when the subscription has stopped, by Close or by a stream error.
func (s *Session) Done() <-chan struct{} {
	return s.sub.Done()
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Session) View() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending, _ := s.confirm.Pending()
	view := make([]record.Record, len(s.filtered))
	copy(view, s.filtered)
	return State{
		Criteria:      s.criteria,
		Layout:        s.layout,
		Counts:        s.counts,
		View:          projection.NewView(view),
		PendingDelete: pending,
		Loaded:        s.mirror.Version() > 0,
	}
}

// SetCriteria changes the view criteria and recomputes the projection. Blank filter
// and sort fall back to their defaults.
func (s *Session) SetCriteria(c projection.Criteria) (State, error) {
	if c.Filter == "" {
		c.Filter = projection.FilterAll
	}
	if c.Sort == "" {
		c.Sort = projection.SortDateDesc
	}
	if !c.Filter.Known() {
		return State{}, fmt.Errorf("%w: filter %q", ErrInvalidCriteria, c.Filter)
	}
	if !c.Sort.Known() {
		return State{}, fmt.Errorf("%w: sort %q", ErrInvalidCriteria, c.Sort)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return State{}, ErrClosed
	}
	s.criteria = c
	s.recompute(s.mirror.Records())
	s.mu.Unlock()
	return s.View(), nil
}

func (s *Session) SetLayout(l Layout) error {
	if l != LayoutGrid && l != LayoutList {
		return fmt.Errorf("%w: %q", ErrInvalidLayout, l)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.layout = l
	return nil
}

func (s *Session) Stats() Stats {
	records := s.mirror.Records()
	s.mu.RLock()
	counts := s.counts
	s.mu.RUnlock()
	return Stats{
		Counts:       counts,
		Categories:   stats.TopCategories(records, topBuckets),
		Institutions: stats.TopInstitutions(records, topBuckets),
	}
}

// Save creates a record when id is empty and updates it otherwise. The mirror
// picks up the change from the subscription.
func (s *Session) Save(ctx context.Context, id string, f record.Fields) error {
	if s.isClosed() {
		return ErrClosed
	}
	if id == "" {
		if err := s.gateway.Create(ctx, f); err != nil {
			s.notes.Error("Error: " + err.Error())
			return err
		}
		s.notes.Success("Entry added!")
		return nil
	}
	if err := s.gateway.Update(ctx, id, f); err != nil {
		s.notes.Error("Error: " + err.Error())
		return err
	}
	s.notes.Success("Entry updated!")
	return nil
}

// RequestDelete opens the delete confirmation for id, discarding any other pending
// one. Nothing is deleted until ConfirmDelete.
func (s *Session) RequestDelete(id string) error {
	if s.isClosed() {
		return ErrClosed
	}
	if _, ok := s.mirror.Find(id); !ok {
		return fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}
	s.confirm.Open(id, func(ctx context.Context) error {
		return s.gateway.Delete(ctx, id)
	})
	return nil
}

func (s *Session) ConfirmDelete(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	err := s.confirm.Confirm(ctx)
	switch {
	case errors.Is(err, gateway.ErrNothingPending):
		return err
	case err != nil:
		s.notes.Error("Error: " + err.Error())
		return err
	}
	s.notes.Success("Entry deleted!")
	return nil
}

func (s *Session) CancelDelete() {
	s.confirm.Dismiss()
}

func (s *Session) today() string {
	return transfer.Today(s.now())
}

func (s *Session) ImportCSV(ctx context.Context, text string) (int, error) {
	if s.isClosed() {
		return 0, ErrClosed
	}
	return s.importRows(ctx, transfer.ParseCSV(text, s.today()))
}

func (s *Session) ImportJSON(ctx context.Context, text string) (int, error) {
	if s.isClosed() {
		return 0, ErrClosed
	}
	if strings.TrimSpace(text) == "" {
		s.notes.Error("Please paste JSON data first.")
		return 0, transfer.ErrEmptyInput
	}
	rows, err := transfer.ParseJSON(text, s.today())
	if err != nil {
		s.parseFailed(err)
		return 0, err
	}
	return s.importRows(ctx, rows)
}

// ImportBackup restores the data of a backup file. Records are created anew; ids
// and timestamps in the file are ignored.
func (s *Session) ImportBackup(ctx context.Context, text string) (int, error) {
	if s.isClosed() {
		return 0, ErrClosed
	}
	b, rows, err := transfer.ParseBackup(text, s.today())
	if err != nil {
		s.parseFailed(err)
		return 0, err
	}
	slog.Info("restoring backup", "uid", s.principal.UID, "from", b.UserID, "entries", len(rows))
	return s.importRows(ctx, rows)
}

func (s *Session) parseFailed(err error) {
	if errors.Is(err, transfer.ErrFormat) {
		s.notes.Error("Invalid JSON format. Expected an array.")
		return
	}
	s.notes.Error("Error parsing JSON data.")
}

func (s *Session) importRows(ctx context.Context, rows []record.Fields) (int, error) {
	n, err := transfer.Import(ctx, s.gateway, rows)
	if err != nil {
		s.notes.Error("Import error: " + err.Error())
		return n, err
	}
	s.notes.Success(fmt.Sprintf("Successfully imported %d entries!", n))
	return n, nil
}

func (s *Session) ExportCSV() (transfer.File, error) {
	if s.isClosed() {
		return transfer.File{}, ErrClosed
	}
	file, err := transfer.ExportCSV(s.mirror.Records())
	if err != nil {
		s.exportFailed(err, "No data to export.")
		return file, err
	}
	s.notes.Success("Data exported to CSV successfully!")
	return file, nil
}

// ExportJSON exports the whole mirror, or with filtered set the sequence the
// current view shows.
func (s *Session) ExportJSON(filtered bool) (transfer.File, error) {
	if s.isClosed() {
		return transfer.File{}, ErrClosed
	}
	if !filtered {
		file, err := transfer.ExportJSON(s.mirror.Records())
		if err != nil {
			s.exportFailed(err, "No data to export.")
			return file, err
		}
		s.notes.Success("Data exported to JSON successfully!")
		return file, nil
	}

	s.mu.RLock()
	records := make([]record.Record, len(s.filtered))
	copy(records, s.filtered)
	s.mu.RUnlock()
	file, err := transfer.ExportFiltered(records)
	if err != nil {
		s.exportFailed(err, "No data to export.")
		return file, err
	}
	s.notes.Success(fmt.Sprintf("Exported %d filtered entries!", len(records)))
	return file, nil
}

func (s *Session) Backup() (transfer.File, error) {
	if s.isClosed() {
		return transfer.File{}, ErrClosed
	}
	owner := transfer.Owner{
		UserID:      s.principal.UID,
		DisplayName: s.principal.DisplayName,
		Email:       s.principal.Email,
	}
	file, err := transfer.NewBackup(owner, s.mirror.Records(), s.now())
	if err != nil {
		s.exportFailed(err, "No data to backup.")
		return file, err
	}
	s.notes.Success("Backup created successfully!")
	return file, nil
}

func (s *Session) Template(format string) (transfer.File, error) {
	file, err := transfer.Template(format)
	if err != nil {
		return file, err
	}
	s.notes.Success(strings.ToUpper(format) + " template downloaded!")
	return file, nil
}

func (s *Session) exportFailed(err error, empty string) {
	if errors.Is(err, transfer.ErrNothingToExport) {
		s.notes.Error(empty)
		return
	}
	s.notes.Error("Error: " + err.Error())
}

// Close cancels the subscription and clears everything the session holds.
// Writes still in flight complete on their own; their notifications are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.filtered = []record.Record{}
	s.counts = stats.Counts{}
	s.mu.Unlock()

	s.sub.Cancel()
	s.mirror.Clear()
	s.confirm.Dismiss()
	s.notes.Close()
	slog.Info("session closed", "uid", s.principal.UID)
}
