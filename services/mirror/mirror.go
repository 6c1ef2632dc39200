package mirror

import (
	"context"
	"log/slog"
	"sync"

	"acadport/services/record"
	"acadport/set"
)

// Mirror is the local copy of a user's record collection. It is only ever replaced
// as a whole, so readers never observe a partially applied snapshot.
type Mirror struct {
	mu      sync.RWMutex
	records []record.Record
	version uint64
}

func New() *Mirror {
	return &Mirror{records: []record.Record{}}
}

// Replace swaps in a new snapshot. Records repeating an earlier id are dropped.
func (m *Mirror) Replace(records []record.Record) {
	next := make([]record.Record, 0, len(records))
	seen := set.New[string](len(records))
	for _, r := range records {
		if r.ID != "" && !seen.Insert(r.ID) {
			slog.Warn("dropping duplicate record in snapshot", "id", r.ID)
			continue
		}
		next = append(next, r)
	}

	m.mu.Lock()
	m.records = next
	m.version++
	m.mu.Unlock()
}

// Records returns a copy of the current snapshot.
func (m *Mirror) Records() []record.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]record.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Find returns the record with the given id.
func (m *Mirror) Find(id string) (record.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, true
		}
	}
	return record.Record{}, false
}

func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Version counts applied snapshots; it is 0 until the first one arrives.
func (m *Mirror) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

func (m *Mirror) Clear() {
	m.mu.Lock()
	m.records = []record.Record{}
	m.mu.Unlock()
}

// Handlers receive subscription events on the subscription goroutine.
type Handlers struct {
	// OnSnapshot runs after the mirror has been replaced, with a copy of the new records.
	OnSnapshot func(records []record.Record)
	// OnError runs once when the stream breaks. The mirror keeps its last snapshot.
	OnError func(err error)
}

// Subscription keeps a Mirror in sync with a store until it is cancelled or the
// stream fails. There is no reconnection; a new sign-in starts a new Subscription.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start subscribes to the user's records and applies every snapshot to m.
func Start(ctx context.Context, store record.Store, userID string, m *Mirror, h Handlers) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	iter := store.Subscribe(ctx, userID)
	go s.run(ctx, iter, m, h)
	return s
}

func (s *Subscription) run(ctx context.Context, iter record.SnapshotIterator, m *Mirror, h Handlers) {
	defer close(s.done)
	defer iter.Stop()

	for {
		records, err := iter.Next()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.With("error", err.Error()).Error("record subscription failed")
			if h.OnError != nil {
				h.OnError(err)
			}
			return
		}
		m.Replace(records)
		slog.Debug("applied snapshot", "records", len(records))
		if h.OnSnapshot != nil {
			h.OnSnapshot(m.Records())
		}
	}
}

// Cancel stops the subscription and waits for the receive loop to exit. No handler
// runs after Cancel returns. It must not be called from inside a handler.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Done is closed once the receive loop has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
