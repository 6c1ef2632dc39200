package record

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// ErrIteratorStopped is returned by Next once Stop has been called.
var ErrIteratorStopped = errors.New("snapshot iterator stopped")

// Op names a write operation for WriteHook.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// WriteHook runs before every write to a MemoryStore. A non-nil error aborts the write.
type WriteHook func(op Op, userID string, id string, fields Fields) error

// MemoryStore is an in-process Store. Each change pushes the full, createdAt-descending
// record set to every open iterator of the affected user. Iterators coalesce: a slow reader
// only sees the latest snapshot.
type MemoryStore struct {
	mu    sync.Mutex
	now   func() time.Time
	seq   int
	users map[string]*memoryCollection
	hook  WriteHook
}

type memoryCollection struct {
	docs      map[string]memoryDoc
	listeners map[*memoryIterator]struct{}
}

type memoryDoc struct {
	record Record
	seq    int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:   time.Now,
		users: make(map[string]*memoryCollection),
	}
}

// SetWriteHook installs a hook consulted before every write.
func (s *MemoryStore) SetWriteHook(hook WriteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = hook
}

// SetClock replaces the clock used for createdAt/updatedAt.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Fail breaks every open subscription of the user with err.
func (s *MemoryStore) Fail(userID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.users[userID]
	if c == nil {
		return
	}
	for it := range c.listeners {
		it.fail(err)
	}
}

// Records returns the user's current records, newest first.
func (s *MemoryStore) Records(userID string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection(userID).snapshot()
}

func (s *MemoryStore) collection(userID string) *memoryCollection {
	c, ok := s.users[userID]
	if !ok {
		c = &memoryCollection{
			docs:      make(map[string]memoryDoc),
			listeners: make(map[*memoryIterator]struct{}),
		}
		s.users[userID] = c
	}
	return c
}

func (c *memoryCollection) snapshot() []Record {
	docs := make([]memoryDoc, 0, len(c.docs))
	for _, d := range c.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].seq > docs[j].seq
	})
	records := make([]Record, len(docs))
	for i, d := range docs {
		records[i] = d.record
	}
	return records
}

func (c *memoryCollection) publish() {
	snap := c.snapshot()
	for it := range c.listeners {
		it.push(snap)
	}
}

func (s *MemoryStore) Subscribe(ctx context.Context, userID string) SnapshotIterator {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(userID)
	it := &memoryIterator{
		ctx:   ctx,
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	it.release = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(c.listeners, it)
	}
	c.listeners[it] = struct{}{}
	it.push(c.snapshot())
	return it
}

func (s *MemoryStore) Create(ctx context.Context, userID string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook != nil {
		if err := s.hook(OpCreate, userID, "", fields); err != nil {
			return err
		}
	}

	s.seq++
	now := s.now()
	c := s.collection(userID)
	id := "rec-" + strconv.Itoa(s.seq)
	r := Record{
		ID:          id,
		Type:        fields.Type,
		Title:       fields.Title,
		Description: fields.Description,
		Date:        fields.Date,
		Grade:       fields.Grade,
		Institution: fields.Institution,
		Category:    fields.Category,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	c.docs[id] = memoryDoc{record: r, seq: s.seq}
	c.publish()
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, userID string, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook != nil {
		if err := s.hook(OpUpdate, userID, id, fields); err != nil {
			return err
		}
	}

	c := s.collection(userID)
	d, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	now := s.now()
	createdAt := d.record.CreatedAt
	d.record = Record{
		ID:          id,
		Type:        fields.Type,
		Title:       fields.Title,
		Description: fields.Description,
		Date:        fields.Date,
		Grade:       fields.Grade,
		Institution: fields.Institution,
		Category:    fields.Category,
		CreatedAt:   createdAt,
		UpdatedAt:   &now,
	}
	c.docs[id] = d
	c.publish()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hook != nil {
		if err := s.hook(OpDelete, userID, id, Fields{}); err != nil {
			return err
		}
	}

	c := s.collection(userID)
	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(c.docs, id)
	c.publish()
	return nil
}

type memoryIterator struct {
	ctx     context.Context
	ready   chan struct{}
	done    chan struct{}
	once    sync.Once
	release func()

	mu      sync.Mutex
	pending []Record
	has     bool
	err     error
}

func (it *memoryIterator) push(records []Record) {
	it.mu.Lock()
	it.pending = records
	it.has = true
	it.mu.Unlock()
	it.signal()
}

func (it *memoryIterator) fail(err error) {
	it.mu.Lock()
	it.err = err
	it.mu.Unlock()
	it.signal()
}

func (it *memoryIterator) signal() {
	select {
	case it.ready <- struct{}{}:
	default:
	}
}

func (it *memoryIterator) Next() ([]Record, error) {
	for {
		it.mu.Lock()
		if it.err != nil {
			err := it.err
			it.mu.Unlock()
			return nil, err
		}
		if it.has {
			records := it.pending
			it.pending, it.has = nil, false
			it.mu.Unlock()
			return records, nil
		}
		it.mu.Unlock()

		select {
		case <-it.ready:
		case <-it.done:
			return nil, ErrIteratorStopped
		case <-it.ctx.Done():
			return nil, it.ctx.Err()
		}
	}
}

func (it *memoryIterator) Stop() {
	it.once.Do(func() {
		close(it.done)
		it.release()
	})
}
