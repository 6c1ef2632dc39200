package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

const listenerBuffer = 16

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center holds the transient notifications of one session and fans them out to
// listeners. Once closed it silently drops everything.
type Center struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	items     []Notification
	listeners map[chan Notification]struct{}
	closed    bool
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:       ttl,
		now:       time.Now,
		listeners: make(map[chan Notification]struct{}),
	}
}

func (c *Center) Success(msg string) {
	c.push(LevelSuccess, msg)
}

func (c *Center) Error(msg string) {
	c.push(LevelError, msg)
}

func (c *Center) push(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		slog.Debug("dropping notification for closed session", "message", msg)
		return
	}
	now := c.now()
	n := Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   msg,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.items = append(c.prune(now), n)
	for ch := range c.listeners {
		select {
		case ch <- n:
		default:
			slog.Warn("dropping notification; listener buffer full")
		}
	}
}

func (c *Center) prune(now time.Time) []Notification {
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	return kept
}

// Active returns the notifications that have not expired yet, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.prune(c.now())
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Listen registers a listener. The returned func unregisters it; the channel is
// closed when either it or Close runs.
func (c *Center) Listen() (<-chan Notification, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Notification, listenerBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.listeners[ch] = struct{}{}
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.listeners[ch]; ok {
			delete(c.listeners, ch)
			close(ch)
		}
	}
}

// Close drops pending notifications and disconnects all listeners.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.items = nil
	for ch := range c.listeners {
		close(ch)
		delete(c.listeners, ch)
	}
}
