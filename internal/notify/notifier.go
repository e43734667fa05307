package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Region names a place a notification is rendered into.
type Region string

const (
	RegionOrders Region = "orders"
	RegionCreate Region = "create"
	RegionDetail Region = "detail"
)

const (
	DefaultErrorTTL   = 5 * time.Second
	DefaultSuccessTTL = 3 * time.Second
)

type Notification struct {
	ID        uuid.UUID
	Region    Region
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// Notifier keeps transient banners per region. Entries stack newest first,
// repeated messages are not merged, and every entry expires on its own.
type Notifier struct {
	mu         sync.Mutex
	items      []Notification
	errorTTL   time.Duration
	successTTL time.Duration
	now        func() time.Time
}

type Option func(*Notifier)

func WithTTLs(errorTTL, successTTL time.Duration) Option {
	return func(n *Notifier) {
		if errorTTL > 0 {
			n.errorTTL = errorTTL
		}
		if successTTL > 0 {
			n.successTTL = successTTL
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

func New(opts ...Option) *Notifier {
	n := &Notifier{
		errorTTL:   DefaultErrorTTL,
		successTTL: DefaultSuccessTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) ReportError(region Region, message string) Notification {
	return n.push(region, KindError, message, n.errorTTL)
}

// ReportSuccess posts into region, which callers set to the active section.
func (n *Notifier) ReportSuccess(region Region, message string) Notification {
	return n.push(region, KindSuccess, message, n.successTTL)
}

func (n *Notifier) push(region Region, kind Kind, message string, ttl time.Duration) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	item := Notification{
		ID:        uuid.New(),
		Region:    region,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	n.items = append([]Notification{item}, n.items...)
	return item
}

// Active returns the unexpired notifications of region, newest first.
func (n *Notifier) Active(region Region) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	var out []Notification
	for _, item := range n.items {
		if item.Region == region && !item.Expired(now) {
			out = append(out, item)
		}
	}
	return out
}

// Dismiss removes one notification. Removing an unknown or already expired
// notification is a no-op.
func (n *Notifier) Dismiss(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep drops expired notifications and returns how many were removed.
func (n *Notifier) Sweep() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if !item.Expired(now) {
			kept = append(kept, item)
		}
	}
	removed := len(n.items) - len(kept)
	for i := len(kept); i < len(n.items); i++ {
		n.items[i] = Notification{}
	}
	n.items = kept
	return removed
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.items)
}
