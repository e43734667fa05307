package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNotificationLifetimes(t *testing.T) {
	tests := []struct {
		name    string
		report  func(n *Notifier)
		region  Region
		visible time.Duration
		gone    time.Duration
	}{
		{
			name:    "errorLastsFiveSeconds",
			report:  func(n *Notifier) { n.ReportError(RegionDetail, "boom") },
			region:  RegionDetail,
			visible: 4999 * time.Millisecond,
			gone:    5 * time.Second,
		},
		{
			name:    "successLastsThreeSeconds",
			report:  func(n *Notifier) { n.ReportSuccess(RegionCreate, "done") },
			region:  RegionCreate,
			visible: 2999 * time.Millisecond,
			gone:    3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			n := New(WithClock(clock.Now))
			tt.report(n)

			clock.Advance(tt.visible)
			if got := len(n.Active(tt.region)); got != 1 {
				t.Fatalf("Active() after %v = %d, want 1", tt.visible, got)
			}

			clock.Advance(tt.gone - tt.visible)
			if got := len(n.Active(tt.region)); got != 0 {
				t.Errorf("Active() after %v = %d, want 0", tt.gone, got)
			}
		})
	}
}

func TestNotificationsStackNewestFirstWithoutDedup(t *testing.T) {
	clock := newFakeClock()
	n := New(WithClock(clock.Now))

	n.ReportError(RegionOrders, "same")
	clock.Advance(time.Millisecond)
	n.ReportError(RegionOrders, "same")
	clock.Advance(time.Millisecond)
	n.ReportError(RegionOrders, "latest")
	n.ReportError(RegionCreate, "elsewhere")

	got := n.Active(RegionOrders)
	if len(got) != 3 {
		t.Fatalf("len(Active()) = %d, want 3", len(got))
	}
	if got[0].Message != "latest" || got[1].Message != "same" || got[2].Message != "same" {
		t.Errorf("Active() order = %q %q %q", got[0].Message, got[1].Message, got[2].Message)
	}
	if got[1].ID == got[2].ID {
		t.Error("repeated messages should be distinct notifications")
	}
}

func TestDismiss(t *testing.T) {
	n := New()
	item := n.ReportError(RegionOrders, "boom")

	if !n.Dismiss(item.ID) {
		t.Fatal("Dismiss() = false, want true")
	}
	if n.Dismiss(item.ID) {
		t.Error("second Dismiss() should be a no-op")
	}
	if n.Dismiss(uuid.New()) {
		t.Error("Dismiss() of unknown id should be a no-op")
	}
	if len(n.Active(RegionOrders)) != 0 {
		t.Error("dismissed notification still active")
	}
}

func TestSweep(t *testing.T) {
	clock := newFakeClock()
	n := New(WithClock(clock.Now), WithTTLs(2*time.Second, time.Second))

	n.ReportSuccess(RegionOrders, "short")
	n.ReportError(RegionOrders, "long")

	clock.Advance(time.Second)
	if removed := n.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}

	clock.Advance(time.Second)
	if removed := n.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if removed := n.Sweep(); removed != 0 {
		t.Errorf("Sweep() on empty = %d, want 0", removed)
	}
}

func TestWithTTLsIgnoresNonPositive(t *testing.T) {
	n := New(WithTTLs(0, -time.Second))
	if n.errorTTL != DefaultErrorTTL || n.successTTL != DefaultSuccessTTL {
		t.Errorf("ttls = %v/%v, want defaults", n.errorTTL, n.successTTL)
	}
}
