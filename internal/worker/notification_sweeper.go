package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper is the part of the notifier the worker needs.
type Sweeper interface {
	Sweep() int
}

// NotificationSweeper periodically drops expired notifications. Expired
// entries are already hidden on read; sweeping only bounds memory.
type NotificationSweeper struct {
	notes    Sweeper
	interval time.Duration
	log      logrus.FieldLogger
}

func NewNotificationSweeper(notes Sweeper, interval time.Duration, logger logrus.FieldLogger) *NotificationSweeper {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NotificationSweeper{
		notes:    notes,
		interval: interval,
		log:      logger.WithField("component", "notification_sweeper"),
	}
}

func (w *NotificationSweeper) Start(ctx context.Context) {
	w.log.WithField("interval", w.interval).Info("starting notification sweeper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("notification sweeper stopped")
			return
		case <-ticker.C:
			if removed := w.notes.Sweep(); removed > 0 {
				w.log.WithField("removed", removed).Debug("expired notifications swept")
			}
		}
	}
}
