package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	mqcontracts "habitflow/contracts/mq"
)

// EventPublisher publishes an event payload under a routing key.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Beat periodically scans the registration store for due entries and fires
// a reminder.due event for each. Dispatch itself happens on the worker; a
// publish failure leaves last_run untouched so the entry fires again on the
// next scan.
type Beat struct {
	due       DueLister
	publisher EventPublisher
	interval  time.Duration
	logger    *zap.Logger
}

func NewBeat(due DueLister, publisher EventPublisher, interval time.Duration, logger *zap.Logger) *Beat {
	return &Beat{
		due:       due,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks scanning until the context is cancelled.
func (b *Beat) Run(ctx context.Context) {
	b.logger.Info("Beat scanner started", zap.Duration("interval", b.interval))

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Beat scanner stopped")
			return
		case now := <-ticker.C:
			b.Tick(ctx, now)
		}
	}
}

// Tick runs a single scan at the given instant.
func (b *Beat) Tick(ctx context.Context, now time.Time) {
	entries, err := b.due.DueEntries(ctx, now)
	if err != nil {
		b.logger.Error("Failed to list due registrations", zap.Error(err))
		return
	}

	if len(entries) == 0 {
		return
	}

	b.logger.Info("Due registrations found", zap.Int("count", len(entries)))

	for _, e := range entries {
		payload := mqcontracts.ReminderDuePayload{
			TaskName: e.Name,
			ChatID:   e.Kwargs.ChatID,
			Action:   e.Kwargs.Action,
			Time:     e.Kwargs.Time,
			Place:    e.Kwargs.Place,
			FiredAt:  now,
		}

		if err := b.publisher.Publish(mqcontracts.RoutingKeyReminderDue, payload); err != nil {
			b.logger.Error("Failed to publish reminder.due",
				zap.String("task_name", e.Name),
				zap.Error(err),
			)
			continue
		}

		if err := b.due.MarkRun(ctx, e.Name, now); err != nil {
			b.logger.Error("Failed to mark registration as run",
				zap.String("task_name", e.Name),
				zap.Error(err),
			)
		}
	}
}
