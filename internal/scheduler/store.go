// Package scheduler keeps the recurring reminder registrations in lockstep
// with the persisted habits and drives the beat scanner that fires them.
package scheduler

import (
	"context"
	"time"
)

// Interval units understood by the registration store.
const (
	PeriodMinutes = "minutes"
	PeriodDays    = "days"
)

// TaskSendReminder names the task a registration fires.
const TaskSendReminder = "reminder.send"

// Kwargs is the payload a registration carries to the dispatch worker.
type Kwargs struct {
	ChatID string `json:"chat_id"`
	Action string `json:"action"`
	Time   string `json:"time"` // HH:MM time-of-day in the configured timezone
	Place  string `json:"place"`
}

// Entry is one recurring registration, named by the stringified habit id.
type Entry struct {
	Name   string
	Every  int
	Period string
	Task   string
	Kwargs Kwargs
}

// Store is the recurring-registration capability. Exists-then-Create is not
// atomic; concurrent callers can race, and Create on an existing name fails
// with the store's duplicate-key error.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, e Entry) error
	Delete(ctx context.Context, name string) error
}

// DueEntry is a registration whose interval has elapsed.
type DueEntry struct {
	Name   string
	Kwargs Kwargs
}

// DueLister is the beat-side view of the registration store.
type DueLister interface {
	DueEntries(ctx context.Context, now time.Time) ([]DueEntry, error)
	MarkRun(ctx context.Context, name string, at time.Time) error
}
