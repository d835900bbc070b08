package mq

import "time"

// Routing keys for reminder events.
const (
	RoutingKeyReminderDue = "reminder.due"
)

// ReminderDuePayload is published by the beat scanner for every due
// registration and consumed by the dispatch worker.
type ReminderDuePayload struct {
	TaskName string    `json:"task_name"` // stringified habit id
	ChatID   string    `json:"chat_id"`
	Action   string    `json:"action"`
	Time     string    `json:"time"` // HH:MM, minute precision
	Place    string    `json:"place"`
	FiredAt  time.Time `json:"fired_at"`
}
