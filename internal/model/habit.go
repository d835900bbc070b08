package model

import "time"

// Habit is a tracked recurring activity: an action performed at a place,
// either rewarded or linked to a pleasant habit.
type Habit struct {
	ID            int       `json:"id"`
	OwnerID       *int      `json:"owner_id"` // nil once the owning account is deleted
	PlaceID       int       `json:"place_id"`
	ActionID      int       `json:"action_id"`
	CreatedAt     time.Time `json:"created_at"`
	IsPleasure    bool      `json:"is_pleasure"`
	Periodicity   int       `json:"periodicity"` // days between occurrences
	Reward        string    `json:"reward"`
	LinkedHabitID *int      `json:"linked_habit_id"`
	ExecutionTime int       `json:"execution_time"` // seconds
	IsPublic      bool      `json:"is_public"`
}

const (
	DefaultPeriodicity   = 1
	DefaultExecutionTime = 60
)
