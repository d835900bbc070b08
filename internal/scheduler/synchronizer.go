package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"habitflow/pkg/metrics"
)

// Reminder is the resolved view of a habit the synchronizer needs: the owner's
// messaging identity and the place/action names, looked up by the caller
// after the habit row is persisted.
type Reminder struct {
	HabitID     int
	IsPleasure  bool
	Periodicity int
	ChatID      string
	Action      string
	Place       string
	At          time.Time // habit creation timestamp; only its time-of-day is used
}

// Synchronizer maintains the 1:1 mapping from habit id to recurring
// registration. Pleasure habits never get one.
type Synchronizer struct {
	store  Store
	loc    *time.Location
	logger *zap.Logger
}

func NewSynchronizer(store Store, loc *time.Location, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		store:  store,
		loc:    loc,
		logger: logger,
	}
}

// SetSchedule registers the recurring reminder for a habit. It is a no-op for
// pleasure habits. Calling it twice for the same habit without an intervening
// DeleteSchedule surfaces the store's duplicate-key error, which is why the
// update flow always deletes first.
func (s *Synchronizer) SetSchedule(ctx context.Context, r Reminder) error {
	if r.IsPleasure {
		s.logger.Debug("Skipping schedule for pleasure habit", zap.Int("habit_id", r.HabitID))
		metrics.IncrementScheduleSync("skip")
		return nil
	}

	entry := Entry{
		Name: strconv.Itoa(r.HabitID),
		// TODO: periodicity is stored in days but the registration interval
		// keeps the legacy minutes unit with no conversion; confirm the
		// intended unit before changing either side.
		Every:  r.Periodicity,
		Period: PeriodMinutes,
		Task:   TaskSendReminder,
		Kwargs: Kwargs{
			ChatID: r.ChatID,
			Action: r.Action,
			Time:   r.At.In(s.loc).Format("15:04"),
			Place:  r.Place,
		},
	}

	if err := s.store.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to create schedule registration",
			zap.Int("habit_id", r.HabitID),
			zap.Error(err),
		)
		return fmt.Errorf("create registration for habit %d: %w", r.HabitID, err)
	}

	s.logger.Info("Schedule registration created",
		zap.Int("habit_id", r.HabitID),
		zap.Int("every", entry.Every),
		zap.String("period", entry.Period),
	)
	metrics.IncrementScheduleSync("set")
	return nil
}

// DeleteSchedule removes the registration for a habit id. A missing
// registration (pleasure habits, or repeated deletes) is not an error.
func (s *Synchronizer) DeleteSchedule(ctx context.Context, habitID int) error {
	name := strconv.Itoa(habitID)

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check registration for habit %d: %w", habitID, err)
	}
	if !exists {
		s.logger.Debug("No schedule registration to delete", zap.Int("habit_id", habitID))
		return nil
	}

	if err := s.store.Delete(ctx, name); err != nil {
		s.logger.Error("Failed to delete schedule registration",
			zap.Int("habit_id", habitID),
			zap.Error(err),
		)
		return fmt.Errorf("delete registration for habit %d: %w", habitID, err)
	}

	s.logger.Info("Schedule registration deleted", zap.Int("habit_id", habitID))
	metrics.IncrementScheduleSync("delete")
	return nil
}
