package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habitflow/internal/model"
	"habitflow/internal/rules"
	"habitflow/internal/scheduler"
)

// HabitStore is the persistence surface the habit service needs.
type HabitStore interface {
	Insert(ctx context.Context, h *model.Habit) error
	FindByID(ctx context.Context, id int) (*model.Habit, error)
	Update(ctx context.Context, h *model.Habit) error
	Delete(ctx context.Context, id int) error
}

type PlaceStore interface {
	FindByID(ctx context.Context, id int) (*model.Place, error)
}

type ActionStore interface {
	FindByID(ctx context.Context, id int) (*model.Action, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
}

// ScheduleSynchronizer reconciles the recurring registration after each
// habit mutation.
type ScheduleSynchronizer interface {
	SetSchedule(ctx context.Context, r scheduler.Reminder) error
	DeleteSchedule(ctx context.Context, habitID int) error
}

// HabitService runs the rule engine and keeps the reminder registration in
// lockstep with every create, update and delete. Persistence always happens
// before reconciliation.
type HabitService struct {
	habits  HabitStore
	places  PlaceStore
	actions ActionStore
	users   UserStore
	sync    ScheduleSynchronizer
	logger  *zap.Logger
}

func NewHabitService(
	habits HabitStore,
	places PlaceStore,
	actions ActionStore,
	users UserStore,
	sync ScheduleSynchronizer,
	logger *zap.Logger,
) *HabitService {
	return &HabitService{
		habits:  habits,
		places:  places,
		actions: actions,
		users:   users,
		sync:    sync,
		logger:  logger,
	}
}

// CreateHabitInput is the client-supplied field set. The owner always comes
// from the authenticated caller, never from the payload.
type CreateHabitInput struct {
	PlaceID       int    `json:"place_id"`
	ActionID      int    `json:"action_id"`
	IsPleasure    bool   `json:"is_pleasure"`
	Periodicity   int    `json:"periodicity"`
	Reward        string `json:"reward"`
	LinkedHabitID *int   `json:"linked_habit_id"`
	ExecutionTime int    `json:"execution_time"`
	IsPublic      bool   `json:"is_public"`
}

func (s *HabitService) Create(ctx context.Context, owner *model.User, in CreateHabitInput) (*model.Habit, error) {
	if in.Periodicity == 0 {
		in.Periodicity = model.DefaultPeriodicity
	}
	if in.ExecutionTime == 0 {
		in.ExecutionTime = model.DefaultExecutionTime
	}

	h := &model.Habit{
		OwnerID:       &owner.ID,
		PlaceID:       in.PlaceID,
		ActionID:      in.ActionID,
		IsPleasure:    in.IsPleasure,
		Periodicity:   in.Periodicity,
		Reward:        in.Reward,
		LinkedHabitID: in.LinkedHabitID,
		ExecutionTime: in.ExecutionTime,
		IsPublic:      in.IsPublic,
	}

	if err := s.validate(ctx, h); err != nil {
		return nil, err
	}

	if err := s.habits.Insert(ctx, h); err != nil {
		return nil, err
	}

	reminder, err := s.buildReminder(ctx, h)
	if err != nil {
		return nil, err
	}
	if err := s.sync.SetSchedule(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("Habit created",
		zap.Int("id", h.ID),
		zap.Int("owner_id", owner.ID),
		zap.Bool("is_pleasure", h.IsPleasure),
	)
	return h, nil
}

// Get returns a habit after the owner-or-staff check.
func (s *HabitService) Get(ctx context.Context, actor *model.User, id int) (*model.Habit, error) {
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Update applies a partial update. The registration is always replaced in
// full: a delete followed by a create, since the entry has no partial-update
// operation. The gap between the two is accepted for a reminder system.
func (s *HabitService) Update(ctx context.Context, actor *model.User, id int, patch rules.Patch) (*model.Habit, error) {
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, h); err != nil {
		return nil, err
	}

	existing := rules.Candidate{
		IsPleasure:    h.IsPleasure,
		Periodicity:   h.Periodicity,
		ExecutionTime: h.ExecutionTime,
		Reward:        h.Reward,
		LinkedHabitID: h.LinkedHabitID,
	}
	if err := rules.ValidatePatch(existing, patch); err != nil {
		return nil, err
	}

	applyPatch(h, patch)

	if err := s.validate(ctx, h); err != nil {
		return nil, err
	}

	if err := s.habits.Update(ctx, h); err != nil {
		return nil, err
	}

	if err := s.sync.DeleteSchedule(ctx, h.ID); err != nil {
		return nil, err
	}
	reminder, err := s.buildReminder(ctx, h)
	if err != nil {
		return nil, err
	}
	if err := s.sync.SetSchedule(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("Habit updated", zap.Int("id", h.ID))
	return h, nil
}

// Delete removes the registration first, then the habit row.
func (s *HabitService) Delete(ctx context.Context, actor *model.User, id int) error {
	h, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, h); err != nil {
		return err
	}

	if err := s.sync.DeleteSchedule(ctx, h.ID); err != nil {
		return err
	}
	if err := s.habits.Delete(ctx, h.ID); err != nil {
		return err
	}

	s.logger.Info("Habit deleted", zap.Int("id", id))
	return nil
}

func (s *HabitService) load(ctx context.Context, id int) (*model.Habit, error) {
	h, err := s.habits.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *HabitService) authorize(actor *model.User, h *model.Habit) error {
	if actor.IsStaff {
		return nil
	}
	if h.OwnerID != nil && *h.OwnerID == actor.ID {
		return nil
	}
	return ErrForbidden
}

// validate checks reference validity and runs the rule pipeline over the full
// field set. The linked habit's pleasure flag is resolved here so the rules
// stay pure.
func (s *HabitService) validate(ctx context.Context, h *model.Habit) error {
	if _, err := s.places.FindByID(ctx, h.PlaceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &rules.Violation{Msg: "place does not exist"}
		}
		return err
	}
	if _, err := s.actions.FindByID(ctx, h.ActionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &rules.Violation{Msg: "action does not exist"}
		}
		return err
	}

	candidate := rules.Candidate{
		IsPleasure:    h.IsPleasure,
		Periodicity:   h.Periodicity,
		ExecutionTime: h.ExecutionTime,
		Reward:        h.Reward,
		LinkedHabitID: h.LinkedHabitID,
	}

	if h.LinkedHabitID != nil {
		linked, err := s.habits.FindByID(ctx, *h.LinkedHabitID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &rules.Violation{Msg: "linked habit does not exist"}
			}
			return err
		}
		candidate.LinkedIsPleasure = linked.IsPleasure
	}

	return rules.Validate(candidate)
}

// buildReminder resolves the names and messaging identity the registration
// payload carries. A habit whose owner was deleted keeps an empty chat id.
func (s *HabitService) buildReminder(ctx context.Context, h *model.Habit) (scheduler.Reminder, error) {
	r := scheduler.Reminder{
		HabitID:     h.ID,
		IsPleasure:  h.IsPleasure,
		Periodicity: h.Periodicity,
		At:          h.CreatedAt,
	}
	if h.IsPleasure {
		return r, nil
	}

	place, err := s.places.FindByID(ctx, h.PlaceID)
	if err != nil {
		return r, err
	}
	action, err := s.actions.FindByID(ctx, h.ActionID)
	if err != nil {
		return r, err
	}
	r.Place = place.Name
	r.Action = action.Name

	if h.OwnerID != nil {
		owner, err := s.users.FindByID(ctx, *h.OwnerID)
		if err != nil {
			return r, err
		}
		r.ChatID = owner.TelegramChatID
	}
	return r, nil
}

func applyPatch(h *model.Habit, patch rules.Patch) {
	if patch.PlaceID != nil {
		h.PlaceID = *patch.PlaceID
	}
	if patch.ActionID != nil {
		h.ActionID = *patch.ActionID
	}
	if patch.IsPleasure != nil {
		h.IsPleasure = *patch.IsPleasure
	}
	if patch.Periodicity != nil {
		h.Periodicity = *patch.Periodicity
	}
	if patch.Reward != nil {
		h.Reward = *patch.Reward
	}
	if patch.LinkedHabitID != nil {
		h.LinkedHabitID = patch.LinkedHabitID
	}
	if patch.ExecutionTime != nil {
		h.ExecutionTime = *patch.ExecutionTime
	}
	if patch.IsPublic != nil {
		h.IsPublic = *patch.IsPublic
	}
}
