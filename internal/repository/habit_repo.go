package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitflow/internal/model"
	"habitflow/pkg/metrics"
)

const habitColumns = `id, owner_id, place_id, action_id, created_at, is_pleasure,
        periodicity, reward, linked_habit_id, execution_time, is_public`

type HabitRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHabitRepository(db *pgxpool.Pool, logger *zap.Logger) *HabitRepository {
	return &HabitRepository{db: db, logger: logger}
}

func (r *HabitRepository) Insert(ctx context.Context, h *model.Habit) error {
	start := time.Now()
	query := `
        INSERT INTO habits (owner_id, place_id, action_id, is_pleasure, periodicity,
                            reward, linked_habit_id, execution_time, is_public)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		h.OwnerID,
		h.PlaceID,
		h.ActionID,
		h.IsPleasure,
		h.Periodicity,
		h.Reward,
		h.LinkedHabitID,
		h.ExecutionTime,
		h.IsPublic,
	).Scan(&h.ID, &h.CreatedAt)
	metrics.RecordDBQueryDuration("insert", "habits", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to insert habit", zap.Error(err))
		return err
	}

	r.logger.Info("Habit inserted successfully",
		zap.Int("id", h.ID),
		zap.Bool("is_pleasure", h.IsPleasure),
	)
	return nil
}

func (r *HabitRepository) FindByID(ctx context.Context, id int) (*model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	var h model.Habit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.OwnerID,
		&h.PlaceID,
		&h.ActionID,
		&h.CreatedAt,
		&h.IsPleasure,
		&h.Periodicity,
		&h.Reward,
		&h.LinkedHabitID,
		&h.ExecutionTime,
		&h.IsPublic,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HabitRepository) Update(ctx context.Context, h *model.Habit) error {
	start := time.Now()
	query := `
        UPDATE habits
        SET place_id = $1, action_id = $2, is_pleasure = $3, periodicity = $4,
            reward = $5, linked_habit_id = $6, execution_time = $7, is_public = $8
        WHERE id = $9
    `
	tag, err := r.db.Exec(ctx, query,
		h.PlaceID,
		h.ActionID,
		h.IsPleasure,
		h.Periodicity,
		h.Reward,
		h.LinkedHabitID,
		h.ExecutionTime,
		h.IsPublic,
		h.ID,
	)
	metrics.RecordDBQueryDuration("update", "habits", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to update habit", zap.Int("id", h.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Habit updated", zap.Int("id", h.ID))
	return nil
}

func (r *HabitRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete habit", zap.Int("id", id), zap.Error(err))
		return err
	}

	r.logger.Info("Habit deleted", zap.Int("id", id))
	return nil
}

func (r *HabitRepository) ListByOwner(ctx context.Context, ownerID, limit, offset int) ([]model.Habit, error) {
	query := `
        SELECT ` + habitColumns + `
        FROM habits
        WHERE owner_id = $1
        ORDER BY id
        LIMIT $2 OFFSET $3
    `
	return r.list(ctx, query, ownerID, limit, offset)
}

func (r *HabitRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habits WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

func (r *HabitRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.Habit, error) {
	query := `
        SELECT ` + habitColumns + `
        FROM habits
        WHERE is_public = TRUE
        ORDER BY id
        LIMIT $1 OFFSET $2
    `
	return r.list(ctx, query, limit, offset)
}

func (r *HabitRepository) CountPublic(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habits WHERE is_public = TRUE`).Scan(&count)
	return count, err
}

func (r *HabitRepository) list(ctx context.Context, query string, args ...any) ([]model.Habit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list habits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		if err := rows.Scan(
			&h.ID,
			&h.OwnerID,
			&h.PlaceID,
			&h.ActionID,
			&h.CreatedAt,
			&h.IsPleasure,
			&h.Periodicity,
			&h.Reward,
			&h.LinkedHabitID,
			&h.ExecutionTime,
			&h.IsPublic,
		); err != nil {
			r.logger.Error("Failed to scan habit", zap.Error(err))
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}
