package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitflow/internal/scheduler"
)

// ScheduleRepository is the Postgres registration store: interval_schedules
// holds the deduplicated (every, period) descriptors, periodic_tasks the
// named entries. It implements scheduler.Store and scheduler.DueLister.
type ScheduleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewScheduleRepository(db *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger}
}

func (r *ScheduleRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM periodic_tasks WHERE name = $1)`
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create resolves or creates the interval descriptor, then inserts the named
// task entry. The unique constraint on periodic_tasks.name turns a repeated
// Create into a duplicate-key error, surfaced to the caller untranslated.
func (r *ScheduleRepository) Create(ctx context.Context, e scheduler.Entry) error {
	intervalID, err := r.getOrCreateInterval(ctx, e.Every, e.Period)
	if err != nil {
		return fmt.Errorf("resolve interval: %w", err)
	}

	kwargs, err := json.Marshal(e.Kwargs)
	if err != nil {
		return fmt.Errorf("marshal kwargs: %w", err)
	}

	query := `
        INSERT INTO periodic_tasks (name, interval_id, task, kwargs)
        VALUES ($1, $2, $3, $4)
    `
	if _, err := r.db.Exec(ctx, query, e.Name, intervalID, e.Task, kwargs); err != nil {
		r.logger.Error("Failed to insert periodic task",
			zap.String("name", e.Name),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Periodic task inserted",
		zap.String("name", e.Name),
		zap.Int("every", e.Every),
		zap.String("period", e.Period),
	)
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM periodic_tasks WHERE name = $1`, name)
	if err != nil {
		r.logger.Error("Failed to delete periodic task", zap.String("name", name), zap.Error(err))
		return err
	}

	r.logger.Info("Periodic task deleted", zap.String("name", name))
	return nil
}

// getOrCreateInterval is a lookup-then-create; it is not atomic, matching the
// registration store contract. The unique (every, period) pair plus
// ON CONFLICT DO NOTHING keeps racing callers from inserting duplicates.
func (r *ScheduleRepository) getOrCreateInterval(ctx context.Context, every int, period string) (int, error) {
	var id int
	selectQuery := `SELECT id FROM interval_schedules WHERE every = $1 AND period = $2`
	err := r.db.QueryRow(ctx, selectQuery, every, period).Scan(&id)
	if err == nil {
		return id, nil
	}

	insertQuery := `
        INSERT INTO interval_schedules (every, period)
        VALUES ($1, $2)
        ON CONFLICT (every, period) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, insertQuery, every, period); err != nil {
		return 0, err
	}

	if err := r.db.QueryRow(ctx, selectQuery, every, period).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// DueEntries returns registrations whose interval has elapsed since their
// last run. Entries that never ran are due immediately.
func (r *ScheduleRepository) DueEntries(ctx context.Context, now time.Time) ([]scheduler.DueEntry, error) {
	query := `
        SELECT t.name, t.kwargs
        FROM periodic_tasks t
        JOIN interval_schedules s ON s.id = t.interval_id
        WHERE t.last_run_at IS NULL
           OR t.last_run_at + s.every * (CASE s.period
                WHEN 'days' THEN INTERVAL '1 day'
                ELSE INTERVAL '1 minute'
           END) <= $1
        ORDER BY t.id
    `
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.logger.Error("Failed to query due tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []scheduler.DueEntry
	for rows.Next() {
		var (
			name   string
			kwargs []byte
		)
		if err := rows.Scan(&name, &kwargs); err != nil {
			r.logger.Error("Failed to scan due task", zap.Error(err))
			return nil, err
		}

		entry := scheduler.DueEntry{Name: name}
		if err := json.Unmarshal(kwargs, &entry.Kwargs); err != nil {
			r.logger.Error("Failed to decode task kwargs",
				zap.String("name", name),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ScheduleRepository) MarkRun(ctx context.Context, name string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE periodic_tasks SET last_run_at = $1 WHERE name = $2`, at, name)
	return err
}
