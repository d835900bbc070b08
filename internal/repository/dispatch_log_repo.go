package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DispatchLogRepository records the outcome of every reminder dispatch
// attempt. The log is append-only observability data; dispatch never retries
// off it.
type DispatchLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDispatchLogRepository(db *pgxpool.Pool, logger *zap.Logger) *DispatchLogRepository {
	return &DispatchLogRepository{db: db, logger: logger}
}

func (r *DispatchLogRepository) Insert(ctx context.Context, taskName, chatID string, statusCode int, dispatchErr string) error {
	query := `
        INSERT INTO dispatch_log (task_name, chat_id, status_code, error, sent_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, taskName, chatID, statusCode, dispatchErr, time.Now())
	if err != nil {
		r.logger.Error("Failed to insert dispatch log",
			zap.String("task_name", taskName),
			zap.Error(err),
		)
		return err
	}
	return nil
}
