package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitflow/internal/model"
)

type ActionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewActionRepository(db *pgxpool.Pool, logger *zap.Logger) *ActionRepository {
	return &ActionRepository{db: db, logger: logger}
}

func (r *ActionRepository) Insert(ctx context.Context, a *model.Action) error {
	query := `
        INSERT INTO actions (name, description)
        VALUES ($1, $2)
        RETURNING id
    `
	if err := r.db.QueryRow(ctx, query, a.Name, a.Description).Scan(&a.ID); err != nil {
		r.logger.Error("Failed to insert action", zap.String("name", a.Name), zap.Error(err))
		return err
	}

	r.logger.Info("Action inserted successfully", zap.Int("id", a.ID))
	return nil
}

func (r *ActionRepository) FindByID(ctx context.Context, id int) (*model.Action, error) {
	query := `SELECT id, name, description FROM actions WHERE id = $1`

	var a model.Action
	if err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Description); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActionRepository) List(ctx context.Context, limit, offset int) ([]model.Action, error) {
	query := `
        SELECT id, name, description
        FROM actions
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list actions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var actions []model.Action
	for rows.Next() {
		var a model.Action
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			r.logger.Error("Failed to scan action", zap.Error(err))
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *ActionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM actions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ActionRepository) Update(ctx context.Context, a *model.Action) error {
	query := `UPDATE actions SET name = $1, description = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, a.Name, a.Description, a.ID)
	if err != nil {
		r.logger.Error("Failed to update action", zap.Int("id", a.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Action updated", zap.Int("id", a.ID))
	return nil
}

// Delete removes an action unless habits still reference it.
func (r *ActionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM actions WHERE id = $1`, id)
	if err != nil {
		if isFKViolation(err) {
			r.logger.Warn("Refused to delete referenced action", zap.Int("id", id))
			return ErrReferenced
		}
		r.logger.Error("Failed to delete action", zap.Int("id", id), zap.Error(err))
		return err
	}

	r.logger.Info("Action deleted", zap.Int("id", id))
	return nil
}
