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

type PlaceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPlaceRepository(db *pgxpool.Pool, logger *zap.Logger) *PlaceRepository {
	return &PlaceRepository{db: db, logger: logger}
}

func (r *PlaceRepository) Insert(ctx context.Context, p *model.Place) error {
	start := time.Now()
	query := `
        INSERT INTO places (name, description)
        VALUES ($1, $2)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, p.Name, p.Description).Scan(&p.ID)
	metrics.RecordDBQueryDuration("insert", "places", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to insert place", zap.String("name", p.Name), zap.Error(err))
		return err
	}

	r.logger.Info("Place inserted successfully", zap.Int("id", p.ID))
	return nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id int) (*model.Place, error) {
	query := `SELECT id, name, description FROM places WHERE id = $1`

	var p model.Place
	if err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaceRepository) List(ctx context.Context, limit, offset int) ([]model.Place, error) {
	query := `
        SELECT id, name, description
        FROM places
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list places", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var places []model.Place
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			r.logger.Error("Failed to scan place", zap.Error(err))
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *PlaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PlaceRepository) Update(ctx context.Context, p *model.Place) error {
	query := `UPDATE places SET name = $1, description = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, p.Name, p.Description, p.ID)
	if err != nil {
		r.logger.Error("Failed to update place", zap.Int("id", p.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Place updated", zap.Int("id", p.ID))
	return nil
}

// Delete removes a place. Places still referenced by habits are protected:
// the habits FK is RESTRICT and the violation maps to ErrReferenced.
func (r *PlaceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		if isFKViolation(err) {
			r.logger.Warn("Refused to delete referenced place", zap.Int("id", id))
			return ErrReferenced
		}
		r.logger.Error("Failed to delete place", zap.Int("id", id), zap.Error(err))
		return err
	}

	r.logger.Info("Place deleted", zap.Int("id", id))
	return nil
}
