package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/wanderlog/backend/internal/model"
)

const tourColumns = `id, owner_id, title, description, start_date, end_date, budget_limit, status, locations, cover_image, cover_key, is_public, is_draft, created_at, updated_at`

func scanTour(row pgx.Row) (*model.Tour, error) {
	var tour model.Tour
	var locations []byte
	err := row.Scan(
		&tour.ID,
		&tour.OwnerID,
		&tour.Title,
		&tour.Description,
		&tour.StartDate,
		&tour.EndDate,
		&tour.BudgetLimit,
		&tour.Status,
		&locations,
		&tour.CoverImage,
		&tour.CoverKey,
		&tour.IsPublic,
		&tour.IsDraft,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(locations, &tour.Locations); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (db *Postgres) InsertTour(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	locations, err := json.Marshal(tour.Locations)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO tours (id, owner_id, title, description, start_date, end_date, budget_limit, status, locations, cover_image, cover_key, is_public, is_draft, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING ` + tourColumns
	return scanTour(db.Pool.QueryRow(ctx, query,
		tour.ID,
		tour.OwnerID,
		tour.Title,
		tour.Description,
		tour.StartDate,
		tour.EndDate,
		tour.BudgetLimit,
		tour.Status,
		locations,
		tour.CoverImage,
		tour.CoverKey,
		tour.IsPublic,
		tour.IsDraft,
	))
}

func (db *Postgres) GetTourByID(ctx context.Context, tourID string) (*model.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`
	return scanTour(db.Pool.QueryRow(ctx, query, tourID))
}

// ListToursByOwner pages the owner's tours sorted by start date, newest trip
// first. isDraft filters on draft state when non-nil.
func (db *Postgres) ListToursByOwner(ctx context.Context, ownerID int64, isDraft *bool, limit, offset int) ([]model.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE owner_id = $1 AND ($2::boolean IS NULL OR is_draft = $2)
		ORDER BY start_date DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := db.Pool.Query(ctx, query, ownerID, isDraft, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Tour
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *tour)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Tour{}
	}
	return list, nil
}

func (db *Postgres) CountToursByOwner(ctx context.Context, ownerID int64, isDraft *bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tours
		WHERE owner_id = $1 AND ($2::boolean IS NULL OR is_draft = $2)
	`
	var total int
	err := db.Pool.QueryRow(ctx, query, ownerID, isDraft).Scan(&total)
	return total, err
}

func (db *Postgres) UpdateTour(ctx context.Context, tour *model.Tour) error {
	locations, err := json.Marshal(tour.Locations)
	if err != nil {
		return err
	}

	query := `
		UPDATE tours
		SET title = $2, description = $3, start_date = $4, end_date = $5, budget_limit = $6,
			status = $7, locations = $8, cover_image = $9, cover_key = $10,
			is_public = $11, is_draft = $12, updated_at = NOW()
		WHERE id = $1
	`
	_, err = db.Pool.Exec(ctx, query,
		tour.ID,
		tour.Title,
		tour.Description,
		tour.StartDate,
		tour.EndDate,
		tour.BudgetLimit,
		tour.Status,
		locations,
		tour.CoverImage,
		tour.CoverKey,
		tour.IsPublic,
		tour.IsDraft,
	)
	return err
}

func (db *Postgres) DeleteTour(ctx context.Context, tourID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
	return err
}
