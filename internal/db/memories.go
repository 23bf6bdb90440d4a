package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/wanderlog/backend/internal/model"
)

const memoryColumns = `id, tour_id, owner_id, type, media_url, media_key, caption, location_name, mood, created_at, updated_at`

func scanMemory(row pgx.Row) (*model.Memory, error) {
	var memory model.Memory
	err := row.Scan(
		&memory.ID,
		&memory.TourID,
		&memory.OwnerID,
		&memory.Type,
		&memory.MediaURL,
		&memory.MediaKey,
		&memory.Caption,
		&memory.LocationName,
		&memory.Mood,
		&memory.CreatedAt,
		&memory.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &memory, nil
}

func (db *Postgres) InsertMemory(ctx context.Context, memory *model.Memory) (*model.Memory, error) {
	query := `
		INSERT INTO memories (id, tour_id, owner_id, type, media_url, media_key, caption, location_name, mood, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + memoryColumns
	return scanMemory(db.Pool.QueryRow(ctx, query,
		memory.ID,
		memory.TourID,
		memory.OwnerID,
		memory.Type,
		memory.MediaURL,
		memory.MediaKey,
		memory.Caption,
		memory.LocationName,
		memory.Mood,
	))
}

func (db *Postgres) GetMemoryByID(ctx context.Context, memoryID string) (*model.Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE id = $1`
	return scanMemory(db.Pool.QueryRow(ctx, query, memoryID))
}

func (db *Postgres) ListMemoriesByTour(ctx context.Context, tourID string) ([]model.Memory, error) {
	query := `
		SELECT ` + memoryColumns + `
		FROM memories
		WHERE tour_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Memory
	for rows.Next() {
		memory, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *memory)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Memory{}
	}
	return list, nil
}

func (db *Postgres) UpdateMemory(ctx context.Context, memory *model.Memory) error {
	query := `
		UPDATE memories
		SET caption = $2, location_name = $3, mood = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, memory.ID, memory.Caption, memory.LocationName, memory.Mood)
	return err
}

func (db *Postgres) DeleteMemory(ctx context.Context, memoryID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM memories WHERE id = $1`, memoryID)
	return err
}
