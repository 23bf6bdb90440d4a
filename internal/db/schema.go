package db

import "context"

// EnsureSchema bootstraps the tables on startup. Safe to run repeatedly.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			refresh_token TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS tours (
			id TEXT PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ,
			budget_limit DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Planned',
			locations JSONB NOT NULL DEFAULT '[]',
			cover_image TEXT NOT NULL DEFAULT '',
			cover_key TEXT NOT NULL DEFAULT '',
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			is_draft BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS tours_owner_id_idx ON tours(owner_id)`,
		`
		CREATE TABLE IF NOT EXISTS memories (
			id TEXT PRIMARY KEY,
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			media_url TEXT NOT NULL,
			media_key TEXT NOT NULL DEFAULT '',
			caption TEXT NOT NULL DEFAULT '',
			location_name TEXT NOT NULL DEFAULT '',
			mood TEXT NOT NULL DEFAULT 'Happy',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS memories_tour_id_idx ON memories(tour_id)`,
		`
		CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			tour_id TEXT NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			category TEXT NOT NULL,
			receipt_image TEXT NOT NULL DEFAULT '',
			receipt_key TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS expenses_tour_id_idx ON expenses(tour_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
