package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step, so a half-applied schema is migrated again.
const sentinelTable = "public.note_ratings"

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                TEXT        PRIMARY KEY,
  email             TEXT        NOT NULL UNIQUE,
  password          TEXT        NOT NULL DEFAULT '',
  first_name        TEXT        NOT NULL DEFAULT '',
  last_name         TEXT        NOT NULL DEFAULT '',
  profile_image_url TEXT,
  university        TEXT,
  is_verified       BOOLEAN     NOT NULL DEFAULT false,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_notes",
		SQL: `CREATE TABLE IF NOT EXISTS notes (
  id           TEXT        PRIMARY KEY,
  title        TEXT        NOT NULL,
  description  TEXT,
  subject      TEXT        NOT NULL,
  course       TEXT,
  university   TEXT,
  tags         JSONB       NOT NULL DEFAULT '[]'::jsonb,
  file_name    TEXT        NOT NULL,
  file_path    TEXT        NOT NULL,
  file_type    TEXT        NOT NULL,
  file_size    BIGINT      NOT NULL CHECK (file_size > 0),
  uploader_id  TEXT        NOT NULL,
  is_public    BOOLEAN     NOT NULL DEFAULT true,
  downloads    INTEGER     NOT NULL DEFAULT 0,
  likes        INTEGER     NOT NULL DEFAULT 0,
  rating       SMALLINT    NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  rating_count INTEGER     NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notes_uploader_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_uploader_id ON notes (uploader_id);`,
	},
	{
		Name: "create_index_notes_subject",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_subject ON notes (subject);`,
	},
	{
		Name: "create_index_notes_public_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_public_created_at ON notes (is_public, created_at DESC, id DESC);`,
	},
	{
		Name: "create_table_note_likes",
		SQL: `CREATE TABLE IF NOT EXISTS note_likes (
  note_id    TEXT        NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
  user_id    TEXT        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (note_id, user_id)
);`,
	},
	{
		Name: "create_table_note_ratings",
		SQL: `CREATE TABLE IF NOT EXISTS note_ratings (
  note_id    TEXT        NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
  user_id    TEXT        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  rating     SMALLINT    NOT NULL CHECK (rating BETWEEN 1 AND 5),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (note_id, user_id)
);`,
	},
}

// Execer is the subset of *sql.DB the migrator needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureMigrated checks whether the schema exists and applies every step if it doesn't.
func EnsureMigrated(ctx context.Context, db Execer, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass($1) IS NOT NULL"
	if err := db.QueryRowContext(ctx, query, sentinelTable).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	return apply(ctx, db, log, start)
}

// Apply runs every step unconditionally. Steps are idempotent.
func Apply(ctx context.Context, db Execer, log *zap.Logger, dbHost string) error {
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	return apply(ctx, db, log, time.Now())
}

func apply(ctx context.Context, db Execer, log *zap.Logger, start time.Time) error {
	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
