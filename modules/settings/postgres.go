package settings

import (
	"context"
	"embed"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/soar/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the user_settings table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, migrations, "migrations", cfg, log)
}

// DB is the part of *pgxpool.Pool the store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps settings as a jsonb document per user.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	selectSettings = `SELECT data FROM user_settings WHERE user_key = $1`
	upsertSettings = `INSERT INTO user_settings (user_key, data, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

func (s *PostgresStore) Get(ctx context.Context, key string) (Settings, error) {
	var data []byte
	if err := s.db.QueryRow(ctx, selectSettings, key).Scan(&data); err != nil {
		if pg.IsNotFoundError(err) {
			return Settings{}, ErrNotFound
		}
		return Settings{}, err
	}

	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}, err
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, v Settings) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, upsertSettings, key, data, v.UpdatedAt)
	return err
}
