package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open connects to dsn, retrying with exponential backoff until maxWait has
// elapsed.
func Open(ctx context.Context, dsn string, maxWait time.Duration) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("db ping failed")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func MustOpen(ctx context.Context, dsn string, maxWait time.Duration) *pgxpool.Pool {
	pool, err := Open(ctx, dsn, maxWait)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	return pool
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS courses (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	instructor   TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	level        TEXT NOT NULL DEFAULT 'beginner',
	price        BIGINT NOT NULL DEFAULT 0 CHECK (price >= 0),
	featured     BOOLEAN NOT NULL DEFAULT false,
	published_at TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the courses table if it does not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schemaSQL)
	return err
}
