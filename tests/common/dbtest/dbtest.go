//go:build integration

// Package dbtest boots a throwaway postgres for repository tests and seeds
// the rows the repositories cannot write themselves.
package dbtest

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"interpreter-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

//go:embed schema.sql
var schemaSQL string

type Postgres struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("booking_test"),
		postgres.WithUsername("booking"),
		postgres.WithPassword("booking"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("container connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Postgres{Container: container, Pool: pool}, nil
}

func (p *Postgres) Truncate(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `TRUNCATE assignments, jobs, user_languages, users, blacklist CASCADE`)
	return err
}

func (p *Postgres) Close(ctx context.Context) {
	p.Pool.Close()
	_ = p.Container.Terminate(ctx)
}

// SeedUser inserts an account row plus its languages. Accounts are owned by
// another service in production, so the repositories have no write path for
// them.
func (p *Postgres) SeedUser(ctx context.Context, u *user.User) error {
	profile := u.Profile()
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO users (id, kind, email, name, mobile, active,
		                   consumer_type, category, gender, level, town,
		                   no_push, no_emergency, no_nighttime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		u.ID(), string(u.Kind()), u.Email(), u.Name(), u.Mobile(), u.IsActive(),
		profile.ConsumerType, string(profile.Category), profile.Gender,
		string(profile.Level), profile.Town,
		profile.Prefs.NoPush, profile.Prefs.NoEmergency, profile.Prefs.NoNightTime,
	)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	for _, lang := range profile.Languages {
		if _, err := p.Pool.Exec(ctx,
			`INSERT INTO user_languages (user_id, language) VALUES ($1, $2)`,
			u.ID(), lang,
		); err != nil {
			return fmt.Errorf("seed user language: %w", err)
		}
	}
	return nil
}

func (p *Postgres) SeedBlacklist(ctx context.Context, customerID, translatorID uuid.UUID) error {
	_, err := p.Pool.Exec(ctx,
		`INSERT INTO blacklist (customer_id, translator_id) VALUES ($1, $2)`,
		customerID, translatorID,
	)
	return err
}
