package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to lookup ledger database")
	return &PostgresDB{db: db}, nil
}

// * Migrate applies the ledger schema from the given source, e.g. file://migrations
func (p *PostgresDB) Migrate(source string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			fmt.Sprintf("Could not load migrations from %s", source),
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

// * InsertLookup is idempotent on the lookup id, so redelivered queue messages are harmless
func (p *PostgresDB) InsertLookup(ctx context.Context, lookup *models.Lookup) error {
	query := `
		INSERT INTO lookups (
			id, username, strategy, outcome, commit_sha, duration_ms, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT(id) DO NOTHING
	`

	var sha sql.NullString
	if lookup.CommitSHA != "" {
		sha = sql.NullString{String: lookup.CommitSHA, Valid: true}
	}

	_, err := p.db.ExecContext(ctx, query,
		lookup.ID, lookup.Username, lookup.Strategy, lookup.Outcome,
		sha, lookup.DurationMS, lookup.ResolvedAt,
	)
	if err != nil {
		return errors.New(
			"DB_LOOKUP_ERROR",
			"Failed to insert lookup",
			fmt.Sprintf("Could not record lookup '%s' for '%s'", lookup.ID, lookup.Username),
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error) {
	query := `
		SELECT id, username, strategy, outcome, commit_sha, duration_ms, resolved_at
		FROM lookups
		ORDER BY resolved_at DESC
		LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.New(
			"DB_LOOKUP_ERROR",
			"Failed to query lookups",
			"Could not fetch recent lookups",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	lookups := []models.Lookup{}
	for rows.Next() {
		var l models.Lookup
		var sha sql.NullString
		if err := rows.Scan(&l.ID, &l.Username, &l.Strategy, &l.Outcome, &sha, &l.DurationMS, &l.ResolvedAt); err != nil {
			return nil, errors.New(
				"DB_LOOKUP_ERROR",
				"Failed to scan lookup",
				"Error while scanning lookup row",
				err,
				errors.LevelError,
			)
		}
		l.CommitSHA = sha.String
		lookups = append(lookups, l)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_LOOKUP_ERROR",
			"Failed to process lookups",
			"Error while processing lookup rows",
			err,
			errors.LevelError,
		)
	}

	return lookups, nil
}

func (p *PostgresDB) TopUsernames(ctx context.Context, limit int) ([]models.UsernameLookupCount, error) {
	query := `
		SELECT username, COUNT(*) AS lookup_count
		FROM lookups
		GROUP BY username
		ORDER BY lookup_count DESC, username ASC
		LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.New(
			"DB_LOOKUP_ERROR",
			"Failed to query top usernames",
			"Could not fetch the most looked up usernames",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	results := []models.UsernameLookupCount{}
	for rows.Next() {
		var c models.UsernameLookupCount
		if err := rows.Scan(&c.Username, &c.LookupCount); err != nil {
			return nil, errors.New(
				"DB_LOOKUP_ERROR",
				"Failed to scan username lookup count",
				"Error while scanning username count row",
				err,
				errors.LevelError,
			)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_LOOKUP_ERROR",
			"Failed to process top usernames",
			"Error while processing username rows",
			err,
			errors.LevelError,
		)
	}

	return results, nil
}

func (p *PostgresDB) PurgeLookupsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM lookups WHERE resolved_at < $1`, cutoff)
	if err != nil {
		return 0, errors.New(
			"DB_PURGE_ERROR",
			"Failed to purge lookups",
			fmt.Sprintf("Could not delete lookups older than %s", cutoff.Format(time.RFC3339)),
			err,
			errors.LevelError,
		)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.New(
			"DB_PURGE_ERROR",
			"Failed to count purged lookups",
			"Driver did not report affected rows",
			err,
			errors.LevelWarning,
		)
	}

	return n, nil
}

// * Recorder writes lookups straight into the ledger, used when no broker is configured
type Recorder struct {
	store models.LookupStore
}

func NewRecorder(store models.LookupStore) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) RecordLookup(ctx context.Context, lookup models.Lookup) error {
	return r.store.InsertLookup(ctx, &lookup)
}
