package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

// GradebookDriver names a supported database driver.
type GradebookDriver string

const (
	// DriverSQLite stores the gradebook in a local SQLite file.
	DriverSQLite GradebookDriver = "sqlite"
	// DriverPostgres stores the gradebook in PostgreSQL.
	DriverPostgres GradebookDriver = "postgres"

	defaultSQLiteDSN = "file:.nbgrade.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
)

// ErrNoRuns is returned when the gradebook holds no run for a course.
var ErrNoRuns = errors.New("no grading runs recorded")

// GradebookStore persists grading runs.
type GradebookStore interface {
	// SaveRun stores a run and its rows. An empty run ID is assigned.
	SaveRun(ctx context.Context, run m.GradebookRun) (string, error)
	// LatestRun returns the most recent run of course with its rows.
	LatestRun(ctx context.Context, course string) (m.GradebookRun, error)
	Close() error
}

// GradebookOpener opens a GradebookStore for a driver and DSN.
type GradebookOpener interface {
	Open(ctx context.Context, driver GradebookDriver, dsn string) (GradebookStore, error)
}

// SQLGradebookOpener opens SQL-backed gradebooks.
type SQLGradebookOpener struct{}

// NewSQLGradebookOpener constructs a SQLGradebookOpener.
func NewSQLGradebookOpener() *SQLGradebookOpener {
	return &SQLGradebookOpener{}
}

// Open implements GradebookOpener.
func (o *SQLGradebookOpener) Open(ctx context.Context, driver GradebookDriver, dsn string) (GradebookStore, error) {
	return OpenSQLGradebook(ctx, driver, dsn)
}

// SQLGradebook is a GradebookStore on database/sql.
type SQLGradebook struct {
	db *sql.DB
}

// OpenSQLGradebook opens the database and ensures the schema exists.
func OpenSQLGradebook(ctx context.Context, driver GradebookDriver, dsn string) (*SQLGradebook, error) {
	var driverName string

	switch driver {
	case DriverSQLite, "":
		driverName = "sqlite"
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
	case DriverPostgres:
		driverName = "pgx"
		if dsn == "" {
			return nil, errors.New("postgres gradebook requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported gradebook driver: %s", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open gradebook: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping gradebook: %w", err)
	}

	if _, err := db.ExecContext(ctx, gradebookSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create gradebook schema: %w", err)
	}

	slog.Debug("Opened gradebook", "driver", driverName)

	return &SQLGradebook{db: db}, nil
}

// SaveRun implements GradebookStore.
func (g *SQLGradebook) SaveRun(ctx context.Context, run m.GradebookRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO grading_runs (id, course, started_at) VALUES ($1, $2, $3)`,
		run.ID, run.Course, run.StartedAt.UnixMilli()); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, row := range run.Rows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO student_grades (run_id, student_id, name, activity, notebook, score, expected, missing)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			run.ID, row.StudentID, row.Name, row.Activity, row.Notebook, row.Score, row.Expected, row.Missing); err != nil {
			return "", fmt.Errorf("insert grade for %s: %w", row.StudentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return run.ID, nil
}

// LatestRun implements GradebookStore.
func (g *SQLGradebook) LatestRun(ctx context.Context, course string) (m.GradebookRun, error) {
	var (
		run       m.GradebookRun
		startedAt int64
	)

	err := g.db.QueryRowContext(ctx, `
		SELECT id, course, started_at FROM grading_runs
		WHERE course = $1
		ORDER BY started_at DESC LIMIT 1`, course).
		Scan(&run.ID, &run.Course, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return m.GradebookRun{}, fmt.Errorf("%s: %w", course, ErrNoRuns)
	}

	if err != nil {
		return m.GradebookRun{}, fmt.Errorf("query latest run: %w", err)
	}

	run.StartedAt = time.UnixMilli(startedAt)

	rows, err := g.db.QueryContext(ctx, `
		SELECT student_id, name, activity, notebook, score, expected, missing
		FROM student_grades WHERE run_id = $1
		ORDER BY student_id, activity`, run.ID)
	if err != nil {
		return m.GradebookRun{}, fmt.Errorf("query grades: %w", err)
	}

	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var row m.GradebookRow
		if err := rows.Scan(&row.StudentID, &row.Name, &row.Activity, &row.Notebook, &row.Score, &row.Expected, &row.Missing); err != nil {
			return m.GradebookRun{}, fmt.Errorf("scan grade: %w", err)
		}

		run.Rows = append(run.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return m.GradebookRun{}, fmt.Errorf("iterate grades: %w", err)
	}

	return run, nil
}

// Close implements GradebookStore.
func (g *SQLGradebook) Close() error {
	return g.db.Close()
}

const gradebookSchema = `
CREATE TABLE IF NOT EXISTS grading_runs (
  id TEXT PRIMARY KEY,
  course TEXT NOT NULL,
  started_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS student_grades (
  run_id TEXT NOT NULL REFERENCES grading_runs(id) ON DELETE CASCADE,
  student_id TEXT NOT NULL,
  name TEXT NOT NULL,
  activity TEXT NOT NULL,
  notebook TEXT NOT NULL DEFAULT '',
  score INTEGER NOT NULL,
  expected INTEGER NOT NULL,
  missing BOOLEAN NOT NULL DEFAULT FALSE,
  PRIMARY KEY (run_id, student_id, activity)
);
`
