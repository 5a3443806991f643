package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"TransientLoader/internal/domain"
	"TransientLoader/internal/ports"
)

const transientsTable = "transients"

// psql renders statements with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists transient records into the transients table.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.TransientRepository = (*PostgresRepository)(nil)

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepository wraps an existing sql.DB.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Status reports whether the transient id is absent, partially processed,
// or complete. Any store failure is returned as-is; callers abort the run
// rather than risk a duplicate insert.
func (r *PostgresRepository) Status(ctx context.Context, id string) (domain.Status, error) {
	query, args, err := statusQuery(id)
	if err != nil {
		return domain.StatusAbsent, fmt.Errorf("build status query: %w", err)
	}

	var (
		gotID string
		tr    sql.NullBool
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&gotID, &tr)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatusAbsent, nil
	}
	if err != nil {
		return domain.StatusAbsent, fmt.Errorf("query transient %s: %w", id, err)
	}

	if tr.Valid && tr.Bool {
		return domain.StatusComplete, nil
	}
	return domain.StatusPartial, nil
}

// Insert writes a brand-new row with every column of the record.
func (r *PostgresRepository) Insert(ctx context.Context, rec domain.TransientRecord) error {
	query, args, err := insertQuery(rec)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transient %s: %w", rec.ID, err)
	}
	return nil
}

// Update overwrites only the path and artifact flag columns of an existing
// row; metadata written by the first pass stays untouched.
func (r *PostgresRepository) Update(ctx context.Context, rec domain.TransientRecord) error {
	query, args, err := updateQuery(rec)
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update transient %s: %w", rec.ID, err)
	}
	return nil
}

func statusQuery(id string) (string, []any, error) {
	return psql.Select("id", "tr").
		From(transientsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// insertQuery writes all 31 columns in table order; the table was created
// with the columns in exactly this order, so the statement names none.
func insertQuery(rec domain.TransientRecord) (string, []any, error) {
	f := rec.Flags
	return psql.Insert(transientsTable).
		Values(
			rec.ID, rec.Datetime, rec.Coord2000, rec.Mag, rec.Band, rec.Limit,
			rec.Flux, rec.SN, rec.XC, rec.YC, rec.FWHM, rec.A, rec.B, rec.PA,
			rec.N, rec.C, rec.Gal, rec.DRa, rec.DDec, rec.DMag, rec.User,
			rec.ObsID, rec.Path,
			f.TR, f.DSS, f.Sub, f.SDSS, f.SecondLap, f.MaxLimit, f.Log, f.Early,
		).
		ToSql()
}

func updateQuery(rec domain.TransientRecord) (string, []any, error) {
	f := rec.Flags
	return psql.Update(transientsTable).
		Set("path", rec.Path).
		Set("tr", f.TR).
		Set("dss", f.DSS).
		Set("sub", f.Sub).
		Set("sdss", f.SDSS).
		Set("second_lap", f.SecondLap).
		Set("max_limit", f.MaxLimit).
		Set("log", f.Log).
		Set("early", f.Early).
		Where(sq.Eq{"id": rec.ID}).
		ToSql()
}
