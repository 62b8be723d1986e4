package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// DriverPostgres stores records in PostgreSQL through a pgx pool.
const DriverPostgres = "postgres"

const pgUniqueViolation = "23505"

// PostgresStore persists records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
	settings
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects to dsn, pings the server and runs migrations.
func OpenPostgres(ctx context.Context, dsn string, opts ...Option) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: %w: empty dsn", ErrValidation)
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := &PostgresStore{pool: pool, settings: buildSettings(opts)}
	s.log = s.log.Named("postgres_store")
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	s.refreshGauges(ctx)
	s.log.Info(ctx, "postgres store ready", logger.String("host", cfg.ConnConfig.Host))
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations, err := loadMigrations(DriverPostgres)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	for _, m := range migrations {
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			var applied bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`,
				m.version).Scan(&applied); err != nil {
				return err
			}
			if applied {
				return nil
			}
			if _, err := tx.Exec(ctx, m.sql); err != nil {
				return fmt.Errorf("apply %s: %w", m.name, err)
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Driver implements Store.
func (s *PostgresStore) Driver() string { return DriverPostgres }

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// AddIntern implements Store.
func (s *PostgresStore) AddIntern(ctx context.Context, in model.Intern) (model.Intern, error) {
	defer observe(DriverPostgres, "add_intern", time.Now())
	rec, err := prepareIntern(in, s.newID(), s.now())
	if err != nil {
		return model.Intern{}, err
	}
	row := toInternRow(rec)
	_, err = s.pool.Exec(ctx, `INSERT INTO interns (`+internColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.Name, rec.Email, rec.PhoneNumber, rec.University, rec.Department, rec.Skills,
		rec.StartDate, rec.EndDate, string(rec.Duration), row.status, row.mentorID, rec.SchemaVersion,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if isPgUnique(err) {
			return model.Intern{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, rec.Email)
		}
		return model.Intern{}, fmt.Errorf("postgres: insert intern: %w", err)
	}
	s.refreshGauges(ctx)
	return rec, nil
}

// GetInterns implements Store.
func (s *PostgresStore) GetInterns(ctx context.Context) ([]model.Intern, error) {
	defer observe(DriverPostgres, "get_interns", time.Now())
	rows, err := s.pool.Query(ctx, `SELECT `+internColumns+` FROM interns ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list interns: %w", err)
	}
	defer rows.Close()
	out := []model.Intern{}
	for rows.Next() {
		in, err := scanPgIntern(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// GetIntern implements Store.
func (s *PostgresStore) GetIntern(ctx context.Context, id string) (model.Intern, error) {
	defer observe(DriverPostgres, "get_intern", time.Now())
	return s.queryIntern(ctx, s.pool, `WHERE id = $1`, id)
}

// FindInternByEmail implements Store.
func (s *PostgresStore) FindInternByEmail(ctx context.Context, email string) (model.Intern, error) {
	defer observe(DriverPostgres, "find_intern_by_email", time.Now())
	return s.queryIntern(ctx, s.pool, `WHERE lower(email) = $1`, model.NormalizeEmail(email))
}

type pgQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStore) queryIntern(ctx context.Context, q pgQuerier, where string, arg string) (model.Intern, error) {
	in, err := scanPgIntern(q.QueryRow(ctx, `SELECT `+internColumns+` FROM interns `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Intern{}, fmt.Errorf("%w: intern %s", ErrNotFound, arg)
	}
	return in, err
}

// UpdateIntern implements Store. The row is locked for the duration of the
// transaction so concurrent assignments serialize.
func (s *PostgresStore) UpdateIntern(ctx context.Context, id string, u Update) (model.Intern, error) {
	defer observe(DriverPostgres, "update_intern", time.Now())
	var (
		result  model.Intern
		changed bool
	)
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		in, err := s.queryIntern(ctx, tx, `WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}
		next, ok, err := applyUpdate(in, u, s.now())
		if err != nil {
			return err
		}
		result, changed = next, ok
		if !ok {
			return nil
		}
		row := toInternRow(next)
		_, err = tx.Exec(ctx, `UPDATE interns SET skills = $1, status = $2, mentor_id = $3, updated_at = $4 WHERE id = $5`,
			next.Skills, row.status, row.mentorID, next.UpdatedAt, id)
		return err
	})
	if err != nil {
		return model.Intern{}, err
	}
	if changed {
		s.log.Debug(ctx, "intern updated", logger.String("intern_id", id), logger.String("update", u.name()))
		s.refreshGauges(ctx)
	}
	return result, nil
}

// AddMentor implements Store.
func (s *PostgresStore) AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	defer observe(DriverPostgres, "add_mentor", time.Now())
	rec, err := prepareMentor(m, s.newID(), s.now())
	if err != nil {
		return model.Mentor{}, err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO mentors (`+mentorColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Name, rec.Email, rec.Department, rec.Skills, rec.CreatedAt)
	if err != nil {
		if isPgUnique(err) {
			return model.Mentor{}, fmt.Errorf("%w: mentor %s / %s", ErrDuplicateEmail, rec.ID, rec.Email)
		}
		return model.Mentor{}, fmt.Errorf("postgres: insert mentor: %w", err)
	}
	s.refreshGauges(ctx)
	return rec, nil
}

// GetMentors implements Store.
func (s *PostgresStore) GetMentors(ctx context.Context) ([]model.Mentor, error) {
	defer observe(DriverPostgres, "get_mentors", time.Now())
	rows, err := s.pool.Query(ctx, `SELECT `+mentorColumns+` FROM mentors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list mentors: %w", err)
	}
	defer rows.Close()
	out := []model.Mentor{}
	for rows.Next() {
		m, err := scanPgMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMentor implements Store.
func (s *PostgresStore) GetMentor(ctx context.Context, id string) (model.Mentor, error) {
	defer observe(DriverPostgres, "get_mentor", time.Now())
	m, err := scanPgMentor(s.pool.QueryRow(ctx, `SELECT `+mentorColumns+` FROM mentors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Mentor{}, fmt.Errorf("%w: mentor %s", ErrNotFound, id)
	}
	return m, err
}

func (s *PostgresStore) refreshGauges(ctx context.Context) {
	interns, err := s.GetInterns(ctx)
	if err != nil {
		s.log.Warn(ctx, "gauge refresh failed", logger.Error(err))
		return
	}
	var mentors int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM mentors`).Scan(&mentors); err != nil {
		s.log.Warn(ctx, "gauge refresh failed", logger.Error(err))
		return
	}
	publishCounts(interns, mentors)
}

func scanPgIntern(r rowScanner) (model.Intern, error) {
	var (
		row      internRow
		duration string
	)
	err := r.Scan(&row.ID, &row.Name, &row.Email, &row.PhoneNumber, &row.University, &row.Department, &row.Skills,
		&row.StartDate, &row.EndDate, &duration, &row.status, &row.mentorID, &row.SchemaVersion, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return model.Intern{}, err
	}
	row.Duration = model.Duration(duration)
	row.CreatedAt = row.CreatedAt.UTC()
	row.UpdatedAt = row.UpdatedAt.UTC()
	return row.finish()
}

func scanPgMentor(r rowScanner) (model.Mentor, error) {
	var m model.Mentor
	if err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Department, &m.Skills, &m.CreatedAt); err != nil {
		return model.Mentor{}, err
	}
	if m.Skills == nil {
		m.Skills = []string{}
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func isPgUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
