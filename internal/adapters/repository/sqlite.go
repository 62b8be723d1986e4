package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// DriverSQLite is the default durable store.
const DriverSQLite = "sqlite"

// SQLiteStore persists records in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
	settings
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and applies pending
// migrations tracked in PRAGMA user_version.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: %w: empty path", ErrValidation)
	}
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	s := &SQLiteStore{db: db, settings: buildSettings(opts)}
	s.log = s.log.Named("sqlite_store")
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	s.refreshGauges(ctx)
	s.log.Info(ctx, "sqlite store ready", logger.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	migrations, err := loadMigrations(DriverSQLite)
	if err != nil {
		return err
	}
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bump user_version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		s.log.Info(ctx, "migration applied", logger.String("migration", m.name))
	}
	return nil
}

// Driver implements Store.
func (s *SQLiteStore) Driver() string { return DriverSQLite }

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// AddIntern implements Store.
func (s *SQLiteStore) AddIntern(ctx context.Context, in model.Intern) (model.Intern, error) {
	defer observe(DriverSQLite, "add_intern", time.Now())
	rec, err := prepareIntern(in, s.newID(), s.now())
	if err != nil {
		return model.Intern{}, err
	}
	row := toInternRow(rec)
	skills, err := json.Marshal(rec.Skills)
	if err != nil {
		return model.Intern{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO interns (`+internColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, rec.PhoneNumber, rec.University, rec.Department, string(skills),
		rec.StartDate, rec.EndDate, string(rec.Duration), row.status, row.mentorID, rec.SchemaVersion,
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt))
	if err != nil {
		if isSQLiteUnique(err) {
			return model.Intern{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, rec.Email)
		}
		return model.Intern{}, fmt.Errorf("sqlite: insert intern: %w", err)
	}
	s.refreshGauges(ctx)
	return rec, nil
}

// GetInterns implements Store.
func (s *SQLiteStore) GetInterns(ctx context.Context) ([]model.Intern, error) {
	defer observe(DriverSQLite, "get_interns", time.Now())
	rows, err := s.db.QueryContext(ctx, `SELECT `+internColumns+` FROM interns ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list interns: %w", err)
	}
	defer rows.Close()
	out := []model.Intern{}
	for rows.Next() {
		in, err := scanSQLiteIntern(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// GetIntern implements Store.
func (s *SQLiteStore) GetIntern(ctx context.Context, id string) (model.Intern, error) {
	defer observe(DriverSQLite, "get_intern", time.Now())
	return s.queryIntern(ctx, s.db, `WHERE id = ?`, id)
}

// FindInternByEmail implements Store.
func (s *SQLiteStore) FindInternByEmail(ctx context.Context, email string) (model.Intern, error) {
	defer observe(DriverSQLite, "find_intern_by_email", time.Now())
	return s.queryIntern(ctx, s.db, `WHERE lower(email) = ?`, model.NormalizeEmail(email))
}

type sqlQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) queryIntern(ctx context.Context, q sqlQuerier, where string, arg string) (model.Intern, error) {
	in, err := scanSQLiteIntern(q.QueryRowContext(ctx, `SELECT `+internColumns+` FROM interns `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Intern{}, fmt.Errorf("%w: intern %s", ErrNotFound, arg)
	}
	return in, err
}

// UpdateIntern implements Store.
func (s *SQLiteStore) UpdateIntern(ctx context.Context, id string, u Update) (model.Intern, error) {
	defer observe(DriverSQLite, "update_intern", time.Now())
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Intern{}, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	in, err := s.queryIntern(ctx, tx, `WHERE id = ?`, id)
	if err != nil {
		return model.Intern{}, err
	}
	next, changed, err := applyUpdate(in, u, s.now())
	if err != nil {
		return model.Intern{}, err
	}
	if !changed {
		return in, nil
	}
	row := toInternRow(next)
	skills, err := json.Marshal(next.Skills)
	if err != nil {
		return model.Intern{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE interns SET skills = ?, status = ?, mentor_id = ?, updated_at = ? WHERE id = ?`,
		string(skills), row.status, row.mentorID, formatTime(next.UpdatedAt), id); err != nil {
		return model.Intern{}, fmt.Errorf("sqlite: update intern: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Intern{}, fmt.Errorf("sqlite: commit: %w", err)
	}
	s.log.Debug(ctx, "intern updated", logger.String("intern_id", id), logger.String("update", u.name()))
	s.refreshGauges(ctx)
	return next, nil
}

// AddMentor implements Store.
func (s *SQLiteStore) AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	defer observe(DriverSQLite, "add_mentor", time.Now())
	rec, err := prepareMentor(m, s.newID(), s.now())
	if err != nil {
		return model.Mentor{}, err
	}
	skills, err := json.Marshal(rec.Skills)
	if err != nil {
		return model.Mentor{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO mentors (`+mentorColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, rec.Department, string(skills), formatTime(rec.CreatedAt))
	if err != nil {
		if isSQLiteUnique(err) {
			return model.Mentor{}, fmt.Errorf("%w: mentor %s / %s", ErrDuplicateEmail, rec.ID, rec.Email)
		}
		return model.Mentor{}, fmt.Errorf("sqlite: insert mentor: %w", err)
	}
	s.refreshGauges(ctx)
	return rec, nil
}

// GetMentors implements Store.
func (s *SQLiteStore) GetMentors(ctx context.Context) ([]model.Mentor, error) {
	defer observe(DriverSQLite, "get_mentors", time.Now())
	rows, err := s.db.QueryContext(ctx, `SELECT `+mentorColumns+` FROM mentors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list mentors: %w", err)
	}
	defer rows.Close()
	out := []model.Mentor{}
	for rows.Next() {
		m, err := scanSQLiteMentor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMentor implements Store.
func (s *SQLiteStore) GetMentor(ctx context.Context, id string) (model.Mentor, error) {
	defer observe(DriverSQLite, "get_mentor", time.Now())
	m, err := scanSQLiteMentor(s.db.QueryRowContext(ctx, `SELECT `+mentorColumns+` FROM mentors WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Mentor{}, fmt.Errorf("%w: mentor %s", ErrNotFound, id)
	}
	return m, err
}

func (s *SQLiteStore) refreshGauges(ctx context.Context) {
	interns, err := s.GetInterns(ctx)
	if err != nil {
		s.log.Warn(ctx, "gauge refresh failed", logger.Error(err))
		return
	}
	var mentors int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM mentors`).Scan(&mentors); err != nil {
		s.log.Warn(ctx, "gauge refresh failed", logger.Error(err))
		return
	}
	publishCounts(interns, mentors)
}

func scanSQLiteIntern(r rowScanner) (model.Intern, error) {
	var (
		row                  internRow
		skills, duration     string
		createdAt, updatedAt string
	)
	err := r.Scan(&row.ID, &row.Name, &row.Email, &row.PhoneNumber, &row.University, &row.Department, &skills,
		&row.StartDate, &row.EndDate, &duration, &row.status, &row.mentorID, &row.SchemaVersion, &createdAt, &updatedAt)
	if err != nil {
		return model.Intern{}, err
	}
	if err := json.Unmarshal([]byte(skills), &row.Skills); err != nil {
		return model.Intern{}, fmt.Errorf("sqlite: intern %s skills: %w", row.ID, err)
	}
	row.Duration = model.Duration(duration)
	if row.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Intern{}, err
	}
	if row.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Intern{}, err
	}
	return row.finish()
}

func scanSQLiteMentor(r rowScanner) (model.Mentor, error) {
	var (
		m                 model.Mentor
		skills, createdAt string
	)
	if err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Department, &skills, &createdAt); err != nil {
		return model.Mentor{}, err
	}
	if err := json.Unmarshal([]byte(skills), &m.Skills); err != nil {
		return model.Mentor{}, fmt.Errorf("sqlite: mentor %s skills: %w", m.ID, err)
	}
	if m.Skills == nil {
		m.Skills = []string{}
	}
	var err error
	m.CreatedAt, err = parseTime(createdAt)
	return m, err
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: bad timestamp %q: %w", s, err)
	}
	return t, nil
}

// isSQLiteUnique reports a UNIQUE constraint violation. modernc.org/sqlite
// surfaces it only through the message text.
func isSQLiteUnique(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
