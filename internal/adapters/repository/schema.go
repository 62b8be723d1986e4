package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

//go:embed schema
var schemaFS embed.FS

// migration is one numbered schema file, e.g. 001_init.sql.
type migration struct {
	version int
	name    string
	sql     string
}

// loadMigrations returns the driver's migrations in version order.
func loadMigrations(driver string) ([]migration, error) {
	dir := "schema/" + driver
	entries, err := fs.ReadDir(schemaFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}
	var out []migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(e.Name(), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", e.Name(), err)
		}
		data, err := fs.ReadFile(schemaFS, dir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		out = append(out, migration{version: v, name: e.Name(), sql: string(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

const internColumns = `id, name, email, phone_number, university, department, skills,
	start_date, end_date, duration, status, mentor_id, schema_version, created_at, updated_at`

const mentorColumns = `id, name, email, department, skills, created_at`

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// internRow is the column image of an intern shared by the SQL stores.
type internRow struct {
	model.Intern
	status   string
	mentorID string
}

func toInternRow(in model.Intern) internRow {
	mentorID, _ := in.Assignment.MentorID()
	return internRow{Intern: in, status: string(in.Status()), mentorID: mentorID}
}

// finish rebuilds the assignment variant from its persisted pair.
func (r internRow) finish() (model.Intern, error) {
	a, err := model.ParseAssignment(r.status, r.mentorID)
	if err != nil {
		return model.Intern{}, fmt.Errorf("intern %s: %w", r.ID, err)
	}
	in := r.Intern
	in.Assignment = a
	if in.Skills == nil {
		in.Skills = []string{}
	}
	return in, nil
}
