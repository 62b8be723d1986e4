package repository

import (
	"context"
	"fmt"
	"strings"
)

// Drivers lists the accepted store drivers.
func Drivers() []string { return []string{DriverMemory, DriverSQLite, DriverPostgres} }

// Open builds the Store named by driver. dsn is a file path for sqlite and a
// connection string for postgres; memory ignores it.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory:
		return NewMemoryStore(opts...), nil
	case DriverSQLite, "":
		s, err := OpenSQLite(ctx, dsn, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := OpenPostgres(ctx, dsn, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
