package storage

import (
	"context"
	"fmt"
	"io"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by driver. The returned closer releases the
// underlying connection pool, if any.
func Open(ctx context.Context, driver, dir, databaseURL string) (Store, io.Closer, error) {
	switch driver {
	case DriverMemory:
		return NewMemStore(), nopCloser{}, nil
	case DriverFile, "":
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case DriverPostgres:
		s, db, err := OpenPostgres(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres storage: %w", err)
		}
		return s, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
