// Package introspect reads a table's columns and comments back from a live
// database, so that an applied script can be checked against what the
// database actually stored.
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
)

// ErrTableNotFound is returned when the table does not exist in the
// connection's current schema.
var ErrTableNotFound = errors.New("introspect: table not found")

type Introspecter interface {
	Table(ctx context.Context, db *sql.DB, name string) (*core.TableInfo, error)
}

var (
	registry = make(map[dialect.Type]func() Introspecter)
	mu       sync.RWMutex
)

func Register(t dialect.Type, fn func() Introspecter) {
	mu.Lock()
	defer mu.Unlock()
	registry[t] = fn
}

func NewIntrospecter(t dialect.Type) (Introspecter, error) {
	mu.RLock()
	fn, ok := registry[t]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("introspect: unsupported dialect %q", t)
	}

	return fn(), nil
}
