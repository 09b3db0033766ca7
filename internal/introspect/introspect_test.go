package introspect

import (
	"context"
	"database/sql"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
)

type stubIntrospecter struct{}

func (stubIntrospecter) Table(context.Context, *sql.DB, string) (*core.TableInfo, error) {
	return &core.TableInfo{Name: "stub"}, nil
}

func TestRegistry(t *testing.T) {
	original := make(map[dialect.Type]func() Introspecter)
	maps.Copy(original, registry)
	defer func() {
		registry = original
	}()

	_, err := NewIntrospecter(dialect.Oracle)
	assert.EqualError(t, err, `introspect: unsupported dialect "oracle"`)

	Register(dialect.Oracle, func() Introspecter { return stubIntrospecter{} })
	i, err := NewIntrospecter(dialect.Oracle)
	require.NoError(t, err)

	info, err := i.Table(context.Background(), nil, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "stub", info.Name)
}
