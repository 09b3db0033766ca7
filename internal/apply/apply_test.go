package apply

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sqlalign/internal/dialect"
	"sqlalign/internal/synth"
)

const postgresScript = `-- ----------------------------
-- Table structure for system_post
-- ----------------------------
DROP TABLE IF EXISTS "system_post";
CREATE TABLE "system_post" (
    "id"   int8         NOT NULL PRIMARY KEY,
    "name" varchar(255) NOT NULL
);

COMMENT ON COLUMN "system_post"."id"   IS 'ID';
COMMENT ON COLUMN "system_post"."name" IS 'Name; shown in lists';
COMMENT ON TABLE "system_post" IS 'It''s a post';
`

func TestParseStatementsText(t *testing.T) {
	a := NewApplier(Options{Dialect: dialect.PostgreSQL})

	got := a.ParseStatements(postgresScript)
	require.Len(t, got, 5)
	assert.Equal(t, `DROP TABLE IF EXISTS "system_post"`, got[0])
	assert.True(t, strings.HasPrefix(got[1], `CREATE TABLE "system_post" (`))
	assert.Equal(t, `COMMENT ON COLUMN "system_post"."name" IS 'Name; shown in lists'`, got[3])
	assert.Equal(t, `COMMENT ON TABLE "system_post" IS 'It''s a post'`, got[4])
}

func TestParseStatementsLineComments(t *testing.T) {
	a := NewApplier(Options{Dialect: dialect.PostgreSQL})

	script := "-- user's table\n" +
		"CREATE TABLE \"t\" (\"id\" int8);\n" +
		"COMMENT ON TABLE \"t\" IS 'a -- b'; -- trailing it's\n" +
		"DROP TABLE \"x\";\n"

	assert.Equal(t, []string{
		`CREATE TABLE "t" ("id" int8)`,
		`COMMENT ON TABLE "t" IS 'a -- b'`,
		`DROP TABLE "x"`,
	}, a.ParseStatements(script))
}

func TestParseStatementsMySQL(t *testing.T) {
	a := NewApplier(Options{Dialect: dialect.MySQL})

	t.Run("parser path", func(t *testing.T) {
		got := a.ParseStatements("CREATE TABLE t (id bigint);\nALTER TABLE t COMMENT = 'a;b';\n")
		require.Len(t, got, 2)
		assert.Contains(t, got[0], "CREATE TABLE")
		assert.Contains(t, got[1], "'a;b'")
	})

	t.Run("fallback on syntax the parser rejects", func(t *testing.T) {
		got := a.ParseStatements("CREATE TABLE t (id bigint);\nTHIS IS NOT SQL;\n")
		assert.Equal(t, []string{"CREATE TABLE t (id bigint)", "THIS IS NOT SQL"}, got)
	})

	t.Run("comments only", func(t *testing.T) {
		assert.Empty(t, a.ParseStatements("-- nothing here\n"))
	})
}

func TestApplyNoStatements(t *testing.T) {
	a := NewApplier(Options{DryRun: true, Out: &bytes.Buffer{}})
	err := a.Apply(context.Background(), "-- empty\n")
	assert.ErrorIs(t, err, ErrNoStatements)
}

func TestApplyRejectsDestructiveWithoutUnsafe(t *testing.T) {
	var out bytes.Buffer
	a := NewApplier(Options{Dialect: dialect.PostgreSQL, DryRun: true, Out: &out})

	err := a.Apply(context.Background(), postgresScript)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preflight checks failed")
	assert.Contains(t, out.String(), "ERROR: Destructive operations detected. Use --unsafe to allow.")
}

func TestApplyRequiresConnection(t *testing.T) {
	a := NewApplier(Options{Dialect: dialect.PostgreSQL, Unsafe: true, Out: &bytes.Buffer{}})
	err := a.Apply(context.Background(), postgresScript)
	assert.EqualError(t, err, "apply: not connected")
}

func TestDryRunOutput(t *testing.T) {
	var out bytes.Buffer
	a := NewApplier(Options{Dialect: dialect.PostgreSQL, DryRun: true, Unsafe: true, Out: &out})

	require.NoError(t, a.Apply(context.Background(), postgresScript))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "=== DRY RUN MODE ===\n"))
	assert.Contains(t, text, "--- Preflight Checks ---\n[DANGER] DROP TABLE will permanently delete the table and all its data\n")
	assert.Contains(t, text, "All statements can be executed in a transaction.")
	assert.Contains(t, text, "1. DROP TABLE IF EXISTS \"system_post\";\n")
	assert.Contains(t, text, "Total: 5 statement(s)\n")
	assert.True(t, strings.HasSuffix(text, "=== DRY RUN COMPLETE ===\n"))
}

func TestDryRunReportsNonTransactional(t *testing.T) {
	var out bytes.Buffer
	a := NewApplier(Options{Dialect: dialect.MySQL, DryRun: true, Out: &out})

	require.NoError(t, a.Apply(context.Background(), "CREATE TABLE t (id bigint);"))
	assert.Contains(t, out.String(), "WARNING: Some statements cannot be rolled back:\n  - CREATE TABLE causes an implicit commit: ")
	assert.NotContains(t, out.String(), "--- Preflight Checks ---")
}

func TestDryRunSynthesizedScript(t *testing.T) {
	src := "/** Post */\n@TableName(\"system_post\")\npublic class PostDO {\n    /** ID */\n    private Long id;\n}\n"
	for _, typ := range []dialect.Type{dialect.PostgreSQL, dialect.MySQL} {
		t.Run(string(typ), func(t *testing.T) {
			opts := synth.DefaultOptions()
			opts.Dialect = typ
			script, err := synth.Synthesize(src, opts)
			require.NoError(t, err)

			var out bytes.Buffer
			a := NewApplier(Options{Dialect: typ, DryRun: true, Unsafe: true, Out: &out})
			require.NoError(t, a.Apply(context.Background(), script))
			assert.Contains(t, out.String(), "system_post")
		})
	}
}

func TestConnectErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing DSN", func(t *testing.T) {
		err := NewApplier(Options{}).Connect(ctx)
		assert.EqualError(t, err, "apply: DSN is required")
	})

	t.Run("oracle has no driver", func(t *testing.T) {
		err := NewApplier(Options{DSN: "x", Dialect: dialect.Oracle}).Connect(ctx)
		assert.EqualError(t, err, `apply: no database driver for dialect "oracle"`)
	})

	t.Run("close without connect is safe", func(t *testing.T) {
		assert.NoError(t, NewApplier(Options{}).Close())
	})
}

func TestApplierLogsDialect(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	a := NewApplier(Options{Dialect: dialect.MySQL, Logger: zap.New(observed), DryRun: true, Out: &bytes.Buffer{}})

	_ = a.ParseStatements("THIS IS NOT SQL;")

	entries := logs.FilterMessage("parser split failed, falling back to text split").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "mysql", entries[0].ContextMap()["dialect"])
}

func TestTruncateSQL(t *testing.T) {
	assert.Equal(t, "SELECT 1", truncateSQL("SELECT\n   1"))
	long := strings.Repeat("x", 100)
	got := truncateSQL(long)
	assert.Len(t, got, 80)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestInspectRequiresConnection(t *testing.T) {
	_, err := NewApplier(Options{Dialect: dialect.PostgreSQL}).Inspect(context.Background(), "t")
	assert.EqualError(t, err, "apply: not connected")
}
