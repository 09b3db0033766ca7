// Package apply executes synthesized or aligned DDL scripts against a live
// database, with preflight analysis and a dry-run mode.
package apply

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pingcap/tidb/pkg/parser/format"
	"go.uber.org/zap"

	"sqlalign/internal/align"
	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
	"sqlalign/internal/introspect"
	_ "sqlalign/internal/introspect/mysql"
	_ "sqlalign/internal/introspect/postgresql"
)

// ErrNoStatements is returned when a script contains nothing to execute.
var ErrNoStatements = errors.New("apply: no statements to apply")

// PreflightResult contains the results of preflight checks.
type PreflightResult struct {
	Warnings        []Warning
	Errors          []string
	IsTransactional bool
	NonTxReasons    []string
}

// Warning represents a preflight warning.
type Warning struct {
	Level   WarningLevel
	Message string
	SQL     string
}

type WarningLevel string

const (
	WarnCaution WarningLevel = "CAUTION"
	WarnDanger  WarningLevel = "DANGER"
)

// Options configures the apply operation.
type Options struct {
	DSN                   string
	Dialect               dialect.Type
	DryRun                bool
	Transaction           bool
	AllowNonTransactional bool
	Unsafe                bool
	Out                   io.Writer
	Logger                *zap.Logger
}

// Applier runs a DDL script against one database connection.
type Applier struct {
	opts     Options
	db       *sql.DB
	analyzer *StatementAnalyzer
	log      *zap.Logger
}

// NewApplier creates an applier. A zero Dialect means MySQL.
func NewApplier(opts Options) *Applier {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Dialect == "" {
		opts.Dialect = dialect.MySQL
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Applier{
		opts:     opts,
		analyzer: NewStatementAnalyzer(opts.Dialect),
		log:      log.With(zap.String("dialect", string(opts.Dialect))),
	}
}

func (a *Applier) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.opts.Out, format, args...)
}

func (a *Applier) println(args ...any) {
	_, _ = fmt.Fprintln(a.opts.Out, args...)
}

// Apply executes the statements of script. Connect must have been called
// unless the applier is in dry-run mode.
func (a *Applier) Apply(ctx context.Context, script string) error {
	statements := a.ParseStatements(script)
	if len(statements) == 0 {
		return ErrNoStatements
	}

	preflight := a.PreflightChecks(statements)
	if len(preflight.Errors) > 0 {
		for _, e := range preflight.Errors {
			a.printf("ERROR: %s\n", e)
		}
		return fmt.Errorf("apply: preflight checks failed with %d error(s)", len(preflight.Errors))
	}

	if a.opts.DryRun {
		return a.dryRun(statements, preflight)
	}

	if a.db == nil {
		return errors.New("apply: not connected")
	}

	if a.opts.Transaction && !preflight.IsTransactional && !a.opts.AllowNonTransactional {
		a.println("ERROR: The following statements cannot be executed in a transaction:")
		for _, r := range preflight.NonTxReasons {
			a.printf("  - %s\n", r)
		}
		return errors.New("apply: statements require --allow-non-transactional to run outside a transaction")
	}

	if a.opts.Transaction && preflight.IsTransactional {
		return a.applyWithTransaction(ctx, statements)
	}
	return a.applyWithoutTransaction(ctx, statements)
}

// driverName returns the database/sql driver registered for the dialect.
func driverName(t dialect.Type) (string, error) {
	switch t {
	case dialect.MySQL:
		return "mysql", nil
	case dialect.PostgreSQL:
		return "pgx", nil
	default:
		return "", fmt.Errorf("apply: no database driver for dialect %q", t)
	}
}

// Connect opens and pings the database.
func (a *Applier) Connect(ctx context.Context) error {
	if a.opts.DSN == "" {
		return errors.New("apply: DSN is required")
	}
	driver, err := driverName(a.opts.Dialect)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver, a.opts.DSN)
	if err != nil {
		return fmt.Errorf("apply: failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("apply: failed to connect to database: %w", err)
	}

	a.db = db
	a.log.Debug("connected", zap.String("driver", driver))
	return nil
}

// Close closes the database connection.
func (a *Applier) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Inspect reads table back from the connected database.
func (a *Applier) Inspect(ctx context.Context, table string) (*core.TableInfo, error) {
	if a.db == nil {
		return nil, errors.New("apply: not connected")
	}
	i, err := introspect.NewIntrospecter(a.opts.Dialect)
	if err != nil {
		return nil, err
	}
	return i.Table(ctx, a.db, table)
}

// ParseStatements splits script into executable statements without their
// trailing semicolons. Comment lines are dropped.
func (a *Applier) ParseStatements(script string) []string {
	if a.opts.Dialect == dialect.MySQL {
		if statements, ok := a.splitWithParser(script); ok {
			return statements
		}
	}
	return splitStatements(script)
}

// splitWithParser normalizes MySQL statements through TiDB's restorer. It
// reports false when TiDB cannot parse the script.
func (a *Applier) splitWithParser(script string) ([]string, bool) {
	nodes, _, err := a.analyzer.parser.Parse(script, "", "")
	if err != nil {
		a.log.Debug("parser split failed, falling back to text split", zap.Error(err))
		return nil, false
	}

	statements := make([]string, 0, len(nodes))
	for _, node := range nodes {
		var sb strings.Builder
		if err := node.Restore(format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)); err != nil {
			a.log.Debug("restore failed, falling back to text split", zap.Error(err))
			return nil, false
		}
		if stmt := strings.TrimSpace(sb.String()); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements, true
}

func splitStatements(script string) []string {
	return align.StatementSplitter.Split(script)
}

// PreflightChecks analyzes statements for blocking, destructive and
// transaction-unsafe operations.
func (a *Applier) PreflightChecks(statements []string) *PreflightResult {
	result := a.analyzer.AnalyzeStatements(statements, a.opts.Unsafe)
	if !a.opts.Unsafe && hasDestructive(result) {
		result.Errors = append(result.Errors,
			"Destructive operations detected. Use --unsafe to allow.")
	}
	return result
}

func hasDestructive(result *PreflightResult) bool {
	for _, w := range result.Warnings {
		if w.Level == WarnDanger {
			return true
		}
	}
	return false
}

func truncateSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxLen = 80
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func (a *Applier) dryRun(statements []string, preflight *PreflightResult) error {
	a.println("=== DRY RUN MODE ===")
	a.println("No changes will be made to the database.")
	a.println()

	if len(preflight.Warnings) > 0 {
		a.println("--- Preflight Checks ---")
		for _, w := range preflight.Warnings {
			a.printf("[%s] %s\n", w.Level, w.Message)
			if w.SQL != "" {
				a.printf("  SQL: %s\n", truncateSQL(w.SQL))
			}
		}
		a.println()
	}

	a.println("--- Transaction Safety ---")
	if preflight.IsTransactional {
		a.println("All statements can be executed in a transaction.")
	} else {
		a.println("WARNING: Some statements cannot be rolled back:")
		for _, r := range preflight.NonTxReasons {
			a.printf("  - %s\n", r)
		}
	}
	a.println()

	a.println("--- Statements to Execute ---")
	for i, stmt := range statements {
		a.printf("%d. %s;\n", i+1, stmt)
	}
	a.println()
	a.printf("Total: %d statement(s)\n", len(statements))
	a.println("=== DRY RUN COMPLETE ===")

	return nil
}

func (a *Applier) applyWithTransaction(ctx context.Context, statements []string) error {
	a.println("Starting transaction...")

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply: failed to begin transaction: %w", err)
	}

	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		a.log.Debug("exec", zap.Int("index", i+1), zap.String("sql", truncateSQL(stmt)))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("apply: statement %d failed: %w (rollback failed: %w)", i+1, err, rbErr)
			}
			a.println("Transaction rolled back.")
			return fmt.Errorf("apply: statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply: failed to commit transaction: %w", err)
	}

	a.log.Info("script applied", zap.Int("statements", len(statements)), zap.Bool("transaction", true))
	a.printf("Successfully applied %d statement(s).\n", len(statements))
	return nil
}

func (a *Applier) applyWithoutTransaction(ctx context.Context, statements []string) error {
	a.println("Executing statements (non-transactional)...")

	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		a.log.Debug("exec", zap.Int("index", i+1), zap.String("sql", truncateSQL(stmt)))
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply: statement %d failed: %w\nNote: Previous statements may have been applied", i+1, err)
		}
	}

	a.log.Info("script applied", zap.Int("statements", len(statements)), zap.Bool("transaction", false))
	a.printf("Successfully applied %d statement(s).\n", len(statements))
	return nil
}
