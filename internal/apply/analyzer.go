package apply

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // required to register TiDB parser driver implementations

	"sqlalign/internal/dialect"
)

// keywordEffect describes a statement recognized by its leading keywords.
type keywordEffect struct {
	prefix            string
	destructiveReason string
	blockingReason    string
	// implicitCommit is true when the statement ends an open transaction
	// in MySQL-like databases.
	implicitCommit bool
}

// keywordEffects is checked in order; the first matching prefix wins.
var keywordEffects = []keywordEffect{
	{prefix: "DROP TABLE", destructiveReason: "DROP TABLE will permanently delete the table and all its data", implicitCommit: true},
	{prefix: "DROP SEQUENCE", destructiveReason: "DROP SEQUENCE will reset the sequence", implicitCommit: true},
	{prefix: "TRUNCATE", destructiveReason: "TRUNCATE TABLE will delete all rows from the table", implicitCommit: true},
	{prefix: "DELETE", destructiveReason: "DELETE will remove rows from the table"},
	{prefix: "CREATE SEQUENCE", implicitCommit: true},
	{prefix: "CREATE TABLE", implicitCommit: true},
	{prefix: "CREATE INDEX", blockingReason: "CREATE INDEX may lock the table for the duration of index creation", implicitCommit: true},
	{prefix: "ALTER TABLE", implicitCommit: true},
	{prefix: "COMMENT ON"},
	{prefix: "CREATE ", implicitCommit: true},
	{prefix: "ALTER ", implicitCommit: true},
	{prefix: "DROP ", implicitCommit: true},
}

// StatementAnalysis contains the results of analyzing a SQL statement.
type StatementAnalysis struct {
	IsBlocking        bool
	BlockingReasons   []string
	IsDestructive     bool
	DestructiveReason string
	IsTransactionSafe bool
	TxUnsafeReason    string
	StatementType     string
}

// StatementAnalyzer classifies statements for one target dialect. MySQL
// statements are parsed with TiDB's parser; other dialects, and anything
// TiDB rejects, are classified by their leading keywords.
type StatementAnalyzer struct {
	dialect dialect.Type
	parser  *parser.Parser
}

// NewStatementAnalyzer creates a statement analyzer for dialect t.
func NewStatementAnalyzer(t dialect.Type) *StatementAnalyzer {
	return &StatementAnalyzer{
		dialect: t,
		parser:  parser.New(),
	}
}

// AnalyzeStatement returns the analysis of a single SQL statement.
func (a *StatementAnalyzer) AnalyzeStatement(sql string) *StatementAnalysis {
	var analysis *StatementAnalysis
	if a.dialect == dialect.MySQL {
		if nodes, _, err := a.parser.Parse(sql, "", ""); err == nil && len(nodes) > 0 {
			analysis = a.analyzeNode(nodes[0])
		}
	}
	if analysis == nil {
		analysis = analyzeKeywords(sql)
	}

	// PostgreSQL runs DDL inside transactions.
	if a.dialect == dialect.PostgreSQL {
		analysis.IsTransactionSafe = true
		analysis.TxUnsafeReason = ""
	}
	return analysis
}

// AnalyzeStatements analyzes multiple SQL statements and returns a PreflightResult.
func (a *StatementAnalyzer) AnalyzeStatements(statements []string, unsafeAllowed bool) *PreflightResult {
	result := &PreflightResult{
		IsTransactional: true,
	}

	for _, stmt := range statements {
		analysis := a.AnalyzeStatement(stmt)
		a.addBlockingWarnings(result, analysis, stmt)
		a.addDestructiveWarning(result, analysis, stmt, unsafeAllowed)
		a.addTransactionSafety(result, analysis, stmt)
	}

	return result
}

func (a *StatementAnalyzer) addBlockingWarnings(result *PreflightResult, analysis *StatementAnalysis, stmt string) {
	if !analysis.IsBlocking {
		return
	}
	for _, reason := range analysis.BlockingReasons {
		result.Warnings = append(result.Warnings, Warning{
			Level:   WarnCaution,
			Message: fmt.Sprintf("Potentially blocking DDL: %s", reason),
			SQL:     stmt,
		})
	}
}

func (a *StatementAnalyzer) addDestructiveWarning(result *PreflightResult, analysis *StatementAnalysis, stmt string, unsafeAllowed bool) {
	if !analysis.IsDestructive {
		return
	}
	msg := analysis.DestructiveReason
	if !unsafeAllowed {
		msg = fmt.Sprintf("%s (requires --unsafe flag)", msg)
	}
	result.Warnings = append(result.Warnings, Warning{
		Level:   WarnDanger,
		Message: msg,
		SQL:     stmt,
	})
}

func (a *StatementAnalyzer) addTransactionSafety(result *PreflightResult, analysis *StatementAnalysis, stmt string) {
	if analysis.IsTransactionSafe {
		return
	}
	result.IsTransactional = false
	result.NonTxReasons = append(result.NonTxReasons, fmt.Sprintf("%s: %s", analysis.TxUnsafeReason, truncateSQL(stmt)))
}

func (a *StatementAnalyzer) analyzeNode(node ast.StmtNode) *StatementAnalysis {
	analysis := &StatementAnalysis{IsTransactionSafe: true}

	switch stmt := node.(type) {
	case *ast.DropTableStmt:
		if stmt.IsView {
			analysis.setImplicitCommit("DROP VIEW")
			break
		}
		analysis.setImplicitCommit("DROP TABLE")
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DROP TABLE will permanently delete the table and all its data"
	case *ast.CreateTableStmt:
		analysis.setImplicitCommit("CREATE TABLE")
	case *ast.AlterTableStmt:
		analysis.setImplicitCommit("ALTER TABLE")
		for _, spec := range stmt.Specs {
			analyzeAlterTableSpec(spec, analysis)
		}
	case *ast.TruncateTableStmt:
		analysis.setImplicitCommit("TRUNCATE TABLE")
		analysis.IsDestructive = true
		analysis.DestructiveReason = "TRUNCATE TABLE will delete all rows from the table"
	case *ast.DeleteStmt:
		analysis.StatementType = "DELETE"
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DELETE will remove rows from the table"
	case *ast.InsertStmt:
		analysis.StatementType = "INSERT"
	case *ast.UpdateStmt:
		analysis.StatementType = "UPDATE"
	case *ast.SelectStmt:
		analysis.StatementType = "SELECT"
	default:
		return nil
	}

	return analysis
}

func analyzeAlterTableSpec(spec *ast.AlterTableSpec, analysis *StatementAnalysis) {
	switch spec.Tp {
	case ast.AlterTableModifyColumn:
		analysis.IsBlocking = true
		analysis.BlockingReasons = append(analysis.BlockingReasons,
			"MODIFY COLUMN may require a table rebuild if changing column type or size")
	case ast.AlterTableDropColumn:
		analysis.IsBlocking = true
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DROP COLUMN will permanently delete the column and its data"
		analysis.BlockingReasons = append(analysis.BlockingReasons,
			"DROP COLUMN typically requires a full table rebuild and will lock the table")
	}
}

func analyzeKeywords(sql string) *StatementAnalysis {
	analysis := &StatementAnalysis{
		StatementType:     "OTHER",
		IsTransactionSafe: true,
	}
	upper := strings.Join(strings.Fields(strings.ToUpper(sql)), " ")

	for _, e := range keywordEffects {
		if !strings.HasPrefix(upper, e.prefix) {
			continue
		}
		analysis.StatementType = strings.TrimSpace(e.prefix)
		if e.implicitCommit {
			analysis.setImplicitCommit(analysis.StatementType)
		}
		if e.destructiveReason != "" {
			analysis.IsDestructive = true
			analysis.DestructiveReason = e.destructiveReason
		}
		if e.blockingReason != "" {
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons, e.blockingReason)
		}
		break
	}
	return analysis
}

func (s *StatementAnalysis) setImplicitCommit(statementType string) {
	s.StatementType = statementType
	s.IsTransactionSafe = false
	s.TxUnsafeReason = statementType + " causes an implicit commit"
}
