// Package mysql reads table and column comments from MySQL's
// information_schema for the connection's current database.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
	"sqlalign/internal/introspect"
)

func init() {
	introspect.Register(dialect.MySQL, New)
}

type introspecter struct{}

func New() introspect.Introspecter {
	return &introspecter{}
}

func (i *introspecter) Table(ctx context.Context, db *sql.DB, name string) (*core.TableInfo, error) {
	t := &core.TableInfo{Name: name}
	err := db.QueryRowContext(ctx, `
		SELECT table_comment
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ? AND table_type = 'BASE TABLE'
	`, name).Scan(&t.Comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", introspect.ErrTableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("introspect: table %s: %w", name, err)
	}

	if err := introspectColumns(ctx, db, t); err != nil {
		return nil, fmt.Errorf("introspect: columns of %s: %w", name, err)
	}
	return t, nil
}

func introspectColumns(ctx context.Context, db *sql.DB, t *core.TableInfo) error {
	rows, err := db.QueryContext(ctx, `
		SELECT
			c.column_name,
			c.column_type,
			c.column_comment,
			c.is_nullable
		FROM information_schema.columns c
		WHERE c.table_schema = DATABASE() AND c.table_name = ?
		ORDER BY c.ordinal_position
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, colType, comment, nullable sql.NullString
		if err := rows.Scan(&name, &colType, &comment, &nullable); err != nil {
			return err
		}
		t.Columns = append(t.Columns, core.ColumnInfo{
			Name:     name.String,
			Type:     colType.String,
			Comment:  comment.String,
			Nullable: nullable.String == "YES",
		})
	}
	return rows.Err()
}
