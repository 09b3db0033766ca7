// Package postgresql reads table and column comments through pg_catalog
// for tables visible on the connection's search_path.
package postgresql

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
	introspect.Register(dialect.PostgreSQL, New)
}

type postgresqlIntrospecter struct{}

func New() introspect.Introspecter {
	return &postgresqlIntrospecter{}
}

func (i *postgresqlIntrospecter) Table(ctx context.Context, db *sql.DB, name string) (*core.TableInfo, error) {
	t := &core.TableInfo{Name: name}

	var oid int64
	var comment sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT c.oid, obj_description(c.oid, 'pg_class')
		FROM pg_catalog.pg_class c
		WHERE c.relname = $1 AND c.relkind = 'r' AND pg_catalog.pg_table_is_visible(c.oid)
	`, name).Scan(&oid, &comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", introspect.ErrTableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("introspect: table %s: %w", name, err)
	}
	t.Comment = comment.String

	rows, err := db.QueryContext(ctx, `
		SELECT
			a.attname,
			pg_catalog.format_type(a.atttypid, a.atttypmod),
			col_description(a.attrelid, a.attnum),
			NOT a.attnotnull
		FROM pg_catalog.pg_attribute a
		WHERE a.attrelid = $1 AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum
	`, oid)
	if err != nil {
		return nil, fmt.Errorf("introspect: columns of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col core.ColumnInfo
		var colComment sql.NullString
		if err := rows.Scan(&col.Name, &col.Type, &colComment, &col.Nullable); err != nil {
			return nil, fmt.Errorf("introspect: columns of %s: %w", name, err)
		}
		col.Comment = colComment.String
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: columns of %s: %w", name, err)
	}
	return t, nil
}
