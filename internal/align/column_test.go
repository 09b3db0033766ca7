package align

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlalign/internal/core"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want core.ColumnRow
	}{
		{
			name: "name and type",
			in:   `"id" int8`,
			want: core.ColumnRow{Name: `"id"`, Type: "int8"},
		},
		{
			name: "with constraints",
			in:   `  "name"   varchar(10)   NOT NULL DEFAULT ''  `,
			want: core.ColumnRow{Name: `"name"`, Type: "varchar(10)", Rest: "NOT NULL DEFAULT ''"},
		},
		{
			name: "backtick identifier",
			in:   "`id` bigint AUTO_INCREMENT",
			want: core.ColumnRow{Name: "`id`", Type: "bigint", Rest: "AUTO_INCREMENT"},
		},
		{
			name: "table constraint passes through",
			in:   `PRIMARY KEY ("id")`,
			want: core.ColumnRow{Rest: `PRIMARY KEY ("id")`},
		},
		{
			name: "unquoted column passes through",
			in:   "id int8",
			want: core.ColumnRow{Rest: "id int8"},
		},
		{
			name: "name without type passes through",
			in:   `"id"`,
			want: core.ColumnRow{Rest: `"id"`},
		},
		{
			name: "multiline remainder is kept",
			in:   "\"state\" int2 CHECK (state IN (0,\n 1))",
			want: core.ColumnRow{Name: `"state"`, Type: "int2", Rest: "CHECK (state IN (0,\n 1))"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColumn(tt.in))
		})
	}
}

func TestWidths(t *testing.T) {
	rows := []core.ColumnRow{
		{Name: `"id"`, Type: "int8"},
		{Name: `"nickname"`, Type: "varchar(30)"},
		{Rest: `PRIMARY KEY ("id", "some_really_long_column")`},
	}
	name, typ := Widths(rows)
	assert.Equal(t, 10, name)
	assert.Equal(t, 11, typ)

	name, typ = Widths([]core.ColumnRow{{Rest: "CHECK (1 = 1)"}})
	assert.Zero(t, name)
	assert.Zero(t, typ)
}

func TestRenderColumns(t *testing.T) {
	rows := []core.ColumnRow{
		{Name: `"id"`, Type: "int8", Rest: "NOT NULL"},
		{Name: `"name"`, Type: "varchar(10)"},
		{Rest: `PRIMARY KEY ("id")`},
	}
	want := strings.Join([]string{
		`    "id"   int8        NOT NULL`,
		`    "name" varchar(10)`,
		`    PRIMARY KEY ("id")`,
	}, ",\n")
	assert.Equal(t, want, RenderColumns(rows))
}

func TestAlignColumnsRoundTrip(t *testing.T) {
	in := `CREATE TABLE "t" ("id" int8,"name" varchar(10));`
	want := "CREATE TABLE \"t\" (\n" +
		"    \"id\"   int8,\n" +
		"    \"name\" varchar(10));"

	got := AlignColumns(in, core.DefaultAlignOptions())
	assert.Equal(t, want, got)
}

func TestAlignColumnsWidthInvariant(t *testing.T) {
	in := `CREATE TABLE "app"."orders" (
  "id" int8 NOT NULL,
  "customer_email" varchar(100),
  "price" numeric(10,2) DEFAULT 0,
  "created_at" timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY ("id")
);`
	got := AlignColumns(in, core.DefaultAlignOptions())

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, `CREATE TABLE "app"."orders" (`, lines[0])
	assert.Equal(t, `    PRIMARY KEY ("id")`, lines[5])
	assert.Equal(t, ");", lines[6])

	// Every parsed row starts its type at the same column.
	typeCol := -1
	for _, l := range lines[1:5] {
		row := ParseColumn(strings.TrimSuffix(l, ","))
		require.True(t, row.Parsed(), l)
		col := strings.Index(l, row.Type)
		if typeCol < 0 {
			typeCol = col
		}
		assert.Equal(t, typeCol, col, l)
	}
	assert.Equal(t, len(`    "customer_email" `), typeCol)
	assert.Contains(t, got, `"price"          numeric(10,2) DEFAULT 0,`)
}

func TestAlignColumnsMultipleTables(t *testing.T) {
	in := "CREATE TABLE a (\"x\" int4);\nCREATE TABLE IF NOT EXISTS b (\"longer_name\" text, \"y\" int8);"
	want := "CREATE TABLE a (\n    \"x\" int4);\n" +
		"CREATE TABLE IF NOT EXISTS b (\n    \"longer_name\" text,\n    \"y\"           int8);"
	assert.Equal(t, want, AlignColumns(in, core.DefaultAlignOptions()))
}

func TestAlignColumnsCaseSensitivity(t *testing.T) {
	in := `create table "t" ("id" int8,"name" varchar(10));`

	insensitive := AlignColumns(in, core.AlignOptions{WrapWidth: 60})
	assert.NotEqual(t, in, insensitive)

	sensitive := AlignColumns(in, core.AlignOptions{WrapWidth: 60, CaseSensitive: true})
	assert.Equal(t, in, sensitive)
}

func TestAlignColumnsEmptyBody(t *testing.T) {
	in := `CREATE TABLE "t" ();`
	assert.Equal(t, in, AlignColumns(in, core.DefaultAlignOptions()))
}

func TestAlignColumnsNoCreateTable(t *testing.T) {
	in := "SELECT 1;\nINSERT INTO t VALUES (1, 2);"
	assert.Equal(t, in, AlignColumns(in, core.DefaultAlignOptions()))
}
