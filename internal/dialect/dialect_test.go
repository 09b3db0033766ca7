package dialect

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDialectOverwrite(t *testing.T) {
	originalRegistry := make(map[Type]func() *Dialect)
	maps.Copy(originalRegistry, registry)
	defer func() {
		registry = originalRegistry
	}()

	registry = make(map[Type]func() *Dialect)

	testDialectType := Type("overwrite_dialect")
	RegisterDialect(testDialectType, func() *Dialect {
		return &Dialect{name: Type("first")}
	})
	RegisterDialect(testDialectType, func() *Dialect {
		return &Dialect{name: Type("second")}
	})

	d := GetDialect(testDialectType)
	require.NotNil(t, d)
	assert.Equal(t, Type("second"), d.Name())
}

func TestGetDialectFallbackToMySQL(t *testing.T) {
	d := GetDialect(Type("sqlite"))
	require.NotNil(t, d)
	assert.Equal(t, MySQL, d.Name())
}

func TestGetDialectNoDialectsRegistered(t *testing.T) {
	originalRegistry := make(map[Type]func() *Dialect)
	maps.Copy(originalRegistry, registry)
	defer func() {
		registry = originalRegistry
	}()

	registry = make(map[Type]func() *Dialect)

	assert.Nil(t, GetDialect(MySQL))
}

func TestGetDialectBuiltins(t *testing.T) {
	for _, typ := range SupportedTypes() {
		t.Run(string(typ), func(t *testing.T) {
			d := GetDialect(typ)
			require.NotNil(t, d)
			assert.Equal(t, typ, d.Name())
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "postgresql", want: PostgreSQL},
		{in: "Postgres", want: PostgreSQL},
		{in: " pg ", want: PostgreSQL},
		{in: "MySQL", want: MySQL},
		{in: "mariadb", want: MySQL},
		{in: "ORACLE", want: Oracle},
		{in: "sqlite", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	pg := GetDialect(PostgreSQL)
	my := GetDialect(MySQL)
	ora := GetDialect(Oracle)

	tests := []struct {
		name string
		d    *Dialect
		in   string
		want string
	}{
		{name: "pg simple", d: pg, in: "users", want: `"users"`},
		{name: "pg embedded quote", d: pg, in: `we"ird`, want: `"we""ird"`},
		{name: "pg trims", d: pg, in: "  users  ", want: `"users"`},
		{name: "mysql simple", d: my, in: "users", want: "`users`"},
		{name: "mysql embedded backtick", d: my, in: "user`table", want: "`user``table`"},
		{name: "oracle uses double quotes", d: ora, in: "users", want: `"users"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.QuoteIdentifier(tt.in))
		})
	}
}

func TestQualifiedName(t *testing.T) {
	pg := GetDialect(PostgreSQL)
	assert.Equal(t, `"users"`, pg.QualifiedName("", "users"))
	assert.Equal(t, `"app"."users"`, pg.QualifiedName("app", "users"))
	assert.Equal(t, "`app`.`users`", GetDialect(MySQL).QualifiedName("app", "users"))
}

func TestQuoteString(t *testing.T) {
	pg := GetDialect(PostgreSQL)
	my := GetDialect(MySQL)

	assert.Equal(t, "'plain'", pg.QuoteString("plain"))
	assert.Equal(t, "'it''s'", pg.QuoteString("it's"))
	assert.Equal(t, `'a\b'`, pg.QuoteString(`a\b`))
	assert.Equal(t, `'a\\b'`, my.QuoteString(`a\b`))
	assert.Equal(t, "'it''s'", my.QuoteString("it's"))
}

func TestLookupType(t *testing.T) {
	tests := []struct {
		typ     Type
		source  string
		want    string
		wantHit bool
	}{
		{typ: PostgreSQL, source: "Long", want: "int8", wantHit: true},
		{typ: PostgreSQL, source: "String", want: "varchar(255)", wantHit: true},
		{typ: PostgreSQL, source: "LocalDateTime", want: "timestamp", wantHit: true},
		{typ: PostgreSQL, source: "BigDecimal", want: "numeric(10,2)", wantHit: true},
		{typ: PostgreSQL, source: "UserStatus", want: "varchar(255)", wantHit: false},
		{typ: MySQL, source: "Long", want: "bigint", wantHit: true},
		{typ: MySQL, source: "Boolean", want: "bit(1)", wantHit: true},
		{typ: MySQL, source: "byte[]", want: "blob", wantHit: true},
		{typ: Oracle, source: "Long", want: "bigint", wantHit: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+tt.source, func(t *testing.T) {
			got, hit := GetDialect(tt.typ).LookupType(tt.source)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHit, hit)
		})
	}
}

func TestCommentStrategy(t *testing.T) {
	assert.Equal(t, CommentOn, GetDialect(PostgreSQL).Comments)
	assert.Equal(t, CommentAlter, GetDialect(MySQL).Comments)
	assert.Equal(t, CommentAlter, GetDialect(Oracle).Comments)
}

func TestCreateSequence(t *testing.T) {
	assert.Equal(t, []string{
		`DROP SEQUENCE IF EXISTS "users_seq";`,
		`CREATE SEQUENCE "users_seq" START 1;`,
	}, GetDialect(PostgreSQL).CreateSequence("users_seq"))

	assert.Equal(t, []string{
		`DROP SEQUENCE IF EXISTS "users_seq";`,
		`CREATE SEQUENCE "users_seq" START WITH 1;`,
	}, GetDialect(Oracle).CreateSequence("users_seq"))

	assert.False(t, GetDialect(MySQL).Sequences)
}

func TestStringType(t *testing.T) {
	assert.Equal(t, "varchar(64)", GetDialect(PostgreSQL).String(64))
	assert.Equal(t, "varchar(500)", GetDialect(MySQL).String(500))
}
