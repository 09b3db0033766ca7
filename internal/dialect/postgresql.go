package dialect

var postgresqlTypes = map[string]string{
	"string":        "varchar(255)",
	"char":          "char(1)",
	"character":     "char(1)",
	"byte":          "int2",
	"short":         "int2",
	"int":           "int4",
	"integer":       "int4",
	"long":          "int8",
	"biginteger":    "numeric(20,0)",
	"float":         "float4",
	"double":        "float8",
	"bigdecimal":    "numeric(10,2)",
	"boolean":       "bool",
	"date":          "timestamp",
	"localdate":     "date",
	"localtime":     "time",
	"localdatetime": "timestamp",
	"timestamp":     "timestamp",
	"instant":       "timestamptz",
	"byte[]":        "bytea",
	"uuid":          "uuid",
}

func newPostgreSQL() *Dialect {
	return &Dialect{
		name:           PostgreSQL,
		quote:          '"',
		types:          postgresqlTypes,
		stringType:     "varchar(%d)",
		fallback:       "varchar(255)",
		KeyType:        "int8",
		KeyConstraints: "NOT NULL PRIMARY KEY",
		BigIntType:     "int8",
		IntType:        "int4",
		SmallIntType:   "int2",
		TimestampType:  "timestamp",
		Comments:       CommentOn,
		Sequences:      true,
		SequenceStart:  "START 1",
	}
}
