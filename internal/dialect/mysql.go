package dialect

var mysqlTypes = map[string]string{
	"string":        "varchar(255)",
	"char":          "char(1)",
	"character":     "char(1)",
	"byte":          "tinyint",
	"short":         "smallint",
	"int":           "int",
	"integer":       "int",
	"long":          "bigint",
	"biginteger":    "decimal(20,0)",
	"float":         "float",
	"double":        "double",
	"bigdecimal":    "decimal(10,2)",
	"boolean":       "bit(1)",
	"date":          "datetime",
	"localdate":     "date",
	"localtime":     "time",
	"localdatetime": "datetime",
	"timestamp":     "datetime",
	"instant":       "datetime",
	"byte[]":        "blob",
	"uuid":          "varchar(36)",
}

func newMySQL() *Dialect {
	return &Dialect{
		name:           MySQL,
		quote:          '`',
		types:          mysqlTypes,
		stringType:     "varchar(%d)",
		fallback:       "varchar(255)",
		KeyType:        "bigint",
		KeyConstraints: "NOT NULL AUTO_INCREMENT PRIMARY KEY",
		BigIntType:     "bigint",
		IntType:        "int",
		SmallIntType:   "tinyint",
		TimestampType:  "datetime",
		Comments:       CommentAlter,
		Sequences:      false,
	}
}
