package dialect

// Oracle borrows the MySQL type table and comment strategy but keeps
// double-quoted identifiers and supports sequences.
func newOracle() *Dialect {
	d := newMySQL()
	d.name = Oracle
	d.quote = '"'
	d.Sequences = true
	d.SequenceStart = "START WITH 1"
	return d
}
