package dialect

// MySQLGrammar implements the Grammar interface for MySQL/MariaDB.
type MySQLGrammar struct {
	BaseGrammar
}

// MySQL creates a new MySQL grammar instance.
func MySQL() *MySQLGrammar {
	return &MySQLGrammar{
		BaseGrammar: BaseGrammar{
			name:  "mysql",
			quote: "`",
		},
	}
}

// TableExistsQuery probes information_schema.tables within the current schema.
// The table name is bound as a parameter, never interpolated.
func (g *MySQLGrammar) TableExistsQuery(table string) (string, []any) {
	return "SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1",
		[]any{table}
}

// ColumnExistsQuery probes information_schema.columns within the current schema.
func (g *MySQLGrammar) ColumnExistsQuery(table, column string) (string, []any) {
	return "SELECT 1 FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ? LIMIT 1",
		[]any{table, column}
}
