package dialect

// SQLiteGrammar implements the Grammar interface for SQLite.
type SQLiteGrammar struct {
	BaseGrammar
}

// SQLite creates a new SQLite grammar instance.
func SQLite() *SQLiteGrammar {
	return &SQLiteGrammar{
		BaseGrammar: BaseGrammar{
			name:  "sqlite",
			quote: `"`,
		},
	}
}

// TableExistsQuery probes sqlite_master, which lists every table in the
// database. SQLite has no information_schema.
func (g *SQLiteGrammar) TableExistsQuery(table string) (string, []any) {
	return "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1",
		[]any{table}
}

// ColumnExistsQuery probes the pragma_table_info table-valued function.
func (g *SQLiteGrammar) ColumnExistsQuery(table, column string) (string, []any) {
	return "SELECT 1 FROM pragma_table_info(?) WHERE name = ? LIMIT 1",
		[]any{table, column}
}
