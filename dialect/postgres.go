package dialect

// PostgresGrammar implements the Grammar interface for PostgreSQL.
// Identifiers are wrapped in double quotes and placeholders are numbered
// ($1, $2, ...), continuing across SET and WHERE segments.
type PostgresGrammar struct {
	BaseGrammar
}

// Postgres creates a new PostgreSQL grammar instance.
func Postgres() *PostgresGrammar {
	return &PostgresGrammar{
		BaseGrammar: BaseGrammar{
			name:     "postgres",
			quote:    `"`,
			numbered: true,
		},
	}
}

// TableExistsQuery probes information_schema.tables within the current schema.
func (g *PostgresGrammar) TableExistsQuery(table string) (string, []any) {
	return "SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1 LIMIT 1",
		[]any{table}
}

// ColumnExistsQuery probes information_schema.columns within the current schema.
func (g *PostgresGrammar) ColumnExistsQuery(table, column string) (string, []any) {
	return "SELECT 1 FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2 LIMIT 1",
		[]any{table, column}
}
