package dialect

import (
	"errors"
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestForDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"pgx", "postgres"},
		{"sqlite3", "sqlite"},
		{"sqlite", "sqlite"},
		{"unknown", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := ForDriver(tt.driver).Name(); got != tt.want {
				t.Errorf("ForDriver(%q).Name() = %q, want %q", tt.driver, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
		wantErr    bool
	}{
		{"simple column", "name", "`name`", false},
		{"star passthrough", "*", "*", false},
		{"qualified column", "users.id", "`users`.`id`", false},
		{"injection attempt", "name`; DROP TABLE users;--", "", true},
		{"empty", "", "", true},
	}

	g := MySQL()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Wrap(tt.identifier)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Wrap(%q) error = %v, wantErr %v", tt.identifier, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Wrap(%q) error does not match ErrInvalidArgument: %v", tt.identifier, err)
			}
			if got != tt.want {
				t.Errorf("Wrap(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestWrapTable(t *testing.T) {
	g := MySQL()

	got, err := g.WrapTable("users as u")
	if err != nil {
		t.Fatalf("WrapTable error: %v", err)
	}
	if want := "`users` AS `u`"; got != want {
		t.Errorf("WrapTable = %q, want %q", got, want)
	}

	if _, err := g.WrapTable("users; DROP TABLE users"); err == nil {
		t.Error("WrapTable accepted an injection attempt")
	}
}

func TestCompileWhere(t *testing.T) {
	g := MySQL()

	t.Run("empty conditions", func(t *testing.T) {
		sql, args, err := g.CompileWhere(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sql != "" || len(args) != 0 {
			t.Errorf("empty conditions = (%q, %v), want empty", sql, args)
		}
	})

	t.Run("keys sorted for deterministic text", func(t *testing.T) {
		sql, args, err := g.CompileWhere(map[string]any{
			"status": "active",
			"age":    30,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "WHERE `age` = ? AND `status` = ?"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if want := []any{30, "active"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("invalid column", func(t *testing.T) {
		_, _, err := g.CompileWhere(map[string]any{"id; DROP TABLE x": 1})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestCompileSelect(t *testing.T) {
	g := MySQL()

	tests := []struct {
		name       string
		table      string
		columns    []string
		conditions map[string]any
		limit      *int
		offset     *int
		wantSQL    string
		wantArgs   []any
		wantErr    error
	}{
		{
			name:    "all columns",
			table:   "users",
			wantSQL: "SELECT * FROM `users`",
		},
		{
			name:    "selected columns",
			table:   "users",
			columns: []string{"id", "name"},
			wantSQL: "SELECT `id`, `name` FROM `users`",
		},
		{
			name:    "raw expression column",
			table:   "orders",
			columns: []string{"COUNT(*) AS total"},
			wantSQL: "SELECT COUNT(*) AS total FROM `orders`",
		},
		{
			name:       "with conditions",
			table:      "users",
			conditions: map[string]any{"status": "active"},
			wantSQL:    "SELECT * FROM `users` WHERE `status` = ?",
			wantArgs:   []any{"active"},
		},
		{
			name:    "limit and offset",
			table:   "users",
			limit:   intPtr(10),
			offset:  intPtr(20),
			wantSQL: "SELECT * FROM `users` LIMIT 10 OFFSET 20",
		},
		{
			name:    "offset without limit",
			table:   "users",
			offset:  intPtr(5),
			wantSQL: "SELECT * FROM `users` OFFSET 5",
		},
		{
			name:    "missing table",
			table:   "",
			wantErr: ErrNoTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := g.CompileSelect(tt.table, tt.columns, tt.conditions, tt.limit, tt.offset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if tt.wantArgs != nil && !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestCompileInsert(t *testing.T) {
	g := MySQL()

	t.Run("single row", func(t *testing.T) {
		sql, args, err := g.CompileInsert("users", map[string]any{
			"name": "John",
			"age":  30,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "INSERT INTO `users` (`age`, `name`) VALUES (?, ?)"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if want := []any{30, "John"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		_, _, err := g.CompileInsert("users", map[string]any{})
		if !errors.Is(err, ErrNoColumns) {
			t.Errorf("error = %v, want ErrNoColumns", err)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ErrNoColumns does not match ErrInvalidArgument")
		}
	})

	t.Run("missing table", func(t *testing.T) {
		_, _, err := g.CompileInsert("", map[string]any{"a": 1})
		if !errors.Is(err, ErrNoTable) {
			t.Errorf("error = %v, want ErrNoTable", err)
		}
	})
}

func TestCompileInsertBatch(t *testing.T) {
	g := MySQL()

	t.Run("rows flattened in order", func(t *testing.T) {
		sql, args, err := g.CompileInsertBatch("users", []map[string]any{
			{"name": "John", "age": 30},
			{"name": "Jane", "age": 25},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "INSERT INTO `users` (`age`, `name`) VALUES (?, ?), (?, ?)"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if want := []any{30, "John", 25, "Jane"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		_, _, err := g.CompileInsertBatch("users", nil)
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("error = %v, want ErrEmptyBatch", err)
		}
	})

	t.Run("inconsistent columns", func(t *testing.T) {
		_, _, err := g.CompileInsertBatch("users", []map[string]any{
			{"name": "John", "age": 30},
			{"name": "Jane", "email": "jane@example.com"},
		})
		if !errors.Is(err, ErrInconsistentBatch) {
			t.Errorf("error = %v, want ErrInconsistentBatch", err)
		}
	})

	t.Run("missing column in later row", func(t *testing.T) {
		_, _, err := g.CompileInsertBatch("users", []map[string]any{
			{"name": "John", "age": 30},
			{"name": "Jane"},
		})
		if !errors.Is(err, ErrInconsistentBatch) {
			t.Errorf("error = %v, want ErrInconsistentBatch", err)
		}
	})
}

func TestCompileUpdate(t *testing.T) {
	g := MySQL()

	t.Run("set then where", func(t *testing.T) {
		sql, args, err := g.CompileUpdate("users",
			map[string]any{"status": "inactive"},
			map[string]any{"id": 7},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "UPDATE `users` SET `status` = ? WHERE `id` = ?"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if want := []any{"inactive", 7}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("no conditions updates everything", func(t *testing.T) {
		sql, _, err := g.CompileUpdate("users", map[string]any{"status": "x"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "UPDATE `users` SET `status` = ?"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("empty data", func(t *testing.T) {
		_, _, err := g.CompileUpdate("users", nil, map[string]any{"id": 1})
		if !errors.Is(err, ErrNoColumns) {
			t.Errorf("error = %v, want ErrNoColumns", err)
		}
	})
}

func TestCompileDelete(t *testing.T) {
	g := MySQL()

	sql, args, err := g.CompileDelete("users", map[string]any{"id": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "DELETE FROM `users` WHERE `id` = ?"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if want := []any{3}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}

	sql, _, err = g.CompileDelete("users", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "DELETE FROM `users`"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestCompileCount(t *testing.T) {
	g := MySQL()

	sql, args, err := g.CompileCount("users", map[string]any{"status": "active"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "SELECT COUNT(*) AS aggregate FROM `users` WHERE `status` = ?"; sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if want := []any{"active"}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestPostgresNumberedPlaceholders(t *testing.T) {
	g := Postgres()

	t.Run("where numbering", func(t *testing.T) {
		sql, _, err := g.CompileWhere(map[string]any{"age": 30, "status": "active"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `WHERE "age" = $1 AND "status" = $2`; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("update numbering continues across set and where", func(t *testing.T) {
		sql, args, err := g.CompileUpdate("users",
			map[string]any{"name": "Jane", "status": "active"},
			map[string]any{"id": 1},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `UPDATE "users" SET "name" = $1, "status" = $2 WHERE "id" = $3`; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if want := []any{"Jane", "active", 1}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("batch numbering", func(t *testing.T) {
		sql, _, err := g.CompileInsertBatch("users", []map[string]any{
			{"name": "a"},
			{"name": "b"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `INSERT INTO "users" ("name") VALUES ($1), ($2)`; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}

func TestExistsQueries(t *testing.T) {
	t.Run("mysql binds table as parameter", func(t *testing.T) {
		sql, args := MySQL().TableExistsQuery("users")
		if got := []any{"users"}; !reflect.DeepEqual(args, got) {
			t.Errorf("args = %v, want %v", args, got)
		}
		if want := "SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("postgres column probe", func(t *testing.T) {
		sql, args := Postgres().ColumnExistsQuery("users", "email")
		if want := []any{"users", "email"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
		if want := "SELECT 1 FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2 LIMIT 1"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("sqlite probes sqlite_master", func(t *testing.T) {
		sql, args := SQLite().TableExistsQuery("users")
		if want := []any{"users"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
		if want := "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1"; sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}

// Injection attempts in identifier positions must be rejected before the
// statement text is built. Values never reach the text at all, so they are
// covered by parameter binding.
func TestInjectionRejectedInIdentifiers(t *testing.T) {
	g := MySQL()

	attempts := []string{
		"users; DROP TABLE users;--",
		"users`--",
		"users' OR '1'='1",
		"users/*comment*/",
	}

	for _, attempt := range attempts {
		t.Run(attempt, func(t *testing.T) {
			if _, _, err := g.CompileSelect(attempt, nil, nil, nil, nil); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("table %q accepted, error = %v", attempt, err)
			}
			if _, _, err := g.CompileWhere(map[string]any{attempt: 1}); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("column %q accepted, error = %v", attempt, err)
			}
			if _, _, err := g.CompileInsert("users", map[string]any{attempt: 1}); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("insert column %q accepted, error = %v", attempt, err)
			}
		})
	}
}
