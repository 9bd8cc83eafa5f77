package simpledb

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

func TestDriverCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "mysql duplicate entry",
			err:      &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
			wantCode: "1062",
		},
		{
			name:     "postgres unique violation",
			err:      &pq.Error{Code: "23505", Message: "duplicate key value"},
			wantCode: "23505",
		},
		{
			name:     "wrapped driver error",
			err:      errors.Join(errors.New("context"), &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}),
			wantCode: "1146",
		},
		{
			name:     "plain error has no code",
			err:      errors.New("connection refused"),
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := driverCode(tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if message == "" {
				t.Error("message should never be empty for a non-nil error")
			}
		})
	}
}

func TestDBErrorFormat(t *testing.T) {
	err := NewDBError("insert", "INSERT INTO `users` ...", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	if err.Code != "1062" {
		t.Errorf("Code = %q, want 1062", err.Code)
	}
	if got := err.Error(); !strings.Contains(got, "insert") || !strings.Contains(got, "1062") {
		t.Errorf("Error() = %q, want op and code present", got)
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		t.Error("DBError should unwrap to the driver error")
	}
}

func TestArgumentErrorsMatchRoot(t *testing.T) {
	for _, err := range []error{ErrNoTable, ErrNoColumns, ErrEmptyBatch, ErrInconsistentBatch, ErrInvalidSource} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v does not match ErrInvalidArgument", err)
		}
	}
}
