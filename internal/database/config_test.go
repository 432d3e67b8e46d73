package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "postgres DSN",
			config: DatabaseConfig{
				Driver: "postgres", Host: "dbhost", Port: "5432",
				User: "app", Password: "pw", Name: "pizzashop", SSLMode: "disable",
			},
			expected: "host=dbhost user=app password=pw dbname=pizzashop port=5432 sslmode=disable",
		},
		{
			name: "sqlite DSN is the file path",
			config: DatabaseConfig{
				Driver: "sqlite", Path: "pizzashop.sqlite",
			},
			expected: "pizzashop.sqlite",
		},
		{
			name:     "empty driver defaults to sqlite",
			config:   DatabaseConfig{Path: "dev.sqlite"},
			expected: "dev.sqlite",
		},
		{
			name:     "unsupported driver yields empty DSN",
			config:   DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if dsn := tt.config.DSN(); dsn != tt.expected {
				t.Errorf("DSN() = %q, expected %q", dsn, tt.expected)
			}
		})
	}
}

func TestMySQLDSNReportsMatchedRows(t *testing.T) {
	config := DatabaseConfig{
		Driver: "mysql", Host: "dbhost", Port: "3306",
		User: "app", Password: "pw", Name: "pizzashop",
	}

	dsn := config.DSN()

	if !strings.HasPrefix(dsn, "app:pw@tcp(dbhost:3306)/pizzashop?") {
		t.Errorf("DSN() = %q, unexpected address section", dsn)
	}
	// Without clientFoundRows MySQL counts changed rows, not matched rows,
	// and a no-op contact resubmit would be misread as a missing customer.
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("DSN() = %q, missing clientFoundRows=true", dsn)
	}
	if !strings.Contains(dsn, "parseTime=True") {
		t.Errorf("DSN() = %q, missing parseTime=True", dsn)
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	config := DatabaseConfig{Driver: "postgres", Password: "db_pass_value"}

	s := config.String()

	if strings.Contains(s, "db_pass_value") {
		t.Error("DatabaseConfig.String() must not expose the password")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("DatabaseConfig.String() should mark the password as [REDACTED]")
	}
}
