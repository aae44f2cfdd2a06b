package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDSNRoundTrip(t *testing.T) {
	dsn := DSN("cinema", "s3cret", "db.local", "3307", "cinema")
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q): %v", dsn, err)
	}
	if cfg.User != "cinema" || cfg.Passwd != "s3cret" || cfg.Addr != "db.local:3307" || cfg.DBName != "cinema" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.ParseTime {
		t.Error("parseTime not set")
	}
	if !strings.Contains(dsn, "charset=utf8mb4") {
		t.Errorf("charset missing from %q", dsn)
	}
}
