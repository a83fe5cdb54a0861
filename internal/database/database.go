package database

import (
	"fmt"

	"orgpulse/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go)
)

// NewSQLXOracleDB opens an Oracle connection through sqlx using the driver
// named in the configuration: "oracle" (go-ora) by default, or "godror" when
// Oracle client libraries are available.
func NewSQLXOracleDB(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	if driver == "" {
		driver = "oracle"
	}
	if driver != "oracle" && driver != "godror" {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	return db, nil
}
