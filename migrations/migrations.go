package migrations

import (
	"database/sql"
	"fmt"
)

// Migrate creates the tables the stats recorder needs. Idempotent.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	createRequestLog := `
	CREATE TABLE IF NOT EXISTS request_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		kind VARCHAR(32) NOT NULL,
		outcome VARCHAR(32) NOT NULL,
		duration_ms INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_request_log_kind (kind),
		INDEX idx_request_log_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.Exec(createRequestLog); err != nil {
		return fmt.Errorf("create request_log: %w", err)
	}
	return nil
}
