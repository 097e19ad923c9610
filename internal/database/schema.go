package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables the staff API reads.  Statements are idempotent.
// movies.categories and movies.screenings hold JSON text exactly as the
// catalogue service writes it.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id          VARCHAR(64)  NOT NULL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		duration    VARCHAR(32)  NOT NULL DEFAULT '',
		poster_url  VARCHAR(512) NOT NULL DEFAULT '',
		categories  TEXT         NOT NULL,
		screenings  TEXT         NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS employees (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL DEFAULT 'USHER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id           VARCHAR(64)  NOT NULL PRIMARY KEY,
		movie_id     VARCHAR(64)  NOT NULL,
		movie_title  VARCHAR(255) NOT NULL,
		hall         VARCHAR(64)  NOT NULL,
		show_date    VARCHAR(10)  NOT NULL,
		show_time    VARCHAR(5)   NOT NULL,
		admitted_at  DATETIME     NULL,
		admitted_by  BIGINT UNSIGNED NULL,
		INDEX idx_tickets_admitted_at (admitted_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
