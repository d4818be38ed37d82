package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migrate runs all table creation statements. Safe to call on every process
// start due to IF NOT EXISTS clauses.
func Migrate(conn *sql.DB) error {
	slog.Info("running database migrations")

	for _, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}

	slog.Info("database migrations complete")
	return nil
}

var migrations = []string{
	// Invoices: one row per committed receipt
	`CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		receipt_no TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		payment_method TEXT NOT NULL CHECK(payment_method IN ('Cash', 'Debit', 'Credit', 'Check')),
		customer_name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		telephone TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		subtotal INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		document_path TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Line items: owned by exactly one invoice, removed with it
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL,
		item_no TEXT NOT NULL,
		description TEXT NOT NULL,
		qty INTEGER NOT NULL DEFAULT 0,
		unit_price INTEGER NOT NULL DEFAULT 0,
		line_total INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
	)`,

	// Indexes for common queries
	`CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(date)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id)`,
}
