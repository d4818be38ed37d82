package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vetsone/clinic-billing/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicateReceiptNumber indicates the receipt number is already taken.
	// Recoverable: regenerate and retry.
	ErrDuplicateReceiptNumber = errors.New("duplicate receipt number")
	// ErrNotFound indicates no invoice matches the receipt number.
	ErrNotFound = errors.New("invoice not found")
	// ErrStorageUnavailable indicates the database could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Store provides durable persistence of invoices and their line items.
// Each operation borrows a pooled connection and releases it on every exit
// path; nothing is shared across calls. Cross-process safety relies on
// SQLite's own file locking.
type Store struct {
	conn *sql.DB
}

// NewStore wraps an open database connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Save inserts the invoice and all its line items as a single transaction.
// Either everything is written or nothing is. Items are inserted in slice
// order, so their row ids preserve entry order.
func (s *Store) Save(ctx context.Context, inv models.Invoice, items []models.LineItem) (int64, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `INSERT INTO invoices
		(receipt_no, date, payment_method, customer_name, address, telephone, email, subtotal, total, document_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		inv.ReceiptNumber, inv.Date, inv.PaymentMethod, inv.CustomerName,
		inv.Address, inv.Telephone, inv.Email, inv.Subtotal, inv.Total, inv.DocumentPath).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateReceiptNumber, inv.ReceiptNumber)
		}
		return 0, fmt.Errorf("%w: insert invoice: %v", ErrStorageUnavailable, err)
	}

	for _, it := range items {
		_, err := tx.ExecContext(ctx, `INSERT INTO invoice_items
			(invoice_id, item_no, description, qty, unit_price, line_total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, it.ItemNumber, it.Description, it.Quantity, it.UnitPrice, it.LineTotal)
		if err != nil {
			return 0, fmt.Errorf("%w: insert item: %v", ErrStorageUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ErrStorageUnavailable, err)
	}
	return id, nil
}

// ListRecent returns up to limit invoice summaries, most recent first.
// Ties on date are broken by insertion order, newest first. Line items are
// not included.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]models.Invoice, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, receipt_no, date, payment_method, customer_name,
		address, telephone, email, subtotal, total, document_path, created_at
		FROM invoices ORDER BY date DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.ReceiptNumber, &inv.Date, &inv.PaymentMethod, &inv.CustomerName,
			&inv.Address, &inv.Telephone, &inv.Email, &inv.Subtotal, &inv.Total, &inv.DocumentPath, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan invoice: %v", ErrStorageUnavailable, err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", ErrStorageUnavailable, err)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

// FindByReceiptNumber returns the invoice and its line items in entry order,
// or ErrNotFound.
func (s *Store) FindByReceiptNumber(ctx context.Context, receiptNo string) (models.Invoice, []models.LineItem, error) {
	var inv models.Invoice
	err := s.conn.QueryRowContext(ctx, `SELECT id, receipt_no, date, payment_method, customer_name,
		address, telephone, email, subtotal, total, document_path, created_at
		FROM invoices WHERE receipt_no = ?`, receiptNo).
		Scan(&inv.ID, &inv.ReceiptNumber, &inv.Date, &inv.PaymentMethod, &inv.CustomerName,
			&inv.Address, &inv.Telephone, &inv.Email, &inv.Subtotal, &inv.Total, &inv.DocumentPath, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, nil, ErrNotFound
	}
	if err != nil {
		return models.Invoice{}, nil, fmt.Errorf("%w: find invoice: %v", ErrStorageUnavailable, err)
	}

	rows, err := s.conn.QueryContext(ctx, `SELECT id, invoice_id, item_no, description, qty, unit_price, line_total
		FROM invoice_items WHERE invoice_id = ? ORDER BY id`, inv.ID)
	if err != nil {
		return models.Invoice{}, nil, fmt.Errorf("%w: find items: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var it models.LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ItemNumber, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return models.Invoice{}, nil, fmt.Errorf("%w: scan item: %v", ErrStorageUnavailable, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return models.Invoice{}, nil, fmt.Errorf("%w: find items: %v", ErrStorageUnavailable, err)
	}
	return inv, items, nil
}

// isUniqueViolation matches the extended result code only; a CHECK
// constraint failure also carries the SQLITE_CONSTRAINT primary code and
// must not masquerade as a duplicate receipt number.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
