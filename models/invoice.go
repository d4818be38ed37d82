package models

import "time"

// DateLayout is the display format for invoice dates.
const DateLayout = "2006-01-02 15:04"

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{"Cash", "Debit", "Credit", "Check"}

// Invoice represents one committed receipt. Immutable once saved; there is
// no update or void path.
type Invoice struct {
	ID            int64     `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	Date          string    `json:"date"`
	PaymentMethod string    `json:"payment_method"`
	CustomerName  string    `json:"customer_name"`
	Address       string    `json:"address"`
	Telephone     string    `json:"telephone"`
	Email         string    `json:"email"`
	Subtotal      Money     `json:"subtotal"`
	Total         Money     `json:"total"`
	DocumentPath  string    `json:"document_path"`
	CreatedAt     time.Time `json:"created_at"`
}

// LineItem is one billed row of an invoice. ItemNumber is a dense 1..N
// sequence in entry order; LineTotal is a cached projection of
// Quantity * UnitPrice, never independently authoritative.
type LineItem struct {
	ID          int64    `json:"id"`
	InvoiceID   int64    `json:"invoice_id"`
	ItemNumber  string   `json:"item_number"`
	Description string   `json:"description"`
	Quantity    Quantity `json:"quantity"`
	UnitPrice   Money    `json:"unit_price"`
	LineTotal   Money    `json:"line_total"`
}
