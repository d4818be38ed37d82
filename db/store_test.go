package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vetsone/clinic-billing/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "billing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Migrating twice must be harmless
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
	return NewStore(conn)
}

func sampleInvoice(receiptNo string) (models.Invoice, []models.LineItem) {
	inv := models.Invoice{
		ReceiptNumber: receiptNo,
		Date:          "2024-01-15 09:30",
		PaymentMethod: "Cash",
		CustomerName:  "A. Perera",
		Address:       "12 Lake Rd",
		Telephone:     "0771234567",
		Email:         "perera@example.com",
		Subtotal:      5498,
		Total:         5498,
		DocumentPath:  "/invoices/2024/01/" + receiptNo + ".pdf",
	}
	items := []models.LineItem{
		{ItemNumber: "1", Description: "Consultation", Quantity: 1000, UnitPrice: 1500, LineTotal: 1500},
		{ItemNumber: "2", Description: "Rabies vaccine", Quantity: 2000, UnitPrice: 1999, LineTotal: 3998},
	}
	return inv, items
}

func TestSaveAndFindRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, items := sampleInvoice("R-20240115-093041")
	id, err := s.Save(ctx, inv, items)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, gotItems, err := s.FindByReceiptNumber(ctx, "R-20240115-093041")
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, inv.ReceiptNumber, got.ReceiptNumber)
	require.Equal(t, inv.Date, got.Date)
	require.Equal(t, inv.PaymentMethod, got.PaymentMethod)
	require.Equal(t, inv.CustomerName, got.CustomerName)
	require.Equal(t, inv.Address, got.Address)
	require.Equal(t, inv.Telephone, got.Telephone)
	require.Equal(t, inv.Email, got.Email)
	require.Equal(t, inv.Subtotal, got.Subtotal)
	require.Equal(t, inv.Total, got.Total)
	require.Equal(t, inv.DocumentPath, got.DocumentPath)

	require.Len(t, gotItems, 2)
	for i, it := range gotItems {
		require.Equal(t, id, it.InvoiceID)
		require.Equal(t, items[i].ItemNumber, it.ItemNumber)
		require.Equal(t, items[i].Description, it.Description)
		require.Equal(t, items[i].Quantity, it.Quantity)
		require.Equal(t, items[i].UnitPrice, it.UnitPrice)
		require.Equal(t, items[i].LineTotal, it.LineTotal)
	}
}

func TestFindNotFound(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.FindByReceiptNumber(context.Background(), "R-19700101-000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateReceiptNumber(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, firstItems := sampleInvoice("R-20240115-093041")
	_, err := s.Save(ctx, first, firstItems)
	require.NoError(t, err)

	second, secondItems := sampleInvoice("R-20240115-093041")
	second.CustomerName = "B. Silva"
	_, err = s.Save(ctx, second, secondItems)
	require.ErrorIs(t, err, ErrDuplicateReceiptNumber)

	// First save must remain intact, and no rows from the rejected save
	got, gotItems, err := s.FindByReceiptNumber(ctx, "R-20240115-093041")
	require.NoError(t, err)
	require.Equal(t, "A. Perera", got.CustomerName)
	require.Len(t, gotItems, 2)

	var count int
	require.NoError(t, s.conn.QueryRow("SELECT COUNT(*) FROM invoice_items").Scan(&count))
	require.Equal(t, 2, count)
}

func TestCheckViolationNotReportedAsDuplicate(t *testing.T) {
	s := newTestStore(t)

	inv, items := sampleInvoice("R-20240115-093041")
	inv.PaymentMethod = "Barter"
	_, err := s.Save(context.Background(), inv, items)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateReceiptNumber)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestListRecentOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dates := []string{"2024-01-01", "2024-01-02", "2024-01-02", "2024-01-03"}
	var ids []int64
	for i, d := range dates {
		inv, items := sampleInvoice("R-ORD-" + string(rune('A'+i)))
		inv.Date = d
		id, err := s.Save(ctx, inv, items)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, ids[3], got[0].ID, "2024-01-03 first")
	require.Equal(t, ids[2], got[1].ID, "later-inserted of the 2024-01-02 pair second")
}

func TestListRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCascadeDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inv, items := sampleInvoice("R-20240115-093041")
	id, err := s.Save(ctx, inv, items)
	require.NoError(t, err)

	_, err = s.conn.Exec("DELETE FROM invoices WHERE id = ?", id)
	require.NoError(t, err)

	var count int
	require.NoError(t, s.conn.QueryRow("SELECT COUNT(*) FROM invoice_items WHERE invoice_id = ?", id).Scan(&count))
	require.Equal(t, 0, count)
}
