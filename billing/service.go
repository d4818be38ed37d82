// Package billing drives the commit pipeline: validate a draft, assign
// identities, render the document, then persist atomically.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vetsone/clinic-billing/db"
	"github.com/vetsone/clinic-billing/models"
	"github.com/vetsone/clinic-billing/pdf"
	"github.com/vetsone/clinic-billing/receipt"
)

// ValidationError reports a draft the user must fix. Nothing is written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Preview is the data handed back to the form for live redisplay.
type Preview struct {
	Items    []models.DraftItemInput `json:"items"`
	Subtotal models.Money            `json:"subtotal"`
	Total    models.Money            `json:"total"`
}

// Result is returned after a successful commit.
type Result struct {
	Invoice models.Invoice    `json:"invoice"`
	Items   []models.LineItem `json:"items"`
}

// Service owns the save pipeline. One invoice is composed at a time; calls
// are sequential and blocking.
type Service struct {
	Store      *db.Store
	Renderer   *pdf.Renderer
	InvoiceDir string

	now        func() time.Time
	nextNumber func() string
}

// NewService wires the pipeline. invoiceDir is the root under which
// artifacts are filed by year and month.
func NewService(store *db.Store, renderer *pdf.Renderer, invoiceDir string) *Service {
	return &Service{
		Store:      store,
		Renderer:   renderer,
		InvoiceDir: invoiceDir,
		now:        time.Now,
		nextNumber: receipt.NextNumber,
	}
}

// PreviewDraft renumbers the rows and recomputes per-line and grand totals
// for redisplay. Only rows that would survive commit contribute to the
// totals, so the preview never overstates what will be billed. No
// identities are consumed and nothing is written.
func (s *Service) PreviewDraft(draft models.DraftInput) Preview {
	items := receipt.RenumberItems(draft.Items)
	var subtotal models.Money
	for _, it := range items {
		if !billable(it) {
			continue
		}
		q, p := parseRow(it)
		subtotal += models.LineTotal(q, p)
	}
	return Preview{Items: items, Subtotal: subtotal, Total: subtotal}
}

// Commit finalizes the draft: validation, identity assignment, rendering,
// then one atomic store write. Rendering precedes persistence so every
// saved invoice has an artifact on disk. A duplicate generated receipt
// number is regenerated and retried exactly once.
func (s *Service) Commit(ctx context.Context, draft models.DraftInput) (*Result, error) {
	if msg := draft.Validate(); msg != "" {
		return nil, &ValidationError{Msg: msg}
	}

	generated := false
	receiptNo := draft.ReceiptNumber
	if receiptNo == "" {
		receiptNo = s.nextNumber()
		generated = true
	}

	date := draft.Date
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}

	items := finalizeItems(draft.Items)
	var subtotal models.Money
	for _, it := range items {
		subtotal += it.LineTotal
	}

	inv := models.Invoice{
		ReceiptNumber: receiptNo,
		Date:          date,
		PaymentMethod: draft.PaymentMethod,
		CustomerName:  draft.CustomerName,
		Address:       draft.Address,
		Telephone:     draft.Telephone,
		Email:         draft.Email,
		Subtotal:      subtotal,
		Total:         subtotal,
	}

	id, err := s.renderAndSave(ctx, &inv, items)
	if errors.Is(err, db.ErrDuplicateReceiptNumber) && generated {
		inv.ReceiptNumber = s.nextNumber()
		slog.Warn("receipt number collision, regenerating", "receipt_no", receiptNo, "retry", inv.ReceiptNumber)
		id, err = s.renderAndSave(ctx, &inv, items)
	}
	if err != nil {
		return nil, err
	}

	inv.ID = id
	for i := range items {
		items[i].InvoiceID = id
	}
	slog.Info("invoice saved", "receipt_no", inv.ReceiptNumber, "id", id, "items", len(items), "total", inv.Total)
	return &Result{Invoice: inv, Items: items}, nil
}

// renderAndSave produces the artifact and persists the invoice. The
// document is rendered to a temporary file, moved to its final name, and
// only then written to the store, so a persisted invoice always has its
// document on disk. The pre-check keeps the move from landing on the
// artifact of an invoice already holding that receipt number.
func (s *Service) renderAndSave(ctx context.Context, inv *models.Invoice, items []models.LineItem) (int64, error) {
	// Cheap pre-check; the unique constraint still backstops races
	_, _, err := s.Store.FindByReceiptNumber(ctx, inv.ReceiptNumber)
	if err == nil {
		return 0, fmt.Errorf("%w: %s", db.ErrDuplicateReceiptNumber, inv.ReceiptNumber)
	}
	if !errors.Is(err, db.ErrNotFound) {
		return 0, err
	}

	path, err := s.artifactPath(inv.ReceiptNumber)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", pdf.ErrRenderFailure, err)
	}
	inv.DocumentPath = path

	tmp := path + ".tmp"
	if err := s.Renderer.Render(*inv, items, tmp); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("%w: placing artifact: %v", pdf.ErrRenderFailure, err)
	}

	id, err := s.Store.Save(ctx, *inv, items)
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return id, nil
}

// artifactPath files the document under <dir>/<year>/<month>/<receipt>.pdf.
func (s *Service) artifactPath(receiptNo string) (string, error) {
	t := s.now()
	dir := filepath.Join(s.InvoiceDir, fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", t.Month()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, receiptNo+".pdf"), nil
}

// finalizeItems keeps the rows worth billing: a non-empty description plus
// at least one of quantity or price. Quantity defaults to 1 when only a
// price was given. The retained rows are renumbered so item numbers stay a
// dense 1..N sequence.
func finalizeItems(rows []models.DraftItemInput) []models.LineItem {
	var kept []models.DraftItemInput
	for _, r := range rows {
		if !billable(r) {
			continue
		}
		kept = append(kept, r)
	}
	kept = receipt.RenumberItems(kept)

	items := make([]models.LineItem, 0, len(kept))
	for _, r := range kept {
		q, p := parseRow(r)
		items = append(items, models.LineItem{
			ItemNumber:  r.ItemNumber,
			Description: r.Description,
			Quantity:    q,
			UnitPrice:   p,
			LineTotal:   models.LineTotal(q, p),
		})
	}
	return items
}

// billable reports whether a draft row is billed: a non-empty description
// plus at least one of quantity or price.
func billable(r models.DraftItemInput) bool {
	return r.Description != "" && (r.Quantity != "" || r.UnitPrice != "")
}

// parseRow applies the row defaults: quantity 1 when a price is present
// without a quantity, price 0 when absent. Validation has already rejected
// malformed numbers.
func parseRow(r models.DraftItemInput) (models.Quantity, models.Money) {
	q, _ := models.ParseQuantity(r.Quantity)
	p, _ := models.ParseMoney(r.UnitPrice)
	if r.Quantity == "" && r.UnitPrice != "" {
		q = models.QuantityOne
	}
	return q, p
}
