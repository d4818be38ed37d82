package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vetsone/clinic-billing/billing"
	"github.com/vetsone/clinic-billing/db"
	"github.com/vetsone/clinic-billing/models"
	"github.com/vetsone/clinic-billing/pdf"
	"github.com/vetsone/clinic-billing/printing"
)

// PreviewDraft recomputes item numbers and totals for redisplay
// @Summary      Preview a draft
// @Description  Renumber line items and recompute subtotal/total without saving anything.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        draft  body      models.DraftInput  true  "Draft contents"
// @Success      200    {object}  Response{data=billing.Preview}
// @Router       /invoices/preview [post]
// @Security     BasicAuth
func PreviewDraft(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftInput
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	writeJSON(w, http.StatusOK, Service.PreviewDraft(draft))
}

// CommitInvoice validates, renders and saves a draft invoice
// @Summary      Commit an invoice
// @Description  Validate the draft, assign the receipt number, render the PDF and persist atomically.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        draft  body      models.DraftInput  true  "Draft contents"
// @Success      201    {object}  Response{data=billing.Result}
// @Failure      400    {object}  Response{error=string}
// @Failure      409    {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func CommitInvoice(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftInput
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := Service.Commit(r.Context(), draft)
	if err != nil {
		var verr *billing.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Msg)
		case errors.Is(err, db.ErrDuplicateReceiptNumber):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, db.ErrStorageUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, pdf.ErrRenderFailure):
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListInvoices lists recent invoices
// @Summary      List recent invoices
// @Description  Get invoice summaries ordered by date descending, without line items.
// @Tags         invoices
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of invoices (default 100)"
// @Success      200    {object}  Response{data=[]models.Invoice}
// @Router       /invoices [get]
// @Security     BasicAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	invoices, err := Store.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves an invoice with its line items
// @Summary      Get invoice
// @Description  Look up an invoice by receipt number, including line items in entry order.
// @Tags         invoices
// @Produce      json
// @Param        receiptNo  path      string  true  "Receipt number"
// @Success      200        {object}  Response{data=billing.Result}
// @Failure      404        {object}  Response{error=string}
// @Router       /invoices/{receiptNo} [get]
// @Security     BasicAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	receiptNo := chi.URLParam(r, "receiptNo")
	inv, items, err := Store.FindByReceiptNumber(r.Context(), receiptNo)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, billing.Result{Invoice: inv, Items: items})
}

// PrintInvoice sends a saved invoice document to the printer
// @Summary      Print invoice
// @Description  Hand the invoice's rendered document to the OS print spooler.
// @Tags         invoices
// @Produce      json
// @Param        receiptNo  path      string  true  "Receipt number"
// @Success      200        {object}  Response{data=map[string]string}
// @Failure      404        {object}  Response{error=string}
// @Failure      502        {object}  Response{error=string}
// @Router       /invoices/{receiptNo}/print [post]
// @Security     BasicAuth
func PrintInvoice(w http.ResponseWriter, r *http.Request) {
	receiptNo := chi.URLParam(r, "receiptNo")
	inv, _, err := Store.FindByReceiptNumber(r.Context(), receiptNo)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}

	if err := printing.Submit(inv.DocumentPath); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "sent to printer"})
}
