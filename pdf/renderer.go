// Package pdf renders a committed invoice to a single-page A4 document.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/vetsone/clinic-billing/models"
)

// ErrRenderFailure indicates the document could not be produced. The store
// must not be written when rendering fails.
var ErrRenderFailure = errors.New("render failure")

// Page geometry in millimetres. Single fixed page, no pagination: items
// beyond the table capacity are omitted from the document.
const (
	pageW  = 210.0
	pageH  = 297.0
	margin = 10.0

	receiptBoxW = 80.0
	receiptBoxH = 36.0

	customerBoxH = 28.0

	tableH     = 160.0
	headerRowH = 8.0
	rowH       = 10.0

	commentsBoxW = 120.0
	commentsBoxH = 35.0
	totalBoxW    = 40.0

	logoSize = 28.0
	cellPad  = 3.0
	numPad   = 2.0
)

var colWidths = [5]float64{22, 100, 15, 28, 25}

var colLabels = [5]string{"Item #", "Product Description", "Qty", "Price Per Unit", "Cost"}

// MaxRows is the number of line items that fit on the page. Anything past
// this is silently dropped; the printed total still covers all items.
var tableBodyH float64 = tableH - headerRowH

var MaxRows = int(tableBodyH / rowH)

// ClinicInfo is the identity block printed in the page header.
type ClinicInfo struct {
	Name         string
	Subtitle     string
	AddressLines []string
}

// Renderer lays out invoice documents. Output is a pure function of the
// invoice, its items and the logo file: document metadata dates are pinned
// to the invoice date so identical inputs produce identical bytes.
type Renderer struct {
	Clinic   ClinicInfo
	LogoPath string
}

// Render writes the invoice document to outPath. A missing or unreadable
// logo is skipped without error; any other failure wraps ErrRenderFailure.
func (r *Renderer) Render(inv models.Invoice, items []models.LineItem, outPath string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(metadataDate(inv))
	doc.SetModificationDate(metadataDate(inv))
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetLineWidth(0.3)

	r.drawHeader(doc, inv)
	custBottom := r.drawCustomerBox(doc, inv)
	tableBottom := r.drawItemTable(doc, custBottom+6, items)
	r.drawFooter(doc, inv, tableBottom+4)

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return nil
}

func (r *Renderer) drawHeader(doc *gofpdf.Fpdf, inv models.Invoice) {
	if r.LogoPath != "" {
		if _, err := os.Stat(r.LogoPath); err == nil {
			opts := gofpdf.ImageOptions{ReadDpi: true}
			doc.RegisterImageOptions(r.LogoPath, opts)
			if doc.Err() {
				// Corrupt logo: skip it, keep the document
				doc.ClearError()
			} else {
				doc.ImageOptions(r.LogoPath, margin, margin, logoSize, logoSize, false, opts, 0, "")
			}
		}
	}

	textX := margin + 35
	doc.SetFont("Helvetica", "B", 18)
	doc.Text(textX, margin+10, r.Clinic.Name)
	doc.SetFont("Helvetica", "", 10)
	doc.Text(textX, margin+18, r.Clinic.Subtitle)
	doc.SetFont("Helvetica", "", 9)
	y := margin + 26.0
	for _, line := range r.Clinic.AddressLines {
		doc.Text(textX, y, line)
		y += 5
	}

	// Receipt metadata box, top right
	boxX := pageW - margin - receiptBoxW
	boxY := margin + 5.0
	doc.Rect(boxX, boxY, receiptBoxW, receiptBoxH, "D")
	rows := [3][2]string{
		{"Receipt Number :", orDash(inv.ReceiptNumber)},
		{"Date :", inv.Date},
		{"Payment Method :", orDash(inv.PaymentMethod)},
	}
	for i, row := range rows {
		baseline := boxY + float64(i+1)*8
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(boxX+4, baseline, row[0])
		doc.SetFont("Helvetica", "", 10)
		doc.Text(boxX+45, baseline, row[1])
	}
}

func (r *Renderer) drawCustomerBox(doc *gofpdf.Fpdf, inv models.Invoice) float64 {
	top := margin + 5 + receiptBoxH + 6
	doc.Rect(margin, top, pageW-2*margin, customerBoxH, "D")

	left := [2][2]string{
		{"Customer Name :", orDash(inv.CustomerName)},
		{"Address :", orDash(inv.Address)},
	}
	right := [2][2]string{
		{"Tele :", orDash(inv.Telephone)},
		{"E-mail :", orDash(inv.Email)},
	}
	for i := 0; i < 2; i++ {
		baseline := top + float64(i+1)*8
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(margin+4, baseline, left[i][0])
		doc.Text(margin+120, baseline, right[i][0])
		doc.SetFont("Helvetica", "", 10)
		doc.Text(margin+40, baseline, left[i][1])
		doc.Text(margin+140, baseline, right[i][1])
	}
	return top + customerBoxH
}

func (r *Renderer) drawItemTable(doc *gofpdf.Fpdf, top float64, items []models.LineItem) float64 {
	bottom := top + tableH
	doc.Rect(margin, top, pageW-2*margin, tableH, "D")

	// Column boundaries
	var bounds [6]float64
	bounds[0] = margin
	for i, w := range colWidths {
		bounds[i+1] = bounds[i] + w
	}

	// Header row with bold labels
	doc.SetFont("Helvetica", "B", 10)
	for i, label := range colLabels {
		doc.Rect(bounds[i], top, colWidths[i], headerRowH, "D")
		doc.Text(bounds[i]+cellPad, top+6, label)
	}

	// Row separators and column verticals
	for k := 1; k <= MaxRows; k++ {
		y := top + headerRowH + float64(k)*rowH
		doc.Line(margin, y, pageW-margin, y)
	}
	for _, x := range bounds {
		doc.Line(x, top, x, bottom)
	}

	// Item rows, entry order, truncated at capacity
	doc.SetFont("Helvetica", "", 9)
	for i, it := range items {
		if i >= MaxRows {
			break
		}
		baseline := top + headerRowH + float64(i+1)*rowH - 3
		doc.Text(bounds[0]+cellPad, baseline, it.ItemNumber)
		doc.Text(bounds[1]+cellPad, baseline, it.Description)
		drawRight(doc, bounds[3]-numPad, baseline, it.Quantity.String())
		drawRight(doc, bounds[4]-numPad, baseline, it.UnitPrice.String())
		drawRight(doc, bounds[5]-numPad, baseline, it.LineTotal.String())
	}
	return bottom
}

func (r *Renderer) drawFooter(doc *gofpdf.Fpdf, inv models.Invoice, top float64) {
	doc.Rect(margin, top, commentsBoxW, commentsBoxH, "D")
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(margin+cellPad, top+6, "Comments :")

	totalX := pageW - margin - totalBoxW
	doc.Rect(totalX, top, totalBoxW, commentsBoxH, "D")
	doc.Text(totalX+2, top+8, "Total")
	drawRight(doc, totalX+totalBoxW-numPad, top+8, inv.Total.String())

	// Signature line
	sigY := pageH - margin - 18
	doc.Line(pageW-margin-70, sigY, pageW-margin, sigY)
	doc.SetFont("Helvetica", "", 9)
	doc.Text(pageW-margin-30, sigY+6, "Signature")
}

func drawRight(doc *gofpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s), y, s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func metadataDate(inv models.Invoice) time.Time {
	if t, err := time.Parse(models.DateLayout, inv.Date); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}
