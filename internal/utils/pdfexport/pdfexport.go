// Package pdfexport renders an invoice as a PDF document: branded header
// band, FROM / BILL TO blocks, date row, line item table, totals and notes.
package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// Brand palette, RGB.
var (
	colorPrimary = [3]int{99, 102, 241} // indigo
	colorDark    = [3]int{15, 23, 42}
	colorMuted   = [3]int{100, 116, 139}
	colorStripe  = [3]int{248, 250, 252}
)

const (
	marginLeft  = 20.0
	marginRight = 20.0
)

// Invoice renders inv into a PDF and returns the document bytes together
// with the download filename, "<invoice number>.pdf". client and profile
// may be zero-valued; the layout degrades to "N/A" placeholders.
func Invoice(inv domain.Invoice, client domain.Client, profile domain.User) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	renderHeader(pdf, pageW, inv)
	y := renderParties(pdf, client, profile)
	y = renderDates(pdf, y, inv)
	y = renderItems(pdf, pageW, y, inv.Items)
	y = renderTotals(pdf, pageW, y, inv)
	renderNotes(pdf, pageW, y, inv.Notes)
	renderFooter(pdf, pageW, pageH)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	name := inv.InvoiceNumber
	if name == "" {
		name = "invoice"
	}
	return buf.Bytes(), name + ".pdf", nil
}

func renderHeader(pdf *gofpdf.Fpdf, pageW float64, inv domain.Invoice) {
	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageW, 40, "F")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(marginLeft, 27, "INVOICE")

	pdf.SetFont("Helvetica", "", 11)
	rightAlignedText(pdf, pageW-marginRight, 22, inv.InvoiceNumber)

	status := string(inv.Status)
	if status == "" {
		status = string(domain.InvoiceDraft)
	}
	pdf.SetFontSize(9)
	rightAlignedText(pdf, pageW-marginRight, 30, strings.ToUpper(status))
}

func renderParties(pdf *gofpdf.Fpdf, client domain.Client, profile domain.User) float64 {
	y := 55.0
	setColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(marginLeft, y, "FROM")
	pdf.Text(110, y, "BILL TO")

	pdf.SetFont("Helvetica", "", 10)
	y += 7

	fromName := profile.FullName
	if fromName == "" {
		fromName = "FreelanceFlow User"
	}
	fy := writeParty(pdf, marginLeft, y, fromName, profile.Company, profile.Email)

	toName := client.Name
	if toName == "" {
		toName = "N/A"
	}
	ty := writeParty(pdf, 110, y, toName, client.Company, client.Email)

	if ty > fy {
		fy = ty
	}
	return fy
}

func writeParty(pdf *gofpdf.Fpdf, x, y float64, name, company, email string) float64 {
	pdf.Text(x, y, name)
	if company != "" {
		y += 5
		pdf.Text(x, y, company)
	}
	if email != "" {
		y += 5
		setColor(pdf, colorMuted)
		pdf.Text(x, y, email)
		setColor(pdf, colorDark)
	}
	return y
}

func renderDates(pdf *gofpdf.Fpdf, y float64, inv domain.Invoice) float64 {
	y += 15
	pdf.SetFont("Helvetica", "", 9)
	setColor(pdf, colorMuted)
	pdf.Text(marginLeft, y, "Issue Date")
	pdf.Text(80, y, "Due Date")
	if inv.PaidDate != nil {
		pdf.Text(140, y, "Paid Date")
	}

	y += 6
	setColor(pdf, colorDark)
	pdf.SetFontSize(10)
	pdf.Text(marginLeft, y, fmtDate(&inv.IssueDate))
	pdf.Text(80, y, fmtDate(inv.DueDate))
	if inv.PaidDate != nil {
		pdf.Text(140, y, fmtDate(inv.PaidDate))
	}
	return y
}

func renderItems(pdf *gofpdf.Fpdf, pageW, y float64, items []domain.LineItem) float64 {
	y += 12
	tableW := pageW - marginLeft - marginRight
	colNum, colQty, colRate, colAmount := 12.0, 22.0, 30.0, 35.0
	colDesc := tableW - colNum - colQty - colRate - colAmount
	rowH := 8.0

	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colNum, rowH, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colDesc, rowH, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, rowH, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colRate, rowH, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colAmount, rowH, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	setColor(pdf, colorDark)
	for i, item := range items {
		fill := i%2 == 1
		pdf.SetFillColor(colorStripe[0], colorStripe[1], colorStripe[2])
		pdf.SetX(marginLeft)
		pdf.CellFormat(colNum, rowH, fmt.Sprintf("%d", i+1), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colDesc, rowH, item.Description, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colQty, rowH, item.Quantity.String(), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colRate, rowH, fmtCurrency(item.Rate), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colAmount, rowH, fmtCurrency(item.Amount), "1", 1, "R", fill, 0, "")
	}
	return pdf.GetY()
}

func renderTotals(pdf *gofpdf.Fpdf, pageW, y float64, inv domain.Invoice) float64 {
	y += 10
	totalsX := pageW - marginRight

	pdf.SetFont("Helvetica", "", 10)
	setColor(pdf, colorMuted)
	pdf.Text(totalsX-50, y, "Subtotal")
	setColor(pdf, colorDark)
	rightAlignedText(pdf, totalsX, y, fmtCurrency(inv.Subtotal))

	hasTax := !inv.Tax.IsZero()
	if hasTax {
		setColor(pdf, colorMuted)
		pdf.Text(totalsX-50, y+8, "Tax")
		setColor(pdf, colorDark)
		rightAlignedText(pdf, totalsX, y+8, fmtCurrency(inv.Tax))
	}

	totalY := y + 12
	if hasTax {
		totalY = y + 20
	}
	pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(totalsX-60, totalY-4, totalsX, totalY-4)

	pdf.SetFont("Helvetica", "B", 13)
	setColor(pdf, colorPrimary)
	pdf.Text(totalsX-50, totalY+2, "TOTAL")
	rightAlignedText(pdf, totalsX, totalY+2, fmtCurrency(inv.Total))
	return totalY
}

func renderNotes(pdf *gofpdf.Fpdf, pageW, totalY float64, notes string) {
	if notes == "" {
		return
	}
	y := totalY + 18
	pdf.SetFont("Helvetica", "B", 9)
	setColor(pdf, colorMuted)
	pdf.Text(marginLeft, y, "NOTES")

	pdf.SetFont("Helvetica", "", 9)
	setColor(pdf, colorDark)
	pdf.SetXY(marginLeft, y+3)
	pdf.MultiCell(pageW-marginLeft-marginRight, 5, notes, "", "L", false)
}

func renderFooter(pdf *gofpdf.Fpdf, pageW, pageH float64) {
	y := pageH - 15
	pdf.SetFont("Helvetica", "", 8)
	setColor(pdf, colorMuted)
	pdf.Text(marginLeft, y, "Generated by FreelanceFlow")
	rightAlignedText(pdf, pageW-marginRight, y, "Page 1 of 1")
}

func setColor(pdf *gofpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}

func rightAlignedText(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}

func fmtDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// fmtCurrency renders "$1,250.00".
func fmtCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
