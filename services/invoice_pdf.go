package services

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// RenderInvoicePDF writes the invoice view as a single A4 page.
func RenderInvoicePDF(w io.Writer, view InvoiceView) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("INVOICE #%s", view.Number), true)
	pdf.AddPage()

	// Header: business on the left, invoice number and date on the right.
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(120, 10, tr(view.BusinessName), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(70, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(120, 6, tr(view.BusinessLocation), "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 6, "#"+view.Number, "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 6, "Date: "+view.Date, "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(148, 163, 184)
	pdf.Cell(40, 6, "BILL TO:")
	pdf.Ln(6)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(190, 7, tr(view.ClientName))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 6, tr(view.Address))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.Cell(190, 6, tr("Event: "+view.EventDate))
	pdf.Ln(12)

	pdf.SetTextColor(100, 116, 139)
	pdf.SetFillColor(248, 250, 252)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(110, 8, "SERVICE DETAILS", "B", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "QTY", "B", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "RATE", "B", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "AMOUNT", "B", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(110, 8, "Event Service Package", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(20, 8, view.Quantity.String(), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, FormatMoney(view.Rate), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, FormatMoney(view.LineAmount), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(102, 102, 102)
	if len(view.Menu) == 0 {
		pdf.MultiCell(110, 5, tr(view.MenuFallback), "", "L", false)
	}
	for _, section := range view.Menu {
		pdf.MultiCell(110, 5, tr(section.Title+": "+section.Joined()), "", "L", false)
	}
	pdf.Ln(10)

	totalRow := func(label, amount string, size float64) {
		pdf.SetFont("Arial", "B", size)
		pdf.CellFormat(130, 8, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, amount, "", 1, "R", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	totalRow("Total", FormatMoney(view.Total), 14)
	pdf.SetTextColor(22, 163, 74)
	totalRow("Paid", "-"+FormatMoney(view.Paid), 11)
	pdf.SetTextColor(220, 38, 38)
	totalRow("Balance", FormatMoney(view.Balance), 12)

	pdf.Ln(20)
	pdf.SetTextColor(148, 163, 184)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 6, "Thank you for your business.", "T", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build invoice pdf: %w", err)
	}
	return pdf.Output(w)
}
