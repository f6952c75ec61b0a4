package services

import (
	"strings"

	"caterflow-backend/models"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePartial InvoiceStatus = "Partial"
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
)

// InvoiceRow is one client on the invoices page. Invoices are derived from
// records on every read; nothing is stored.
type InvoiceRow struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	FullName  string          `json:"fullName"`
	EventDate string          `json:"eventDate"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
	Status    InvoiceStatus   `json:"status"`
}

type InvoiceMetrics struct {
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	OutstandingCount int             `json:"outstandingCount"`
	TotalBilled      decimal.Decimal `json:"totalBilled"`
}

type InvoiceReport struct {
	Invoices []InvoiceRow   `json:"invoices"`
	Metrics  InvoiceMetrics `json:"metrics"`
}

// InvoiceNumber is the first segment of the record id upper-cased, or DRAFT
// for a record that has not been saved.
func InvoiceNumber(id string) string {
	if id == "" || id == "00000000-0000-0000-0000-000000000000" {
		return "DRAFT"
	}
	return strings.ToUpper(strings.SplitN(id, "-", 2)[0])
}

func SummarizeInvoice(c models.Customer) InvoiceRow {
	total := c.Price()
	paid := Collected(c.Data().PaymentPlan)
	balance := BalanceDue(total, paid)

	status := InvoiceUnpaid
	switch {
	case !balance.IsPositive() && total.IsPositive():
		status = InvoicePaid
	case paid.IsPositive():
		status = InvoicePartial
	}

	return InvoiceRow{
		ID:        c.ID.String(),
		Number:    InvoiceNumber(c.ID.String()),
		FullName:  c.FullName,
		EventDate: c.Data().EventDate,
		Total:     total,
		Paid:      paid,
		Balance:   balance,
		Status:    status,
	}
}

func SummarizeInvoices(records []models.Customer) InvoiceReport {
	report := InvoiceReport{
		Invoices: make([]InvoiceRow, 0, len(records)),
		Metrics: InvoiceMetrics{
			TotalOutstanding: decimal.Zero,
			TotalBilled:      decimal.Zero,
		},
	}
	for _, r := range records {
		row := SummarizeInvoice(r)
		report.Invoices = append(report.Invoices, row)
		report.Metrics.TotalBilled = report.Metrics.TotalBilled.Add(row.Total)
		if row.Balance.IsPositive() {
			report.Metrics.TotalOutstanding = report.Metrics.TotalOutstanding.Add(row.Balance)
			report.Metrics.OutstandingCount++
		}
	}
	return report
}
