package services

import (
	"testing"

	"caterflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "3F2A9C1B", InvoiceNumber("3f2a9c1b-0d4e-4c1a-9b2f-6a7e8d9c0b1a"))
	assert.Equal(t, "DRAFT", InvoiceNumber(""))
	assert.Equal(t, "DRAFT", InvoiceNumber(uuid.Nil.String()))
}

func TestSummarizeInvoice(t *testing.T) {
	plan := func(paid ...bool) models.ServiceData {
		sd := models.ServiceData{}
		for _, p := range paid {
			sd.PaymentPlan = append(sd.PaymentPlan, models.PaymentInstallment{Amount: "500", Paid: p})
		}
		return sd
	}

	tests := []struct {
		name    string
		record  models.Customer
		status  InvoiceStatus
		balance string
	}{
		{"fully paid", pricedCustomer("1000", plan(true, true)), InvoicePaid, "0"},
		{"overpaid", pricedCustomer("800", plan(true, true)), InvoicePaid, "-200"},
		{"part paid", pricedCustomer("1000", plan(true, false)), InvoicePartial, "500"},
		{"nothing paid", pricedCustomer("1000", plan(false, false)), InvoiceUnpaid, "1000"},
		{"no price", pricedCustomer("", plan()), InvoiceUnpaid, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := SummarizeInvoice(tt.record)
			assert.Equal(t, tt.status, row.Status)
			assertDecimal(t, tt.balance, row.Balance)
			assert.Equal(t, InvoiceNumber(tt.record.ID.String()), row.Number)
		})
	}
}

func TestSummarizeInvoices(t *testing.T) {
	records := []models.Customer{
		pricedCustomer("1000", models.ServiceData{PaymentPlan: []models.PaymentInstallment{{Amount: "400", Paid: true}}}),
		pricedCustomer("500", models.ServiceData{}),
		pricedCustomer("300", models.ServiceData{PaymentPlan: []models.PaymentInstallment{{Amount: "400", Paid: true}}}),
	}

	report := SummarizeInvoices(records)
	require.Len(t, report.Invoices, 3)
	assertDecimal(t, "1800", report.Metrics.TotalBilled)
	assertDecimal(t, "1100", report.Metrics.TotalOutstanding)
	assert.Equal(t, 2, report.Metrics.OutstandingCount)

	empty := SummarizeInvoices(nil)
	assert.Empty(t, empty.Invoices)
	assert.True(t, empty.Metrics.TotalBilled.IsZero())
}
