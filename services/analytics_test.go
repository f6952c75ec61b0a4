package services

import (
	"testing"
	"time"

	"caterflow-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedCustomer(price string, sd models.ServiceData) models.Customer {
	c := models.Customer{ID: uuid.New(), FullName: "Client", Status: models.StatusLead}
	if price != "" {
		c.JobPrice = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	c.SetData(sd)
	return c
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestTotalRevenue(t *testing.T) {
	t.Run("null and zero prices sum to zero", func(t *testing.T) {
		records := []models.Customer{
			pricedCustomer("", models.ServiceData{}),
			pricedCustomer("0", models.ServiceData{}),
			pricedCustomer("", models.ServiceData{EventDate: "2024-01-01"}),
		}
		assert.True(t, TotalRevenue(records).IsZero())
	})

	t.Run("sums non-null prices", func(t *testing.T) {
		records := []models.Customer{
			pricedCustomer("1200.50", models.ServiceData{}),
			pricedCustomer("", models.ServiceData{}),
			pricedCustomer("800", models.ServiceData{}),
		}
		assertDecimal(t, "2000.50", TotalRevenue(records))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.True(t, TotalRevenue(nil).IsZero())
	})
}

func TestRevenueInWindow(t *testing.T) {
	// Saturday; the week began Sunday 2024-06-09.
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

	today := pricedCustomer("100", models.ServiceData{EventDate: "2024-06-15"})
	yesterday := pricedCustomer("200", models.ServiceData{EventDate: "2024-06-14"})
	sunday := pricedCustomer("400", models.ServiceData{EventDate: "2024-06-09"})
	lastSaturday := pricedCustomer("800", models.ServiceData{EventDate: "2024-06-08"})
	lastMonth := pricedCustomer("1600", models.ServiceData{EventDate: "2024-05-31"})
	lastYear := pricedCustomer("3200", models.ServiceData{EventDate: "2023-12-31"})
	future := pricedCustomer("6400", models.ServiceData{EventDate: "2025-01-10"})

	records := []models.Customer{today, yesterday, sunday, lastSaturday, lastMonth, lastYear, future}

	tests := []struct {
		scope RevenueScope
		want  string
	}{
		{ScopeDay, "100"},
		{ScopeWeek, "7100"},
		{ScopeMonth, "7900"},
		{ScopeYear, "9500"},
		{ScopeAll, "12700"},
		{RevenueScope("decade"), "12700"},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			assertDecimal(t, tt.want, RevenueInWindow(records, tt.scope, now))
		})
	}

	t.Run("day includes today and excludes yesterday", func(t *testing.T) {
		got := RevenueInWindow([]models.Customer{today, yesterday}, ScopeDay, now)
		assertDecimal(t, "100", got)
	})

	t.Run("falls back to creation date", func(t *testing.T) {
		created := pricedCustomer("50", models.ServiceData{})
		created.CreatedAt = time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
		old := pricedCustomer("70", models.ServiceData{})
		old.CreatedAt = time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

		assertDecimal(t, "50", RevenueInWindow([]models.Customer{created, old}, ScopeDay, now))
		assertDecimal(t, "50", RevenueInWindow([]models.Customer{created, old}, ScopeMonth, now))
		assertDecimal(t, "120", RevenueInWindow([]models.Customer{created, old}, ScopeYear, now))
	})

	t.Run("records without any date are excluded", func(t *testing.T) {
		undated := pricedCustomer("999", models.ServiceData{})
		assert.True(t, RevenueInWindow([]models.Customer{undated}, ScopeAll, now).IsZero())
	})

	t.Run("window boundaries use now's location", func(t *testing.T) {
		loc := time.FixedZone("PDT", -7*3600)
		// 2024-06-15 02:00 UTC is still June 14 in PDT.
		created := pricedCustomer("10", models.ServiceData{})
		created.CreatedAt = time.Date(2024, time.June, 15, 2, 0, 0, 0, time.UTC)

		local := time.Date(2024, time.June, 14, 20, 0, 0, 0, loc)
		assertDecimal(t, "10", RevenueInWindow([]models.Customer{created}, ScopeDay, local))
	})
}

func TestCityFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    string
		ok      bool
	}{
		{"1 Main St, Miami, FL", "Miami", true},
		{"Springfield", "Springfield", true},
		{"Austin TX", "Austin", true},
		{"3 Elm Ave", "", false},
		{"12, 34", "", false},
		{"", "", false},
		{"Main St,", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			got, ok := CityFromAddress(tt.address)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopCities(t *testing.T) {
	withAddress := func(addr string) models.Customer {
		c := pricedCustomer("1", models.ServiceData{})
		c.Address = addr
		return c
	}

	t.Run("ranks by count and filters house numbers", func(t *testing.T) {
		records := []models.Customer{
			withAddress("1 Main St, Miami, FL"),
			withAddress("2 Oak Rd, Miami, FL"),
			withAddress("3 Elm Ave"),
		}
		got := TopCities(records, 0)
		require.Len(t, got, 1)
		assert.Equal(t, Count{Label: "Miami", Count: 2}, got[0])
	})

	t.Run("ties keep first-seen order and limit applies", func(t *testing.T) {
		records := []models.Customer{
			withAddress("a, Denver"),
			withAddress("b, Boston"),
			withAddress("c, Austin"),
			withAddress("d, Boston"),
			withAddress("e, Tampa"),
			withAddress("f, Reno"),
		}
		got := TopCities(records, 4)
		assert.Equal(t, []Count{
			{Label: "Boston", Count: 2},
			{Label: "Denver", Count: 1},
			{Label: "Austin", Count: 1},
			{Label: "Tampa", Count: 1},
		}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopCities(nil, 4))
	})
}

func TestPackageFromNotes(t *testing.T) {
	tests := []struct {
		notes string
		want  string
		ok    bool
	}{
		{"Gold Package: tacos and salsa bar", "Gold Package", true},
		{"BBQ Deluxe - brisket, ribs", "BBQ Deluxe", true},
		{"Brunch - Mimosas: extra", "Brunch", true},
		{"Just a package name", "Just a package name", true},
		{"A very long description of everything the client asked for: more", "", false},
		{": nothing before", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.notes, func(t *testing.T) {
			got, ok := PackageFromNotes(tt.notes)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopItems(t *testing.T) {
	tagged := pricedCustomer("1", models.ServiceData{SelectedMenuItems: []string{"Tacos", "Churros"}})
	tagged2 := pricedCustomer("1", models.ServiceData{SelectedMenuItems: []string{"Tacos"}})
	noted := pricedCustomer("1", models.ServiceData{})
	noted.JobNotes = "Gold Package: tacos and salsa"
	noted2 := pricedCustomer("1", models.ServiceData{})
	noted2.JobNotes = "Gold Package - repeat client"
	prose := pricedCustomer("1", models.ServiceData{})
	prose.JobNotes = "Client wants something elegant for about eighty guests"
	// Tags win over notes on the same record.
	both := pricedCustomer("1", models.ServiceData{SelectedMenuItems: []string{"Churros"}})
	both.JobNotes = "Silver Package: ignored"

	got := TopItems([]models.Customer{tagged, noted, tagged2, noted2, prose, both}, 5)
	assert.Equal(t, []Count{
		{Label: "Tacos", Count: 2},
		{Label: "Churros", Count: 2},
		{Label: "Gold Package", Count: 2},
	}, got)

	assert.Len(t, TopItems([]models.Customer{tagged, noted}, 1), 1)
	assert.Empty(t, TopItems(nil, 5))
}

func TestMonthlyTrends(t *testing.T) {
	march := pricedCustomer("1", models.ServiceData{EventDate: "2024-03-02"})
	jan := pricedCustomer("1", models.ServiceData{EventDate: "2024-01-20"})
	march2 := pricedCustomer("1", models.ServiceData{EventDate: "2023-03-11"})
	created := pricedCustomer("1", models.ServiceData{})
	created.CreatedAt = time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)
	undated := pricedCustomer("1", models.ServiceData{})

	got := MonthlyTrends([]models.Customer{march, jan, march2, created, undated}, time.UTC)
	assert.Equal(t, []Count{
		{Label: "Mar", Count: 2},
		{Label: "Jan", Count: 1},
		{Label: "Jul", Count: 1},
	}, got)

	assert.Empty(t, MonthlyTrends(nil, time.UTC))
}

func TestWithPrice(t *testing.T) {
	records := []models.Customer{
		pricedCustomer("10", models.ServiceData{}),
		pricedCustomer("", models.ServiceData{}),
		pricedCustomer("0", models.ServiceData{}),
	}
	assert.Len(t, WithPrice(records), 2)
}

func TestPipelineCountsAndWinRate(t *testing.T) {
	now := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	withStatus := func(s models.PipelineStatus, date string) models.Customer {
		c := pricedCustomer("1", models.ServiceData{EventDate: date})
		c.Status = s
		return c
	}
	records := []models.Customer{
		withStatus("", "2024-06-15"),
		withStatus(models.StatusLead, ""),
		withStatus(models.StatusTasting, "2024-06-15"),
		withStatus(models.StatusProposal, "2024-07-01"),
		withStatus(models.StatusSold, ""),
		withStatus(models.StatusSold, ""),
	}

	assert.Equal(t, PipelineStats{
		Clients:     6,
		TodayEvents: 2,
		Leads:       2,
		Tastings:    1,
		Proposals:   1,
		Sold:        2,
	}, PipelineCounts(records, now))

	assert.Equal(t, 33, WinRate(records))
	assert.Equal(t, 0, WinRate(nil))
	assert.Equal(t, PipelineStats{}, PipelineCounts(nil, now))
}

func TestEventsInMonth(t *testing.T) {
	a := pricedCustomer("1", models.ServiceData{EventDate: "2024-06-03", EventTime: "17:00"})
	b := pricedCustomer("1", models.ServiceData{EventDate: "2024-06-03"})
	c := pricedCustomer("1", models.ServiceData{EventDate: "2024-06-28"})
	other := pricedCustomer("1", models.ServiceData{EventDate: "2024-07-03"})
	none := pricedCustomer("1", models.ServiceData{})

	days := EventsInMonth([]models.Customer{a, b, c, other, none}, 2024, time.June, time.UTC)
	require.Len(t, days, 2)
	require.Len(t, days[3], 2)
	assert.Equal(t, a.ID.String(), days[3][0].ID)
	assert.Equal(t, "17:00", days[3][0].EventTime)
	assert.Equal(t, models.StatusLead, days[3][1].Status)
	assert.Len(t, days[28], 1)
}
