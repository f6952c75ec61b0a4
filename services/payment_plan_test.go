package services

import (
	"testing"

	"caterflow-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizePlan(t *testing.T) {
	t.Run("grows with blank installments", func(t *testing.T) {
		plan, err := ResizePlan(nil, 3)
		require.NoError(t, err)
		require.Len(t, plan, 3)
		for _, inst := range plan {
			assert.Equal(t, models.PaymentInstallment{}, inst)
		}
	})

	t.Run("shrinks from the tail keeping the head unchanged", func(t *testing.T) {
		plan, err := ResizePlan(nil, 3)
		require.NoError(t, err)
		plan[0].Date = "2024-07-01"
		plan[0].Amount = "500"
		plan[0].Paid = true
		plan[2].Amount = "250"

		shrunk, err := ResizePlan(plan, 1)
		require.NoError(t, err)
		assert.Equal(t, []models.PaymentInstallment{
			{Date: "2024-07-01", Amount: "500", Paid: true},
		}, shrunk)
	})

	t.Run("shrinking then growing does not restore data", func(t *testing.T) {
		plan := []models.PaymentInstallment{{Amount: "1"}, {Amount: "2"}}
		shrunk, err := ResizePlan(plan, 1)
		require.NoError(t, err)
		regrown, err := ResizePlan(shrunk, 2)
		require.NoError(t, err)
		assert.Equal(t, models.LooseNumber(""), regrown[1].Amount)
	})

	t.Run("does not modify input", func(t *testing.T) {
		plan := []models.PaymentInstallment{{Amount: "1"}, {Amount: "2"}}
		_, err := ResizePlan(plan, 1)
		require.NoError(t, err)
		assert.Len(t, plan, 2)
	})

	t.Run("rejects out of range sizes", func(t *testing.T) {
		_, err := ResizePlan(nil, 5)
		assert.ErrorIs(t, err, ErrPlanSize)
		_, err = ResizePlan(nil, -1)
		assert.ErrorIs(t, err, ErrPlanSize)
	})
}

func TestCheckServiceData(t *testing.T) {
	assert.NoError(t, CheckServiceData(models.ServiceData{}))
	assert.NoError(t, CheckServiceData(models.ServiceData{
		PaymentPlan: make([]models.PaymentInstallment, MaxInstallments),
		Timeline:    []models.TimelineEntry{{Time: "07:15"}, {Time: "", Action: "TBD"}},
	}))

	err := CheckServiceData(models.ServiceData{PaymentPlan: make([]models.PaymentInstallment, MaxInstallments+1)})
	assert.ErrorIs(t, err, ErrPlanSize)

	err = CheckServiceData(models.ServiceData{Timeline: []models.TimelineEntry{{Time: "07:15"}, {Time: "9am"}}})
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestSetInstallmentField(t *testing.T) {
	plan := []models.PaymentInstallment{{}, {}}

	updated, err := SetInstallmentField(plan, 1, "amount", "12.5x")
	require.NoError(t, err)
	assert.Equal(t, models.LooseNumber("12.5x"), updated[1].Amount)
	assert.Equal(t, models.LooseNumber(""), plan[1].Amount)

	updated, err = SetInstallmentField(updated, 1, "paid", "true")
	require.NoError(t, err)
	assert.True(t, updated[1].Paid)

	updated, err = SetInstallmentField(updated, 0, "date", "2024-08-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-08-01", updated[0].Date)

	_, err = SetInstallmentField(updated, 2, "date", "x")
	assert.ErrorIs(t, err, ErrInstallmentIndex)

	_, err = SetInstallmentField(updated, 0, "memo", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = SetInstallmentField(updated, 0, "paid", "maybe")
	assert.Error(t, err)
}

func TestCollected(t *testing.T) {
	plan := []models.PaymentInstallment{
		{Amount: "100", Paid: true},
		{Amount: "250.25", Paid: true},
		{Amount: "abc", Paid: true},
		{Amount: "900", Paid: false},
	}
	assertDecimal(t, "350.25", Collected(plan))
	assert.True(t, Collected(nil).IsZero())
}

func TestPercentPaid(t *testing.T) {
	d := decimal.NewFromInt
	assert.Equal(t, 25, PercentPaid(d(50), d(200)))
	assert.Equal(t, 100, PercentPaid(d(250), d(200)))
	assert.Equal(t, 0, PercentPaid(d(0), d(0)))
	assert.Equal(t, 0, PercentPaid(d(10), d(-5)))
	assert.Equal(t, 33, PercentPaid(d(1), d(3)))
	assert.Equal(t, 67, PercentPaid(d(2), d(3)))
}

func TestBalanceDue(t *testing.T) {
	assertDecimal(t, "150", BalanceDue(decimal.NewFromInt(200), decimal.NewFromInt(50)))
	assertDecimal(t, "-50", BalanceDue(decimal.NewFromInt(200), decimal.NewFromInt(250)))
}

func TestUpdateGuestPriceAndRecalculate(t *testing.T) {
	t.Run("recalculation wins over a manual override", func(t *testing.T) {
		sd := models.ServiceData{}
		price := decimal.NullDecimal{}

		sd, price, err := UpdateGuestPriceAndRecalculate(sd, "guestCount", "100", price)
		require.NoError(t, err)
		assert.False(t, price.Valid)

		sd, price, err = UpdateGuestPriceAndRecalculate(sd, "pricePerHead", "20", price)
		require.NoError(t, err)
		require.True(t, price.Valid)
		assertDecimal(t, "2000", price.Decimal)

		price = decimal.NewNullDecimal(decimal.NewFromInt(1500))

		sd, price, err = UpdateGuestPriceAndRecalculate(sd, "guestCount", "110", price)
		require.NoError(t, err)
		assertDecimal(t, "2200", price.Decimal)
		assert.Equal(t, models.LooseNumber("110"), sd.GuestCount)
	})

	t.Run("non-positive input leaves the price alone", func(t *testing.T) {
		sd := models.ServiceData{GuestCount: "100", PricePerHead: "20"}
		current := decimal.NewNullDecimal(decimal.NewFromInt(1500))

		out, price, err := UpdateGuestPriceAndRecalculate(sd, "guestCount", "", current)
		require.NoError(t, err)
		assertDecimal(t, "1500", price.Decimal)
		assert.Equal(t, models.LooseNumber(""), out.GuestCount)

		_, price, err = UpdateGuestPriceAndRecalculate(sd, "pricePerHead", "abc", current)
		require.NoError(t, err)
		assertDecimal(t, "1500", price.Decimal)

		_, price, err = UpdateGuestPriceAndRecalculate(sd, "pricePerHead", "-3", current)
		require.NoError(t, err)
		assertDecimal(t, "1500", price.Decimal)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := UpdateGuestPriceAndRecalculate(models.ServiceData{}, "jobPrice", "1", decimal.NullDecimal{})
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		sd := models.ServiceData{GuestCount: "10", MenuEntrees: []string{"Tacos"}}
		_, _, err := UpdateGuestPriceAndRecalculate(sd, "guestCount", "20", decimal.NullDecimal{})
		require.NoError(t, err)
		assert.Equal(t, models.LooseNumber("10"), sd.GuestCount)
	})
}

func TestSummarizePayments(t *testing.T) {
	c := pricedCustomer("2000", models.ServiceData{PaymentPlan: []models.PaymentInstallment{
		{Amount: "500", Paid: true},
		{Amount: "500", Paid: false},
	}})
	summary := SummarizePayments(c)
	assertDecimal(t, "2000", summary.Total)
	assertDecimal(t, "500", summary.Collected)
	assertDecimal(t, "1500", summary.Balance)
	assert.Equal(t, 25, summary.PercentPaid)
	assert.Equal(t, 2, summary.Installments)
}

func TestMenuEdits(t *testing.T) {
	sd := models.ServiceData{}
	sd = AddMenuItem(sd, models.CategoryEntree, "Tacos")
	sd = AddMenuItem(sd, models.CategoryEntree, "Tacos")
	sd = AddMenuItem(sd, models.CategoryEntree, "  ")
	sd = AddMenuItem(sd, models.CategoryDrink, "Horchata")
	sd = AddMenuItem(sd, "", "Enchiladas")

	assert.Equal(t, []string{"Tacos", "Enchiladas"}, sd.MenuEntrees)
	assert.Equal(t, []string{"Horchata"}, sd.MenuDrinks)
	assert.Empty(t, sd.MenuSides)

	removed := RemoveMenuItem(sd, models.CategoryEntree, "Tacos")
	assert.Equal(t, []string{"Enchiladas"}, removed.MenuEntrees)
	assert.Equal(t, []string{"Tacos", "Enchiladas"}, sd.MenuEntrees)
}

func TestTimelineEdits(t *testing.T) {
	sd, err := AddTimelineEntry(models.ServiceData{}, models.TimelineEntry{Time: "14:00", Action: "Service"})
	require.NoError(t, err)
	sd, err = AddTimelineEntry(sd, models.TimelineEntry{})
	require.NoError(t, err)
	require.Len(t, sd.Timeline, 2)

	_, err = AddTimelineEntry(sd, models.TimelineEntry{Time: "2pm"})
	assert.ErrorIs(t, err, ErrInvalidTime)

	sd, err = UpdateTimelineEntry(sd, 1, "time", "09:30")
	require.NoError(t, err)
	sd, err = UpdateTimelineEntry(sd, 1, "action", "Load van")
	require.NoError(t, err)
	assert.Equal(t, models.TimelineEntry{Time: "09:30", Action: "Load van"}, sd.Timeline[1])

	_, err = UpdateTimelineEntry(sd, 1, "time", "9:30")
	assert.ErrorIs(t, err, ErrInvalidTime)
	_, err = UpdateTimelineEntry(sd, 5, "action", "x")
	assert.ErrorIs(t, err, ErrTimelineIndex)
	_, err = UpdateTimelineEntry(sd, 0, "owner", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	removed, err := RemoveTimelineEntry(sd, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.TimelineEntry{{Time: "09:30", Action: "Load van"}}, removed.Timeline)
	assert.Len(t, sd.Timeline, 2)

	_, err = RemoveTimelineEntry(sd, -1)
	assert.ErrorIs(t, err, ErrTimelineIndex)
}
