// services/payment_plan.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"caterflow-backend/models"
	"caterflow-backend/utils"

	"github.com/shopspring/decimal"
)

const MaxInstallments = 4

var (
	ErrPlanSize         = errors.New("payment plan must have between 0 and 4 installments")
	ErrInstallmentIndex = errors.New("installment index out of range")
	ErrTimelineIndex    = errors.New("timeline index out of range")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidTime      = errors.New("time must be HH:MM")
)

var hundred = decimal.NewFromInt(100)

// ResizePlan grows the plan with blank installments or truncates it from the tail.
// The input slice is never modified.
func ResizePlan(plan []models.PaymentInstallment, n int) ([]models.PaymentInstallment, error) {
	if n < 0 || n > MaxInstallments {
		return nil, ErrPlanSize
	}
	out := make([]models.PaymentInstallment, n)
	copy(out, plan)
	return out, nil
}

// SetInstallmentField replaces one field of one installment. Totals are derived, not stored.
func SetInstallmentField(plan []models.PaymentInstallment, index int, field, value string) ([]models.PaymentInstallment, error) {
	if index < 0 || index >= len(plan) {
		return nil, ErrInstallmentIndex
	}
	out := append([]models.PaymentInstallment(nil), plan...)
	switch field {
	case "date":
		out[index].Date = value
	case "amount":
		out[index].Amount = models.LooseNumber(value)
	case "paid":
		paid, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("paid must be true or false: %w", err)
		}
		out[index].Paid = paid
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// Collected sums the amounts of paid installments.
func Collected(plan []models.PaymentInstallment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range plan {
		if inst.Paid {
			total = total.Add(inst.Amount.Decimal())
		}
	}
	return total
}

// PercentPaid is collected/total as a rounded percentage capped at 100.
func PercentPaid(collected, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	pct := collected.Div(total).Mul(hundred).Round(0)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return int(pct.IntPart())
}

// BalanceDue may be negative when the client overpaid.
func BalanceDue(total, collected decimal.Decimal) decimal.Decimal {
	return total.Sub(collected)
}

// UpdateGuestPriceAndRecalculate stores a guestCount or pricePerHead edit. When
// both values are positive the returned job price is their product; otherwise
// currentJobPrice is returned unchanged. A manual price is not sticky: the next
// guest or rate edit with both inputs positive overwrites it.
func UpdateGuestPriceAndRecalculate(sd models.ServiceData, field, value string, currentJobPrice decimal.NullDecimal) (models.ServiceData, decimal.NullDecimal, error) {
	out := sd.Clone()
	switch field {
	case "guestCount":
		out.GuestCount = models.LooseNumber(value)
	case "pricePerHead":
		out.PricePerHead = models.LooseNumber(value)
	default:
		return sd, currentJobPrice, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	guests := out.GuestCount.Decimal()
	rate := out.PricePerHead.Decimal()
	if guests.IsPositive() && rate.IsPositive() {
		return out, decimal.NewNullDecimal(guests.Mul(rate)), nil
	}
	return out, currentJobPrice, nil
}

// PaymentSummary is the derived money state of one record.
type PaymentSummary struct {
	Total        decimal.Decimal `json:"total"`
	Collected    decimal.Decimal `json:"collected"`
	Balance      decimal.Decimal `json:"balance"`
	PercentPaid  int             `json:"percentPaid"`
	Installments int             `json:"installments"`
}

func SummarizePayments(c models.Customer) PaymentSummary {
	plan := c.Data().PaymentPlan
	total := c.Price()
	collected := Collected(plan)
	return PaymentSummary{
		Total:        total,
		Collected:    collected,
		Balance:      BalanceDue(total, collected),
		PercentPaid:  PercentPaid(collected, total),
		Installments: len(plan),
	}
}

// AddMenuItem appends name to a category list unless it is blank or already present.
func AddMenuItem(sd models.ServiceData, category models.MenuCategory, name string) models.ServiceData {
	out := sd.Clone()
	name = strings.TrimSpace(name)
	if name == "" {
		return out
	}
	items := out.Menu(category)
	for _, item := range items {
		if item == name {
			return out
		}
	}
	out.SetMenu(category, append(items, name))
	return out
}

func RemoveMenuItem(sd models.ServiceData, category models.MenuCategory, name string) models.ServiceData {
	out := sd.Clone()
	items := out.Menu(category)
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item != name {
			kept = append(kept, item)
		}
	}
	out.SetMenu(category, kept)
	return out
}

func AddTimelineEntry(sd models.ServiceData, entry models.TimelineEntry) (models.ServiceData, error) {
	if !validTime(entry.Time) {
		return sd, ErrInvalidTime
	}
	out := sd.Clone()
	out.Timeline = append(out.Timeline, entry)
	return out, nil
}

func UpdateTimelineEntry(sd models.ServiceData, index int, field, value string) (models.ServiceData, error) {
	if index < 0 || index >= len(sd.Timeline) {
		return sd, ErrTimelineIndex
	}
	out := sd.Clone()
	switch field {
	case "time":
		if !validTime(value) {
			return sd, ErrInvalidTime
		}
		out.Timeline[index].Time = value
	case "action":
		out.Timeline[index].Action = value
	default:
		return sd, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

func RemoveTimelineEntry(sd models.ServiceData, index int) (models.ServiceData, error) {
	if index < 0 || index >= len(sd.Timeline) {
		return sd, ErrTimelineIndex
	}
	out := sd.Clone()
	out.Timeline = append(out.Timeline[:index], out.Timeline[index+1:]...)
	return out, nil
}

// CheckServiceData applies the plan size and timeline time rules to a
// configuration that replaces the stored one as a whole.
func CheckServiceData(sd models.ServiceData) error {
	if len(sd.PaymentPlan) > MaxInstallments {
		return ErrPlanSize
	}
	for _, entry := range sd.Timeline {
		if !validTime(entry.Time) {
			return ErrInvalidTime
		}
	}
	return nil
}

// validTime allows a blank time so rows can be added before they are filled in.
func validTime(s string) bool {
	return s == "" || utils.ValidClock(s)
}
