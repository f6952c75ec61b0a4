package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"caterflow-backend/models"
	"caterflow-backend/utils"

	"github.com/shopspring/decimal"
)

// RevenueScope selects the time window for dashboard revenue.
type RevenueScope string

const (
	ScopeAll   RevenueScope = "all"
	ScopeYear  RevenueScope = "year"
	ScopeMonth RevenueScope = "month"
	ScopeWeek  RevenueScope = "week"
	ScopeDay   RevenueScope = "day"
)

func (s RevenueScope) Valid() bool {
	switch s {
	case ScopeAll, ScopeYear, ScopeMonth, ScopeWeek, ScopeDay:
		return true
	}
	return false
}

// Label is the dashboard caption for a scope.
func (s RevenueScope) Label() string {
	switch s {
	case ScopeYear:
		return "This Year"
	case ScopeMonth:
		return "This Month"
	case ScopeWeek:
		return "This Week"
	case ScopeDay:
		return "Today"
	default:
		return "All Time"
	}
}

// Count is one ranked bucket of an analytics breakdown.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

const (
	defaultCityLimit = 4
	defaultItemLimit = 5
	maxPackageName   = 30
)

// TotalRevenue sums the job price of every priced record.
func TotalRevenue(records []models.Customer) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Price())
	}
	return total
}

// WithPrice keeps the records that carry a job price; analytics only count real jobs.
func WithPrice(records []models.Customer) []models.Customer {
	out := make([]models.Customer, 0, len(records))
	for _, r := range records {
		if r.JobPrice.Valid {
			out = append(out, r)
		}
	}
	return out
}

// comparisonDate returns the raw date string used for windowing: the event
// date when set, otherwise the creation timestamp.
func comparisonDate(r models.Customer, loc *time.Location) (string, bool) {
	if d := strings.TrimSpace(r.Data().EventDate); d != "" {
		return d, true
	}
	if r.CreatedAt.IsZero() {
		return "", false
	}
	return r.CreatedAt.In(loc).Format(time.RFC3339), true
}

// RevenueInWindow sums job prices of records whose comparison date falls in scope.
// Records without a usable date are excluded. Year, month and week are open-ended
// lower bounds, so future events count toward the current window.
func RevenueInWindow(records []models.Customer, scope RevenueScope, now time.Time) decimal.Decimal {
	loc := now.Location()
	today := now.Format(utils.DateLayout)

	var start time.Time
	switch scope {
	case ScopeYear:
		start = utils.BeginningOfYear(now)
	case ScopeMonth:
		start = utils.BeginningOfMonth(now)
	case ScopeWeek:
		start = utils.BeginningOfWeek(now)
	}

	total := decimal.Zero
	for _, r := range records {
		raw, ok := comparisonDate(r, loc)
		if !ok {
			continue
		}

		switch scope {
		case ScopeDay:
			if !strings.HasPrefix(raw, today) {
				continue
			}
		case ScopeYear, ScopeMonth, ScopeWeek:
			date, ok := utils.ParseDate(raw, loc)
			if !ok || date.Before(start) {
				continue
			}
		}
		total = total.Add(r.Price())
	}
	return total
}

// counter tallies labels keeping first-seen order for stable tie breaking.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) list() []Count {
	out := make([]Count, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, Count{Label: label, Count: c.counts[label]})
	}
	return out
}

func (c *counter) top(limit int) []Count {
	out := c.list()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CityFromAddress is a heuristic: the second comma-separated segment when the
// address has commas, otherwise the first word. Purely numeric candidates
// (house numbers) and empty ones are rejected.
func CityFromAddress(address string) (string, bool) {
	if strings.TrimSpace(address) == "" {
		return "", false
	}

	city := strings.SplitN(address, " ", 2)[0]
	if strings.Contains(address, ",") {
		parts := strings.Split(address, ",")
		city = strings.TrimSpace(parts[1])
	}

	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return "", false
	}
	return city, true
}

// TopCities ranks the cities guessed from record addresses.
func TopCities(records []models.Customer, limit int) []Count {
	if limit <= 0 {
		limit = defaultCityLimit
	}
	c := newCounter()
	for _, r := range records {
		if city, ok := CityFromAddress(r.Address); ok {
			c.add(city)
		}
	}
	return c.top(limit)
}

// PackageFromNotes is a heuristic for records predating structured menus: the
// text before the first ": " or " - " is taken as a package name, unless it is
// long enough to be prose.
func PackageFromNotes(notes string) (string, bool) {
	cut := len(notes)
	for _, sep := range []string{": ", " - "} {
		if i := strings.Index(notes, sep); i >= 0 && i < cut {
			cut = i
		}
	}
	name := strings.TrimSpace(notes[:cut])
	if name == "" || utf8.RuneCountInString(name) >= maxPackageName {
		return "", false
	}
	return name, true
}

// TopItems ranks menu tags, falling back to package names parsed from notes.
func TopItems(records []models.Customer, limit int) []Count {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	c := newCounter()
	for _, r := range records {
		if tags := r.Data().SelectedMenuItems; len(tags) > 0 {
			for _, tag := range tags {
				c.add(tag)
			}
			continue
		}
		if r.JobNotes == "" {
			continue
		}
		if name, ok := PackageFromNotes(r.JobNotes); ok {
			c.add(name)
		}
	}
	return c.top(limit)
}

// MonthlyTrends counts records per short month name in first-seen order.
func MonthlyTrends(records []models.Customer, loc *time.Location) []Count {
	if loc == nil {
		loc = time.Local
	}
	c := newCounter()
	for _, r := range records {
		raw, ok := comparisonDate(r, loc)
		if !ok {
			continue
		}
		date, ok := utils.ParseDate(raw, loc)
		if !ok {
			continue
		}
		c.add(date.Format("Jan"))
	}
	return c.list()
}

// PipelineStats are the dashboard stage counters.
type PipelineStats struct {
	Clients     int `json:"clients"`
	TodayEvents int `json:"todayEvents"`
	Leads       int `json:"leads"`
	Tastings    int `json:"tastings"`
	Proposals   int `json:"proposals"`
	Sold        int `json:"sold"`
}

// PipelineCounts tallies records by stage and today's events.
func PipelineCounts(records []models.Customer, now time.Time) PipelineStats {
	today := now.Format(utils.DateLayout)
	counts := PipelineStats{Clients: len(records)}
	for _, r := range records {
		if r.Data().EventDate == today {
			counts.TodayEvents++
		}
		switch r.Status.Normalize() {
		case models.StatusLead:
			counts.Leads++
		case models.StatusTasting:
			counts.Tastings++
		case models.StatusProposal:
			counts.Proposals++
		case models.StatusSold:
			counts.Sold++
		}
	}
	return counts
}

// WinRate is the rounded percentage of records that reached sold.
func WinRate(records []models.Customer) int {
	if len(records) == 0 {
		return 0
	}
	sold := 0
	for _, r := range records {
		if r.Status == models.StatusSold {
			sold++
		}
	}
	return int(math.Round(float64(sold) / float64(len(records)) * 100))
}

// CalendarEvent is a record placed on the event calendar.
type CalendarEvent struct {
	ID        string                `json:"id"`
	FullName  string                `json:"fullName"`
	Status    models.PipelineStatus `json:"status"`
	Address   string                `json:"address"`
	EventDate string                `json:"eventDate"`
	EventTime string                `json:"eventTime,omitempty"`
}

// EventsInMonth groups records with an event date in the month by day of month.
func EventsInMonth(records []models.Customer, year int, month time.Month, loc *time.Location) map[int][]CalendarEvent {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[int][]CalendarEvent)
	for _, r := range records {
		sd := r.Data()
		if sd.EventDate == "" {
			continue
		}
		date, ok := utils.ParseDate(sd.EventDate, loc)
		if !ok || date.Year() != year || date.Month() != month {
			continue
		}
		days[date.Day()] = append(days[date.Day()], CalendarEvent{
			ID:        r.ID.String(),
			FullName:  r.FullName,
			Status:    r.Status.Normalize(),
			Address:   r.Address,
			EventDate: sd.EventDate,
			EventTime: sd.EventTime,
		})
	}
	return days
}
