// services/documents.go
package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"caterflow-backend/models"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

type DocumentKind string

const (
	DocumentInvoice   DocumentKind = "invoice"
	DocumentKitchen   DocumentKind = "kitchen"
	DocumentRunOfShow DocumentKind = "run-of-show"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentInvoice, DocumentKitchen, DocumentRunOfShow:
		return true
	}
	return false
}

const (
	defaultBusinessName = "CATERING SERVICE"
	placeholderTBD      = "TBD"
	placeholderMenu     = "Custom Menu"
	placeholderNotes    = "No custom notes."
)

// MenuSection is one non-empty category of a record's menu.
type MenuSection struct {
	Title string
	Items []string
}

func (m MenuSection) Joined() string {
	return strings.Join(m.Items, ", ")
}

type InvoiceView struct {
	Number           string
	Date             string
	BusinessName     string
	BusinessLocation string
	ClientName       string
	Address          string
	EventDate        string
	Menu             []MenuSection
	MenuFallback     string
	Quantity         decimal.Decimal
	Rate             decimal.Decimal
	LineAmount       decimal.Decimal
	Total            decimal.Decimal
	Paid             decimal.Decimal
	Balance          decimal.Decimal
}

type KitchenSheetView struct {
	EventDate    string
	DietaryAlert string
	ClientName   string
	Headcount    string
	ServiceTime  string
	Menu         []MenuSection
	Notes        string
	Instructions string
}

type RunOfShowView struct {
	ClientName string
	Entries    []models.TimelineEntry
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// menuSections lists the record's categories in display order, omitting empty ones.
func menuSections(sd models.ServiceData, upper bool) []MenuSection {
	titles := []struct {
		category models.MenuCategory
		title    string
	}{
		{models.CategoryEntree, "Entrees"},
		{models.CategorySide, "Sides"},
		{models.CategoryDrink, "Drinks"},
	}
	var out []MenuSection
	for _, t := range titles {
		items := sd.Menu(t.category)
		if len(items) == 0 {
			continue
		}
		title := t.title
		if upper {
			title = strings.ToUpper(title)
		}
		out = append(out, MenuSection{Title: title, Items: append([]string(nil), items...)})
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// BuildInvoice derives the invoice for a record snapshot. The record is not modified.
func BuildInvoice(c models.Customer, profile models.BusinessProfile, now time.Time) InvoiceView {
	sd := c.Data()
	guests := sd.GuestCount.Decimal()
	rate := sd.PricePerHead.Decimal()
	total := c.Price()
	paid := Collected(sd.PaymentPlan)

	view := InvoiceView{
		Number:           InvoiceNumber(c.ID.String()),
		Date:             now.Format("1/2/2006"),
		BusinessName:     orDefault(profile.BusinessName, defaultBusinessName),
		BusinessLocation: joinNonEmpty(profile.City, profile.State),
		ClientName:       c.FullName,
		Address:          c.Address,
		EventDate:        orDefault(sd.EventDate, placeholderTBD),
		Menu:             menuSections(sd, false),
		Quantity:         guests,
		Rate:             rate,
		LineAmount:       guests.Mul(rate),
		Total:            total,
		Paid:             paid,
		Balance:          BalanceDue(total, paid),
	}
	if len(view.Menu) == 0 {
		view.MenuFallback = placeholderMenu
	}
	return view
}

func BuildKitchenSheet(c models.Customer) KitchenSheetView {
	sd := c.Data()
	return KitchenSheetView{
		EventDate:    orDefault(sd.EventDate, placeholderTBD),
		DietaryAlert: strings.TrimSpace(sd.DietaryRestrictions),
		ClientName:   c.FullName,
		Headcount:    orDefault(string(sd.GuestCount), "0"),
		ServiceTime:  orDefault(sd.EventTime, placeholderTBD),
		Menu:         menuSections(sd, true),
		Notes:        orDefault(c.JobNotes, placeholderNotes),
		Instructions: strings.TrimSpace(sd.KitchenNotes),
	}
}

// BuildRunOfShow sorts a copy of the timeline by its HH:MM strings.
func BuildRunOfShow(c models.Customer) RunOfShowView {
	entries := append([]models.TimelineEntry(nil), c.Data().Timeline...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
	return RunOfShowView{ClientName: c.FullName, Entries: entries}
}

// FormatMoney renders an amount as $1,234.50, with a leading minus for negatives.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), frac)
}

// DocumentRenderer turns document views into printable HTML pages.
type DocumentRenderer struct {
	templates *template.Template
}

func NewDocumentRenderer() (*DocumentRenderer, error) {
	funcs := template.FuncMap{
		"money":  FormatMoney,
		"number": func(d decimal.Decimal) string { return d.String() },
	}
	tmpl, err := template.New("documents").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse document templates: %w", err)
	}
	return &DocumentRenderer{templates: tmpl}, nil
}

type page struct {
	AutoPrint bool
	View      any
}

// Render writes one document for the record. autoPrint opens the browser print
// dialog once the page loads.
func (r *DocumentRenderer) Render(w io.Writer, kind DocumentKind, c models.Customer, profile models.BusinessProfile, now time.Time, autoPrint bool) error {
	var view any
	switch kind {
	case DocumentInvoice:
		view = BuildInvoice(c, profile, now)
	case DocumentKitchen:
		view = BuildKitchenSheet(c)
	case DocumentRunOfShow:
		view = BuildRunOfShow(c)
	default:
		return fmt.Errorf("unknown document kind %q", kind)
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(kind)+".html", page{AutoPrint: autoPrint, View: view}); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
