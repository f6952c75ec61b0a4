package models

// ServiceData is the per-event configuration of a customer record.
// Menu lists reference catalog items by name, not id, so renaming a
// catalog item leaves existing menus untouched.
type ServiceData struct {
	EventDate           string               `json:"eventDate,omitempty"`
	EventTime           string               `json:"eventTime,omitempty"`
	GuestCount          LooseNumber          `json:"guestCount,omitempty"`
	PricePerHead        LooseNumber          `json:"pricePerHead,omitempty"`
	MenuEntrees         []string             `json:"menuEntrees,omitempty"`
	MenuSides           []string             `json:"menuSides,omitempty"`
	MenuDrinks          []string             `json:"menuDrinks,omitempty"`
	SelectedMenuItems   []string             `json:"selectedMenuItems,omitempty"`
	PaymentPlan         []PaymentInstallment `json:"paymentPlan,omitempty"`
	Timeline            []TimelineEntry      `json:"timeline,omitempty"`
	DietaryRestrictions string               `json:"dietaryRestrictions,omitempty"`
	KitchenNotes        string               `json:"kitchenNotes,omitempty"`
	SignedBy            string               `json:"signedBy,omitempty"`
	SignedAt            string               `json:"signedAt,omitempty"`
}

type PaymentInstallment struct {
	Date   string      `json:"date"`
	Amount LooseNumber `json:"amount"`
	Paid   bool        `json:"paid"`
}

type TimelineEntry struct {
	Time   string `json:"time"`
	Action string `json:"action"`
}

// Menu returns the item list for a category.
func (sd ServiceData) Menu(category MenuCategory) []string {
	switch category.Normalize() {
	case CategorySide:
		return sd.MenuSides
	case CategoryDrink:
		return sd.MenuDrinks
	default:
		return sd.MenuEntrees
	}
}

// SetMenu replaces the item list for a category.
func (sd *ServiceData) SetMenu(category MenuCategory, items []string) {
	switch category.Normalize() {
	case CategorySide:
		sd.MenuSides = items
	case CategoryDrink:
		sd.MenuDrinks = items
	default:
		sd.MenuEntrees = items
	}
}

// Clone returns a copy that shares no slices with sd.
func (sd ServiceData) Clone() ServiceData {
	out := sd
	out.MenuEntrees = append([]string(nil), sd.MenuEntrees...)
	out.MenuSides = append([]string(nil), sd.MenuSides...)
	out.MenuDrinks = append([]string(nil), sd.MenuDrinks...)
	out.SelectedMenuItems = append([]string(nil), sd.SelectedMenuItems...)
	out.PaymentPlan = append([]PaymentInstallment(nil), sd.PaymentPlan...)
	out.Timeline = append([]TimelineEntry(nil), sd.Timeline...)
	return out
}
