package models

// PipelineStatus is the sales stage of a customer record.
type PipelineStatus string

const (
	StatusLead     PipelineStatus = "lead"
	StatusTasting  PipelineStatus = "tasting"
	StatusProposal PipelineStatus = "proposal"
	StatusSold     PipelineStatus = "sold"
)

// PipelineSteps is the fixed display order of the pipeline.
var PipelineSteps = []PipelineStatus{StatusLead, StatusTasting, StatusProposal, StatusSold}

// Valid reports whether s is one of the four pipeline stages.
func (s PipelineStatus) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in PipelineSteps, or -1. An empty status is a lead.
func (s PipelineStatus) Index() int {
	for i, step := range PipelineSteps {
		if step == s.Normalize() {
			return i
		}
	}
	return -1
}

// Normalize maps the empty status to StatusLead.
func (s PipelineStatus) Normalize() PipelineStatus {
	if s == "" {
		return StatusLead
	}
	return s
}

// MenuCategory groups catalog items on menus and documents.
type MenuCategory string

const (
	CategoryEntree MenuCategory = "Entree"
	CategorySide   MenuCategory = "Side"
	CategoryDrink  MenuCategory = "Drink"
)

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryEntree, CategorySide, CategoryDrink:
		return true
	}
	return false
}

// Normalize maps a missing category to CategoryEntree.
func (c MenuCategory) Normalize() MenuCategory {
	if c == "" {
		return CategoryEntree
	}
	return c
}

// ItemType separates catering menu items from rental inventory.
type ItemType string

const (
	ItemTypeCatering ItemType = "catering"
	ItemTypeRental   ItemType = "rental"
)
