package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SignedDigitally is stored in ContractURL once a client accepts a proposal online.
const SignedDigitally = "SIGNED_DIGITALLY"

type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	FullName string `gorm:"not null" json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	JobPrice    decimal.NullDecimal             `gorm:"type:decimal(12,2)" json:"jobPrice"`
	Status      PipelineStatus                  `gorm:"type:varchar(20);default:'lead'" json:"status"`
	ServiceData datatypes.JSONType[ServiceData] `json:"serviceData"`
	JobNotes    string                          `gorm:"type:text" json:"jobNotes"`
	ContractURL string                          `json:"contractUrl"`

	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Data returns the event configuration.
func (c Customer) Data() ServiceData {
	return c.ServiceData.Data()
}

// SetData replaces the event configuration.
func (c *Customer) SetData(sd ServiceData) {
	c.ServiceData = datatypes.NewJSONType(sd)
}

// Price returns the job price, zero when unset.
func (c Customer) Price() decimal.Decimal {
	if !c.JobPrice.Valid {
		return decimal.Zero
	}
	return c.JobPrice.Decimal
}

// IsSigned reports whether the proposal was accepted online.
func (c Customer) IsSigned() bool {
	return c.ContractURL == SignedDigitally
}

// NewCustomer returns the placeholder record used for "add client".
func NewCustomer(userID uuid.UUID) Customer {
	return Customer{
		UserID:   userID,
		FullName: "New Client",
		JobPrice: decimal.NewNullDecimal(decimal.Zero),
		Status:   StatusLead,
	}
}
