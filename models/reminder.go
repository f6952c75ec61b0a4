package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultReminderMessage is used until the business saves its own template.
const DefaultReminderMessage = "Hi [CustomerName], a friendly reminder that your payment of $[Amount] for your event on [EventDate] is due [DueDate]. Thank you!"

type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Message  string    `gorm:"type:text;not null" json:"message"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

type PaymentReminderLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	InstallmentIndex int       `json:"installmentIndex"`
	DueDate          string    `gorm:"type:varchar(20)" json:"dueDate"`
	Message          string    `gorm:"type:text" json:"message"`
	Status           string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage     string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel          string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt           time.Time `json:"sentAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (r *PaymentReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
