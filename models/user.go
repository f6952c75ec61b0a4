package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	FullName string
	Phone    string

	BusinessName string
	BusinessType string `gorm:"default:'Catering'"`
	City         string
	State        string

	LastLogin *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Password hashing happens in the auth controller; the hook only assigns the id.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// BusinessProfile is the metadata shown on documents and the dashboard.
type BusinessProfile struct {
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (u User) Profile() BusinessProfile {
	return BusinessProfile{
		BusinessName: u.BusinessName,
		BusinessType: u.BusinessType,
		City:         u.City,
		State:        u.State,
	}
}
