package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry offered on menus.
type Service struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"userId"`
	Name        string       `gorm:"not null" json:"name"`
	Category    MenuCategory `gorm:"type:varchar(20);default:'Entree'" json:"category"`
	Description string       `json:"description"`
	ItemType    ItemType     `gorm:"type:varchar(20);default:'catering'" json:"itemType"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
