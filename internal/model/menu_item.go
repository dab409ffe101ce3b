package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem represents a dish offered by a stall.
type MenuItem struct {
	ID          uuid.UUID       `json:"item_id" gorm:"type:char(36);primaryKey"`
	StallID     uuid.UUID       `json:"stall_id" gorm:"type:char(36);not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"size:1024"`
	Category    string          `json:"category" gorm:"size:255;index"`
	ImageURL    string          `json:"image_url" gorm:"size:1024"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Stall Stall `json:"-" gorm:"foreignKey:StallID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
