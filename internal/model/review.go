package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review represents a customer review of a stall. UserName is a snapshot of
// the author's display name at creation time and is not kept in sync with
// later profile changes.
type Review struct {
	ID        uuid.UUID      `json:"review_id" gorm:"type:char(36);primaryKey"`
	StallID   uuid.UUID      `json:"stall_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index"`
	UserName  string         `json:"user_name" gorm:"size:255;not null"`
	Rating    int            `json:"rating" gorm:"not null"`
	Comment   string         `json:"comment" gorm:"size:2048"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Stall Stall `json:"-" gorm:"foreignKey:StallID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
