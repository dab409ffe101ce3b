package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is the geographic position of a stall. It is stored inline with
// the stall row and treated as one unit: a partial update merges into the
// existing value rather than replacing it wholesale.
type Location struct {
	Latitude  float64 `json:"latitude" gorm:"not null"`
	Longitude float64 `json:"longitude" gorm:"not null"`
	Address   string  `json:"address" gorm:"size:512;not null"`
}

// Stall represents a food stall listed by an owner.
type Stall struct {
	ID          uuid.UUID      `json:"stall_id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"size:1024"`
	Location    Location       `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	ImageURL    string         `json:"image_url" gorm:"size:1024"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// DistanceKm is only populated on geo-filtered listings.
	DistanceKm *float64 `json:"distance,omitempty" gorm:"-"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Stall) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
