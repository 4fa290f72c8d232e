package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pub is an advertisement slot displayed inside a room.
type Pub struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RoomCode  string    `gorm:"size:6;index;not null" json:"room_code"`
	Title     string    `gorm:"not null" json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Pub) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
