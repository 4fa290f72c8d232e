package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category tags cartons inside a room. Deactivated categories hide their
// cartons from listings and win evaluation without deleting them.
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RoomCode  string    `gorm:"size:6;index;not null" json:"room_code"`
	Name      string    `gorm:"not null" json:"name"`
	Activated bool      `gorm:"default:true" json:"activated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
