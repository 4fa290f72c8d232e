package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ban blocks a user from joining a room. Checked before any presence record
// is created.
type Ban struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex:idx_ban_user_room;not null" json:"user_id"`
	RoomID    string    `gorm:"size:36;uniqueIndex:idx_ban_user_room;not null" json:"room_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Ban) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
