package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Code       string    `gorm:"uniqueIndex;size:6;not null" json:"code"`
	Name       string    `gorm:"not null" json:"name"`
	IsPublic   bool      `gorm:"default:true" json:"is_public"`
	Password   *string   `json:"-"`
	MaxPlayers int       `gorm:"default:10" json:"max_players"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatorID  string    `gorm:"size:36;not null" json:"creator_id"`
	Creator    *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Players    []User    `gorm:"many2many:room_players" json:"players,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasPlayer reports whether userID is on the persistent roster.
func (r *Room) HasPlayer(userID string) bool {
	for _, p := range r.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}
