package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Party is one round inside a room. The newest party (by creation time) is
// the current one. ListNumbers holds the drawn numbers in draw order; the
// last element is the "current number", not the maximum.
type Party struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	RoomID      string         `gorm:"size:36;index;not null" json:"room_id"`
	GameType    string         `gorm:"not null" json:"game_type"`
	ListNumbers datatypes.JSON `json:"list_numbers"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Party) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ListNumbers == nil {
		p.ListNumbers = datatypes.JSON([]byte("[]"))
	}
	return nil
}

// Numbers decodes ListNumbers. A corrupt column decodes to an empty list.
func (p *Party) Numbers() []int {
	var nums []int
	if err := json.Unmarshal(p.ListNumbers, &nums); err != nil {
		return []int{}
	}
	return nums
}

// SetNumbers encodes nums into ListNumbers.
func (p *Party) SetNumbers(nums []int) {
	b, _ := json.Marshal(nums)
	p.ListNumbers = datatypes.JSON(b)
}
