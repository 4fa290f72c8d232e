package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Carton is a player's 3x9 loto card stored as a flat list of 27 cells,
// row-major. A cell holds 0 when empty, otherwise a number 1..90. Each row
// carries exactly 5 numbers, enforced by game.ValidateCells before the card
// ever reaches the store.
type Carton struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	RoomCode   string         `gorm:"size:6;index;not null" json:"room_code"`
	UserID     string         `gorm:"size:36;index;not null" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CategoryID *string        `gorm:"size:36;index" json:"category_id"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Numbers    datatypes.JSON `json:"numbers"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (c *Carton) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Cells decodes the flat 27-cell grid.
func (c *Carton) Cells() []int {
	var cells []int
	if err := json.Unmarshal(c.Numbers, &cells); err != nil {
		return nil
	}
	return cells
}

// SetCells encodes cells into Numbers.
func (c *Carton) SetCells(cells []int) {
	b, _ := json.Marshal(cells)
	c.Numbers = datatypes.JSON(b)
}
