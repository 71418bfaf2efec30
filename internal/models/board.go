package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board is the top-level container of lists. Deleting a board removes its
// lists, cards, comments and activity history.
type Board struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`
	Color       *string   `gorm:"size:7" json:"color,omitempty"`
	OwnerID     string    `gorm:"size:64;not null;index" json:"owner_id"`
	IsArchived  bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;index" json:"updated_at"`
}

// BeforeCreate assigns a random identifier when none was set.
func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
