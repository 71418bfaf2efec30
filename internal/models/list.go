package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List is a column on a board. Position orders lists within the board.
type List struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	BoardID    string    `gorm:"size:36;not null;index" json:"board_id"`
	IsArchived bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate assigns a random identifier when none was set.
func (l *List) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
