package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType tags an activity log entry.
type ActivityType string

const (
	ActivityBoardCreated  ActivityType = "board_created"
	ActivityBoardUpdated  ActivityType = "board_updated"
	ActivityBoardArchived ActivityType = "board_archived"
	ActivityListCreated   ActivityType = "list_created"
	ActivityListUpdated   ActivityType = "list_updated"
	ActivityListMoved     ActivityType = "list_moved"
	ActivityListArchived  ActivityType = "list_archived"
	ActivityCardCreated   ActivityType = "card_created"
	ActivityCardUpdated   ActivityType = "card_updated"
	ActivityCardMoved     ActivityType = "card_moved"
	ActivityCardAssigned  ActivityType = "card_assigned"
	ActivityCommentAdded  ActivityType = "comment_added"
)

// ActivityLog is an immutable audit record scoped to a board.
// It has no UpdatedAt: rows are written once and never modified.
type ActivityLog struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	BoardID      string       `gorm:"size:36;not null;index:idx_activity_board_created" json:"board_id"`
	UserID       string       `gorm:"size:64;not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"size:32;not null" json:"activity_type"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	CreatedAt    time.Time    `gorm:"not null;index:idx_activity_board_created" json:"created_at"`
}

// BeforeCreate assigns a random identifier when none was set.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
