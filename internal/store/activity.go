package store

import (
	"context"

	"github.com/zulandar/workboard/internal/models"
)

// GetBoardActivities returns a page of a board's activity, newest first.
// limit must be in [1,100] and offset must not be negative.
func (s *BoardStore) GetBoardActivities(ctx context.Context, boardID string, limit, offset int) ([]models.ActivityLog, error) {
	if err := CheckPage(limit, offset); err != nil {
		return nil, err
	}
	var entries []models.ActivityLog
	err := s.db.WithContext(ctx).Where("board_id = ?", boardID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, wrap("get_board_activities", err)
	}
	return entries, nil
}
