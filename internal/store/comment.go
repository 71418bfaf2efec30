package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/models"
)

// CreateCommentOpts holds the fields for a new comment.
type CreateCommentOpts struct {
	Content string `json:"content" validate:"required,max=1000"`
	CardID  string `json:"card_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required,max=64"`
}

// CreateComment adds a comment to an existing card and records a
// comment_added entry, attributed to the author, on the card's board.
func (s *BoardStore) CreateComment(ctx context.Context, opts CreateCommentOpts) (*models.Comment, error) {
	if err := check(opts); err != nil {
		return nil, err
	}
	now := s.now()
	cm := &models.Comment{
		Content:   opts.Content,
		CardID:    opts.CardID,
		UserID:    opts.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var boardID string
	err := s.tx(ctx, "create_comment", func(tx *gorm.DB) error {
		var c models.Card
		if err := first(tx, &c, "card", opts.CardID); err != nil {
			return err
		}
		var l models.List
		if err := first(tx, &l, "list", c.ListID); err != nil {
			return err
		}
		boardID = l.BoardID
		if err := tx.Create(cm).Error; err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return record(tx, boardID, opts.UserID, models.ActivityCommentAdded,
			fmt.Sprintf("Added comment to card '%s'", c.Title), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("create_comment", logrus.Fields{"comment_id": cm.ID, "board_id": boardID, "user_id": opts.UserID, "activity": models.ActivityCommentAdded})
	return cm, nil
}

// GetCommentsByCard returns a card's comments, newest first.
func (s *BoardStore) GetCommentsByCard(ctx context.Context, cardID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).Where("card_id = ?", cardID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, wrap("get_comments_by_card", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. No activity is recorded. It reports false
// when the comment does not exist.
func (s *BoardStore) DeleteComment(ctx context.Context, id string) (bool, error) {
	var removed int64
	err := s.tx(ctx, "delete_comment", func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return fmt.Errorf("delete comment: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed > 0 {
		s.committed("delete_comment", logrus.Fields{"comment_id": id})
	}
	return removed > 0, nil
}
