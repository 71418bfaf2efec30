package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/models"
)

// CreateBoardOpts holds the fields for a new board.
type CreateBoardOpts struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       *string `json:"color,omitempty" validate:"omitempty,rgbhex"`
	OwnerID     string  `json:"owner_id" validate:"required,max=64"`
}

// BoardUpdate is a partial board update. Nil fields are left unchanged;
// an empty Description or Color clears the value.
type BoardUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       *string `json:"color,omitempty" validate:"omitempty,rgbhex"`
	IsArchived  *bool   `json:"is_archived,omitempty"`
}

// BoardWithLists is a board plus its non-archived lists in display order.
type BoardWithLists struct {
	models.Board
	Lists []models.List `json:"lists"`
}

// CreateBoard inserts a board and a board_created activity entry attributed
// to the owner.
func (s *BoardStore) CreateBoard(ctx context.Context, opts CreateBoardOpts) (*models.Board, error) {
	if err := check(opts); err != nil {
		return nil, err
	}
	now := s.now()
	b := &models.Board{
		Name:        opts.Name,
		Description: optional(opts.Description),
		Color:       optional(opts.Color),
		OwnerID:     opts.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx(ctx, "create_board", func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("insert board: %w", err)
		}
		return record(tx, b.ID, opts.OwnerID, models.ActivityBoardCreated,
			fmt.Sprintf("Created board '%s'", b.Name), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("create_board", logrus.Fields{"board_id": b.ID, "user_id": opts.OwnerID, "activity": models.ActivityBoardCreated})
	return b, nil
}

// GetBoard returns a board by ID.
func (s *BoardStore) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	var b models.Board
	if err := first(s.db.WithContext(ctx), &b, "board", id); err != nil {
		return nil, wrap("get_board", err)
	}
	return &b, nil
}

// GetBoardWithLists returns a board with its non-archived lists ordered by
// position, then creation time.
func (s *BoardStore) GetBoardWithLists(ctx context.Context, id string) (*BoardWithLists, error) {
	var out BoardWithLists
	err := s.tx(ctx, "get_board_with_lists", func(tx *gorm.DB) error {
		if err := first(tx, &out.Board, "board", id); err != nil {
			return err
		}
		return tx.Where("board_id = ? AND is_archived = ?", id, false).
			Order("position ASC, created_at ASC").
			Find(&out.Lists).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBoardsByOwner returns the owner's boards, most recently updated first.
// Archived boards are excluded unless includeArchived is set.
func (s *BoardStore) GetBoardsByOwner(ctx context.Context, ownerID string, includeArchived bool) ([]models.Board, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	var boards []models.Board
	if err := q.Order("updated_at DESC").Find(&boards).Error; err != nil {
		return nil, wrap("get_boards_by_owner", err)
	}
	return boards, nil
}

// UpdateBoard applies the supplied fields, refreshes updated_at and records a
// board_updated entry. An update with no fields still counts as an update.
func (s *BoardStore) UpdateBoard(ctx context.Context, id string, upd BoardUpdate, userID string) (*models.Board, error) {
	if err := check(upd); err != nil {
		return nil, err
	}
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	now := s.now()
	updates := map[string]interface{}{"updated_at": now}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = nullable(upd.Description)
	}
	if upd.Color != nil {
		updates["color"] = nullable(upd.Color)
	}
	if upd.IsArchived != nil {
		updates["is_archived"] = *upd.IsArchived
	}

	var b models.Board
	err := s.tx(ctx, "update_board", func(tx *gorm.DB) error {
		if err := first(tx, &b, "board", id); err != nil {
			return err
		}
		if err := tx.Model(&models.Board{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update board: %w", err)
		}
		b = models.Board{}
		if err := first(tx, &b, "board", id); err != nil {
			return err
		}
		return record(tx, id, userID, models.ActivityBoardUpdated,
			fmt.Sprintf("Updated board '%s'", b.Name), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("update_board", logrus.Fields{"board_id": id, "user_id": userID, "activity": models.ActivityBoardUpdated})
	return &b, nil
}

// DeleteBoard removes a board and everything under it: comments, cards,
// lists and the board's activity history. It reports false when the board
// does not exist.
func (s *BoardStore) DeleteBoard(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.tx(ctx, "delete_board", func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Board{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("count board: %w", err)
		}
		if n == 0 {
			return nil
		}
		found = true

		lists := func() *gorm.DB {
			return tx.Model(&models.List{}).Select("id").Where("board_id = ?", id)
		}
		cards := tx.Model(&models.Card{}).Select("id").Where("list_id IN (?)", lists())

		if err := tx.Where("card_id IN (?)", cards).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("list_id IN (?)", lists()).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("delete cards: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.List{}).Error; err != nil {
			return fmt.Errorf("delete lists: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return fmt.Errorf("delete activity: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Board{}).Error; err != nil {
			return fmt.Errorf("delete board: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.committed("delete_board", logrus.Fields{"board_id": id})
	}
	return found, nil
}
