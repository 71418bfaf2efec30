package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/models"
)

// CreateListOpts holds the fields for a new list. A nil or zero Position
// appends the list after its current siblings.
type CreateListOpts struct {
	Name     string `json:"name" validate:"required,max=100"`
	Position *int   `json:"position,omitempty" validate:"omitempty,gte=0"`
	BoardID  string `json:"board_id" validate:"required"`
}

// ListUpdate is a partial list update. Nil fields are left unchanged.
type ListUpdate struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Position   *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// ListWithCards is a list plus all of its cards, archived or not, in display
// order.
type ListWithCards struct {
	models.List
	Cards []models.Card `json:"cards"`
}

// CreateList inserts a list on an existing board and records a list_created
// entry on that board.
func (s *BoardStore) CreateList(ctx context.Context, opts CreateListOpts, userID string) (*models.List, error) {
	if err := check(opts); err != nil {
		return nil, err
	}
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	now := s.now()
	l := &models.List{
		Name:      opts.Name,
		BoardID:   opts.BoardID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.tx(ctx, "create_list", func(tx *gorm.DB) error {
		var b models.Board
		if err := first(tx, &b, "board", opts.BoardID); err != nil {
			return err
		}
		pos, err := position(tx, &models.List{}, "board_id", opts.BoardID, opts.Position)
		if err != nil {
			return err
		}
		l.Position = pos
		if err := tx.Create(l).Error; err != nil {
			return fmt.Errorf("insert list: %w", err)
		}
		return record(tx, opts.BoardID, userID, models.ActivityListCreated,
			fmt.Sprintf("Created list '%s'", l.Name), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("create_list", logrus.Fields{"list_id": l.ID, "board_id": l.BoardID, "user_id": userID, "activity": models.ActivityListCreated})
	return l, nil
}

// position resolves the position for a new child. Unset or zero means
// "append": the current number of siblings under parentCol = parentID.
func position(tx *gorm.DB, model interface{}, parentCol, parentID string, want *int) (int, error) {
	if want != nil && *want > 0 {
		return *want, nil
	}
	var n int64
	if err := tx.Model(model).Where(parentCol+" = ?", parentID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count siblings: %w", err)
	}
	return int(n), nil
}

// GetList returns a list by ID.
func (s *BoardStore) GetList(ctx context.Context, id string) (*models.List, error) {
	var l models.List
	if err := first(s.db.WithContext(ctx), &l, "list", id); err != nil {
		return nil, wrap("get_list", err)
	}
	return &l, nil
}

// GetListWithCards returns a list with every card on it ordered by position,
// then creation time.
func (s *BoardStore) GetListWithCards(ctx context.Context, id string) (*ListWithCards, error) {
	var out ListWithCards
	err := s.tx(ctx, "get_list_with_cards", func(tx *gorm.DB) error {
		if err := first(tx, &out.List, "list", id); err != nil {
			return err
		}
		return tx.Where("list_id = ?", id).
			Order("position ASC, created_at ASC").
			Find(&out.Cards).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetListsByBoard returns a board's lists ordered by position. Archived lists
// are excluded unless includeArchived is set.
func (s *BoardStore) GetListsByBoard(ctx context.Context, boardID string, includeArchived bool) ([]models.List, error) {
	q := s.db.WithContext(ctx).Where("board_id = ?", boardID)
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}
	var lists []models.List
	if err := q.Order("position ASC, created_at ASC").Find(&lists).Error; err != nil {
		return nil, wrap("get_lists_by_board", err)
	}
	return lists, nil
}

// UpdateList applies the supplied fields and records a list_updated entry on
// the list's board.
func (s *BoardStore) UpdateList(ctx context.Context, id string, upd ListUpdate, userID string) (*models.List, error) {
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
	if upd.Position != nil {
		updates["position"] = *upd.Position
	}
	if upd.IsArchived != nil {
		updates["is_archived"] = *upd.IsArchived
	}

	var l models.List
	err := s.tx(ctx, "update_list", func(tx *gorm.DB) error {
		if err := first(tx, &l, "list", id); err != nil {
			return err
		}
		if err := tx.Model(&models.List{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update list: %w", err)
		}
		l = models.List{}
		if err := first(tx, &l, "list", id); err != nil {
			return err
		}
		return record(tx, l.BoardID, userID, models.ActivityListUpdated,
			fmt.Sprintf("Updated list '%s'", l.Name), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("update_list", logrus.Fields{"list_id": id, "board_id": l.BoardID, "user_id": userID, "activity": models.ActivityListUpdated})
	return &l, nil
}

// DeleteList removes a list with its cards and their comments. It reports
// false when the list does not exist.
func (s *BoardStore) DeleteList(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.tx(ctx, "delete_list", func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.List{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("count list: %w", err)
		}
		if n == 0 {
			return nil
		}
		found = true

		cards := tx.Model(&models.Card{}).Select("id").Where("list_id = ?", id)
		if err := tx.Where("card_id IN (?)", cards).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("list_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("delete cards: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.List{}).Error; err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.committed("delete_list", logrus.Fields{"list_id": id})
	}
	return found, nil
}
