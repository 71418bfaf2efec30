package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/models"
)

// CreateCardOpts holds the fields for a new card. Priority defaults to
// medium and Status to todo.
type CreateCardOpts struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    models.Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Status      models.Status   `json:"status,omitempty" validate:"omitempty,status"`
	Position    *int            `json:"position,omitempty" validate:"omitempty,gte=0"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	ListID      string          `json:"list_id" validate:"required"`
	AssignedTo  *string         `json:"assigned_to,omitempty" validate:"omitempty,max=64"`
}

// CardUpdate is a partial card update. Nil fields are left unchanged; an
// empty Description or AssignedTo clears the value. A non-nil ListID moves
// the card.
type CardUpdate struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Priority    *models.Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Status      *models.Status   `json:"status,omitempty" validate:"omitempty,status"`
	Position    *int             `json:"position,omitempty" validate:"omitempty,gte=0"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	ListID      *string          `json:"list_id,omitempty" validate:"omitempty,min=1"`
	AssignedTo  *string          `json:"assigned_to,omitempty" validate:"omitempty,max=64"`
}

// CreateCard inserts a card on an existing list and records a card_created
// entry on the list's board.
func (s *BoardStore) CreateCard(ctx context.Context, opts CreateCardOpts, userID string) (*models.Card, error) {
	if err := check(opts); err != nil {
		return nil, err
	}
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	if opts.Priority == "" {
		opts.Priority = models.PriorityMedium
	}
	if opts.Status == "" {
		opts.Status = models.StatusTodo
	}
	now := s.now()
	c := &models.Card{
		Title:       opts.Title,
		Description: optional(opts.Description),
		Priority:    opts.Priority,
		Status:      opts.Status,
		DueDate:     utc(opts.DueDate),
		ListID:      opts.ListID,
		AssignedTo:  optional(opts.AssignedTo),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var boardID string
	err := s.tx(ctx, "create_card", func(tx *gorm.DB) error {
		var l models.List
		if err := first(tx, &l, "list", opts.ListID); err != nil {
			return err
		}
		boardID = l.BoardID
		pos, err := position(tx, &models.Card{}, "list_id", opts.ListID, opts.Position)
		if err != nil {
			return err
		}
		c.Position = pos
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("insert card: %w", err)
		}
		return record(tx, boardID, userID, models.ActivityCardCreated,
			fmt.Sprintf("Created card '%s'", c.Title), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("create_card", logrus.Fields{"card_id": c.ID, "board_id": boardID, "user_id": userID, "activity": models.ActivityCardCreated})
	return c, nil
}

// GetCard returns a card by ID.
func (s *BoardStore) GetCard(ctx context.Context, id string) (*models.Card, error) {
	var c models.Card
	if err := first(s.db.WithContext(ctx), &c, "card", id); err != nil {
		return nil, wrap("get_card", err)
	}
	return &c, nil
}

// GetCardsByList returns a list's cards ordered by position, then creation
// time.
func (s *BoardStore) GetCardsByList(ctx context.Context, listID string) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.WithContext(ctx).Where("list_id = ?", listID).
		Order("position ASC, created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, wrap("get_cards_by_list", err)
	}
	return cards, nil
}

// GetCardsByUser returns the cards assigned to a user, earliest due date
// first. Cards without a due date sort last; ties break on creation time.
func (s *BoardStore) GetCardsByUser(ctx context.Context, userID string) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.WithContext(ctx).Where("assigned_to = ?", userID).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, wrap("get_cards_by_user", err)
	}
	return cards, nil
}

// UpdateCard applies the supplied fields and records one activity entry on
// the board the card belonged to before the update. A list change is logged
// as card_moved, otherwise an assignee change as card_assigned, otherwise
// card_updated.
func (s *BoardStore) UpdateCard(ctx context.Context, id string, upd CardUpdate, userID string) (*models.Card, error) {
	if err := check(upd); err != nil {
		return nil, err
	}
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	now := s.now()
	updates := map[string]interface{}{"updated_at": now}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Description != nil {
		updates["description"] = nullable(upd.Description)
	}
	if upd.Priority != nil {
		updates["priority"] = *upd.Priority
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.Position != nil {
		updates["position"] = *upd.Position
	}
	if upd.DueDate != nil {
		updates["due_date"] = millis(*upd.DueDate)
	}
	if upd.ListID != nil {
		updates["list_id"] = *upd.ListID
	}
	if upd.AssignedTo != nil {
		updates["assigned_to"] = nullable(upd.AssignedTo)
	}

	var (
		c       models.Card
		boardID string
		typ     models.ActivityType
	)
	err := s.tx(ctx, "update_card", func(tx *gorm.DB) error {
		if err := first(tx, &c, "card", id); err != nil {
			return err
		}
		var cur models.List
		if err := first(tx, &cur, "list", c.ListID); err != nil {
			return err
		}
		boardID = cur.BoardID

		typ = models.ActivityCardUpdated
		describe := func(title string) string { return fmt.Sprintf("Updated card '%s'", title) }
		switch {
		case upd.ListID != nil:
			var dst models.List
			if err := first(tx, &dst, "list", *upd.ListID); err != nil {
				return err
			}
			typ = models.ActivityCardMoved
			describe = func(title string) string {
				return fmt.Sprintf("Moved card '%s' to list '%s'", title, dst.Name)
			}
		case upd.AssignedTo != nil:
			typ = models.ActivityCardAssigned
			assignee := *upd.AssignedTo
			describe = func(title string) string {
				if assignee == "" {
					return fmt.Sprintf("Unassigned card '%s'", title)
				}
				return fmt.Sprintf("Assigned card '%s' to %s", title, assignee)
			}
		}

		if err := tx.Model(&models.Card{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update card: %w", err)
		}
		c = models.Card{}
		if err := first(tx, &c, "card", id); err != nil {
			return err
		}
		return record(tx, boardID, userID, typ, describe(c.Title), now)
	})
	if err != nil {
		return nil, err
	}
	s.committed("update_card", logrus.Fields{"card_id": id, "board_id": boardID, "user_id": userID, "activity": typ})
	return &c, nil
}

// DeleteCard removes a card and its comments. It reports false when the
// card does not exist.
func (s *BoardStore) DeleteCard(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.tx(ctx, "delete_card", func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Card{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("count card: %w", err)
		}
		if n == 0 {
			return nil
		}
		found = true
		if err := tx.Where("card_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("delete card: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.committed("delete_card", logrus.Fields{"card_id": id})
	}
	return found, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := millis(*t)
	return &v
}
