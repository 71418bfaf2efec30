// Package store is the transactional persistence layer for boards, lists,
// cards, comments and the per-board activity log.
//
// Every mutating operation runs in a single database transaction that also
// writes exactly one activity entry. Either both the mutation and its
// activity entry commit, or neither does.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zulandar/workboard/internal/db"
	"github.com/zulandar/workboard/internal/logging"
	"github.com/zulandar/workboard/internal/models"
)

// Activity pagination bounds.
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 100
)

// Opts configures a BoardStore.
type Opts struct {
	DB *gorm.DB
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Logger receives a debug line per committed mutation. Defaults to a
	// logger that discards output.
	Logger *logrus.Logger
}

// BoardStore owns the board, list, card, comment and activity tables.
// It is safe for concurrent use; isolation comes from the database.
type BoardStore struct {
	db    *gorm.DB
	clock func() time.Time
	log   *logrus.Logger

	mu   sync.Mutex
	last time.Time
}

// New creates a BoardStore over an open, migrated database handle.
func New(opts Opts) (*BoardStore, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("store: db is required")
	}
	s := &BoardStore{db: opts.DB, clock: opts.Clock, log: opts.Logger}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	return s, nil
}

// Ping checks that the backing database answers.
func (s *BoardStore) Ping(ctx context.Context) error {
	return db.Ping(ctx, s.db)
}

// Close releases the database connection pool.
func (s *BoardStore) Close() error {
	return db.Close(s.db)
}

// now returns the current time in UTC at millisecond precision so values
// round-trip through both sqlite and MySQL DATETIME(3) unchanged. Successive
// calls are strictly increasing so writes made within one millisecond keep
// their order.
func (s *BoardStore) now() time.Time {
	t := millis(s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t
}

func millis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// tx runs fn in one transaction. Not-found and validation errors pass through
// unchanged; anything else is reported as a StorageError for op.
func (s *BoardStore) tx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	return wrap(op, err)
}

func wrap(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// first loads the row with the given id into dest, mapping a missing row to
// a NotFoundError of the given kind.
func first(tx *gorm.DB, dest interface{}, kind, id string) error {
	err := tx.Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, id)
	}
	if err != nil {
		return fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	return nil
}

// record appends an activity entry inside tx.
func record(tx *gorm.DB, boardID, userID string, typ models.ActivityType, desc string, at time.Time) error {
	entry := &models.ActivityLog{
		BoardID:      boardID,
		UserID:       userID,
		ActivityType: typ,
		Description:  desc,
		CreatedAt:    at,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("record %s activity: %w", typ, err)
	}
	return nil
}

func (s *BoardStore) committed(op string, fields logrus.Fields) {
	fields["op"] = op
	s.log.WithFields(fields).Debug("store: committed")
}

// nullable maps an empty string to NULL.
func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// optional returns nil for a nil or empty string pointer.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
