package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/workboard/internal/db"
	"github.com/zulandar/workboard/internal/logging"
	"github.com/zulandar/workboard/internal/models"
)

var ctx = context.Background()

// stepClock advances one second per call so every write gets a distinct,
// increasing timestamp.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Each :memory: connection is its own database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func newTestStore(t *testing.T) (*BoardStore, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	clock := &stepClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	s, err := New(Opts{DB: gdb, Clock: clock.Now, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, gdb
}

// newFrozenStore returns a store whose clock never advances.
func newFrozenStore(t *testing.T) (*BoardStore, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	frozen := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s, err := New(Opts{DB: gdb, Clock: func() time.Time { return frozen }, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, gdb
}

func ptr[T any](v T) *T { return &v }

func mustBoard(t *testing.T, s *BoardStore, name string) *models.Board {
	t.Helper()
	b, err := s.CreateBoard(ctx, CreateBoardOpts{Name: name, OwnerID: "alice"})
	if err != nil {
		t.Fatalf("CreateBoard(%q): %v", name, err)
	}
	return b
}

func mustList(t *testing.T, s *BoardStore, boardID, name string) *models.List {
	t.Helper()
	l, err := s.CreateList(ctx, CreateListOpts{Name: name, BoardID: boardID}, "alice")
	if err != nil {
		t.Fatalf("CreateList(%q): %v", name, err)
	}
	return l
}

func mustCard(t *testing.T, s *BoardStore, listID, title string) *models.Card {
	t.Helper()
	c, err := s.CreateCard(ctx, CreateCardOpts{Title: title, ListID: listID}, "alice")
	if err != nil {
		t.Fatalf("CreateCard(%q): %v", title, err)
	}
	return c
}

func mustComment(t *testing.T, s *BoardStore, cardID, content string) *models.Comment {
	t.Helper()
	cm, err := s.CreateComment(ctx, CreateCommentOpts{Content: content, CardID: cardID, UserID: "bob"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return cm
}

func count(t *testing.T, gdb *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := gdb.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func activityCount(t *testing.T, gdb *gorm.DB, boardID string) int64 {
	t.Helper()
	return count(t, gdb, &models.ActivityLog{}, "board_id = ?", boardID)
}

func latestActivity(t *testing.T, s *BoardStore, boardID string) models.ActivityLog {
	t.Helper()
	entries, err := s.GetBoardActivities(ctx, boardID, 1, 0)
	if err != nil {
		t.Fatalf("GetBoardActivities: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected an activity entry for board %s", boardID)
	}
	return entries[0]
}

func TestNew_NilDB(t *testing.T) {
	_, err := New(Opts{})
	if err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(Opts{DB: openTestDB(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.clock == nil || s.log == nil {
		t.Fatal("expected default clock and logger")
	}
}

func TestNow_UTCMillis(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	s, err := New(Opts{
		DB:    openTestDB(t),
		Clock: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 123456789, loc) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := s.now()
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
	if got.Nanosecond() != 123000000 {
		t.Errorf("nanos = %d, want 123000000", got.Nanosecond())
	}
}

func TestNow_StrictlyIncreasing(t *testing.T) {
	s, _ := newFrozenStore(t)
	first := s.now()
	second := s.now()
	if got := second.Sub(first); got != time.Millisecond {
		t.Errorf("second - first = %v, want 1ms", got)
	}
}

func TestMutation_RollsBackWhenActivityFails(t *testing.T) {
	s, gdb := newTestStore(t)
	if err := gdb.Migrator().DropTable(&models.ActivityLog{}); err != nil {
		t.Fatalf("drop activity table: %v", err)
	}

	_, err := s.CreateBoard(ctx, CreateBoardOpts{Name: "Doomed", OwnerID: "alice"})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "create_board" {
		t.Errorf("err = %#v, want StorageError for create_board", err)
	}
	if n := count(t, gdb, &models.Board{}, ""); n != 0 {
		t.Errorf("boards = %d, want 0 after rollback", n)
	}
}

func TestConcurrentCreates(t *testing.T) {
	s, gdb := newTestStore(t)
	b := mustBoard(t, s, "Busy")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateList(ctx, CreateListOpts{Name: fmt.Sprintf("L%d", i), BoardID: b.ID}, "alice")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("CreateList: %v", err)
		}
	}
	if n := count(t, gdb, &models.List{}, "board_id = ?", b.ID); n != 10 {
		t.Errorf("lists = %d, want 10", n)
	}
	if n := activityCount(t, gdb, b.ID); n != 11 {
		t.Errorf("activity = %d, want 11", n)
	}
}

func TestPingAndClose(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping after Close succeeded")
	}
}
