package store

import (
	"errors"
	"testing"
)

func TestGetBoardActivities_Paging(t *testing.T) {
	s, _ := newTestStore(t)
	b := mustBoard(t, s, "B")
	for _, name := range []string{"A", "B", "C", "D"} {
		mustList(t, s, b.ID, name)
	}

	page, err := s.GetBoardActivities(ctx, b.ID, 2, 0)
	if err != nil {
		t.Fatalf("GetBoardActivities: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page = %d entries, want 2", len(page))
	}
	if page[0].Description != "Created list 'D'" || page[1].Description != "Created list 'C'" {
		t.Errorf("page = %q, %q", page[0].Description, page[1].Description)
	}
	if !page[0].CreatedAt.After(page[1].CreatedAt) {
		t.Error("entries not newest first")
	}

	rest, err := s.GetBoardActivities(ctx, b.ID, 10, 2)
	if err != nil {
		t.Fatalf("GetBoardActivities(offset 2): %v", err)
	}
	if len(rest) != 3 {
		t.Fatalf("rest = %d entries, want 3", len(rest))
	}
	if rest[2].Description != "Created board 'B'" {
		t.Errorf("oldest = %q", rest[2].Description)
	}

	empty, err := s.GetBoardActivities(ctx, "nope", DefaultActivityLimit, 0)
	if err != nil {
		t.Fatalf("GetBoardActivities(unknown): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown board entries = %d, want 0", len(empty))
	}
}

func TestGetBoardActivities_SameInstant(t *testing.T) {
	s, _ := newFrozenStore(t)
	b := mustBoard(t, s, "B")
	mustList(t, s, b.ID, "A")
	mustList(t, s, b.ID, "C")

	entries, err := s.GetBoardActivities(ctx, b.ID, DefaultActivityLimit, 0)
	if err != nil {
		t.Fatalf("GetBoardActivities: %v", err)
	}
	want := []string{"Created list 'C'", "Created list 'A'", "Created board 'B'"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Description != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Description, want[i])
		}
	}
}

func TestGetBoardActivities_BadPage(t *testing.T) {
	s, _ := newTestStore(t)
	tests := []struct {
		name          string
		limit, offset int
		field         string
	}{
		{"zero limit", 0, 0, "limit"},
		{"limit above max", MaxActivityLimit + 1, 0, "limit"},
		{"negative offset", 10, -1, "offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetBoardActivities(ctx, "b", tt.limit, tt.offset)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("err = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
	if _, err := s.GetBoardActivities(ctx, "b", MaxActivityLimit, 0); err != nil {
		t.Errorf("limit %d: %v", MaxActivityLimit, err)
	}
}
