package main

import (
	"context"
	"strings"
	"testing"

	"github.com/zulandar/workboard/internal/models"
	"github.com/zulandar/workboard/internal/store"
)

func seedBoard(t *testing.T, a *app, name string) *models.Board {
	t.Helper()
	ctx := context.Background()
	b, err := a.store.CreateBoard(ctx, store.CreateBoardOpts{Name: name, OwnerID: "alice"})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	l, err := a.store.CreateList(ctx, store.CreateListOpts{Name: "Todo", BoardID: b.ID}, "alice")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := a.store.CreateCard(ctx, store.CreateCardOpts{Title: "First task", ListID: l.ID}, "alice"); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	return b
}

func TestBoardList(t *testing.T) {
	useTempDB(t)
	a, err := openApp("")
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	seedBoard(t, a, "Roadmap")
	a.Close()

	out, err := runCmd(t, "board", "list", "--owner", "alice")
	if err != nil {
		t.Fatalf("board list: %v", err)
	}
	if !strings.Contains(out, "Roadmap") || !strings.Contains(out, "NAME") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = runCmd(t, "board", "list", "--owner", "nobody")
	if err != nil {
		t.Fatalf("board list (empty): %v", err)
	}
	if !strings.Contains(out, "No boards") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestBoardList_RequiresOwner(t *testing.T) {
	useTempDB(t)
	if _, err := runCmd(t, "board", "list"); err == nil {
		t.Fatal("expected error without --owner")
	}
}

func TestBoardShow(t *testing.T) {
	useTempDB(t)
	a, err := openApp("")
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	b := seedBoard(t, a, "Roadmap")
	a.Close()

	out, err := runCmd(t, "board", "show", b.ID)
	if err != nil {
		t.Fatalf("board show: %v", err)
	}
	for _, want := range []string{"Roadmap", "[0] Todo (1 cards)", "First task", "medium"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}

	if _, err := runCmd(t, "board", "show", "nope"); err == nil {
		t.Error("expected error for unknown board")
	}
}

func TestActivityCmd(t *testing.T) {
	useTempDB(t)
	a, err := openApp("")
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	b := seedBoard(t, a, "Roadmap")
	a.Close()

	out, err := runCmd(t, "activity", b.ID, "--limit", "2")
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if !strings.Contains(out, "card_created") {
		t.Errorf("expected newest entry card_created, got: %s", out)
	}
	if strings.Contains(out, "board_created") {
		t.Errorf("limit 2 should exclude board_created, got: %s", out)
	}

	if _, err := runCmd(t, "activity", b.ID, "--limit", "0"); err == nil {
		t.Error("expected error for limit 0")
	}
}
