package board_test

import (
	"testing"

	"tarion/internal/board"
)

func TestPileDrawOrder(t *testing.T) {
	p := board.NewPile([]string{"a", "b", "c"})
	if p.Len() != 3 {
		t.Fatalf("expected 3 cards, got %d", p.Len())
	}

	head, ok := p.Peek()
	if !ok {
		t.Fatal("peek on non-empty pile failed")
	}
	popped, _ := p.Pop()
	if popped != head {
		t.Errorf("pop returned %q, peek said %q", popped, head)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 cards after pop, got %d", p.Len())
	}
}

func TestPilePushFront(t *testing.T) {
	p := board.NewPile([]string{"a", "b", "c"})
	first, _ := p.Pop()
	p.PushFront(first)

	head, _ := p.Peek()
	if head != first {
		t.Errorf("pushed-front card should be the new head, got %q want %q", head, first)
	}
	if p.Len() != 3 {
		t.Errorf("expected 3 cards, got %d", p.Len())
	}
}

func TestPileNoDuplicates(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	p := board.NewPile(ids)

	seen := make(map[string]bool)
	for {
		id, ok := p.Pop()
		if !ok {
			break
		}
		if seen[id] {
			t.Fatalf("duplicate card %q in pile", id)
		}
		seen[id] = true
	}
	if len(seen) != len(ids) {
		t.Errorf("expected %d unique cards, got %d", len(ids), len(seen))
	}
}

func TestEmptyPile(t *testing.T) {
	p := board.NewPile(nil)
	if _, ok := p.Pop(); ok {
		t.Error("pop on empty pile should report failure")
	}
	if _, ok := p.Peek(); ok {
		t.Error("peek on empty pile should report failure")
	}
}
