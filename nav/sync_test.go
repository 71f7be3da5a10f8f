package nav

import "testing"

func TestSync_ApplyPushesOnlyOnChangeOrForce(t *testing.T) {
	s := NewSync("")
	s, pushed := s.Apply(Patch{}.WithTags("cat dog").WithMode(ModeList), false)
	if !pushed || s.Location() != "tags=cat+dog&s=list" {
		t.Fatalf("changed location must push: pushed=%v loc=%q", pushed, s.Location())
	}
	if s.History().Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.History().Len())
	}

	s, pushed = s.Apply(Patch{}.WithTags("cat   dog").WithMode(ModeList), false)
	if pushed || s.History().Len() != 2 {
		t.Fatalf("identical location must not push")
	}

	s, pushed = s.Apply(Patch{}.WithTags("cat dog").WithMode(ModeList), true)
	if !pushed || s.History().Len() != 3 {
		t.Fatalf("forced apply must push")
	}
}

func TestSync_OpenAndCloseViewer(t *testing.T) {
	s := NewSync("tags=cat+dog&page=2&s=list")

	s, _ = s.Apply(Patch{}.WithMode(ModeView).WithPostID("42"), false)
	if s.Location() != "tags=cat+dog&page=2&s=view&id=42" {
		t.Fatalf("unexpected open location: %q", s.Location())
	}

	s, _ = s.Apply(Patch{}.WithMode(ModeList), false)
	if s.Location() != "tags=cat+dog&page=2&s=list" {
		t.Fatalf("unexpected close location: %q", s.Location())
	}
}

func TestSync_BackForwardRebuildsState(t *testing.T) {
	s := NewSync("tags=a&s=list")
	s, _ = s.Apply(Patch{}.WithPage(1), false)
	s, _ = s.Apply(Patch{}.WithPage(2), false)

	s, ok := s.Back()
	if !ok || s.State().Page != 1 {
		t.Fatalf("back must restore page 1: %#v", s.State())
	}
	s, ok = s.Back()
	if !ok || s.State() != (State{Tags: "a", Mode: ModeList}) {
		t.Fatalf("back must restore first state: %#v", s.State())
	}
	if _, ok := s.Back(); ok {
		t.Fatalf("back at first entry must fail")
	}

	s, ok = s.Forward()
	if !ok || s.State().Page != 1 {
		t.Fatalf("forward must restore page 1: %#v", s.State())
	}

	// A new entry after going back drops the forward branch.
	s, _ = s.Apply(Patch{}.WithTags("b"), false)
	if _, ok := s.Forward(); ok {
		t.Fatalf("forward branch must be dropped after push")
	}
	if s.History().Len() != 3 {
		t.Fatalf("expected 3 entries after truncation, got %d", s.History().Len())
	}
}

func TestHistory_PushDoesNotAliasEarlierCopies(t *testing.T) {
	h := NewHistory("a").Push("b").Push("c")
	back, _ := h.Back()
	branch := back.Push("x")
	if h.Current() != "c" {
		t.Fatalf("original history mutated: %q", h.Current())
	}
	if branch.Current() != "x" || branch.Len() != 3 {
		t.Fatalf("unexpected branch: %q len=%d", branch.Current(), branch.Len())
	}
}
