package moderation_test

import (
	"testing"

	"github.com/jobdeck/api/internal/moderation"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "published", "rejected"}
	for _, s := range valid {
		got, err := moderation.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "PENDING", "approved", "draft"} {
		if _, err := moderation.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestCanTransition_FromPending(t *testing.T) {
	if !moderation.CanTransition(moderation.StatusPending, moderation.StatusPublished) {
		t.Error("CanTransition(pending → published) should be true")
	}
	if !moderation.CanTransition(moderation.StatusPending, moderation.StatusRejected) {
		t.Error("CanTransition(pending → rejected) should be true")
	}
	if moderation.CanTransition(moderation.StatusPending, moderation.StatusPending) {
		t.Error("CanTransition(pending → pending) should be false")
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	terminals := []moderation.Status{moderation.StatusPublished, moderation.StatusRejected}
	targets := []moderation.Status{
		moderation.StatusPending,
		moderation.StatusPublished,
		moderation.StatusRejected,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if moderation.CanTransition(from, to) {
				t.Errorf("CanTransition(%s → %s) should be false", from, to)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if moderation.IsTerminal(moderation.StatusPending) {
		t.Error("IsTerminal(pending) should be false")
	}
	if !moderation.IsTerminal(moderation.StatusPublished) {
		t.Error("IsTerminal(published) should be true")
	}
	if !moderation.IsTerminal(moderation.StatusRejected) {
		t.Error("IsTerminal(rejected) should be true")
	}
}
