package core

import (
	"testing"
)

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("NewID returned an empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestRunIDString(t *testing.T) {
	id := NewRunID()
	if id.String() == "" {
		t.Fatal("RunID string should not be empty")
	}
	if len(id.String()) != 36 {
		t.Fatalf("expected UUID format, got %q", id.String())
	}
}
