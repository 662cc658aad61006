package domain

import (
	"testing"

	"github.com/google/uuid"
)

// --- RunnerRecord Tests ---

func TestRunnerRecord_Rotate(t *testing.T) {
	current := RunnerRef{ID: uuid.New(), DisplayName: "A"}
	rec := RunnerRecord{Current: current, Last: RunnerRef{ID: uuid.New(), DisplayName: "B"}}

	rec.Rotate()

	if rec.Last.ID != current.ID {
		t.Errorf("expected current moved to last, got %s", rec.Last.DisplayName)
	}
	if rec.HasCurrent() {
		t.Error("expected current cleared after rotation")
	}
}

func TestRunnerRecord_Rotate_EmptyCurrent(t *testing.T) {
	last := RunnerRef{ID: uuid.New(), DisplayName: "B"}
	rec := RunnerRecord{Last: last}

	// No current runner: the old last survives the cycle.
	rec.Rotate()

	if rec.Last.ID != last.ID {
		t.Errorf("expected last preserved, got %v", rec.Last)
	}
}

func TestRunnerRecord_Rotate_Idempotent(t *testing.T) {
	rec := RunnerRecord{Current: RunnerRef{ID: uuid.New(), DisplayName: "A"}}

	rec.Rotate()
	afterFirst := rec.Last
	rec.Rotate()

	if rec.Last.ID != afterFirst.ID {
		t.Error("second rotation without a new current must not change last")
	}
}

func TestRunnerRef_IsZero(t *testing.T) {
	if !(RunnerRef{}).IsZero() {
		t.Error("empty ref should be zero")
	}
	if (RunnerRef{ID: uuid.New()}).IsZero() {
		t.Error("ref with ID should not be zero")
	}
}
