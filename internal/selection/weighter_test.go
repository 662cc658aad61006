package selection

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// --- PickWeighted Tests ---

func TestPickWeighted_Empty(t *testing.T) {
	_, err := PickWeighted(nil, nil)

	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestPickWeighted_SingleCandidate(t *testing.T) {
	only := domain.Candidate{ID: uuid.New(), DisplayName: "Anna Schmidt", RunCount: 7}

	// Single candidate wins regardless of the draw
	for _, draw := range []float64{0, 0.5, 0.999} {
		pick, err := PickWeighted([]domain.Candidate{only}, func() float64 { return draw })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pick.ID != only.ID {
			t.Errorf("draw %v: expected the only candidate, got %s", draw, pick.DisplayName)
		}
	}
}

func TestPickWeighted_CumulativeWalk(t *testing.T) {
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A", RunCount: 0}
	b := domain.Candidate{ID: uuid.New(), DisplayName: "B", RunCount: 2}
	c := domain.Candidate{ID: uuid.New(), DisplayName: "C", RunCount: 2}
	pool := []domain.Candidate{a, b, c}

	// maxCount = 3, weights are A=3, B=1, C=1, total = 5.
	// threshold = draw * 5; the first candidate whose cumulative
	// weight reaches it wins.
	tests := []struct {
		name string
		draw float64
		want uuid.UUID
	}{
		{"zero draw picks first", 0.0, a.ID},
		{"threshold 2.5 lands on A", 0.5, a.ID},
		{"threshold 3.5 lands on B", 0.7, b.ID},
		{"threshold 4.5 lands on C", 0.9, c.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick, err := PickWeighted(pool, func() float64 { return tt.draw })
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pick.ID != tt.want {
				t.Errorf("expected candidate %s, got %s", tt.want, pick.ID)
			}
		})
	}
}

func TestPickWeighted_FrequentRunnerKeepsNonZeroWeight(t *testing.T) {
	// The candidate with the highest run count still has weight 1:
	// a draw close to 1 must be able to select them.
	pool := []domain.Candidate{
		{ID: uuid.New(), DisplayName: "fresh", RunCount: 0},
		{ID: uuid.New(), DisplayName: "veteran", RunCount: 9},
	}

	pick, err := PickWeighted(pool, func() float64 { return 0.999 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pick.DisplayName != "veteran" {
		t.Errorf("expected veteran to remain selectable, got %s", pick.DisplayName)
	}
}

func TestPickWeighted_FavorsLessFrequentRunners(t *testing.T) {
	fresh := domain.Candidate{ID: uuid.New(), DisplayName: "fresh", RunCount: 0}
	veteran := domain.Candidate{ID: uuid.New(), DisplayName: "veteran", RunCount: 5}
	pool := []domain.Candidate{fresh, veteran}

	rng := rand.New(rand.NewPCG(1, 2))

	counts := map[uuid.UUID]int{}
	for i := 0; i < 10000; i++ {
		pick, err := PickWeighted(pool, rng.Float64)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[pick.ID]++
	}

	// Weights are 6:1 — the fresh candidate must dominate.
	if counts[fresh.ID] <= counts[veteran.ID] {
		t.Errorf("expected fresh (%d) to be picked more often than veteran (%d)",
			counts[fresh.ID], counts[veteran.ID])
	}
	if counts[veteran.ID] == 0 {
		t.Error("veteran should never have zero probability")
	}
}

// --- Weight Tests ---

func TestWeight(t *testing.T) {
	a := domain.Candidate{ID: uuid.New(), RunCount: 0}
	b := domain.Candidate{ID: uuid.New(), RunCount: 2}
	pool := []domain.Candidate{a, b}

	if w := Weight(a, pool); w != 3 {
		t.Errorf("expected weight 3 for run count 0, got %d", w)
	}
	if w := Weight(b, pool); w != 1 {
		t.Errorf("expected weight 1 for the most frequent runner, got %d", w)
	}
}

func TestWeight_UniformPool(t *testing.T) {
	pool := []domain.Candidate{
		{ID: uuid.New(), RunCount: 4},
		{ID: uuid.New(), RunCount: 4},
	}

	// Equal run counts mean equal weight 1 for everyone.
	for _, c := range pool {
		if w := Weight(c, pool); w != 1 {
			t.Errorf("expected weight 1, got %d", w)
		}
	}
}
