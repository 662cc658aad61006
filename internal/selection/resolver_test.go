package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// fakeAccountStore отдаёт фиксированный пул кандидатов.
type fakeAccountStore struct {
	pool []domain.Candidate
	err  error
}

func (f *fakeAccountStore) FindByRankAndSite(_ context.Context, _ domain.Rank, _ uuid.UUID) ([]domain.Candidate, error) {
	return f.pool, f.err
}

// --- Resolver Tests ---

func TestResolver_Eligible_EmptyPool(t *testing.T) {
	r := NewResolver(&fakeAccountStore{})

	_, err := r.Eligible(context.Background(), "IT1", uuid.New(), domain.RunnerRef{})

	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestResolver_Eligible_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	r := NewResolver(&fakeAccountStore{err: storeErr})

	_, err := r.Eligible(context.Background(), "IT1", uuid.New(), domain.RunnerRef{})

	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestResolver_Eligible_NoLastRunner(t *testing.T) {
	pool := []domain.Candidate{
		{ID: uuid.New(), DisplayName: "A"},
		{ID: uuid.New(), DisplayName: "B"},
	}
	r := NewResolver(&fakeAccountStore{pool: pool})

	got, err := r.Eligible(context.Background(), "IT1", uuid.New(), domain.RunnerRef{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected full pool of 2, got %d", len(got))
	}
}

func TestResolver_Eligible_ExcludesLastRunner(t *testing.T) {
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A"}
	b := domain.Candidate{ID: uuid.New(), DisplayName: "B"}
	r := NewResolver(&fakeAccountStore{pool: []domain.Candidate{a, b}})

	got, err := r.Eligible(context.Background(), "IT1", uuid.New(),
		domain.RunnerRef{ID: a.ID, DisplayName: a.DisplayName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("expected pool to contain only B, got %v", got)
	}
}

func TestResolver_Eligible_ReincludesLastWhenAlone(t *testing.T) {
	// The last runner is the only one who ordered: the exclusion
	// would empty the pool, so it is lifted.
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A"}
	r := NewResolver(&fakeAccountStore{pool: []domain.Candidate{a}})

	got, err := r.Eligible(context.Background(), "IT1", uuid.New(),
		domain.RunnerRef{ID: a.ID, DisplayName: a.DisplayName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("expected last runner back in the pool, got %v", got)
	}
}
