package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

var errRecordNotFound = errors.New("record not found")

// fakeRunnerStore хранит записи в map и считает вызовы.
type fakeRunnerStore struct {
	records map[string]*domain.RunnerRecord

	createEmptyCalls int
	setCurrentCalls  int
	lastSetCurrent   domain.RunnerRef
}

func newFakeRunnerStore() *fakeRunnerStore {
	return &fakeRunnerStore{records: make(map[string]*domain.RunnerRecord)}
}

func key(rank domain.Rank, siteID uuid.UUID) string {
	return string(rank) + "/" + siteID.String()
}

func (f *fakeRunnerStore) Get(_ context.Context, rank domain.Rank, siteID uuid.UUID) (*domain.RunnerRecord, error) {
	rec, ok := f.records[key(rank, siteID)]
	if !ok {
		return nil, errRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeRunnerStore) CreateEmpty(_ context.Context, rank domain.Rank, siteID uuid.UUID) error {
	f.createEmptyCalls++
	k := key(rank, siteID)
	if _, ok := f.records[k]; !ok {
		f.records[k] = &domain.RunnerRecord{Rank: rank, SiteID: siteID}
	}
	return nil
}

func (f *fakeRunnerStore) SetCurrent(_ context.Context, rank domain.Rank, siteID uuid.UUID, ref domain.RunnerRef) error {
	f.setCurrentCalls++
	f.lastSetCurrent = ref
	k := key(rank, siteID)
	rec, ok := f.records[k]
	if !ok {
		rec = &domain.RunnerRecord{Rank: rank, SiteID: siteID}
		f.records[k] = rec
	}
	rec.Current = ref
	return nil
}

func newTestSelector(runners *fakeRunnerStore, accounts AccountStore, draw func() float64) *Selector {
	return New(Config{
		Runners:    runners,
		Accounts:   accounts,
		Draw:       draw,
		IsNotFound: func(err error) bool { return errors.Is(err, errRecordNotFound) },
	})
}

// --- SelectRunner Tests ---

func TestSelector_SelectRunner_BootstrapsMissingRecord(t *testing.T) {
	runners := newFakeRunnerStore()
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A"}
	s := newTestSelector(runners, &fakeAccountStore{pool: []domain.Candidate{a}}, func() float64 { return 0 })

	ref, err := s.SelectRunner(context.Background(), "IT1", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runners.createEmptyCalls != 1 {
		t.Errorf("expected one bootstrap, got %d", runners.createEmptyCalls)
	}
	if ref.ID != a.ID {
		t.Errorf("expected candidate A selected, got %s", ref.DisplayName)
	}
}

func TestSelector_SelectRunner_SavesCurrent(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A"}
	s := newTestSelector(runners, &fakeAccountStore{pool: []domain.Candidate{a}}, func() float64 { return 0 })

	if _, err := s.SelectRunner(context.Background(), "IT1", siteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runners.setCurrentCalls != 1 {
		t.Fatalf("expected SetCurrent to be called once, got %d", runners.setCurrentCalls)
	}
	if runners.lastSetCurrent.ID != a.ID {
		t.Errorf("expected A persisted as current, got %s", runners.lastSetCurrent.DisplayName)
	}
}

func TestSelector_SelectRunner_ExcludesLastRunner(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	a := domain.Candidate{ID: uuid.New(), DisplayName: "A"}
	b := domain.Candidate{ID: uuid.New(), DisplayName: "B"}

	runners.records[key("IT1", siteID)] = &domain.RunnerRecord{
		Rank:   "IT1",
		SiteID: siteID,
		Last:   domain.RunnerRef{ID: a.ID, DisplayName: "A"},
	}

	// Draw 0 always picks the first eligible candidate; with A
	// excluded that must be B.
	s := newTestSelector(runners, &fakeAccountStore{pool: []domain.Candidate{a, b}}, func() float64 { return 0 })

	ref, err := s.SelectRunner(context.Background(), "IT1", siteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != b.ID {
		t.Errorf("expected B (A excluded as last runner), got %s", ref.DisplayName)
	}
}

func TestSelector_SelectRunner_EmptyPoolFallsBackToLast(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	last := domain.RunnerRef{ID: uuid.New(), DisplayName: "A"}

	runners.records[key("IT1", siteID)] = &domain.RunnerRecord{
		Rank:   "IT1",
		SiteID: siteID,
		Last:   last,
	}

	s := newTestSelector(runners, &fakeAccountStore{}, nil)

	ref, err := s.SelectRunner(context.Background(), "IT1", siteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != last.ID {
		t.Errorf("expected fallback to last runner, got %s", ref.DisplayName)
	}

	// The fallback carries the old assignment forward without
	// mutating the record.
	if runners.setCurrentCalls != 0 {
		t.Errorf("expected no SetCurrent on fallback, got %d calls", runners.setCurrentCalls)
	}
}

func TestSelector_SelectRunner_EmptyPoolNoLast(t *testing.T) {
	runners := newFakeRunnerStore()
	s := newTestSelector(runners, &fakeAccountStore{}, nil)

	_, err := s.SelectRunner(context.Background(), "IT1", uuid.New())

	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

// --- AssignRunner Tests ---

func TestSelector_AssignRunner(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	ref := domain.RunnerRef{ID: uuid.New(), DisplayName: "Volunteer"}

	s := newTestSelector(runners, &fakeAccountStore{}, nil)

	if err := s.AssignRunner(context.Background(), "IT2", siteID, ref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := runners.records[key("IT2", siteID)]
	if rec == nil || rec.Current.ID != ref.ID {
		t.Error("expected volunteer persisted as current runner")
	}
}

// --- GetRunnerState Tests ---

func TestSelector_GetRunnerState_SynthesizesEmptyRecord(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	s := newTestSelector(runners, &fakeAccountStore{}, nil)

	rec, err := s.GetRunnerState(context.Background(), "IT1", siteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Rank != "IT1" || rec.SiteID != siteID {
		t.Error("expected synthesized record keyed by (rank, site)")
	}
	if rec.HasCurrent() {
		t.Error("synthesized record should have no current runner")
	}

	// Reading state must not create anything.
	if runners.createEmptyCalls != 0 {
		t.Errorf("expected no bootstrap on read, got %d calls", runners.createEmptyCalls)
	}
}

func TestSelector_GetRunnerState_ReturnsExisting(t *testing.T) {
	runners := newFakeRunnerStore()
	siteID := uuid.New()
	current := domain.RunnerRef{ID: uuid.New(), DisplayName: "A"}
	runners.records[key("IT1", siteID)] = &domain.RunnerRecord{
		Rank:    "IT1",
		SiteID:  siteID,
		Current: current,
	}

	s := newTestSelector(runners, &fakeAccountStore{}, nil)

	rec, err := s.GetRunnerState(context.Background(), "IT1", siteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Current.ID != current.ID {
		t.Errorf("expected current runner %s, got %s", current.DisplayName, rec.Current.DisplayName)
	}
}
