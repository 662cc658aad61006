package reset

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// fakeStores записывает порядок вызовов, общий для всех хранилищ:
// каскад шагов проверяется по одному журналу.
type fakeStores struct {
	calls []string

	pendingAccounts []domain.Account
	currentRunners  []uuid.UUID
	creditedIDs     []uuid.UUID

	pendingCutoff time.Time
	tokenCutoff   time.Time

	purgeErr error
}

func (f *fakeStores) record(name string) { f.calls = append(f.calls, name) }

// AccountStore

func (f *fakeStores) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]domain.Account, error) {
	f.record("find_pending")
	f.pendingCutoff = cutoff
	return f.pendingAccounts, nil
}

func (f *fakeStores) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.record("delete_accounts")
	return int64(len(ids)), nil
}

func (f *fakeStores) IncrementRunCount(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.record("increment_run_count")
	f.creditedIDs = ids
	return int64(len(ids)), nil
}

// OrderStore

func (f *fakeStores) PurgeAtSite(_ context.Context, _ uuid.UUID) (int64, error) {
	f.record("purge_orders")
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	return 3, nil
}

// TokenStore

func (f *fakeStores) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.record("delete_tokens")
	f.tokenCutoff = cutoff
	return 0, nil
}

// RunnerStore

func (f *fakeStores) ClearOrderedAtSite(_ context.Context, _ uuid.UUID) (int64, error) {
	f.record("clear_ordered")
	return 0, nil
}

func (f *fakeStores) ListCurrent(_ context.Context) ([]uuid.UUID, error) {
	f.record("list_current")
	return f.currentRunners, nil
}

func (f *fakeStores) Rotate(_ context.Context, _ uuid.UUID) (int64, error) {
	f.record("rotate")
	return 2, nil
}

func newTestExecutor(f *fakeStores, now func() time.Time) *Executor {
	return New(Config{
		Accounts: f,
		Orders:   f,
		Tokens:   f,
		Runners:  f,
		Now:      now,
	})
}

// --- Executor Tests ---

func TestExecutor_Run_StepOrder(t *testing.T) {
	f := &fakeStores{currentRunners: []uuid.UUID{uuid.New()}}
	e := newTestExecutor(f, nil)

	failed := e.Run(context.Background(), uuid.New())

	if failed != 0 {
		t.Fatalf("expected no failed steps, got %d", failed)
	}

	want := []string{
		"purge_orders",
		"find_pending",
		"delete_tokens",
		"clear_ordered",
		"list_current",
		"increment_run_count",
		"rotate",
	}
	if !slices.Equal(f.calls, want) {
		t.Errorf("wrong call order:\n got %v\nwant %v", f.calls, want)
	}
}

func TestExecutor_Run_CreditsBeforeRotate(t *testing.T) {
	// Rotation clears current runners, so crediting must read them
	// first.
	f := &fakeStores{currentRunners: []uuid.UUID{uuid.New()}}
	e := newTestExecutor(f, nil)

	e.Run(context.Background(), uuid.New())

	credit := slices.Index(f.calls, "increment_run_count")
	rotate := slices.Index(f.calls, "rotate")
	if credit == -1 || rotate == -1 || credit > rotate {
		t.Errorf("expected crediting before rotation, calls: %v", f.calls)
	}
}

func TestExecutor_Run_ContinuesAfterStepFailure(t *testing.T) {
	f := &fakeStores{purgeErr: errors.New("deadlock detected")}
	e := newTestExecutor(f, nil)

	failed := e.Run(context.Background(), uuid.New())

	if failed != 1 {
		t.Errorf("expected exactly one failed step, got %d", failed)
	}
	if !slices.Contains(f.calls, "rotate") {
		t.Error("later steps must still run after a failure")
	}
}

func TestExecutor_Run_CreditsAllCurrentRunners(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	f := &fakeStores{currentRunners: ids}
	e := newTestExecutor(f, nil)

	e.Run(context.Background(), uuid.New())

	if !slices.Equal(f.creditedIDs, ids) {
		t.Errorf("expected all current runners credited, got %v", f.creditedIDs)
	}
}

func TestExecutor_Run_SkipsCreditWhenNoCurrentRunners(t *testing.T) {
	f := &fakeStores{}
	e := newTestExecutor(f, nil)

	e.Run(context.Background(), uuid.New())

	if slices.Contains(f.calls, "increment_run_count") {
		t.Error("no current runners means nothing to credit")
	}
}

func TestExecutor_Run_SkipsDeleteWhenNoPendingAccounts(t *testing.T) {
	f := &fakeStores{}
	e := newTestExecutor(f, nil)

	e.Run(context.Background(), uuid.New())

	if slices.Contains(f.calls, "delete_accounts") {
		t.Error("no stale pending accounts means nothing to delete")
	}
}

func TestExecutor_Run_TTLCutoffs(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	f := &fakeStores{}
	e := newTestExecutor(f, func() time.Time { return now })

	e.Run(context.Background(), uuid.New())

	if want := now.Add(-PendingAccountTTL); !f.pendingCutoff.Equal(want) {
		t.Errorf("pending account cutoff: expected %v, got %v", want, f.pendingCutoff)
	}
	if want := now.Add(-TokenTTL); !f.tokenCutoff.Equal(want) {
		t.Errorf("token cutoff: expected %v, got %v", want, f.tokenCutoff)
	}
}
