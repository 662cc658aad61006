package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

func newTestRegistry() *Registry {
	return New(Config{
		Job: func(context.Context, uuid.UUID) {},
	})
}

// --- Register Tests ---

func TestRegistry_Register_Enabled(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()

	if err := r.Register(siteID, 14, 30, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.State != StateScheduled {
		t.Errorf("expected SCHEDULED, got %s", info.State)
	}
	if info.Hour != 14 || info.Minute != 30 {
		t.Errorf("expected trigger 14:30, got %02d:%02d", info.Hour, info.Minute)
	}
}

func TestRegistry_Register_Disabled(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()

	if err := r.Register(siteID, 9, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.Info(siteID).State; got != StateCanceled {
		t.Errorf("expected CANCELED, got %s", got)
	}
}

func TestRegistry_Register_InvalidTime(t *testing.T) {
	r := newTestRegistry()

	if err := r.Register(uuid.New(), 24, 0, true); err == nil {
		t.Error("expected error for hour 24")
	}
	if err := r.Register(uuid.New(), 12, 60, true); err == nil {
		t.Error("expected error for minute 60")
	}
}

func TestRegistry_Register_Idempotent(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()

	if err := r.Register(siteID, 10, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second registration must not overwrite the existing job.
	if err := r.Register(siteID, 18, 45, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.Hour != 10 || info.Minute != 0 {
		t.Errorf("expected original trigger 10:00, got %02d:%02d", info.Hour, info.Minute)
	}
	if info.State != StateScheduled {
		t.Errorf("expected SCHEDULED, got %s", info.State)
	}
}

// --- State Transition Tests ---

func TestRegistry_Info_Unregistered(t *testing.T) {
	r := newTestRegistry()

	if got := r.Info(uuid.New()).State; got != StateUnregistered {
		t.Errorf("expected UNREGISTERED, got %s", got)
	}
}

func TestRegistry_CancelAndStart(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()
	r.Register(siteID, 12, 0, true)

	r.Cancel(siteID)
	if got := r.Info(siteID).State; got != StateCanceled {
		t.Errorf("expected CANCELED after Cancel, got %s", got)
	}

	if err := r.Start(siteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Info(siteID).State; got != StateScheduled {
		t.Errorf("expected SCHEDULED after Start, got %s", got)
	}
}

func TestRegistry_SetTime(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()
	r.Register(siteID, 12, 0, true)

	if err := r.SetTime(siteID, 17, 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.Hour != 17 || info.Minute != 15 {
		t.Errorf("expected trigger 17:15, got %02d:%02d", info.Hour, info.Minute)
	}
	if info.State != StateScheduled {
		t.Errorf("retiming must keep the timer armed, got %s", info.State)
	}
}

func TestRegistry_SetTime_KeepsCanceledDisarmed(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()
	r.Register(siteID, 12, 0, false)

	if err := r.SetTime(siteID, 8, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.State != StateCanceled {
		t.Errorf("retiming must not arm a canceled job, got %s", info.State)
	}
	if info.Hour != 8 {
		t.Errorf("expected the new time stored, got %02d:%02d", info.Hour, info.Minute)
	}
}

// --- No-op Semantics Tests ---

func TestRegistry_UnregisteredOperationsAreNoops(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()

	// The editor UI may call the registry before bootstrap; none of
	// these must fail or create a job.
	if err := r.SetTime(siteID, 10, 0); err != nil {
		t.Errorf("SetTime on unregistered site: %v", err)
	}
	if err := r.Start(siteID); err != nil {
		t.Errorf("Start on unregistered site: %v", err)
	}
	r.Cancel(siteID)
	r.Deregister(siteID)

	if got := r.Info(siteID).State; got != StateUnregistered {
		t.Errorf("expected UNREGISTERED, got %s", got)
	}
}

// --- Deregister Tests ---

func TestRegistry_Deregister(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()
	r.Register(siteID, 12, 0, true)

	r.Deregister(siteID)

	if got := r.Info(siteID).State; got != StateUnregistered {
		t.Errorf("expected UNREGISTERED after Deregister, got %s", got)
	}
}

// --- OnScheduleChanged Tests ---

func TestRegistry_OnScheduleChanged_RegistersMissing(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()

	if err := r.OnScheduleChanged(siteID, 11, 30, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.State != StateScheduled || info.Hour != 11 || info.Minute != 30 {
		t.Errorf("expected SCHEDULED at 11:30, got %s %02d:%02d", info.State, info.Hour, info.Minute)
	}
}

func TestRegistry_OnScheduleChanged_RetimesAndToggles(t *testing.T) {
	r := newTestRegistry()
	siteID := uuid.New()
	r.Register(siteID, 12, 0, true)

	if err := r.OnScheduleChanged(siteID, 16, 45, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := r.Info(siteID)
	if info.State != StateCanceled {
		t.Errorf("expected CANCELED, got %s", info.State)
	}
	if info.Hour != 16 || info.Minute != 45 {
		t.Errorf("expected trigger 16:45, got %02d:%02d", info.Hour, info.Minute)
	}

	if err := r.OnScheduleChanged(siteID, 16, 45, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Info(siteID).State; got != StateScheduled {
		t.Errorf("expected SCHEDULED after re-enable, got %s", got)
	}
}

// --- Bootstrap Tests ---

func TestRegistry_Bootstrap(t *testing.T) {
	r := newTestRegistry()

	sites := []domain.SiteSettings{
		{ID: uuid.New(), AutoDeleteHour: 14, AutoDeleteMinute: 0, AutoDeleteEnabled: true},
		{ID: uuid.New(), AutoDeleteHour: 9, AutoDeleteMinute: 30, AutoDeleteEnabled: false},
	}

	if err := r.Bootstrap(sites); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.Info(sites[0].ID).State; got != StateScheduled {
		t.Errorf("enabled site: expected SCHEDULED, got %s", got)
	}
	if got := r.Info(sites[1].ID).State; got != StateCanceled {
		t.Errorf("disabled site: expected CANCELED, got %s", got)
	}
}
