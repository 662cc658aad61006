package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shaiso/Mensa/internal/domain"
)

// JobFunc — тело job'а, вызываемое в момент срабатывания.
// Реализуется reset.Executor'ом.
type JobFunc func(ctx context.Context, siteID uuid.UUID)

// State — состояние job'а сайта.
type State string

const (
	// StateUnregistered — для сайта нет job'а (реестр ещё не
	// bootstrap'нулся или сайт удалён).
	StateUnregistered State = "UNREGISTERED"

	// StateScheduled — таймер взведён.
	StateScheduled State = "SCHEDULED"

	// StateCanceled — job зарегистрирован, но таймер снят.
	StateCanceled State = "CANCELED"
)

// entry — job одного сайта.
//
// mu сериализует мутации (retime/cancel/start) по сайту: без неё
// retime мог бы гоняться с cancel за cronID.
type entry struct {
	mu      sync.Mutex
	hour    int
	minute  int
	enabled bool
	cronID  cron.EntryID // 0 — таймер снят
}

// Registry — реестр scheduled jobs, по одному на сайт.
//
// Ключевая map siteID → entry с O(1) lookup; таймеры ведёт один
// cron.Cron, по одной entry на сайт, спека "M H * * *" — ежедневно
// в локальное время (hour, minute), без фильтра по дням недели.
//
// Живые jobs не персистятся: при старте процесса Bootstrap
// пересобирает их из настроек сайтов.
type Registry struct {
	cron   *cron.Cron
	job    JobFunc
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[uuid.UUID]*entry

	runCtx context.Context
}

// Config — конфигурация Registry.
type Config struct {
	// Job — тело job'а.
	Job JobFunc

	// Location — часовой пояс срабатывания. Default: time.Local.
	Location *time.Location

	Logger *slog.Logger
}

// New создаёт новый Registry. Таймеры не идут, пока не вызван Run.
func New(cfg Config) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Registry{
		cron:   cron.New(cron.WithLocation(loc)),
		job:    cfg.Job,
		logger: logger,
		jobs:   make(map[uuid.UUID]*entry),
		runCtx: context.Background(),
	}
}

// Run запускает таймеры. ctx передаётся в каждое срабатывание job'а.
func (r *Registry) Run(ctx context.Context) {
	r.runCtx = ctx
	r.cron.Start()
}

// Shutdown останавливает таймеры. Уже начавшееся срабатывание
// не прерывается: возвращаемый context закрывается, когда все
// in-flight jobs завершатся.
func (r *Registry) Shutdown() context.Context {
	return r.cron.Stop()
}

// Bootstrap регистрирует jobs для всех сайтов из настроек.
// Вызывается один раз при старте процесса.
func (r *Registry) Bootstrap(sites []domain.SiteSettings) error {
	for i := range sites {
		s := &sites[i]
		if err := r.Register(s.ID, s.AutoDeleteHour, s.AutoDeleteMinute, s.AutoDeleteEnabled); err != nil {
			return fmt.Errorf("register site %s: %w", s.ID, err)
		}
	}
	r.logger.Info("job registry bootstrapped", "sites", len(sites))
	return nil
}

// Register создаёт job сайта и, если enabled, взводит таймер.
// Повторная регистрация существующего сайта — no-op.
func (r *Registry) Register(siteID uuid.UUID, hour, minute int, enabled bool) error {
	if err := domain.ValidateTriggerTime(hour, minute); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.jobs[siteID]; ok {
		r.mu.Unlock()
		return nil
	}
	e := &entry{hour: hour, minute: minute, enabled: enabled}
	r.jobs[siteID] = e
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled {
		if err := r.arm(siteID, e); err != nil {
			return err
		}
	}

	r.logger.Info("job registered",
		"site_id", siteID,
		"trigger", fmt.Sprintf("%02d:%02d", hour, minute),
		"enabled", enabled,
	)
	return nil
}

// SetTime меняет время срабатывания, не трогая enabled.
//
// Если таймер взведён, старый снимается и взводится новый под
// per-site mutex'ом: между снятием и взводом срабатывание
// невозможно. Для незарегистрированного сайта — no-op: UI
// редактора может дёргать реестр раньше bootstrap'а.
func (r *Registry) SetTime(siteID uuid.UUID, hour, minute int) error {
	if err := domain.ValidateTriggerTime(hour, minute); err != nil {
		return err
	}

	e := r.lookup(siteID)
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.hour, e.minute = hour, minute
	if e.cronID != 0 {
		r.disarm(e)
		if err := r.arm(siteID, e); err != nil {
			return err
		}
	}

	r.logger.Info("job retimed",
		"site_id", siteID,
		"trigger", fmt.Sprintf("%02d:%02d", hour, minute),
	)
	return nil
}

// Start взводит таймер по последним известным (hour, minute).
// Для незарегистрированного сайта — no-op.
func (r *Registry) Start(siteID uuid.UUID) error {
	e := r.lookup(siteID)
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = true
	if e.cronID == 0 {
		if err := r.arm(siteID, e); err != nil {
			return err
		}
	}

	r.logger.Info("job started", "site_id", siteID)
	return nil
}

// Cancel снимает таймер. Будущие срабатывания отменяются,
// уже начавшееся выполнение не прерывается.
// Для незарегистрированного сайта — no-op.
func (r *Registry) Cancel(siteID uuid.UUID) {
	e := r.lookup(siteID)
	if e == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = false
	r.disarm(e)

	r.logger.Info("job canceled", "site_id", siteID)
}

// Deregister отменяет job и убирает сайт из реестра.
// Вызывается при удалении сайта.
func (r *Registry) Deregister(siteID uuid.UUID) {
	r.mu.Lock()
	e, ok := r.jobs[siteID]
	if ok {
		delete(r.jobs, siteID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	r.disarm(e)
	e.mu.Unlock()

	r.logger.Info("job deregistered", "site_id", siteID)
}

// OnScheduleChanged применяет новые настройки сайта: регистрирует
// job при необходимости, перенастраивает время, взводит или
// снимает таймер.
func (r *Registry) OnScheduleChanged(siteID uuid.UUID, hour, minute int, enabled bool) error {
	if r.lookup(siteID) == nil {
		return r.Register(siteID, hour, minute, enabled)
	}
	if err := r.SetTime(siteID, hour, minute); err != nil {
		return err
	}
	if enabled {
		return r.Start(siteID)
	}
	r.Cancel(siteID)
	return nil
}

// JobInfo — снимок состояния job'а для API/CLI.
type JobInfo struct {
	SiteID  uuid.UUID  `json:"site_id"`
	Hour    int        `json:"hour"`
	Minute  int        `json:"minute"`
	Enabled bool       `json:"enabled"`
	State   State      `json:"state"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// Info возвращает снимок состояния job'а сайта.
func (r *Registry) Info(siteID uuid.UUID) JobInfo {
	e := r.lookup(siteID)
	if e == nil {
		return JobInfo{SiteID: siteID, State: StateUnregistered}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	info := JobInfo{
		SiteID:  siteID,
		Hour:    e.hour,
		Minute:  e.minute,
		Enabled: e.enabled,
		State:   StateCanceled,
	}
	if e.cronID != 0 {
		info.State = StateScheduled
		next := r.cron.Entry(e.cronID).Next
		if !next.IsZero() {
			info.NextRun = &next
		}
	}
	return info
}

// --- Helpers ---

func (r *Registry) lookup(siteID uuid.UUID) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jobs[siteID]
}

// arm взводит cron-таймер. Caller держит e.mu.
func (r *Registry) arm(siteID uuid.UUID, e *entry) error {
	spec := fmt.Sprintf("%d %d * * *", e.minute, e.hour)
	id, err := r.cron.AddFunc(spec, func() {
		r.job(r.runCtx, siteID)
	})
	if err != nil {
		return fmt.Errorf("arm job for site %s: %w", siteID, err)
	}
	e.cronID = id
	e.enabled = true
	return nil
}

// disarm снимает cron-таймер. Caller держит e.mu.
func (r *Registry) disarm(e *entry) {
	if e.cronID != 0 {
		r.cron.Remove(e.cronID)
		e.cronID = 0
	}
}
