package reset

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
	"github.com/shaiso/Mensa/internal/telemetry"
)

// TTL вычищаемых записей.
const (
	// PendingAccountTTL — неактивированные аккаунты старше этого
	// срока удаляются.
	PendingAccountTTL = 3 * 24 * time.Hour

	// TokenTTL — токены старше этого срока удаляются.
	TokenTTL = 24 * time.Hour
)

// AccountStore — операции над аккаунтами, нужные reset job'у.
type AccountStore interface {
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Account, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	IncrementRunCount(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// OrderStore — операции над заказами.
type OrderStore interface {
	PurgeAtSite(ctx context.Context, siteID uuid.UUID) (int64, error)
}

// TokenStore — операции над токенами.
type TokenStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunnerStore — операции над состоянием runner'ов и флагами.
type RunnerStore interface {
	ClearOrderedAtSite(ctx context.Context, siteID uuid.UUID) (int64, error)
	ListCurrent(ctx context.Context) ([]uuid.UUID, error)
	Rotate(ctx context.Context, siteID uuid.UUID) (int64, error)
}

// Step — один шаг reset job'а.
// Run возвращает количество затронутых записей.
type Step struct {
	Name string
	Run  func(ctx context.Context, siteID uuid.UUID) (int64, error)
}

// Executor — тело scheduled job'а: ежедневный rollover состояния
// одного сайта.
//
// Шесть шагов выполняются строго последовательно; ошибка шага
// логируется и НЕ прерывает остальные (best-effort каскад: шаги
// трогают независимые коллекции, частичный прогресс лучше никакого).
type Executor struct {
	accounts AccountStore
	orders   OrderStore
	tokens   TokenStore
	runners  RunnerStore
	logger   *slog.Logger
	now      func() time.Time
}

// Config — конфигурация Executor.
type Config struct {
	Accounts AccountStore
	Orders   OrderStore
	Tokens   TokenStore
	Runners  RunnerStore
	Logger   *slog.Logger

	// Now — источник времени для TTL-порогов. Default: time.Now.
	Now func() time.Time
}

// New создаёт новый Executor.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Executor{
		accounts: cfg.Accounts,
		orders:   cfg.Orders,
		tokens:   cfg.Tokens,
		runners:  cfg.Runners,
		logger:   logger,
		now:      now,
	}
}

// Run выполняет полный reset-цикл для сайта.
//
// Порядок шагов важен: счётчики честности (шаг 5) начисляются ДО
// ротации (шаг 6), потому что шаг 5 читает current runner'ов, а
// ротация их очищает. Purge заказов идёт первым, чтобы гонка с
// параллельной отправкой заказа не оставила частично вычищенное
// состояние относительно runner'ов.
//
// Возвращает количество упавших шагов (0 — полный успех).
func (e *Executor) Run(ctx context.Context, siteID uuid.UUID) int {
	e.logger.Info("reset job started", "site_id", siteID)
	telemetry.ResetRunsTotal.Inc()

	var failed int
	for _, step := range e.Steps() {
		count, err := step.Run(ctx, siteID)
		if err != nil {
			failed++
			telemetry.ResetStepFailures.WithLabelValues(step.Name).Inc()
			e.logger.Error("reset step failed",
				"site_id", siteID,
				"step", step.Name,
				"error", err,
			)
			continue
		}
		e.logger.Info("reset step completed",
			"site_id", siteID,
			"step", step.Name,
			"affected", count,
		)
	}

	e.logger.Info("reset job finished", "site_id", siteID, "failed_steps", failed)
	return failed
}

// Steps возвращает шаги reset-цикла в порядке выполнения.
func (e *Executor) Steps() []Step {
	return []Step{
		{Name: "purge_orders", Run: e.purgeOrders},
		{Name: "expire_pending_accounts", Run: e.expirePendingAccounts},
		{Name: "expire_tokens", Run: e.expireTokens},
		{Name: "clear_ordered_flags", Run: e.clearOrderedFlags},
		{Name: "credit_runners", Run: e.creditRunners},
		{Name: "rotate_runners", Run: e.rotateRunners},
	}
}
