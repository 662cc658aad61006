package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
	"github.com/shaiso/Mensa/internal/telemetry"
)

// RunnerStore — часть хранилища состояния runner'ов, нужная selector'у.
// Реализуется repo.RunnerRepo.
type RunnerStore interface {
	// Get возвращает RunnerRecord или repo.ErrNotFound-совместимую
	// ошибку, классифицируемую через IsNotFound.
	Get(ctx context.Context, rank domain.Rank, siteID uuid.UUID) (*domain.RunnerRecord, error)

	// CreateEmpty создаёт пустую запись, идемпотентно.
	CreateEmpty(ctx context.Context, rank domain.Rank, siteID uuid.UUID) error

	// SetCurrent назначает runner'а текущего цикла (upsert).
	SetCurrent(ctx context.Context, rank domain.Rank, siteID uuid.UUID, ref domain.RunnerRef) error
}

// IsNotFound сообщает selector'у, что Get не нашёл запись.
// Вынесено в поле Config, чтобы не тянуть repo в сигнатуру пакета.
type IsNotFound func(error) bool

// Selector — выбор runner'а: resolver → weighter → store.
type Selector struct {
	runners    RunnerStore
	resolver   *Resolver
	draw       func() float64
	isNotFound IsNotFound
	logger     *slog.Logger
}

// Config — конфигурация Selector.
type Config struct {
	Runners  RunnerStore
	Accounts AccountStore

	// Draw — источник случайности [0, 1). Default: rand.Float64.
	Draw func() float64

	// IsNotFound — классификатор ошибки "запись не найдена" от
	// Runners.Get (обычно func(err) { return errors.Is(err, repo.ErrNotFound) }).
	IsNotFound IsNotFound

	Logger *slog.Logger
}

// New создаёт новый Selector.
func New(cfg Config) *Selector {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	isNotFound := cfg.IsNotFound
	if isNotFound == nil {
		isNotFound = func(error) bool { return false }
	}

	return &Selector{
		runners:    cfg.Runners,
		resolver:   NewResolver(cfg.Accounts),
		draw:       cfg.Draw,
		isNotFound: isNotFound,
		logger:     logger,
	}
}

// SelectRunner выбирает runner'а для пары (rank, site) и сохраняет
// его как current.
//
// Если пул пуст, но last runner известен — возвращается last runner
// БЕЗ записи в store: это presentation-фолбэк, старое назначение
// просто проносится вперёд. Если нет ни пула, ни last runner'а —
// ErrNoCandidates.
func (s *Selector) SelectRunner(ctx context.Context, rank domain.Rank, siteID uuid.UUID) (domain.RunnerRef, error) {
	rec, err := s.getOrBootstrap(ctx, rank, siteID)
	if err != nil {
		return domain.RunnerRef{}, err
	}

	pool, err := s.resolver.Eligible(ctx, rank, siteID, rec.Last)
	if err != nil {
		if errors.Is(err, ErrNoCandidates) {
			if rec.Last.IsZero() {
				return domain.RunnerRef{}, ErrNoCandidates
			}
			s.logger.Debug("empty pool, falling back to last runner",
				"rank", rank,
				"site_id", siteID,
				"last_runner", rec.Last.ID,
			)
			return rec.Last, nil
		}
		return domain.RunnerRef{}, err
	}

	pick, err := PickWeighted(pool, s.draw)
	if err != nil {
		return domain.RunnerRef{}, err
	}

	ref := domain.RunnerRef{ID: pick.ID, DisplayName: pick.DisplayName}
	if err := s.runners.SetCurrent(ctx, rank, siteID, ref); err != nil {
		return domain.RunnerRef{}, fmt.Errorf("save current runner: %w", err)
	}

	telemetry.SelectionsTotal.Inc()
	s.logger.Info("runner selected",
		"rank", rank,
		"site_id", siteID,
		"runner_id", ref.ID,
		"pool_size", len(pool),
	)
	return ref, nil
}

// AssignRunner назначает runner'а напрямую, без выбора.
// Используется, когда пользователь сам вызывается бежать.
func (s *Selector) AssignRunner(ctx context.Context, rank domain.Rank, siteID uuid.UUID, ref domain.RunnerRef) error {
	if err := s.runners.SetCurrent(ctx, rank, siteID, ref); err != nil {
		return fmt.Errorf("assign runner: %w", err)
	}
	s.logger.Info("runner self-assigned",
		"rank", rank,
		"site_id", siteID,
		"runner_id", ref.ID,
	)
	return nil
}

// GetRunnerState возвращает RunnerRecord пары (rank, site).
// Если записи нет — синтезирует пустую, НЕ сохраняя её: чтение
// состояния не имеет побочных эффектов.
func (s *Selector) GetRunnerState(ctx context.Context, rank domain.Rank, siteID uuid.UUID) (*domain.RunnerRecord, error) {
	rec, err := s.runners.Get(ctx, rank, siteID)
	if err != nil {
		if s.isNotFound(err) {
			return &domain.RunnerRecord{Rank: rank, SiteID: siteID}, nil
		}
		return nil, fmt.Errorf("get runner record: %w", err)
	}
	return rec, nil
}

// getOrBootstrap возвращает запись, создавая пустую при отсутствии.
// Повтор ровно один: если записи нет и после bootstrap'а, ошибка
// отдаётся как есть.
func (s *Selector) getOrBootstrap(ctx context.Context, rank domain.Rank, siteID uuid.UUID) (*domain.RunnerRecord, error) {
	rec, err := s.runners.Get(ctx, rank, siteID)
	if err == nil {
		return rec, nil
	}
	if !s.isNotFound(err) {
		return nil, fmt.Errorf("get runner record: %w", err)
	}

	if err := s.runners.CreateEmpty(ctx, rank, siteID); err != nil {
		return nil, fmt.Errorf("bootstrap runner record: %w", err)
	}
	rec, err = s.runners.Get(ctx, rank, siteID)
	if err != nil {
		if s.isNotFound(err) {
			return nil, ErrRecordMissing
		}
		return nil, fmt.Errorf("get runner record after bootstrap: %w", err)
	}
	return rec, nil
}
