package selection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// AccountStore — часть хранилища аккаунтов, нужная resolver'у.
// Реализуется repo.AccountRepo.
type AccountStore interface {
	// FindByRankAndSite возвращает кандидатов ранга с хотя бы одним
	// заказом на сайте в текущем цикле.
	FindByRankAndSite(ctx context.Context, rank domain.Rank, siteID uuid.UUID) ([]domain.Candidate, error)
}

// Resolver вычисляет пул подходящих кандидатов для пары (rank, site).
//
// Правило: все аккаунты ранга, заказавшие на сайте, минус last runner.
// Если исключение last runner'а опустошает пул, а без исключения пул
// не пуст — исключение снимается: last runner может быть выбран два
// цикла подряд. Если пул пуст и без исключения — ErrNoCandidates.
type Resolver struct {
	accounts AccountStore
}

// NewResolver создаёт новый Resolver.
func NewResolver(accounts AccountStore) *Resolver {
	return &Resolver{accounts: accounts}
}

// Eligible возвращает пул кандидатов с учётом исключения last runner'а.
func (r *Resolver) Eligible(ctx context.Context, rank domain.Rank, siteID uuid.UUID, last domain.RunnerRef) ([]domain.Candidate, error) {
	pool, err := r.accounts.FindByRankAndSite(ctx, rank, siteID)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	if last.IsZero() {
		return pool, nil
	}

	filtered := make([]domain.Candidate, 0, len(pool))
	for _, c := range pool {
		if c.ID != last.ID {
			filtered = append(filtered, c)
		}
	}

	// Единственным заказавшим оказался last runner — исключение
	// опустошило бы пул, снимаем его.
	if len(filtered) == 0 {
		return pool, nil
	}
	return filtered, nil
}
