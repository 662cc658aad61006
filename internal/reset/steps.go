package reset

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Шаг 1: удалить все заказы сайта (все ранги).
func (e *Executor) purgeOrders(ctx context.Context, siteID uuid.UUID) (int64, error) {
	count, err := e.orders.PurgeAtSite(ctx, siteID)
	if err != nil {
		return 0, fmt.Errorf("purge orders: %w", err)
	}
	return count, nil
}

// Шаг 2: удалить неактивированные аккаунты старше 3 дней.
// Глобальный шаг, не привязан к сайту.
func (e *Executor) expirePendingAccounts(ctx context.Context, _ uuid.UUID) (int64, error) {
	cutoff := e.now().Add(-PendingAccountTTL)

	stale, err := e.accounts.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find pending accounts: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(stale))
	for i, a := range stale {
		ids[i] = a.ID
	}

	count, err := e.accounts.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete pending accounts: %w", err)
	}
	return count, nil
}

// Шаг 3: удалить токены старше суток. Глобальный шаг.
func (e *Executor) expireTokens(ctx context.Context, _ uuid.UUID) (int64, error) {
	count, err := e.tokens.DeleteOlderThan(ctx, e.now().Add(-TokenTTL))
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return count, nil
}

// Шаг 4: снять флаг "заказано" у всех рангов сайта.
func (e *Executor) clearOrderedFlags(ctx context.Context, siteID uuid.UUID) (int64, error) {
	count, err := e.runners.ClearOrderedAtSite(ctx, siteID)
	if err != nil {
		return 0, fmt.Errorf("clear ordered flags: %w", err)
	}
	return count, nil
}

// Шаг 5: начислить +1 к счётчику честности всем назначенным
// runner'ам. Читает current по всем записям, поэтому ОБЯЗАН идти
// до ротации (шаг 6), которая current очищает.
func (e *Executor) creditRunners(ctx context.Context, _ uuid.UUID) (int64, error) {
	ids, err := e.runners.ListCurrent(ctx)
	if err != nil {
		return 0, fmt.Errorf("list current runners: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := e.accounts.IncrementRunCount(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("increment run counts: %w", err)
	}
	return count, nil
}

// Шаг 6: ротация — current → last, current очищается, по всем
// рангам сайта.
func (e *Executor) rotateRunners(ctx context.Context, siteID uuid.UUID) (int64, error) {
	count, err := e.runners.Rotate(ctx, siteID)
	if err != nil {
		return 0, fmt.Errorf("rotate runners: %w", err)
	}
	return count, nil
}
