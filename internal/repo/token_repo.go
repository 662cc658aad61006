package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Mensa/internal/domain"
)

// TokenRepo — репозиторий токенов аутентификации.
//
// Выдачей и проверкой токенов занимается внешний auth-слой;
// core только чистит устаревшие токены в reset job'е.
type TokenRepo struct {
	pool *pgxpool.Pool
}

// NewTokenRepo создаёт новый TokenRepo.
func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// Create сохраняет токен.
func (r *TokenRepo) Create(ctx context.Context, t *domain.Token) error {
	query := `
		INSERT INTO tokens (id, account_id, active_since)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, t.ID, t.AccountID, t.ActiveSince)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// DeleteOlderThan удаляет токены, выданные раньше cutoff.
// Возвращает количество удалённых записей.
func (r *TokenRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE active_since < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return result.RowsAffected(), nil
}
