package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Mensa/internal/domain"
)

// OrderRepo — репозиторий заказов.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepo создаёт новый OrderRepo.
func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create создаёт новый заказ.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, account_id, site_id, item, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		o.ID,
		o.AccountID,
		o.SiteID,
		o.Item,
		o.Comment,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// FindActiveAtSite возвращает все заказы сайта в текущем цикле.
func (r *OrderRepo) FindActiveAtSite(ctx context.Context, siteID uuid.UUID) ([]domain.Order, error) {
	query := `
		SELECT id, account_id, site_id, item, comment, created_at
		FROM orders
		WHERE site_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(&o.ID, &o.AccountID, &o.SiteID, &o.Item, &o.Comment, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// PurgeAtSite удаляет все заказы сайта (все ранги).
// Возвращает количество удалённых записей.
func (r *OrderRepo) PurgeAtSite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE site_id = $1`, siteID)
	if err != nil {
		return 0, fmt.Errorf("purge orders: %w", err)
	}
	return result.RowsAffected(), nil
}
