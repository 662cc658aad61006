package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Mensa/internal/domain"
)

// AccountRepo — репозиторий аккаунтов пользователей.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepo создаёт новый AccountRepo.
func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create создаёт новый аккаунт.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (id, forename, surname, rank, pending, run_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Forename,
		a.Surname,
		a.Rank,
		a.Pending,
		a.RunCount,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID возвращает аккаунт по ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, forename, surname, rank, pending, run_count, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

// FindByRankAndSite возвращает кандидатов ранга, у которых есть
// хотя бы один заказ на сайте в текущем цикле.
//
// Это сырой пул для Candidate Resolver'а: исключение last runner'а
// делается выше, на уровне selection.
func (r *AccountRepo) FindByRankAndSite(ctx context.Context, rank domain.Rank, siteID uuid.UUID) ([]domain.Candidate, error) {
	query := `
		SELECT a.id, a.forename || ' ' || a.surname, a.run_count
		FROM accounts a
		WHERE a.rank = $1
		  AND EXISTS (
		      SELECT 1 FROM orders o
		      WHERE o.account_id = a.id AND o.site_id = $2
		  )
		ORDER BY a.surname, a.forename
	`
	rows, err := r.pool.Query(ctx, query, rank, siteID)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.RunCount); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// IncrementRunCount увеличивает счётчик честности у перечисленных
// аккаунтов на 1. Возвращает количество обновлённых записей.
func (r *AccountRepo) IncrementRunCount(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.pool.Exec(ctx, `
		UPDATE accounts SET run_count = run_count + 1 WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return 0, fmt.Errorf("increment run_count: %w", err)
	}
	return result.RowsAffected(), nil
}

// FindPendingOlderThan возвращает неактивированные аккаунты,
// созданные раньше cutoff.
func (r *AccountRepo) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Account, error) {
	query := `
		SELECT id, forename, surname, rank, pending, run_count, created_at
		FROM accounts
		WHERE pending = true AND created_at < $1
	`
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find pending accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		err := rows.Scan(&a.ID, &a.Forename, &a.Surname, &a.Rank, &a.Pending, &a.RunCount, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// DeleteMany удаляет аккаунты по списку ID.
// Возвращает количество удалённых записей.
func (r *AccountRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete accounts: %w", err)
	}
	return result.RowsAffected(), nil
}

// --- Helpers ---

func (r *AccountRepo) scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Forename, &a.Surname, &a.Rank, &a.Pending, &a.RunCount, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
