package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Mensa/internal/domain"
)

// RunnerRepo — хранилище состояния runner'ов и флагов "заказано".
//
// Все записи пишутся одним атомарным UPSERT'ом по ключу (rank, site):
// этого достаточно для сериализации конкурентных записей, in-process
// блокировки не нужны.
type RunnerRepo struct {
	pool *pgxpool.Pool
}

// NewRunnerRepo создаёт новый RunnerRepo.
func NewRunnerRepo(pool *pgxpool.Pool) *RunnerRepo {
	return &RunnerRepo{pool: pool}
}

// Get возвращает RunnerRecord пары (rank, site).
// Если записи нет — ErrNotFound; caller создаёт пустую запись
// через CreateEmpty и повторяет запрос.
func (r *RunnerRepo) Get(ctx context.Context, rank domain.Rank, siteID uuid.UUID) (*domain.RunnerRecord, error) {
	query := `
		SELECT rank, site_id, current_id, current_name, last_id, last_name
		FROM runner_states
		WHERE rank = $1 AND site_id = $2
	`
	return r.scanRecord(r.pool.QueryRow(ctx, query, rank, siteID))
}

// CreateEmpty создаёт пустую запись для пары (rank, site).
// Идемпотентна: существующая запись не затирается.
func (r *RunnerRepo) CreateEmpty(ctx context.Context, rank domain.Rank, siteID uuid.UUID) error {
	query := `
		INSERT INTO runner_states (rank, site_id)
		VALUES ($1, $2)
		ON CONFLICT (rank, site_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, rank, siteID); err != nil {
		return fmt.Errorf("create runner record: %w", err)
	}
	return nil
}

// SetCurrent назначает runner'а текущего цикла.
// Если записи нет, она создаётся с пустым last.
func (r *RunnerRepo) SetCurrent(ctx context.Context, rank domain.Rank, siteID uuid.UUID, ref domain.RunnerRef) error {
	query := `
		INSERT INTO runner_states (rank, site_id, current_id, current_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rank, site_id)
		DO UPDATE SET current_id = EXCLUDED.current_id,
		              current_name = EXCLUDED.current_name
	`
	if _, err := r.pool.Exec(ctx, query, rank, siteID, ref.ID, ref.DisplayName); err != nil {
		return fmt.Errorf("set current runner: %w", err)
	}
	return nil
}

// Rotate переносит current → last и очищает current для всех рангов
// сайта. Записи с пустым current не трогаются: их старый last
// переживает цикл, пока его не перезапишет следующая ротация.
//
// Вызывается ТОЛЬКО reset job'ом. Возвращает количество обновлённых
// записей; повторный вызов без промежуточного SetCurrent ничего не
// меняет (current уже пуст).
func (r *RunnerRepo) Rotate(ctx context.Context, siteID uuid.UUID) (int64, error) {
	query := `
		UPDATE runner_states
		SET last_id = current_id, last_name = current_name,
		    current_id = NULL, current_name = ''
		WHERE site_id = $1 AND current_id IS NOT NULL
	`
	result, err := r.pool.Exec(ctx, query, siteID)
	if err != nil {
		return 0, fmt.Errorf("rotate runners: %w", err)
	}
	return result.RowsAffected(), nil
}

// ListCurrent возвращает ID всех назначенных runner'ов по всем
// записям (все ранги, все сайты). Используется reset job'ом для
// начисления счётчиков честности перед ротацией.
func (r *RunnerRepo) ListCurrent(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT current_id FROM runner_states WHERE current_id IS NOT NULL`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list current runners: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan runner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Флаги "заказ отправлен на кухню" ---

// SetOrdered помечает (rank, site): заказ цикла отправлен на кухню.
func (r *RunnerRepo) SetOrdered(ctx context.Context, rank domain.Rank, siteID uuid.UUID) error {
	query := `
		INSERT INTO order_flags (rank, site_id)
		VALUES ($1, $2)
		ON CONFLICT (rank, site_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, rank, siteID); err != nil {
		return fmt.Errorf("set ordered flag: %w", err)
	}
	return nil
}

// ListOrdered возвращает сайты, помеченные рангом как "заказано".
func (r *RunnerRepo) ListOrdered(ctx context.Context, rank domain.Rank) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT site_id FROM order_flags WHERE rank = $1`, rank)
	if err != nil {
		return nil, fmt.Errorf("list ordered flags: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan ordered flag: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ClearOrderedAtSite снимает флаг сайта у всех рангов.
// Возвращает количество удалённых флагов.
func (r *RunnerRepo) ClearOrderedAtSite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM order_flags WHERE site_id = $1`, siteID)
	if err != nil {
		return 0, fmt.Errorf("clear ordered flags: %w", err)
	}
	return result.RowsAffected(), nil
}

// --- Helpers ---

func (r *RunnerRepo) scanRecord(row pgx.Row) (*domain.RunnerRecord, error) {
	var rec domain.RunnerRecord
	var currentID, lastID *uuid.UUID

	err := row.Scan(
		&rec.Rank,
		&rec.SiteID,
		&currentID,
		&rec.Current.DisplayName,
		&lastID,
		&rec.Last.DisplayName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan runner record: %w", err)
	}

	if currentID != nil {
		rec.Current.ID = *currentID
	}
	if lastID != nil {
		rec.Last.ID = *lastID
	}
	return &rec, nil
}
