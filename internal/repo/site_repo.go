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

// SiteRepo — репозиторий настроек сайтов.
type SiteRepo struct {
	pool *pgxpool.Pool
}

// NewSiteRepo создаёт новый SiteRepo.
func NewSiteRepo(pool *pgxpool.Pool) *SiteRepo {
	return &SiteRepo{pool: pool}
}

// Create создаёт сайт.
func (r *SiteRepo) Create(ctx context.Context, s *domain.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, name, auto_delete_hour, auto_delete_minute,
		                           auto_delete_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Name,
		s.AutoDeleteHour,
		s.AutoDeleteMinute,
		s.AutoDeleteEnabled,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID возвращает настройки сайта по ID.
func (r *SiteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SiteSettings, error) {
	query := `
		SELECT id, name, auto_delete_hour, auto_delete_minute,
		       auto_delete_enabled, created_at, updated_at
		FROM site_settings
		WHERE id = $1
	`
	return r.scanSite(r.pool.QueryRow(ctx, query, id))
}

// GetAll возвращает настройки всех сайтов.
// Используется реестром для пересборки jobs при старте процесса.
func (r *SiteRepo) GetAll(ctx context.Context) ([]domain.SiteSettings, error) {
	query := `
		SELECT id, name, auto_delete_hour, auto_delete_minute,
		       auto_delete_enabled, created_at, updated_at
		FROM site_settings
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var sites []domain.SiteSettings
	for rows.Next() {
		var s domain.SiteSettings
		err := rows.Scan(&s.ID, &s.Name, &s.AutoDeleteHour, &s.AutoDeleteMinute,
			&s.AutoDeleteEnabled, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// UpdateSchedule обновляет время и флаг автоудаления.
func (r *SiteRepo) UpdateSchedule(ctx context.Context, id uuid.UUID, hour, minute int, enabled bool) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE site_settings
		SET auto_delete_hour = $2, auto_delete_minute = $3,
		    auto_delete_enabled = $4, updated_at = NOW()
		WHERE id = $1
	`, id, hour, minute, enabled)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет сайт.
func (r *SiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM site_settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Helpers ---

func (r *SiteRepo) scanSite(row pgx.Row) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := row.Scan(&s.ID, &s.Name, &s.AutoDeleteHour, &s.AutoDeleteMinute,
		&s.AutoDeleteEnabled, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan site: %w", err)
	}
	return &s, nil
}
