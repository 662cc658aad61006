package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema создаёт все таблицы приложения.
// Безопасно вызывать повторно — используется IF NOT EXISTS.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
-- Аккаунты пользователей
CREATE TABLE IF NOT EXISTS accounts (
    id UUID PRIMARY KEY,
    forename TEXT NOT NULL,
    surname TEXT NOT NULL,
    rank TEXT NOT NULL,
    pending BOOLEAN NOT NULL DEFAULT true,
    run_count INTEGER NOT NULL DEFAULT 0 CHECK (run_count >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_accounts_rank ON accounts(rank);
CREATE INDEX IF NOT EXISTS idx_accounts_pending ON accounts(pending) WHERE pending;

-- Заказы текущего цикла
CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY,
    account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    site_id UUID NOT NULL,
    item TEXT NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_site_id ON orders(site_id);
CREATE INDEX IF NOT EXISTS idx_orders_account_id ON orders(account_id);

-- Токены аутентификации
CREATE TABLE IF NOT EXISTS tokens (
    id UUID PRIMARY KEY,
    account_id UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    active_since TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tokens_active_since ON tokens(active_since);

-- Настройки сайтов
CREATE TABLE IF NOT EXISTS site_settings (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    auto_delete_hour INTEGER NOT NULL DEFAULT 14 CHECK (auto_delete_hour BETWEEN 0 AND 23),
    auto_delete_minute INTEGER NOT NULL DEFAULT 0 CHECK (auto_delete_minute BETWEEN 0 AND 59),
    auto_delete_enabled BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Состояние runner'ов: одна запись на пару (rank, site)
CREATE TABLE IF NOT EXISTS runner_states (
    rank TEXT NOT NULL,
    site_id UUID NOT NULL,
    current_id UUID,
    current_name TEXT NOT NULL DEFAULT '',
    last_id UUID,
    last_name TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (rank, site_id)
);

-- Флаги "заказ отправлен на кухню" (rank, site)
CREATE TABLE IF NOT EXISTS order_flags (
    rank TEXT NOT NULL,
    site_id UUID NOT NULL,
    PRIMARY KEY (rank, site_id)
);
`
