// Package telemetry — структурированное логирование и метрики.
//
// Логирование: log/slog, JSON по умолчанию, настройка через
// LOG_LEVEL и LOG_FORMAT.
//
// Метрики: prometheus counters для выбора runner'ов и reset job'а;
// отдаются сервером через promhttp на /metrics.
package telemetry
