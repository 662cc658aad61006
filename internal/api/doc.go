// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (selector, реестр, репозитории, publisher)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - runner_handler.go   — выбор и назначение runner'ов, флаги "заказано"
//   - schedule_handler.go — расписание reset job'ов
//   - site_handler.go     — сайты
//   - account_handler.go  — регистрация аккаунтов
//   - order_handler.go    — заказы
//
// API предоставляет REST endpoints для управления сайтами, заказами,
// runner'ами и расписаниями ежедневного reset'а.
package api
