// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением (reconnect, graceful shutdown)
//   - topology.go   — объявление exchange, очереди, привязок
//   - publisher.go  — публикация событий сайтов
//   - consumer.go   — потребление событий из очереди
//
// Типы сообщений:
//   - settings.changed — редактор изменил расписание сайта
//   - site.deleted     — сайт удалён
//
// Оба события потребляет Job Registry: первое перенастраивает или
// взводит/снимает таймер, второе дерегистрирует job.
package mq
