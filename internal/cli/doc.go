// Package cli реализует инструмент командной строки Mensa.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Mensa API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления сайтами, заказами, runner'ами
// и расписаниями ежедневного reset'а.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Mensa API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	sites, err := client.ListSites()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: mensa site list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - site:     list, create, show, delete
//   - schedule: show, set, enable, disable
//   - runner:   draw, show, assign, ordered
//   - order:    create, list
//
// Каждая группа создаётся через фабричную функцию (NewSiteCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
