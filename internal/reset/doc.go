// Package reset реализует тело ежедневного reset job'а сайта.
//
// Job Registry дёргает Executor.Run в назначенное время; Run
// прогоняет шесть последовательных шагов:
//
//  1. purge_orders             — удалить заказы сайта
//  2. expire_pending_accounts  — удалить неактивированные аккаунты (3 дня)
//  3. expire_tokens            — удалить старые токены (1 день)
//  4. clear_ordered_flags      — снять флаги "заказано" сайта
//  5. credit_runners           — +1 к счётчику честности current runner'ов
//  6. rotate_runners           — current → last, current очищается
//
// Каскад best-effort и намеренно нетранзакционный: шаги трогают
// независимые коллекции, ошибка шага логируется и не прерывает
// остальные.
package reset
