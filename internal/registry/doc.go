// Package registry ведёт scheduled jobs сайтов: по одному
// ежедневному reset job'у на сайт, с динамическим перенастраиванием
// времени и отменой.
//
// Состояния job'а: Unregistered → Scheduled ⇄ Canceled.
// Мутации (SetTime/Start/Cancel) сериализуются per-site mutex'ом;
// вызовы для незарегистрированного сайта — no-op, не ошибка.
//
// Персистится только (hour, minute, enabled) в настройках сайта;
// живые таймеры пересобираются Bootstrap'ом при старте процесса.
package registry
