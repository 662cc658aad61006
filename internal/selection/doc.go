// Package selection реализует выбор runner'а для пары (rank, site).
//
// Цепочка: Resolver (пул кандидатов с исключением last runner'а) →
// PickWeighted (взвешенный случайный выбор, чистая функция) →
// RunnerStore (атомарный upsert current runner'а).
//
// Взвешивание обратно частоте: чем меньше RunCount, тем выше
// вероятность выбора; нулевой вероятности нет ни у кого.
//
// Структура:
//   - weighter.go — PickWeighted, чистый алгоритм с инжектируемым
//     источником случайности
//   - resolver.go — пул кандидатов, фолбэк с возвращением last runner'а
//   - selector.go — оркестрация: bootstrap записи, выбор, сохранение
package selection
