package selection

import (
	"math/rand/v2"

	"github.com/shaiso/Mensa/internal/domain"
)

// PickWeighted выбирает одного кандидата взвешенно-случайно,
// смещая вероятность в пользу тех, кто бегал реже.
//
// Формула веса: maxCount - runCount, где maxCount = max(runCount) + 1.
// Кандидат с 0 пробежек получает вес maxCount, кандидат с maxCount-1
// пробежками — вес 1: вес всегда >= 1, нулевой вероятности нет.
//
// draw — источник случайности, равномерный на [0, 1). В production
// это rand.Float64; тесты передают детерминированную функцию.
//
// Алгоритм: threshold = draw() * сумма весов; идём по кандидатам,
// накапливая веса, и возвращаем первого, чья накопленная сумма
// >= threshold. Если из-за плавающей точки никто не совпал,
// возвращается последний кандидат.
func PickWeighted(candidates []domain.Candidate, draw func() float64) (domain.Candidate, error) {
	if len(candidates) == 0 {
		return domain.Candidate{}, ErrNoCandidates
	}

	maxCount := 0
	for _, c := range candidates {
		if c.RunCount > maxCount {
			maxCount = c.RunCount
		}
	}
	maxCount++

	total := 0
	for _, c := range candidates {
		total += maxCount - c.RunCount
	}

	if draw == nil {
		draw = rand.Float64
	}
	threshold := draw() * float64(total)

	cumulative := 0
	for _, c := range candidates {
		cumulative += maxCount - c.RunCount
		if float64(cumulative) >= threshold {
			return c, nil
		}
	}

	// Детерминированный фолбэк на случай edge-эффектов плавающей точки.
	return candidates[len(candidates)-1], nil
}

// Weight возвращает вес кандидата внутри пула.
// Отдельно экспортируется для диагностики и тестов.
func Weight(c domain.Candidate, candidates []domain.Candidate) int {
	maxCount := 0
	for _, cand := range candidates {
		if cand.RunCount > maxCount {
			maxCount = cand.RunCount
		}
	}
	return maxCount + 1 - c.RunCount
}
