package selection

import "errors"

// Ошибки выбора runner'а.
var (
	// ErrNoCandidates — нет подходящих кандидатов: на сайте никто
	// из ранга не заказывал, и last runner'а для фолбэка тоже нет.
	ErrNoCandidates = errors.New("no eligible candidates")

	// ErrRecordMissing — RunnerRecord для пары (rank, site) ещё не
	// создана. Caller создаёт пустую запись и повторяет один раз.
	ErrRecordMissing = errors.New("runner record missing")
)
