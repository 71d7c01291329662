package remotecall

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// WithFallback выполняет primary и при любой его ошибке вызывает fallback.
// Паттерн "основной удалённый вызов + документированный идемпотентный
// локальный запасной вариант": fallback обязан быть безопасным для повторов
// и не должен зависеть от состояния, которое мог изменить неудавшийся primary.
//
// Ошибка primary логируется с именем операции и не пробрасывается дальше:
// результат определяет только fallback.
func WithFallback[T any](
	ctx context.Context,
	name string,
	log Logger,
	primary func(ctx context.Context) (T, error),
	fallback func(ctx context.Context) (T, error),
) (T, error) {
	result, err := primary(ctx)
	if err == nil {
		return result, nil
	}

	log.Warn("%s: primary call failed, using fallback: %v", name, err)
	return fallback(ctx)
}
