package dbmetrics

import "context"

type txContextKey struct{}

// WithExecutor кладёт активную транзакцию в контекст.
// Используется transaction manager'ами, чтобы репозитории видели транзакцию.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor возвращает исполнителя запросов из контекста.
// Если в контексте есть активная транзакция — возвращает её,
// иначе возвращает переданный fallback (обычно r.db репозитория).
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}
