package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nrgaliy/Studio-BookingService/pkg/dbmetrics"
	"github.com/nrgaliy/Studio-BookingService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("staff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("staff.repository: failed to execute query")
)

// Repository репозиторий сотрудников студий.
// Таблица studio_staff связывает пользователей со студиями, где они работают.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsStaff проверяет, что пользователь является сотрудником студии
func (r *Repository) IsStaff(ctx context.Context, studioID, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("studio_staff").
		Where(squirrel.Eq{"studio_id": studioID, "user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: IsStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if rows.Next() {
		return true, nil
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: IsStaff - rows error: %v", ErrExecQuery, err)
	}
	return false, nil
}
