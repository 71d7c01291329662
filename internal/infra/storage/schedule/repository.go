package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/dbmetrics"
	"github.com/nrgaliy/Studio-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий расписания работы студий.
// Регулярные часы хранятся по дням недели в weekly_schedules,
// праздники и короткие дни — в schedule_overrides с привязкой к дате.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyByStudio получает регулярное расписание студии (до 7 записей)
func (r *Repository) GetWeeklyByStudio(ctx context.Context, studioID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"studio_id",
		"weekday",
		"open_time",
		"close_time",
		"is_closed",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"studio_id": studioID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyByStudio - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyByStudio - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		var s domain.WeeklySchedule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.StudioID,
			&s.Weekday,
			&s.OpenTime,
			&s.CloseTime,
			&s.IsClosed,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyByStudio - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyByStudio - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// GetWeeklyForWeekday получает запись регулярного расписания на день недели
func (r *Repository) GetWeeklyForWeekday(ctx context.Context, studioID int64, weekday time.Weekday) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"studio_id",
		"weekday",
		"open_time",
		"close_time",
		"is_closed",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"studio_id": studioID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.WeeklySchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StudioID,
		&s.Weekday,
		&s.OpenTime,
		&s.CloseTime,
		&s.IsClosed,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyForWeekday - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetOverride получает переопределение расписания студии на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, studioID int64, date time.Time) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"studio_id",
		"override_date",
		"open_time",
		"close_time",
		"is_closed",
		"message",
		"created_at",
		"updated_at",
	).
		From("schedule_overrides").
		Where(squirrel.Eq{"studio_id": studioID, "override_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.ScheduleOverride
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.StudioID,
		&o.Date,
		&o.OpenTime,
		&o.CloseTime,
		&o.IsClosed,
		&o.Message,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan row: %v", ErrScanRow, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

// GetWindowForDate вычисляет окно работы студии на дату.
// Переопределение на дату имеет приоритет над регулярным расписанием.
// Если для дня недели нет записи в регулярном расписании, студия закрыта.
func (r *Repository) GetWindowForDate(ctx context.Context, studioID int64, date time.Time) (domain.OperatingWindow, error) {
	override, err := r.GetOverride(ctx, studioID, date)
	if err == nil {
		return override.Window(), nil
	}
	if err != ErrOverrideNotFound {
		return domain.OperatingWindow{}, err
	}

	weekly, err := r.GetWeeklyForWeekday(ctx, studioID, date.Weekday())
	if err == ErrScheduleNotFound {
		return domain.OperatingWindow{IsClosed: true}, nil
	}
	if err != nil {
		return domain.OperatingWindow{}, err
	}

	return weekly.Window(), nil
}

// UpsertWeekly создает или обновляет запись регулярного расписания на день недели
func (r *Repository) UpsertWeekly(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns(
			"studio_id",
			"weekday",
			"open_time",
			"close_time",
			"is_closed",
		).
		Values(
			s.StudioID,
			int(s.Weekday),
			s.OpenTime,
			s.CloseTime,
			s.IsClosed,
		).
		Suffix(`ON CONFLICT (studio_id, weekday) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_closed = EXCLUDED.is_closed,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// UpsertOverride создает или обновляет переопределение расписания на дату
func (r *Repository) UpsertOverride(ctx context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_overrides").
		Columns(
			"studio_id",
			"override_date",
			"open_time",
			"close_time",
			"is_closed",
			"message",
		).
		Values(
			o.StudioID,
			o.Date.Format(domain.DateFormat),
			o.OpenTime,
			o.CloseTime,
			o.IsClosed,
			o.Message,
		).
		Suffix(`ON CONFLICT (studio_id, override_date) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_closed = EXCLUDED.is_closed,
			message = EXCLUDED.message,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// DeleteOverride удаляет переопределение расписания на дату
func (r *Repository) DeleteOverride(ctx context.Context, studioID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_overrides").
		Where(squirrel.Eq{"studio_id": studioID, "override_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
