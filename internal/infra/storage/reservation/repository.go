package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/dbmetrics"
	"github.com/nrgaliy/Studio-BookingService/pkg/psqlbuilder"
)

const reservationColumns = `id, public_id, studio_id, customer_id, reservation_date,
	start_time, end_time, total_hours, base_price, final_price,
	used_coupon_ids, used_accumulated_minutes, customer_name, status,
	cancellation_reason, cancelled_at, created_at, updated_at`

// Repository репозиторий для работы с бронированиями студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Конфликт диапазонов отлавливается на уровне БД (exclusion constraint
// по (studio_id, reservation_date, диапазон слотов) для активных статусов),
// поэтому Create обязан вызываться внутри транзакции usecase'а создания
// и корректно транслировать ошибки Postgres в доменные.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"public_id",
			"studio_id",
			"customer_id",
			"reservation_date",
			"start_time",
			"end_time",
			"total_hours",
			"base_price",
			"final_price",
			"used_coupon_ids",
			"used_accumulated_minutes",
			"customer_name",
			"status",
		).
		Values(
			res.PublicID,
			res.StudioID,
			res.CustomerID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.TotalHours,
			res.BasePrice,
			res.FinalPrice,
			pq.Array(res.UsedCouponIDs),
			res.UsedAccumulatedMinutes,
			res.CustomerName,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, mapPQError("Create", err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByPublicID получает бронирование по внешнему идентификатору (UUID)
func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{"public_id": publicID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPublicID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPublicID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("reservation_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByStudioWithFilter получает бронирования студии с гибкой фильтрацией
// Поддерживает фильтрацию по периоду (StartDate, EndDate), статусу и
// включению неактивных бронирований (IncludeInactive).
//
// Внутри транзакции запрос на конкретную дату дополняется FOR UPDATE:
// это блокирует строки занятых слотов на время проверки доступности
// в usecase создания бронирования.
func (r *Repository) GetByStudioWithFilter(ctx context.Context, filter domain.StudioReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{"studio_id": filter.StudioID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudioWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetActiveByStudioAndDate получает активные бронирования студии на дату.
// Используется при построении каталога доступности.
func (r *Repository) GetActiveByStudioAndDate(ctx context.Context, studioID int64, date string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(reservationColumns).
		From("reservations").
		Where(squirrel.Eq{
			"studio_id":        studioID,
			"reservation_date": date,
			"status":           activeStatusStrings,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudioAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStudioAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapPQError("UpdateStatus", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapPQError("Cancel", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление).
// Используется только компенсацией саги создания: запись, для которой
// не удалось списать скидки, не должна оставаться в истории.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// mapPQError транслирует ошибки Postgres в доменные ошибки репозитория:
//   - 23505 (unique_violation) и 23P01 (exclusion_violation) — конфликт слотов;
//   - P0001 (raise_exception) — бизнес-правило на стороне БД, текст сохраняется;
//   - прочие ошибки класса 23 — нарушение целостности данных запроса;
//   - всё остальное — транзиентная ошибка выполнения.
func mapPQError(op string, err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	switch {
	case pqErr.Code == "23505" || pqErr.Code == "23P01":
		return fmt.Errorf("%w: %s: %v", ErrSlotConflict, op, pqErr.Message)
	case pqErr.Code == "P0001":
		return fmt.Errorf("%w: %s", ErrBusinessRule, pqErr.Message)
	case strings.HasPrefix(string(pqErr.Code), "23"):
		return fmt.Errorf("%w: %s: %v", ErrConstraintViolation, op, pqErr.Message)
	default:
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в бронирование
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime
	var couponIDs pq.StringArray

	err := row.Scan(
		&res.ID,
		&res.PublicID,
		&res.StudioID,
		&res.CustomerID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.TotalHours,
		&res.BasePrice,
		&res.FinalPrice,
		&couponIDs,
		&res.UsedAccumulatedMinutes,
		&res.CustomerName,
		&res.Status,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	res.UsedCouponIDs = []string(couponIDs)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
