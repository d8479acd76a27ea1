package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий журнала заявок (appointment ledger).
// Журнал - единственный источник правды о занятости машин:
// занятость всегда вычисляется сканированием пересечений, не кэшируется.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

const appointmentColumns = "id, user_id, hall_id, machine_id, appointment_datetime, " +
	"duration_mins, service_type, status, total_cost, created_at, cancelled_at"

// Create создает новую заявку.
// Если в контексте передана активная транзакция, использует её - это
// обязательно при бронировании с подбором машины, чтобы проверка
// занятости и вставка выполнялись атомарно.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"hall_id",
			"machine_id",
			"appointment_datetime",
			"duration_mins",
			"service_type",
			"status",
			"total_cost",
		).
		Values(
			appt.UserID,
			appt.HallID,
			appt.MachineID,
			appt.AppointmentDatetime,
			appt.DurationMins,
			appt.ServiceType,
			appt.Status,
			appt.TotalCost,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByUserID получает заявки пользователя.
// При upcomingOnly возвращает только будущие заявки, занимающие машину.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, upcomingOnly bool, now time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("appointment_datetime ASC")

	if upcomingOnly {
		schedulingStatuses := make([]string, len(domain.SchedulingStatuses))
		for i, s := range domain.SchedulingStatuses {
			schedulingStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"appointment_datetime": now}).
			Where(squirrel.Eq{"status": schedulingStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByHallWithFilter получает заявки прачечной с гибкой фильтрацией.
// Это основной запрос планировщика: окно по appointment_datetime
// задаётся так, чтобы захватить заявки, начавшиеся раньше интервала,
// но ещё занимающие машину.
//
// Примеры использования:
//
//  1. Окно для подсчёта пересечений (availability engine / assigner):
//     filter := domain.HallAppointmentsFilter{
//         HallID:      1,
//         WindowStart: &lookbackStart,
//         WindowEnd:   &slotEnd,
//         Statuses:    domain.SchedulingStatuses,
//     }
//
//  2. Все заявки прачечной за день (staff view):
//     filter := domain.HallAppointmentsFilter{HallID: 1, WindowStart: &dayStart, WindowEnd: &dayEnd}
//
// Внутри транзакции при ForUpdate строки блокируются (FOR UPDATE),
// чтобы конкурирующее бронирование не прочитало тот же busy-set.
func (r *Repository) GetByHallWithFilter(ctx context.Context, filter domain.HallAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"hall_id": filter.HallID}).
		OrderBy("appointment_datetime ASC, id ASC")

	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type": *filter.ServiceType})
	}

	if filter.WindowStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_datetime": *filter.WindowStart})
	}
	if filter.WindowEnd != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_datetime": *filter.WindowEnd})
	}

	if len(filter.Statuses) > 0 {
		statusStrings := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHallWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHallWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel помечает заявку отменённой и фиксирует время отмены
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет заявку (физическое удаление, использовать осторожно).
// Для пользовательских сценариев предпочтительнее Cancel - он сохраняет историю.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
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
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку в заявку
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, cancelledAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.HallID,
		&appt.MachineID,
		&appt.AppointmentDatetime,
		&appt.DurationMins,
		&appt.ServiceType,
		&appt.Status,
		&appt.TotalCost,
		&createdAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс заявок
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
