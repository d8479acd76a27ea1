package machine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий парка машин (machine inventory).
// Источник правды о существовании и типе машин, но не об их занятости:
// занятость всегда выводится из журнала заявок.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория машин
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

const machineColumns = "id, hall_id, type, status, duration_mins"

// GetByHallAndType получает машины прачечной заданного типа.
// Порядок строго по id ASC - на этом порядке держится детерминированный
// выбор машины при назначении (первая свободная = машина с меньшим id).
func (r *Repository) GetByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status *domain.MachineStatus) ([]*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(machineColumns).
		From("machines").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"type": machineType}).
		OrderBy("id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHallAndType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHallAndType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMachines(rows)
}

// GetByHall получает все машины прачечной (для staff-панели)
func (r *Repository) GetByHall(ctx context.Context, hallID int64) ([]*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(machineColumns).
		From("machines").
		Where(squirrel.Eq{"hall_id": hallID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHall - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHall - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMachines(rows)
}

// GetByID получает машину по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Machine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(machineColumns).
		From("machines").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Machine
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.HallID,
		&m.Type,
		&m.Status,
		&m.DurationMins,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan machine: %v", ErrScanRow, err)
	}

	return &m, nil
}

// CountByHallAndType подсчитывает машины прачечной заданного типа и статуса
func (r *Repository) CountByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status domain.MachineStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("machines").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"type": machineType}).
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByHallAndType - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByHallAndType - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CycleDuration возвращает длительность цикла машин заданного типа в прачечной.
// Машины одного типа в прачечной имеют одинаковую длительность цикла,
// поэтому берётся первая строка; defaultMins возвращается, если машин нет.
func (r *Repository) CycleDuration(ctx context.Context, hallID int64, machineType domain.MachineType, defaultMins int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("duration_mins").
		From("machines").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"type": machineType}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CycleDuration - build select query: %v", ErrBuildQuery, err)
	}

	var duration int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&duration)
	if err == sql.ErrNoRows {
		return defaultMins, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: CycleDuration - scan duration: %v", ErrScanRow, err)
	}

	return duration, nil
}

// UpdateStatus обновляет операционный статус машины.
// Единственное изменяемое поле машины - статус (парк машин сидируется один раз).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MachineStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("machines").
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
		return ErrMachineNotFound
	}

	return nil
}

// scanMachines сканирует результаты запроса в слайс машин
func scanMachines(rows *sql.Rows) ([]*domain.Machine, error) {
	machines := make([]*domain.Machine, 0)

	for rows.Next() {
		var m domain.Machine
		err := rows.Scan(
			&m.ID,
			&m.HallID,
			&m.Type,
			&m.Status,
			&m.DurationMins,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMachines - scan row: %v", ErrScanRow, err)
		}
		machines = append(machines, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMachines - rows error: %v", ErrScanRow, err)
	}

	return machines, nil
}
