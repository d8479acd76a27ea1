package hall

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий прачечных (залов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория прачечных
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

const hallColumns = "id, name, opening_time, closing_time, washer_price, dryer_price"

// GetByID получает прачечную по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hallColumns).
		From("halls").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.Hall
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.Name,
		&h.OpeningTime,
		&h.ClosingTime,
		&h.WasherPrice,
		&h.DryerPrice,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hall: %v", ErrScanRow, err)
	}

	return &h, nil
}

// List получает все прачечные
func (r *Repository) List(ctx context.Context) ([]*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hallColumns).
		From("halls").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	halls := make([]*domain.Hall, 0)
	for rows.Next() {
		var h domain.Hall
		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.OpeningTime,
			&h.ClosingTime,
			&h.WasherPrice,
			&h.DryerPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		halls = append(halls, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return halls, nil
}
