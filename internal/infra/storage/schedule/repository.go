package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)

// Repository окна работы компаний (только чтение).
// weekday хранится как в time.Weekday: 0 = воскресенье.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday возвращает окна компании на день недели, упорядоченные по началу
func (r *Repository) GetByWeekday(ctx context.Context, companyID int64, weekday time.Weekday) ([]domain.OpeningWindow, error) {
	return r.list(ctx, "GetByWeekday", squirrel.Eq{"company_id": companyID, "weekday": int(weekday)})
}

// ListByCompany возвращает всю неделю компании
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]domain.OpeningWindow, error) {
	return r.list(ctx, "ListByCompany", squirrel.Eq{"company_id": companyID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]domain.OpeningWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "company_id", "weekday", "start_time", "end_time").
		From("opening_windows").
		Where(where).
		OrderBy("weekday ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]domain.OpeningWindow, 0)
	for rows.Next() {
		var (
			w       domain.OpeningWindow
			weekday int
		)
		if err := rows.Scan(&w.ID, &w.CompanyID, &weekday, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("%w: %s - scan window: %w", ErrScanRow, op, err)
		}
		w.Weekday = time.Weekday(weekday)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return windows, nil
}
