package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения результата
	ErrScanRow = errors.New("service.repository: failed to scan row")
)

var columns = []string{
	"id",
	"company_id",
	"name",
	"duration_minutes",
	"start_time_limit",
	"end_time_limit",
	"price",
}

// Repository каталог услуг компании (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу компании по ID
func (r *Repository) GetByID(ctx context.Context, companyID, serviceID int64) (*domain.Service, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"company_id": companyID, "id": serviceID})
}

// GetByName ищет услугу компании по имени без учета регистра
func (r *Repository) GetByName(ctx context.Context, companyID int64, name string) (*domain.Service, error) {
	return r.getOne(ctx, "GetByName", squirrel.And{
		squirrel.Eq{"company_id": companyID},
		squirrel.Expr("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))),
	})
}

// ListByCompany возвращает все услуги компании, упорядоченные по имени
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCompany - scan service: %w", ErrScanRow, err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("services").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %w", ErrScanRow, op, err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s                   domain.Service
		startLimit, endLimit types.TimeString
	)
	if err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&s.Name,
		&s.DurationMinutes,
		&startLimit,
		&endLimit,
		&s.Price,
	); err != nil {
		return nil, err
	}

	if !startLimit.IsZero() {
		s.StartTimeLimit = &startLimit
	}
	if !endLimit.IsZero() {
		s.EndTimeLimit = &endLimit
	}
	return &s, nil
}
