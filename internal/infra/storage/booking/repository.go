package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const (
	tableName = "bookings"

	// COALESCE дублирует domain.DefaultBookingLength для бронирований без end_time
	effectiveEndExpr = "COALESCE(end_time, start_time + interval '1 hour')"
)

var columns = []string{
	"id",
	"company_id",
	"service_id",
	"title",
	"start_time",
	"end_time",
	"client_contact",
	"price",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var endTime interface{}
	if booking.EndTime != nil {
		endTime = booking.EndTime.UTC()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"company_id",
			"service_id",
			"title",
			"start_time",
			"end_time",
			"client_contact",
			"price",
			"status",
		).
		Values(
			booking.CompanyID,
			booking.ServiceID,
			booking.Title,
			booking.StartTime.UTC(),
			endTime,
			booking.ClientContact,
			booking.Price,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByCompany возвращает бронирования компании за период, отсортированные по времени начала
func (r *Repository) ListByCompany(ctx context.Context, filter domain.CompanyBookingsFilter) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"company_id": filter.CompanyID}).
		OrderBy("start_time ASC", "id ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(effectiveEndExpr+" > ?", filter.From.UTC()))
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.To.UTC()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveInRange возвращает активные бронирования компании, пересекающие [from, to).
// Бронирование без end_time считается длиной в один час.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListActiveInRange(ctx context.Context, companyID int64, from, to time.Time) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Expr(effectiveEndExpr+" > ?", from.UTC())).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LockCompanySchedule берет транзакционную advisory-блокировку на расписание компании.
// Конкурирующие бронирования одной компании выполняются последовательно,
// блокировка снимается при commit/rollback.
func (r *Repository) LockCompanySchedule(ctx context.Context, companyID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// pg_advisory_xact_lock(bigint): ключ - id компании целиком.
	// Одноключевое пространство advisory lock в сервисе занято только расписаниями
	// и не пересекается с двухключевым (int4, int4).
	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?::bigint)", companyID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockCompanySchedule - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockCompanySchedule - execute: %w", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		serviceID sql.NullInt64
		endTime   sql.NullTime
		createdAt sql.NullTime
	)

	if err := row.Scan(
		&b.ID,
		&b.CompanyID,
		&serviceID,
		&b.Title,
		&b.StartTime,
		&endTime,
		&b.ClientContact,
		&b.Price,
		&b.Status,
		&createdAt,
	); err != nil {
		return nil, err
	}

	b.StartTime = b.StartTime.UTC()
	if serviceID.Valid {
		id := serviceID.Int64
		b.ServiceID = &id
	}
	if endTime.Valid {
		end := endTime.Time.UTC()
		b.EndTime = &end
	}
	b.CreatedAt = createdAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}
	return bookings, nil
}
