package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"salon_id",
	"client_id",
	"client_name",
	"worker_ids",
	"date",
	"start_time",
	"end_time",
	"status",
	"admin_modified",
	"income_id",
	"proposed_date",
	"proposed_start_time",
	"proposed_end_time",
	"proposed_by",
	"proposed_at",
	"comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с услугами и историей.
// Вызывается внутри транзакции (txmanager), executor берётся из контекста.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	proposedDate, proposedStart, proposedEnd, proposedBy, proposedAt := proposedValues(booking.Proposed)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns[1:]...).
		Values(
			booking.SalonID,
			booking.ClientID,
			booking.ClientName,
			pq.Array(append([]int64{}, booking.WorkerIDs...)),
			booking.Date.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			string(booking.Status),
			booking.AdminModified,
			booking.IncomeID,
			proposedDate,
			proposedStart,
			proposedEnd,
			proposedBy,
			proposedAt,
			booking.Comment,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if err := r.insertServices(ctx, executor, booking); err != nil {
		return nil, err
	}
	if err := r.insertHistory(ctx, executor, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// Save обновляет состояние бронирования и дописывает новые записи истории.
// Уже сохранённые записи истории не изменяются (ON CONFLICT DO NOTHING).
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	proposedDate, proposedStart, proposedEnd, proposedBy, proposedAt := proposedValues(booking.Proposed)

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_id", booking.ClientID).
		Set("client_name", booking.ClientName).
		Set("worker_ids", pq.Array(append([]int64{}, booking.WorkerIDs...))).
		Set("date", booking.Date.Format(domain.DateFormat)).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("status", string(booking.Status)).
		Set("admin_modified", booking.AdminModified).
		Set("income_id", booking.IncomeID).
		Set("proposed_date", proposedDate).
		Set("proposed_start_time", proposedStart).
		Set("proposed_end_time", proposedEnd).
		Set("proposed_by", proposedBy).
		Set("proposed_at", proposedAt).
		Set("comment", booking.Comment).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return r.insertHistory(ctx, executor, booking)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
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
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadDetails(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// List получает бронирования салона с фильтрацией по периоду и статусу.
// Без статуса и IncludeInactive отменённые и закрытые исключаются.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.EndDate.Format(domain.DateFormat)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC", "start_time ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// ListByStatus получает бронирования всех салонов в статусе с датой не позже until.
// Используется автозавершением.
func (r *Repository) ListByStatus(ctx context.Context, status domain.BookingStatus, until time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": string(status)}).
		Where(squirrel.LtOrEq{"date": until.Format(domain.DateFormat)}).
		OrderBy("date ASC", "end_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByStatus", query, args)
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if err := r.loadDetails(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if len(booking.Services) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "position", "service_id", "name", "duration_minutes", "price")
	for i, s := range booking.Services {
		insertBuilder = insertBuilder.Values(booking.ID, i, s.ServiceID, s.Name, s.DurationMinutes, s.Price)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) insertHistory(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	if len(booking.History) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_history").
		Columns("id", "booking_id", "position", "at", "action", "actor_id", "actor_role", "comment")
	for i, h := range booking.History {
		insertBuilder = insertBuilder.Values(h.ID, booking.ID, i, h.At, h.Action, h.ActorID, string(h.ActorRole), h.Comment)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: insertHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertHistory - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadDetails подгружает услуги и историю для набора бронирований двумя запросами
func (r *Repository) loadDetails(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		byID[b.ID] = b
		ids[i] = b.ID
	}

	if err := r.loadServices(ctx, executor, ids, byID); err != nil {
		return err
	}
	return r.loadHistory(ctx, executor, ids, byID)
}

func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.Booking) error {
	query, args, err := psqlbuilder.Select("booking_id", "service_id", "name", "duration_minutes", "price").
		From("booking_services").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID int64
			s         domain.BookedService
		)
		if err := rows.Scan(&bookingID, &s.ServiceID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
			return fmt.Errorf("%w: loadServices - scan service: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Services = append(b.Services, s)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadHistory(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.Booking) error {
	query, args, err := psqlbuilder.Select("booking_id", "id", "at", "action", "actor_id", "actor_role", "comment").
		From("booking_history").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC", "position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID int64
			h         domain.HistoryEntry
			role      string
			comment   sql.NullString
		)
		if err := rows.Scan(&bookingID, &h.ID, &h.At, &h.Action, &h.ActorID, &role, &comment); err != nil {
			return fmt.Errorf("%w: loadHistory - scan entry: %v", ErrScanRow, err)
		}
		h.ActorRole = domain.Role(role)
		if comment.Valid {
			h.Comment = &comment.String
		}
		if b, ok := byID[bookingID]; ok {
			b.History = append(b.History, h)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadHistory - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking       domain.Booking
		status        string
		clientID      sql.NullInt64
		clientName    sql.NullString
		workerIDs     []int64
		incomeID      sql.NullInt64
		proposedDate  sql.NullTime
		proposedStart types.TimeString
		proposedEnd   types.TimeString
		proposedBy    sql.NullInt64
		proposedAt    sql.NullTime
		comment       sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.SalonID,
		&clientID,
		&clientName,
		pq.Array(&workerIDs),
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&status,
		&booking.AdminModified,
		&incomeID,
		&proposedDate,
		&proposedStart,
		&proposedEnd,
		&proposedBy,
		&proposedAt,
		&comment,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	booking.Date = domain.DateOf(booking.Date)
	booking.WorkerIDs = workerIDs
	if clientID.Valid {
		booking.ClientID = &clientID.Int64
	}
	if clientName.Valid {
		booking.ClientName = &clientName.String
	}
	if incomeID.Valid {
		booking.IncomeID = &incomeID.Int64
	}
	if comment.Valid {
		booking.Comment = &comment.String
	}
	if proposedDate.Valid {
		booking.Proposed = &domain.ProposedReschedule{
			Date:       domain.DateOf(proposedDate.Time),
			StartTime:  proposedStart,
			EndTime:    proposedEnd,
			ProposedBy: proposedBy.Int64,
			ProposedAt: proposedAt.Time,
		}
	}

	return &booking, nil
}

func proposedValues(p *domain.ProposedReschedule) (date, start, end, by, at interface{}) {
	if p == nil {
		return nil, nil, nil, nil, nil
	}
	return p.Date.Format(domain.DateFormat), p.StartTime, p.EndTime, p.ProposedBy, p.ProposedAt
}
