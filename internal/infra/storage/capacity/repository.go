package capacity

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

// Repository репозиторий настроек вместимости по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки дня салона. Отсутствие записи - ErrCapacityNotFound.
func (r *Repository) Get(ctx context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"salon_id",
		"date",
		"max_slots",
		"closed_slots",
		"day_closed",
		"allow_overbooking",
		"updated_at",
		"updated_by",
	).
		From("day_capacities").
		Where(squirrel.Eq{"salon_id": salonID, "date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		capacity    domain.DayCapacity
		closedSlots []string
		updatedBy   sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&capacity.SalonID,
		&capacity.Date,
		&capacity.MaxSlots,
		pq.Array(&closedSlots),
		&capacity.DayClosed,
		&capacity.AllowOverbooking,
		&capacity.UpdatedAt,
		&updatedBy,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan day capacity: %v", ErrScanRow, err)
	}

	capacity.Date = domain.DateOf(capacity.Date)
	for _, raw := range closedSlots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - closed slot %q: %v", ErrScanRow, raw, err)
		}
		capacity.CloseSlot(slot)
	}
	if updatedBy.Valid {
		capacity.UpdatedBy = &updatedBy.Int64
	}

	return &capacity, nil
}

// Upsert создает запись дня при первом изменении или обновляет существующую
func (r *Repository) Upsert(ctx context.Context, capacity *domain.DayCapacity) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	closedSlots := make([]string, len(capacity.ClosedSlots))
	for i, slot := range capacity.ClosedSlots {
		closedSlots[i] = slot.String()
	}

	query, args, err := psqlbuilder.Insert("day_capacities").
		Columns(
			"salon_id",
			"date",
			"max_slots",
			"closed_slots",
			"day_closed",
			"allow_overbooking",
			"updated_at",
			"updated_by",
		).
		Values(
			capacity.SalonID,
			capacity.Date.Format(domain.DateFormat),
			capacity.MaxSlots,
			pq.Array(closedSlots),
			capacity.DayClosed,
			capacity.AllowOverbooking,
			capacity.UpdatedAt,
			capacity.UpdatedBy,
		).
		Suffix(`ON CONFLICT (salon_id, date) DO UPDATE SET
			max_slots = EXCLUDED.max_slots,
			closed_slots = EXCLUDED.closed_slots,
			day_closed = EXCLUDED.day_closed,
			allow_overbooking = EXCLUDED.allow_overbooking,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
