package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/infra/repository/converter"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

const bookingColumns = `b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status`

const (
	createBookingSQL = `INSERT INTO bookings AS b (item_id, booker_id, start_date, end_date, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + bookingColumns

	findBookingByIDSQL = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	casBookingStatus   = `UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`

	listApprovedByItemsSQL = `SELECT ` + bookingColumns + ` FROM bookings b
WHERE b.item_id = ANY($1) AND b.status = 'APPROVED'
ORDER BY b.start_date, b.id`

	hasCompletedBookingSQL = `SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE booker_id = $1 AND item_id = $2 AND status = 'APPROVED' AND end_date < $3
)`

	listByBookerBase = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booker_id = $1`
	listByOwnerBase  = `SELECT ` + bookingColumns + ` FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE i.owner_id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, createBookingSQL,
		b.ItemID(),
		b.BookerID(),
		pgconv.TimeToPgtype(b.Start()),
		pgconv.TimeToPgtype(b.End()),
		b.Status().String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, wrapWriteErr("failed to create booking", err)
	}
	return converter.BookingFromRow(row), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, findBookingByIDSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NotFound("booking not found")
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return converter.BookingFromRow(row), nil
}

func (r *BookingRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, casBookingStatus, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
	query, args := buildListQuery(listByBookerBase, bookerID, filter)
	return r.collect(ctx, "failed to list bookings by booker", query, args...)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, filter shared.BookingFilter) ([]*booking.Booking, error) {
	query, args := buildListQuery(listByOwnerBase, ownerID, filter)
	return r.collect(ctx, "failed to list bookings by owner", query, args...)
}

func (r *BookingRepository) ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]*booking.Booking, error) {
	if len(itemIDs) == 0 {
		return []*booking.Booking{}, nil
	}
	return r.collect(ctx, "failed to list approved bookings", listApprovedByItemsSQL, itemIDs)
}

func (r *BookingRepository) HasCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, hasCompletedBookingSQL, bookerID, itemID, pgconv.TimeToPgtype(now)).Scan(&ok)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check completed bookings", err)
	}
	return ok, nil
}

func (r *BookingRepository) collect(ctx context.Context, msg, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return converter.BookingsFromRows(list), nil
}

// buildListQuery appends the state predicate, ordering and the page window
// to base, whose only placeholder is $1.
func buildListQuery(base string, userID int64, filter shared.BookingFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(base)
	args := []any{userID}

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch filter.State {
	case booking.StateCurrent:
		now := next(pgconv.TimeToPgtype(filter.Now))
		sb.WriteString(" AND b.start_date < " + now + " AND b.end_date > " + now)
	case booking.StatePast:
		sb.WriteString(" AND b.end_date < " + next(pgconv.TimeToPgtype(filter.Now)))
	case booking.StateFuture:
		sb.WriteString(" AND b.start_date > " + next(pgconv.TimeToPgtype(filter.Now)))
	case booking.StateWaiting:
		sb.WriteString(" AND b.status = " + next(booking.StatusWaiting.String()))
	case booking.StateRejected:
		sb.WriteString(" AND b.status = " + next(booking.StatusRejected.String()))
	}

	sb.WriteString(" ORDER BY b.start_date DESC, b.id DESC")
	sb.WriteString(" LIMIT " + next(filter.Page.Limit))
	sb.WriteString(" OFFSET " + next(filter.Page.Offset))

	return sb.String(), args
}
