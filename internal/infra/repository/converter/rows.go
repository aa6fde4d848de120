package converter

import (
	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Row types mirror the tables column for column and are scanned with
// pgx.RowToStructByName.

type UserRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

type ItemRow struct {
	ID          int64       `db:"id"`
	OwnerID     int64       `db:"owner_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	Available   bool        `db:"available"`
	RequestID   pgtype.Int8 `db:"request_id"`
}

type BookingRow struct {
	ID        int64              `db:"id"`
	ItemID    int64              `db:"item_id"`
	BookerID  int64              `db:"booker_id"`
	StartDate pgtype.Timestamptz `db:"start_date"`
	EndDate   pgtype.Timestamptz `db:"end_date"`
	Status    string             `db:"status"`
}

type CommentRow struct {
	ID       int64              `db:"id"`
	ItemID   int64              `db:"item_id"`
	AuthorID int64              `db:"author_id"`
	Text     string             `db:"text"`
	Created  pgtype.Timestamptz `db:"created"`
}

func UserFromRow(r UserRow) *user.User {
	return user.ReconstructUser(r.ID, r.Name, r.Email)
}

func ItemFromRow(r ItemRow) *item.Item {
	return item.ReconstructItem(r.ID, r.OwnerID, r.Name, r.Description, r.Available, pgconv.Int64PtrFromPgtype(r.RequestID))
}

func BookingFromRow(r BookingRow) *booking.Booking {
	return booking.ReconstructBooking(
		r.ID,
		r.ItemID,
		r.BookerID,
		pgconv.TimeFromPgtype(r.StartDate).UTC(),
		pgconv.TimeFromPgtype(r.EndDate).UTC(),
		booking.Status(r.Status),
	)
}

func CommentFromRow(r CommentRow) *comment.Comment {
	return comment.ReconstructComment(r.ID, r.ItemID, r.AuthorID, r.Text, pgconv.TimeFromPgtype(r.Created).UTC())
}

func UsersFromRows(rows []UserRow) []*user.User {
	out := make([]*user.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserFromRow(r))
	}
	return out
}

func ItemsFromRows(rows []ItemRow) []*item.Item {
	out := make([]*item.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, ItemFromRow(r))
	}
	return out
}

func BookingsFromRows(rows []BookingRow) []*booking.Booking {
	out := make([]*booking.Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingFromRow(r))
	}
	return out
}

func CommentsFromRows(rows []CommentRow) []*comment.Comment {
	out := make([]*comment.Comment, 0, len(rows))
	for _, r := range rows {
		out = append(out, CommentFromRow(r))
	}
	return out
}
