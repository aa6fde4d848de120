package response

import (
	"time"

	"shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type BookingShortResponse struct {
	ID       int64  `json:"id"`
	BookerID int64  `json:"bookerId"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []*CommentResponse    `json:"comments"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(request.DateTimeLayout)
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		RequestID:   v.RequestID,
	}
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	res := make([]*ItemResponse, len(views))
	for i, v := range views {
		res[i] = FromItemView(v)
	}
	return res
}

func FromItemDetailView(v *queries.ItemDetailView) *ItemDetailResponse {
	res := &ItemDetailResponse{
		ItemResponse: *FromItemView(&v.ItemView),
		LastBooking:  fromBookingShortView(v.LastBooking),
		NextBooking:  fromBookingShortView(v.NextBooking),
		Comments:     make([]*CommentResponse, len(v.Comments)),
	}
	for i, c := range v.Comments {
		res.Comments[i] = FromCommentView(c)
	}
	return res
}

func FromItemDetailViews(views []*queries.ItemDetailView) []*ItemDetailResponse {
	res := make([]*ItemDetailResponse, len(views))
	for i, v := range views {
		res[i] = FromItemDetailView(v)
	}
	return res
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		Text:       v.Text,
		AuthorName: v.AuthorName,
		Created:    formatTime(v.Created),
	}
}

func fromBookingShortView(v *queries.BookingShortView) *BookingShortResponse {
	if v == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       v.ID,
		BookerID: v.BookerID,
		Start:    formatTime(v.Start),
		End:      formatTime(v.End),
		Status:   v.Status,
	}
}
