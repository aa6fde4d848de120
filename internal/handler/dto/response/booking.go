package response

import (
	"shareit/internal/usecase/queries"
)

type BookingItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingBookerResponse struct {
	ID int64 `json:"id"`
}

type BookingResponse struct {
	ID     int64                 `json:"id"`
	Start  string                `json:"start"`
	End    string                `json:"end"`
	Status string                `json:"status"`
	ItemID int64                 `json:"itemId"`
	Item   BookingItemResponse   `json:"item"`
	Booker BookingBookerResponse `json:"booker"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  formatTime(v.Start),
		End:    formatTime(v.End),
		Status: v.Status,
		ItemID: v.Item.ID,
		Item:   BookingItemResponse{ID: v.Item.ID, Name: v.Item.Name},
		Booker: BookingBookerResponse{ID: v.BookerID},
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
