//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"shareit/internal/handler/dto/response"
	"shareit/tests/common/builder"
	"shareit/tests/common/dbtest"
	"shareit/tests/common/httptest"
	"shareit/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/bookings"
	bookingURL      = "/bookings/%d"
	approveURL      = "/bookings/%d?approved=%t"
	ownerBookingURL = "/bookings/owner"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type fixture struct {
	owner, booker, stranger int64
	itemID                  int64
}

func (s *BookingSuite) seed(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		owner:    dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com"),
		booker:   dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com"),
		stranger: dbtest.CreateTestUser(t, s.DB, "Stranger", "stranger@example.com"),
	}
	f.itemID = dbtest.CreateTestItem(t, s.DB, f.owner, "Drill", "Cordless drill", true)
	return f
}

func id(v int64) string {
	return fmt.Sprint(v)
}

func ids(res []response.BookingResponse) []int64 {
	out := make([]int64, len(res))
	for i, r := range res {
		out[i] = r.ID
	}
	return out
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking starts WAITING", func() {
		t := s.T()
		f := s.seed(t)

		reqBody := builder.NewBookingBuilder().WithItem(f.itemID, f.owner).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.booker))
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		require.Equal(t, "WAITING", created.Status)
		require.Equal(t, f.itemID, created.ItemID)
		require.Equal(t, response.BookingItemResponse{ID: f.itemID, Name: "Drill"}, created.Item)
		require.Equal(t, f.booker, created.Booker.ID)
		require.Equal(t, fmt.Sprintf(bookingURL, created.ID), w.Header().Get("Location"))
	})

	s.Run("Error case: owner cannot book own item", func() {
		t := s.T()
		f := s.seed(t)

		reqBody := builder.NewBookingBuilder().WithItem(f.itemID, f.owner).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.owner))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("Error case: unavailable item", func() {
		t := s.T()
		f := s.seed(t)
		hidden := dbtest.CreateTestItem(t, s.DB, f.owner, "Saw", "Hand saw", false)

		reqBody := builder.NewBookingBuilder().WithItem(hidden, f.owner).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: start in the past", func() {
		t := s.T()
		f := s.seed(t)

		now := time.Now().UTC()
		reqBody := builder.NewBookingBuilder().
			WithItem(f.itemID, f.owner).
			WithPeriod(now.Add(-time.Hour), now.Add(time.Hour)).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: end before start", func() {
		t := s.T()
		f := s.seed(t)

		now := time.Now().UTC()
		reqBody := builder.NewBookingBuilder().
			WithItem(f.itemID, f.owner).
			WithPeriod(now.Add(3*time.Hour), now.Add(2*time.Hour)).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: unknown item", func() {
		t := s.T()
		f := s.seed(t)

		reqBody := builder.NewBookingBuilder().WithItem(999, f.owner).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestApproveBooking
// =============================================================================

func (s *BookingSuite) TestApproveBooking() {
	s.Run("Normal case: owner approves once", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(time.Hour), now.Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(approveURL, bookingID, true), nil, id(f.owner))
		var approved response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &approved)
		require.Equal(t, "APPROVED", approved.Status)

		again := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(approveURL, bookingID, false), nil, id(f.owner))
		httptest.AssertErrorResponse(t, again, http.StatusBadRequest, "")
	})

	s.Run("Normal case: owner rejects", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(time.Hour), now.Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(approveURL, bookingID, false), nil, id(f.owner))
		var rejected response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)
		require.Equal(t, "REJECTED", rejected.Status)
	})

	s.Run("Error case: booker cannot approve", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(time.Hour), now.Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(approveURL, bookingID, true), nil, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: approved parameter must be boolean", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(time.Hour), now.Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=maybe", bookingID), nil, id(f.owner))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}

// =============================================================================
// TestGetBooking
// =============================================================================

func (s *BookingSuite) TestGetBooking() {
	s.Run("Normal case: booker and owner can read, stranger cannot", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(time.Hour), now.Add(2*time.Hour), "WAITING")

		for _, viewer := range []int64{f.booker, f.owner} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, bookingID), nil, id(viewer))
			var got response.BookingResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
			require.Equal(t, bookingID, got.ID)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, bookingID), nil, id(f.stranger))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestListBookings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: states filter and newest start comes first", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		past := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(-48*time.Hour), now.Add(-47*time.Hour), "APPROVED")
		current := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		waiting := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(24*time.Hour), now.Add(25*time.Hour), "WAITING")
		rejected := dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, now.Add(48*time.Hour), now.Add(49*time.Hour), "REJECTED")

		tests := []struct {
			state string
			want  []int64
		}{
			{"", []int64{rejected, waiting, current, past}},
			{"ALL", []int64{rejected, waiting, current, past}},
			{"CURRENT", []int64{current}},
			{"PAST", []int64{past}},
			{"FUTURE", []int64{rejected, waiting}},
			{"WAITING", []int64{waiting}},
			{"REJECTED", []int64{rejected}},
		}
		for _, tt := range tests {
			for _, path := range []struct {
				url    string
				viewer int64
			}{
				{bookingsURL, f.booker},
				{ownerBookingURL, f.owner},
			} {
				url := path.url
				if tt.state != "" {
					url += "?state=" + tt.state
				}
				w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, id(path.viewer))
				var got []response.BookingResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
				require.Equal(t, tt.want, ids(got), "%s state=%q", path.url, tt.state)
			}
		}
	})

	s.Run("Normal case: paging by from and size", func() {
		t := s.T()
		f := s.seed(t)
		now := time.Now().UTC()
		var created []int64
		for i := range 5 {
			start := now.Add(time.Duration(i+1) * time.Hour)
			created = append(created, dbtest.CreateTestBooking(t, s.DB, f.itemID, f.booker, start, start.Add(30*time.Minute), "WAITING"))
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?from=2&size=2", nil, id(f.booker))
		var got []response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, []int64{created[2], created[1]}, ids(got))
	})

	s.Run("Error case: unknown state", func() {
		t := s.T()
		f := s.seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=UNSUPPORTED_STATUS", nil, id(f.booker))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
	})

	s.Run("Error case: unknown user", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ownerBookingURL, nil, "999")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})

	s.Run("Error case: negative from", func() {
		t := s.T()
		f := s.seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?from=-1&size=10", nil, id(f.booker))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
