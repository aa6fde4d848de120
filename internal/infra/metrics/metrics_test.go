//go:build unit

package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	NewRecorder()

	before := testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED"))
	r.BookingDecided("APPROVED")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingDecisions.WithLabelValues("APPROVED")))

	created := testutil.ToFloat64(bookingsCreated)
	r.BookingCreated()
	assert.Equal(t, created+1, testutil.ToFloat64(bookingsCreated))

	hits := testutil.ToFloat64(httpRequests.WithLabelValues("/users/:id", http.MethodGet, "200"))
	r.ObserveHTTP("/users/:id", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	assert.Equal(t, hits+1, testutil.ToFloat64(httpRequests.WithLabelValues("/users/:id", http.MethodGet, "200")))
}
