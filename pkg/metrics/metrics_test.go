package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "salon-test")

	m.ObserveHTTPRequest("GET", "/api/v1/shops/{shopId}/available-slots", 200, 15*time.Millisecond)
	m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)
	m.IncSlotConflict("storage")
	m.IncSlotConflict("storage")
	m.AddShiftsPaid(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/shops/{shopId}/available-slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("query", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("storage")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.shiftsPaid))
}
