package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.RecordSlotsGenerated(18)
	m.RecordSlotsGenerated(2)
	m.RecordReservation(ReservationSucceeded)
	m.RecordReservation(ReservationConflict)
	m.RecordReservation(ReservationConflict)

	assert.Equal(t, float64(20), testutil.ToFloat64(m.slotsGeneratedTotal.WithLabelValues("test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reservationsTotal.WithLabelValues("test", ReservationSucceeded)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.reservationsTotal.WithLabelValues("test", ReservationConflict)))
}

func TestMetrics_HTTPRequest(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/api/v1/slots", 200, 15*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("test", "GET", "/api/v1/slots", "200")))
}
