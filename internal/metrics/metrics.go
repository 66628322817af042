// Package metrics exposes Prometheus counters for catalog fetches and
// reservations.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stay-browser/server/internal/listing"
)

const namespace = "stay_browser"

var (
	once sync.Once

	catalogFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_total",
			Help:      "Count of catalog fetches by result.",
		},
		[]string{"result"},
	)

	catalogDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_records_dropped_total",
			Help:      "Count of upstream records rejected by validation.",
		},
	)

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_total",
			Help:      "Count of reservations handed to the confirmation screen.",
		},
		[]string{"selected"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(catalogFetches, catalogDropped, reservations)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Recorder adapts the counters to the catalog and reservation hooks.
type Recorder struct{}

// CatalogFetched counts a successful fetch.
func (Recorder) CatalogFetched(count, dropped int) {
	catalogFetches.WithLabelValues("success").Inc()
	catalogDropped.Add(float64(dropped))
}

// CatalogFetchFailed counts a failed fetch.
func (Recorder) CatalogFetchFailed(string, error) {
	catalogFetches.WithLabelValues("error").Inc()
}

// ReservationConfirmed counts a reservation, split by whether an
// accommodation was actually selected.
func (Recorder) ReservationConfirmed(c listing.Confirmation) {
	selected := c.AccommodationName != listing.PlaceholderName
	reservations.WithLabelValues(strconv.FormatBool(selected)).Inc()
}
