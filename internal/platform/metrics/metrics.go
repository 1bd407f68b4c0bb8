package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hotel_booking"

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Count of reservations created.",
		},
	)

	reservationsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_updated_total",
			Help:      "Count of reservation updates by resulting status.",
		},
		[]string{"status"},
	)

	reservationsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_deleted_total",
			Help:      "Count of reservations deleted.",
		},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_conflicts_total",
			Help:      "Count of rejected double-booking attempts.",
		},
	)

	hookFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_commit_hook_failures_total",
			Help:      "Count of failed post-commit hooks by hook name.",
		},
		[]string{"hook"},
	)

	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "availability_subscribers",
			Help:      "Number of live availability stream subscribers.",
		},
	)

	snapshotsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_snapshots_dropped_total",
			Help:      "Count of snapshots that could not be delivered to a subscriber.",
		},
	)

	priceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_computation_duration_seconds",
			Help:      "Time to compute a room price.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationsCreated,
			reservationsUpdated,
			reservationsDeleted,
			reservationConflicts,
			hookFailures,
			subscribers,
			snapshotsDropped,
			priceDuration,
		)
	})
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncReservationUpdated(status string) {
	reservationsUpdated.WithLabelValues(status).Inc()
}

func IncReservationDeleted() {
	reservationsDeleted.Inc()
}

func IncConflict() {
	reservationConflicts.Inc()
}

func IncHookFailure(hook string) {
	hookFailures.WithLabelValues(hook).Inc()
}

func SetSubscribers(n int) {
	subscribers.Set(float64(n))
}

func IncSnapshotDropped() {
	snapshotsDropped.Inc()
}

func ObservePriceDuration(seconds float64) {
	priceDuration.Observe(seconds)
}
