package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	JourneysStarted      prometheus.Counter
	JourneysCompleted    prometheus.Counter
	JourneysCancelled    prometheus.Counter
	EventsRecorded       prometheus.Counter
	ValidationRejections *prometheus.CounterVec
	UpdateProcessingTime prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		JourneysStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journeys_started_total",
			Help:      "The total number of journeys started",
		}),
		JourneysCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journeys_completed_total",
			Help:      "The total number of journeys completed",
		}),
		JourneysCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journeys_cancelled_total",
			Help:      "The total number of journeys cancelled",
		}),
		EventsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journey_events_recorded_total",
			Help:      "The total number of checkpoint events recorded",
		}),
		ValidationRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoint_rejections_total",
			Help:      "The total number of rejected checkpoint timestamps",
		}, []string{"reason"}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_processing_time_seconds",
			Help:      "Time taken to process inbound updates",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
