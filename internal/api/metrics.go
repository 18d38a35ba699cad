package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	events  *prometheus.CounterVec
	queries prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, sessions func() int) *metrics {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "persontable_view_sessions",
		Help: "Number of live table view sessions.",
	}, func() float64 { return float64(sessions()) })

	return &metrics{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persontable_view_events_total",
			Help: "Table view events received, by type and result.",
		}, []string{"type", "result"}),
		queries: factory.NewCounter(prometheus.CounterOpts{
			Name: "persontable_record_queries_total",
			Help: "Stateless record queries served.",
		}),
	}
}
