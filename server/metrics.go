package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blockberries/aelf"
)

const namespace = "aelf"

type metrics struct {
	decodes        *prometheus.CounterVec
	traces         *prometheus.CounterVec
	validStateSets prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identifier_decodes_total",
			Help:      "Identifier decode attempts by identifier type and result.",
		}, []string{"identifier", "result"}),
		traces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traces_analyzed_total",
			Help:      "Transaction traces analyzed by outcome.",
		}, []string{"result"}),
		validStateSets: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "valid_state_sets",
			Help:      "Number of valid state sets per analyzed trace.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

func (m *metrics) register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.decodes, m.traces, m.validStateSets} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) observeDecode(identifier string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if d, ok := aelf.IsDecodeError(err); ok {
			result = d.Kind.String()
		}
	}
	m.decodes.WithLabelValues(identifier, result).Inc()
}
