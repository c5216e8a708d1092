// Package metrics exposes operation counters on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "operations_total",
		Help:      "Core operations by name and result.",
	}, []string{"op", "result"})

	FundsEscrowed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "funds_escrowed_total",
		Help:      "Credits moved into escrow vaults.",
	})

	FundsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "funds_released_total",
		Help:      "Credits released from escrow vaults to freelancers.",
	})

	EscrowMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "escrow_mismatches_total",
		Help:      "Vaults found holding a balance different from their job amount.",
	})
)

// Observe records one operation outcome.
func Observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Operations.WithLabelValues(op, result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
