package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
)

var SendCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ripple",
	Subsystem: "broadcast",
	Name:      "sends",
	Help:      "Values sent, by whether they were delivered at once or queued behind a running round",
}, []string{"mode"})

var DisconnectCount = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "ripple",
	Subsystem: "broadcast",
	Name:      "disconnects",
})

var TransactionCount = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "ripple",
	Subsystem: "transaction",
	Name:      "flushes",
	Help:      "Outermost transactions that delivered a change",
})

var MergedChangeCount = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "ripple",
	Subsystem: "transaction",
	Name:      "merged_changes",
})

// Collectors lists the package metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{SendCount, DisconnectCount, TransactionCount, MergedChangeCount}
}
