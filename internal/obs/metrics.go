package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters for the storage adapter and the main domain flows. There is no
// serving surface in this tool, so collectors are gathered in-process.
var (
	StoreReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_reads_total",
			Help: "Storage adapter reads by outcome.",
		},
		[]string{"outcome"}, // hit, miss, corrupt
	)

	StoreWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Storage adapter writes by outcome.",
		},
		[]string{"outcome"}, // ok, error
	)

	AuditsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audits_created_total",
		Help: "Audits created through the repository.",
	})

	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"}, // ok, rejected
	)
)

var initOnce sync.Once

// Init registers the collectors in the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(StoreReads, StoreWrites, AuditsCreated, Logins)
	})
}
