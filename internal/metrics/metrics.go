package metrics

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics collects router and pair activity.
type Metrics struct {
	Calls        *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
	Swaps        *prometheus.CounterVec
	Reserves     *prometheus.GaugeVec
}

// New registers the collectors on reg under namespace.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "calls_total",
			Help:      "Total number of router calls by operation and result",
		}, []string{"op", "result"}),
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "call_duration_seconds",
			Help:      "Router call latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op"}),
		Swaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pair",
			Name:      "swaps_total",
			Help:      "Total number of committed swaps per pair",
		}, []string{"pair"}),
		Reserves: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pair",
			Name:      "reserve",
			Help:      "Last committed reserve per pair and side",
		}, []string{"pair", "side"}),
	}
}

// ObserveCall records one router call.
func (m *Metrics) ObserveCall(op string, err error, elapsed time.Duration) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.Calls.WithLabelValues(op, result).Inc()
	m.CallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Synced records committed reserves. Values beyond float64 precision are approximated.
func (m *Metrics) Synced(pair common.Address, reserve0, reserve1 *big.Int) {
	m.Reserves.WithLabelValues(pair.Hex(), "0").Set(toFloat(reserve0))
	m.Reserves.WithLabelValues(pair.Hex(), "1").Set(toFloat(reserve1))
}

// Swapped counts a committed swap.
func (m *Metrics) Swapped(pair common.Address, _, _, _, _ *big.Int) {
	m.Swaps.WithLabelValues(pair.Hex()).Inc()
}

func toFloat(x *big.Int) float64 {
	f, _ := new(big.Float).SetInt(x).Float64()
	return f
}
