// Package metrics holds the Prometheus collectors for the ledger server and CLI.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ourfinance",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPC requests handled.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ourfinance",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPC requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"procedure"},
	)

	transactionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ourfinance",
			Subsystem: "ledger",
			Name:      "transactions_recorded_total",
			Help:      "Transactions written to the ledger, by kind and category.",
		},
		[]string{"kind", "category"},
	)

	balanceCorrections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ourfinance",
			Subsystem: "ledger",
			Name:      "balance_corrections_total",
			Help:      "Manual balance corrections that changed a balance.",
		},
	)

	assetPurchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ourfinance",
			Subsystem: "assets",
			Name:      "purchases_total",
			Help:      "Metal holdings recorded, by metal and whether the card was new or merged.",
		},
		[]string{"metal", "card"},
	)

	sheetCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ourfinance",
			Subsystem: "sheets",
			Name:      "api_calls_total",
			Help:      "Google Sheets API calls, by operation and outcome.",
		},
		[]string{"op", "success"},
	)

	sheetDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ourfinance",
			Subsystem: "sheets",
			Name:      "api_call_duration_seconds",
			Help:      "Duration of Google Sheets API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"op"},
	)
)

func init() {
	Registry.MustRegister(
		rpcRequests,
		rpcDuration,
		transactionsRecorded,
		balanceCorrections,
		assetPurchases,
		sheetCalls,
		sheetDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRPC records one handled RPC and its status code.
func RecordRPC(procedure, code string, duration time.Duration) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// RecordTransaction counts a transaction written to the ledger.
func RecordTransaction(kind, category string) {
	if category == "" {
		category = "none"
	}
	transactionsRecorded.WithLabelValues(kind, category).Inc()
}

// RecordCorrection counts a balance correction.
func RecordCorrection() {
	balanceCorrections.Inc()
}

// RecordAssetPurchase counts a holding recorded against a metal card.
func RecordAssetPurchase(metal string, merged bool) {
	card := "new"
	if merged {
		card = "merged"
	}
	assetPurchases.WithLabelValues(metal, card).Inc()
}

// RecordSheetCall records one Google Sheets API call.
func RecordSheetCall(op string, duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	result := "false"
	if success {
		result = "true"
	}
	sheetCalls.WithLabelValues(op, result).Inc()
	sheetDuration.WithLabelValues(op).Observe(duration.Seconds())
}
