// Package metrics exposes prometheus counters for query outcomes,
// validation results, and chain-of-trust growth, subscribed to the evt
// bus so instrumentation stays decoupled from the walker and probes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dnstrust/dnstrust/evt"
	"github.com/dnstrust/dnstrust/report"
)

// nolint:gochecknoglobals
var reg = prometheus.NewRegistry()

// nolint:gochecknoglobals
var (
	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dnsprobe_queries_total",
		Help: "DNS queries performed, by record type and result.",
	}, []string{"type", "result"})

	validationResultTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dnsprobe_validation_result_total",
		Help: "Completed test cases of every probe family, by final status.",
	}, []string{"result"})

	chainEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dnsprobe_chain_entries_total",
		Help: "Entries added to a chain of trust, by kind.",
	}, []string{"kind"})
)

// nolint:gochecknoinits
func init() {
	reg.MustRegister(queriesTotal, validationResultTotal, chainEntriesTotal)
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	reg.MustRegister(prometheus.NewGoCollector())
}

// Subscribe wires the counters to the global event bus. Call once at
// startup, before any probe runs.
func Subscribe() {
	_ = evt.Bus().Subscribe(evt.TestCaseCompleted, onTestCaseCompleted)
}

func onTestCaseCompleted(tc *report.TestCase) {
	validationResultTotal.WithLabelValues(tc.Status.String()).Inc()
}

// RecordQuery increments the query counter; called directly by
// dnsclient.Client rather than over the bus, since it fires on the hot
// path of every single query.
func RecordQuery(rdtype, result string) {
	queriesTotal.WithLabelValues(rdtype, result).Inc()
}

// RecordChainEntry increments the chain-of-trust growth counter.
func RecordChainEntry(kind string) {
	chainEntriesTotal.WithLabelValues(kind).Inc()
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
