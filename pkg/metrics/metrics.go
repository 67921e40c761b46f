// Package metrics – Prometheus metrics for the signal/risk core.
//
//   - desk_signal_transitions_total{state} – lifecycle transitions (approved|executed|rejected)
//   - desk_gate_blocks_total{reason}       – operations refused by the risk gate
//   - desk_risk_trips_total{action}        – automatic trips (emergency_stop|pause)
//   - desk_open_positions                  – currently open positions (gauge)
//   - desk_equity_usd                      – latest net liquidation value (gauge)
//   - desk_enhancer_failures_total         – best-effort enhancer consults that failed
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "desk_signal_transitions_total",
			Help: "Signal lifecycle transitions",
		},
		[]string{"state"},
	)

	GateBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "desk_gate_blocks_total",
			Help: "Operations refused by the risk gate",
		},
		[]string{"reason"},
	)

	RiskTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "desk_risk_trips_total",
			Help: "Automatic risk gate trips from reconciliation",
		},
		[]string{"action"},
	)

	OpenPositions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "desk_open_positions",
			Help: "Currently open positions",
		},
	)

	Equity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "desk_equity_usd",
			Help: "Latest net liquidation value",
		},
	)

	EnhancerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "desk_enhancer_failures_total",
			Help: "Enhancer consults that timed out or errored",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SignalTransitions,
		GateBlocks,
		RiskTrips,
		OpenPositions,
		Equity,
		EnhancerFailures,
	)
}
