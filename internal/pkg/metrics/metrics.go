package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Marking outcomes are the signal that matters operationally: a spike in
// "out_of_range" or "invalid_pin" usually means a misconfigured lecture
// rather than student fraud.
var (
	MarkingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartportal",
		Subsystem: "attendance",
		Name:      "marking_total",
		Help:      "Attendance marking attempts by outcome and proof method.",
	}, []string{"outcome", "method"})

	OverrideTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartportal",
		Subsystem: "attendance",
		Name:      "override_total",
		Help:      "Manual attendance overrides performed by staff.",
	})

	PinIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartportal",
		Subsystem: "attendance",
		Name:      "pin_issued_total",
		Help:      "Attendance PINs generated (refreshes of a still-valid PIN excluded).",
	})
)
