package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики движка согласования; отдаются на /metrics служебного сервера.
var (
	providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cv_profile_provider_calls_total",
		Help: "Translation provider calls by result.",
	}, []string{"result"})

	fieldOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cv_profile_field_outcomes_total",
		Help: "Per-field translation outcomes by status.",
	}, []string{"status"})
)
