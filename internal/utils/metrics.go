package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Storage Metrics
var StorageQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "otp_storage_query_duration_seconds",
	Help:    "Duration of backing store operations in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"query_type", "backend", "status"})

var StorageQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "otp_storage_query_errors_total",
	Help: "Total number of failed backing store operations.",
}, []string{"query_type", "backend"})
