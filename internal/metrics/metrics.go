package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OTP Lifecycle Metrics
	OTPGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otp_generated_total",
		Help: "Total number of OTPs generated and stored.",
	})
	OTPCapacityRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otp_capacity_rejected_total",
		Help: "Total number of generation requests rejected because the store was full.",
	})
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verifications_total",
		Help: "Total number of OTP verification attempts.",
	}, []string{"result"}) // result: "success", "not_found", "expired" or "email_mismatch"
	OTPExpiredRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otp_expired_removed_total",
		Help: "Total number of expired OTPs removed by the cleanup sweep.",
	})
	OTPEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "otp_entries",
		Help: "Current number of OTPs held in the store.",
	})

	// Persistence Metrics
	OTPPersistErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_persist_errors_total",
		Help: "Total number of failed load or save operations against the backing store.",
	}, []string{"op"}) // op: "load" or "save"
)
