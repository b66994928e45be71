package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"otpstore/internal/models"
	"otpstore/internal/utils"
)

// ErrMalformedStorage is returned by Load when stored state exists but cannot be decoded.
var ErrMalformedStorage = errors.New("malformed otp storage")

// OTPRepository is the durable backing store for the OTP snapshot.
// Load returns (nil, nil) when nothing has been stored yet.
type OTPRepository interface {
	Load(ctx context.Context) ([]models.OTP, error)
	Save(ctx context.Context, otps []models.OTP) error
	Ping(ctx context.Context) error
}

func decodeOTPs(data []byte) ([]models.OTP, error) {
	var otps []models.OTP
	if err := json.Unmarshal(data, &otps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}
	return otps, nil
}

func encodeOTPs(otps []models.OTP) ([]byte, error) {
	if otps == nil {
		otps = []models.OTP{}
	}
	return json.Marshal(otps)
}

func observe(backend, queryType string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		utils.StorageQueryErrorsTotal.WithLabelValues(queryType, backend).Inc()
	}
	utils.StorageQueryDurationSeconds.WithLabelValues(queryType, backend, status).Observe(time.Since(start).Seconds())
}
