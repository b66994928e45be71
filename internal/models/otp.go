package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var errMalformedPair = errors.New("otp entry must be a [code, record] pair")

type OTP struct {
	Code      string    `bson:"_id"`
	Email     string    `bson:"email"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// otpRecord is the second element of a stored [code, record] pair.
type otpRecord struct {
	Email      string `json:"email"`
	ExpiryTime int64  `json:"expiryTime"`
}

func NewOTP(code, email string, expiresAt time.Time) OTP {
	return OTP{Code: code, Email: email, ExpiresAt: expiresAt.Truncate(time.Millisecond)}
}

// ValidAt reports whether the OTP is still usable at now.
func (o OTP) ValidAt(now time.Time) bool {
	return o.ExpiresAt.After(now)
}

// ExpiredAt reports whether a sweep at now should drop the OTP.
func (o OTP) ExpiredAt(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}

func (o OTP) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Code, otpRecord{Email: o.Email, ExpiryTime: o.ExpiresAt.UnixMilli()}})
}

func (o *OTP) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPair, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: got %d elements", errMalformedPair, len(pair))
	}

	var code string
	if err := json.Unmarshal(pair[0], &code); err != nil || bytes.Equal(bytes.TrimSpace(pair[0]), []byte("null")) {
		return fmt.Errorf("%w: code is not a string", errMalformedPair)
	}

	raw := bytes.TrimSpace(pair[1])
	if len(raw) == 0 || raw[0] != '{' {
		return fmt.Errorf("%w: record is not an object", errMalformedPair)
	}
	// expiryTime is any JSON number; fractional milliseconds are truncated.
	var rec struct {
		Email      string  `json:"email"`
		ExpiryTime float64 `json:"expiryTime"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPair, err)
	}
	if rec.ExpiryTime >= math.MaxInt64 || rec.ExpiryTime < math.MinInt64 {
		return fmt.Errorf("%w: expiryTime %v out of range", errMalformedPair, rec.ExpiryTime)
	}

	*o = OTP{Code: code, Email: rec.Email, ExpiresAt: time.UnixMilli(int64(rec.ExpiryTime))}
	return nil
}
