package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"otpstore/internal/metrics"
	"otpstore/internal/models"
	"otpstore/internal/repositories"
	"otpstore/internal/utils"
)

const (
	DefaultOTPCapacity     = 1000
	DefaultOTPTTL          = 5 * time.Minute
	DefaultCleanupInterval = time.Minute
)

var ErrCapacityExceeded = errors.New("maximum OTP storage limit reached, unable to generate and store new OTP")

const (
	verifySuccess       = "success"
	verifyNotFound      = "not_found"
	verifyExpired       = "expired"
	verifyEmailMismatch = "email_mismatch"
)

// OTPService owns the in-memory OTP table and mirrors every mutation to the backing store.
type OTPService interface {
	// GenerateAndStoreOTP issues a code of length digits bound to email.
	// A ttl <= 0 selects the configured default; a positive ttl below one
	// millisecond is raised to one millisecond.
	// A full store returns ErrCapacityExceeded. A failure of the random source
	// is returned wrapped and is not ErrCapacityExceeded.
	GenerateAndStoreOTP(ctx context.Context, length int, email string, ttl time.Duration) (string, error)
	// VerifyOTP reports whether code is live and bound to email.
	// Any failed attempt consumes the code.
	VerifyOTP(ctx context.Context, code, email string) bool
	// StartCleanupInterval runs Sweep on every cleanup interval until ctx is done or the handle is stopped.
	StartCleanupInterval(ctx context.Context) *Cleanup
	Sweep(ctx context.Context)
	Flush(ctx context.Context)
	Count() int
}

type OTPServiceConfig struct {
	Capacity        int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	Clock           utils.Clock
}

type otpService struct {
	mu      sync.Mutex
	entries map[string]models.OTP

	otpRepo         repositories.OTPRepository
	clock           utils.Clock
	capacity        int
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

// NewOTPService loads the previous snapshot from otpRepo. A missing or unreadable
// snapshot leaves the store empty.
func NewOTPService(ctx context.Context, otpRepo repositories.OTPRepository, cfg OTPServiceConfig) OTPService {
	s := &otpService{
		entries:         make(map[string]models.OTP),
		otpRepo:         otpRepo,
		clock:           cfg.Clock,
		capacity:        cfg.Capacity,
		defaultTTL:      cfg.DefaultTTL,
		cleanupInterval: cfg.CleanupInterval,
	}
	if s.clock == nil {
		s.clock = utils.SystemClock{}
	}
	if s.capacity <= 0 {
		s.capacity = DefaultOTPCapacity
	}
	if s.defaultTTL <= 0 {
		s.defaultTTL = DefaultOTPTTL
	}
	if s.cleanupInterval <= 0 {
		s.cleanupInterval = DefaultCleanupInterval
	}

	s.load(ctx)
	return s
}

func (s *otpService) load(ctx context.Context) {
	otps, err := s.otpRepo.Load(ctx)
	if err != nil {
		metrics.OTPPersistErrorsTotal.WithLabelValues("load").Inc()
		log.Error().Err(err).Msg("Error loading OTP storage, starting with an empty store")
		return
	}

	for _, otp := range otps {
		s.entries[otp.Code] = otp
	}
	metrics.OTPEntries.Set(float64(len(s.entries)))
	log.Info().Int("entries", len(s.entries)).Msg("OTP storage loaded")

	// Nothing is evicted here; generation stays blocked until Sweep or VerifyOTP frees room.
	if len(s.entries) > s.capacity {
		log.Warn().Int("entries", len(s.entries)).Int("capacity", s.capacity).Msg("Loaded OTP storage exceeds capacity")
	}
}

// persist must be called with s.mu held.
func (s *otpService) persist(ctx context.Context) {
	otps := make([]models.OTP, 0, len(s.entries))
	for _, otp := range s.entries {
		otps = append(otps, otp)
	}
	slices.SortFunc(otps, func(a, b models.OTP) int { return strings.Compare(a.Code, b.Code) })

	metrics.OTPEntries.Set(float64(len(otps)))
	if err := s.otpRepo.Save(ctx, otps); err != nil {
		metrics.OTPPersistErrorsTotal.WithLabelValues("save").Inc()
		log.Error().Err(err).Msg("Error saving OTP storage")
	}
}

func (s *otpService) GenerateAndStoreOTP(ctx context.Context, length int, email string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.capacity {
		metrics.OTPCapacityRejectedTotal.Inc()
		log.Warn().Int("capacity", s.capacity).Str("email", email).Msg("OTP storage is full")
		return "", ErrCapacityExceeded
	}

	code, err := utils.GenerateOTP(length)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	switch {
	case ttl <= 0:
		ttl = s.defaultTTL
	case ttl < time.Millisecond:
		ttl = time.Millisecond
	}
	otp := models.NewOTP(code, email, s.clock.Now().Add(ttl))
	s.entries[code] = otp

	metrics.OTPGeneratedTotal.Inc()
	log.Info().Str("code", code).Str("email", email).Time("expires_at", otp.ExpiresAt).Msg("OTP generated")

	s.persist(ctx)
	return code, nil
}

func (s *otpService) VerifyOTP(ctx context.Context, code, email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	otp, ok := s.entries[code]
	result := verifySuccess
	switch {
	case !ok:
		result = verifyNotFound
	case !otp.ValidAt(s.clock.Now()):
		result = verifyExpired
	case otp.Email != email:
		result = verifyEmailMismatch
	}
	metrics.OTPVerificationsTotal.WithLabelValues(result).Inc()

	if result == verifySuccess {
		log.Info().Str("code", code).Str("email", email).Msg("OTP verification successful")
		return true
	}

	log.Warn().Str("code", code).Str("email", email).Str("reason", result).Msg("OTP verification failed")
	if ok {
		delete(s.entries, code)
		s.persist(ctx)
	}
	return false
}

func (s *otpService) Sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for code, otp := range s.entries {
		if otp.ExpiredAt(now) {
			delete(s.entries, code)
			removed++
			log.Info().Str("code", code).Msg("Expired OTP removed from storage")
		}
	}
	metrics.OTPExpiredRemovedTotal.Add(float64(removed))
	log.Debug().Int("removed", removed).Int("remaining", len(s.entries)).Msg("OTP cleanup finished")

	s.persist(ctx)
}

func (s *otpService) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persist(ctx)
}

func (s *otpService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
