package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Cleanup is the stop handle for a running cleanup loop.
type Cleanup struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the loop and waits for it to exit. Safe to call more than once.
func (c *Cleanup) Stop() {
	c.cancel()
	<-c.done
}

// Done is closed once the loop has exited.
func (c *Cleanup) Done() <-chan struct{} {
	return c.done
}

func (s *otpService) StartCleanupInterval(ctx context.Context) *Cleanup {
	ctx, cancel := context.WithCancel(ctx)
	c := &Cleanup{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		log.Info().Dur("interval", s.cleanupInterval).Msg("OTP cleanup started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("OTP cleanup stopped")
				return
			case <-ticker.C:
				s.safeSweep(ctx)
			}
		}
	}()

	return c
}

func (s *otpService) safeSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("OTP cleanup sweep panicked")
		}
	}()
	s.Sweep(ctx)
}
