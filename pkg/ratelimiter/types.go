package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the token bucket configuration.
type Config struct {
	Capacity       int           `env:"RATELIMIT_CAPACITY" envDefault:"10"`         // burst size
	RefillRate     int           `env:"RATELIMIT_REFILL_RATE" envDefault:"1"`       // tokens added per interval
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"30s"` // how often tokens are added
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval < time.Millisecond {
		return fmt.Errorf("%w: refill interval must be at least 1ms, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left; negative when denied
	ResetAt   time.Time // next refill
}

func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next attempt, or 0 if allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}
