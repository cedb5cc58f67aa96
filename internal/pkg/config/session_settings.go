package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// SessionSettings controls how long an idle result context is kept in memory.
type SessionSettings struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout" validate:"required,min=1m"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"required,min=1s"`
	CookieName    string        `yaml:"cookie_name" validate:"required,max=64"`
}

// Validate checks that all fields in SessionSettings are valid
func (s *SessionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SessionSettings: %w", err)
	}
	if s.SweepInterval > s.IdleTimeout {
		return fmt.Errorf("sweep interval %s must not exceed idle timeout %s", s.SweepInterval, s.IdleTimeout)
	}
	return nil
}
