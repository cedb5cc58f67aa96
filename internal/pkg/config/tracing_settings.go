package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// TracingSettings configures OpenTelemetry export. Tracing is off unless Enabled is set.
type TracingSettings struct {
	Enabled      bool    `yaml:"enabled"`
	Endpoint     string  `yaml:"endpoint" validate:"required_if=Enabled true"`
	ServiceName  string  `yaml:"service_name" validate:"required_if=Enabled true"`
	SamplingRate float64 `yaml:"sampling_rate" validate:"gte=0,lte=1"`
	Insecure     bool    `yaml:"insecure"`
}

// Validate checks that all fields in TracingSettings are valid
func (s *TracingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for TracingSettings: %w", err)
	}
	return nil
}
