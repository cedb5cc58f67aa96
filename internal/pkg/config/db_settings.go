package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
	MysqlDbType    = "mysql"
)

// DatabaseSettings configures the store backing the operation audit trail.
// An empty DSN for sqlite means an in-memory database.
type DatabaseSettings struct {
	Type string `yaml:"type" validate:"required,oneof=sqlite postgres mysql"`
	DSN  string `yaml:"dsn" validate:"required_unless=Type sqlite"`
	Name string `yaml:"name"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
