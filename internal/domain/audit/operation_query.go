package audit

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// OperationQuery filters and pages the audit trail.
type OperationQuery struct {
	Operation Operation `validate:"omitempty,oneof=aes-encrypt aes-decrypt rsa-generate rsa-sign rsa-verify"`
	Outcome   Outcome   `validate:"omitempty,oneof=success warning invalid failure"`
	SessionID string    `validate:"omitempty,uuid4"`

	Limit     int    `validate:"omitempty,gte=0,lte=1000"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=date_time_created operation outcome"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewOperationQuery returns a query sorted newest first.
func NewOperationQuery() *OperationQuery {
	return &OperationQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating OperationQuery struct
func (q *OperationQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
