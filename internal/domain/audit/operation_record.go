package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Operation names a workbench action.
type Operation string

// Recorded operations.
const (
	OperationAESEncrypt  Operation = "aes-encrypt"
	OperationAESDecrypt  Operation = "aes-decrypt"
	OperationRSAGenerate Operation = "rsa-generate"
	OperationRSASign     Operation = "rsa-sign"
	OperationRSAVerify   Operation = "rsa-verify"
)

// Outcome is how an operation ended.
type Outcome string

// Operation outcomes. OutcomeInvalid means the signature did not verify.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailure Outcome = "failure"
)

// OperationRecord entity
type OperationRecord struct {
	ID              string    `validate:"required,uuid4"`
	SessionID       string    `validate:"omitempty,uuid4"`
	Operation       Operation `validate:"required,oneof=aes-encrypt aes-decrypt rsa-generate rsa-sign rsa-verify"`
	Algorithm       string    `validate:"required,oneof=AES RSA"`
	KeySize         uint32    `validate:"omitempty,keySizeValidation"`
	Mode            string    `validate:"omitempty,oneof=CBC ECB"`
	Encoding        string    `validate:"omitempty,oneof=UTF8 HEX BASE64"`
	Digest          string    `validate:"omitempty,oneof=SHA-256 SHA-384 SHA-512"`
	Outcome         Outcome   `validate:"required,oneof=success warning invalid failure"`
	ErrorCategory   string    `validate:"omitempty,oneof=validation crypto environment"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating OperationRecord struct
func (r *OperationRecord) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keySizeValidation", validators.KeySizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(r)
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
