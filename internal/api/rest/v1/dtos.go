package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error message response
type ErrorResponse struct {
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

// InfoResponse represents an informational message response
type InfoResponse struct {
	Message string `json:"message"`
}

// ContentInput is either pasted text or base64 of an uploaded file
type ContentInput struct {
	Text   string `json:"text,omitempty"`
	Base64 string `json:"base64,omitempty" validate:"omitempty,base64"`
}

func (c ContentInput) toDomain() (workbench.Content, error) {
	if c.Base64 != "" {
		if c.Text != "" {
			return workbench.Content{}, errors.New("text and base64 content are mutually exclusive")
		}
		data, err := base64.StdEncoding.DecodeString(c.Base64)
		if err != nil {
			return workbench.Content{}, fmt.Errorf("invalid base64 content: %w", err)
		}
		return workbench.FileContent(data), nil
	}
	return workbench.TextContent(c.Text), nil
}

// EncryptRequest is the body of POST /aes/encrypt
type EncryptRequest struct {
	Plaintext      ContentInput `json:"plaintext"`
	KeySize        int          `json:"key_size" validate:"required,oneof=128 192 256"`
	Mode           string       `json:"mode" validate:"required,oneof=CBC ECB cbc ecb"`
	Key            string       `json:"key,omitempty"`
	IV             string       `json:"iv,omitempty"`
	KeyEncoding    string       `json:"key_encoding" validate:"required"`
	OutputEncoding string       `json:"output_encoding" validate:"required"`
}

// Validate for validating EncryptRequest struct
func (r *EncryptRequest) Validate() error {
	return validateStruct(r)
}

func (r *EncryptRequest) toDomain(sessionID string) (*workbench.AESEncryptRequest, error) {
	plaintext, err := r.Plaintext.toDomain()
	if err != nil {
		return nil, err
	}
	mode, err := cryptoalg.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}
	keyEncoding, err := codec.ParseEncoding(r.KeyEncoding)
	if err != nil {
		return nil, err
	}
	outputEncoding, err := codec.ParseEncoding(r.OutputEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.AESEncryptRequest{
		SessionID:      sessionID,
		Plaintext:      plaintext,
		KeySize:        cryptoalg.KeySize(r.KeySize),
		Mode:           mode,
		Key:            r.Key,
		IV:             r.IV,
		KeyEncoding:    keyEncoding,
		OutputEncoding: outputEncoding,
	}, nil
}

// EncryptResponse is returned by POST /aes/encrypt
type EncryptResponse struct {
	Key          string `json:"key"`
	IV           string `json:"iv,omitempty"`
	Ciphertext   string `json:"ciphertext"`
	KeyGenerated bool   `json:"key_generated"`
	IVGenerated  bool   `json:"iv_generated"`
	KeySize      int    `json:"key_size"`
	Mode         string `json:"mode"`
	Encoding     string `json:"encoding"`
}

// DecryptRequest is the body of POST /aes/decrypt
type DecryptRequest struct {
	Ciphertext         string `json:"ciphertext" validate:"required"`
	KeySize            int    `json:"key_size" validate:"required,oneof=128 192 256"`
	Mode               string `json:"mode" validate:"required,oneof=CBC ECB cbc ecb"`
	Key                string `json:"key" validate:"required"`
	IV                 string `json:"iv,omitempty"`
	KeyEncoding        string `json:"key_encoding" validate:"required"`
	CiphertextEncoding string `json:"ciphertext_encoding" validate:"required"`
}

// Validate for validating DecryptRequest struct
func (r *DecryptRequest) Validate() error {
	return validateStruct(r)
}

func (r *DecryptRequest) toDomain(sessionID string) (*workbench.AESDecryptRequest, error) {
	mode, err := cryptoalg.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}
	keyEncoding, err := codec.ParseEncoding(r.KeyEncoding)
	if err != nil {
		return nil, err
	}
	ciphertextEncoding, err := codec.ParseEncoding(r.CiphertextEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.AESDecryptRequest{
		SessionID:          sessionID,
		Ciphertext:         r.Ciphertext,
		KeySize:            cryptoalg.KeySize(r.KeySize),
		Mode:               mode,
		Key:                r.Key,
		IV:                 r.IV,
		KeyEncoding:        keyEncoding,
		CiphertextEncoding: ciphertextEncoding,
	}, nil
}

// DecryptResponse is returned by POST /aes/decrypt. PlaintextBase64 is set when the
// plaintext is not valid UTF-8.
type DecryptResponse struct {
	Plaintext       string `json:"plaintext"`
	PlaintextBase64 string `json:"plaintext_base64,omitempty"`
	ValidUTF8       bool   `json:"valid_utf8"`
	Warning         string `json:"warning,omitempty"`
}

// GenerateKeysRequest is the body of POST /rsa/keys
type GenerateKeysRequest struct {
	KeySize int `json:"key_size" validate:"required,oneof=1024 2048 3072 4096"`
}

// Validate for validating GenerateKeysRequest struct
func (r *GenerateKeysRequest) Validate() error {
	return validateStruct(r)
}

// KeyPairResponse is returned by POST /rsa/keys
type KeyPairResponse struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	KeySize    int    `json:"key_size"`
	Generator  string `json:"generator"`
}

// SignRequest is the body of POST /rsa/sign
type SignRequest struct {
	PrivateKey        string       `json:"private_key" validate:"required"`
	Content           ContentInput `json:"content"`
	Digest            string       `json:"digest" validate:"required"`
	SignatureEncoding string       `json:"signature_encoding" validate:"required"`
}

// Validate for validating SignRequest struct
func (r *SignRequest) Validate() error {
	return validateStruct(r)
}

func (r *SignRequest) toDomain(sessionID string) (*workbench.SignRequest, error) {
	content, err := r.Content.toDomain()
	if err != nil {
		return nil, err
	}
	digest, err := cryptoalg.ParseDigestAlgorithm(r.Digest)
	if err != nil {
		return nil, err
	}
	encoding, err := codec.ParseEncoding(r.SignatureEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.SignRequest{
		SessionID:      sessionID,
		PrivateKeyPEM:  r.PrivateKey,
		Content:        content,
		Digest:         digest,
		OutputEncoding: encoding,
	}, nil
}

// SignResponse is returned by POST /rsa/sign
type SignResponse struct {
	Signature string `json:"signature"`
	Digest    string `json:"digest"`
	Encoding  string `json:"encoding"`
}

// VerifyRequest is the body of POST /rsa/verify
type VerifyRequest struct {
	PublicKey         string       `json:"public_key" validate:"required"`
	Content           ContentInput `json:"content"`
	Digest            string       `json:"digest" validate:"required"`
	Signature         string       `json:"signature" validate:"required"`
	SignatureEncoding string       `json:"signature_encoding" validate:"required"`
}

// Validate for validating VerifyRequest struct
func (r *VerifyRequest) Validate() error {
	return validateStruct(r)
}

func (r *VerifyRequest) toDomain(sessionID string) (*workbench.VerifyRequest, error) {
	content, err := r.Content.toDomain()
	if err != nil {
		return nil, err
	}
	digest, err := cryptoalg.ParseDigestAlgorithm(r.Digest)
	if err != nil {
		return nil, err
	}
	encoding, err := codec.ParseEncoding(r.SignatureEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.VerifyRequest{
		SessionID:         sessionID,
		PublicKeyPEM:      r.PublicKey,
		Content:           content,
		Digest:            digest,
		Signature:         r.Signature,
		SignatureEncoding: encoding,
	}, nil
}

// VerifyResponse is returned by POST /rsa/verify
type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Digest string `json:"digest"`
}

// CapabilitiesResponse is returned by GET /capabilities
type CapabilitiesResponse struct {
	OK     bool                        `json:"ok"`
	Error  string                      `json:"error,omitempty"`
	Report *workbench.CapabilityReport `json:"report"`
}

// OperationResponse is one entry of the audit trail
type OperationResponse struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id,omitempty"`
	Operation       string    `json:"operation"`
	Algorithm       string    `json:"algorithm"`
	KeySize         uint32    `json:"key_size,omitempty"`
	Mode            string    `json:"mode,omitempty"`
	Encoding        string    `json:"encoding,omitempty"`
	Digest          string    `json:"digest,omitempty"`
	Outcome         string    `json:"outcome"`
	ErrorCategory   string    `json:"error_category,omitempty"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newOperationResponse(record *audit.OperationRecord) OperationResponse {
	return OperationResponse{
		ID:              record.ID,
		SessionID:       record.SessionID,
		Operation:       string(record.Operation),
		Algorithm:       record.Algorithm,
		KeySize:         record.KeySize,
		Mode:            record.Mode,
		Encoding:        record.Encoding,
		Digest:          record.Digest,
		Outcome:         string(record.Outcome),
		ErrorCategory:   record.ErrorCategory,
		DateTimeCreated: record.DateTimeCreated,
	}
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
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
