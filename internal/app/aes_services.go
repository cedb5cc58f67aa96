package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/tracing"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
)

// aesService implements the workbench.AESService interface
type aesService struct {
	processor    cryptoalg.AESProcessor
	capabilities workbench.CapabilityService
	sessions     workbench.SessionStore
	recorder     audit.Recorder
	logger       logger.Logger
}

// NewAESService creates a new aesService instance
func NewAESService(
	processor cryptoalg.AESProcessor,
	capabilities workbench.CapabilityService,
	sessions workbench.SessionStore,
	recorder audit.Recorder,
	logger logger.Logger,
) (workbench.AESService, error) {
	if processor == nil {
		return nil, fmt.Errorf("AES processor cannot be nil")
	}
	if recorder == nil {
		recorder = NewNoopRecorder()
	}
	return &aesService{
		processor:    processor,
		capabilities: capabilities,
		sessions:     sessions,
		recorder:     recorder,
		logger:       logger,
	}, nil
}

// Encrypt pads and encrypts the plaintext, generating the key and IV when they are not supplied
func (s *aesService) Encrypt(ctx context.Context, req *workbench.AESEncryptRequest) (result *workbench.AESEncryptResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "aes.encrypt",
		attribute.Int("key_size", int(req.KeySize)),
		attribute.String("mode", string(req.Mode)),
	)
	record := &audit.OperationRecord{
		SessionID: sessionOrEmpty(req.SessionID),
		Operation: audit.OperationAESEncrypt,
		Algorithm: "AES",
		KeySize:   uint32(req.KeySize),
		Mode:      string(req.Mode),
		Encoding:  string(req.OutputEncoding),
	}
	defer func() {
		s.recorder.Record(ctx, finishRecord(record, err))
		tracing.EndSpan(span, err)
	}()

	if err := s.requireAES(); err != nil {
		return nil, err
	}
	if err := validateAESParameters(req.KeySize, req.Mode, req.KeyEncoding, req.OutputEncoding, "output"); err != nil {
		return nil, err
	}

	key, keyGenerated, err := s.resolveKey(req.Key, req.KeyEncoding, req.KeySize.Bytes())
	if err != nil {
		return nil, err
	}

	var iv []byte
	ivGenerated := false
	if req.Mode.RequiresIV() {
		iv, ivGenerated, err = s.resolveIV(req.IV, req.KeyEncoding)
		if err != nil {
			return nil, err
		}
	}

	ciphertext, err := s.processor.Encrypt(req.Plaintext.Data, key, iv, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	result = &workbench.AESEncryptResult{
		KeyGenerated:   keyGenerated,
		IVGenerated:    ivGenerated,
		KeySize:        req.KeySize,
		Mode:           req.Mode,
		OutputEncoding: req.OutputEncoding,
	}
	if result.Key, err = codec.Format(key, req.OutputEncoding); err != nil {
		return nil, err
	}
	if result.Ciphertext, err = codec.Format(ciphertext, req.OutputEncoding); err != nil {
		return nil, err
	}
	if iv != nil {
		if result.IV, err = codec.Format(iv, req.OutputEncoding); err != nil {
			return nil, err
		}
	}

	if s.sessions != nil {
		s.sessions.Update(req.SessionID, func(rc *workbench.ResultContext) { rc.ApplyEncrypt(result) })
	}

	s.logger.InfoContext(ctx, "AES encryption completed", "key_generated", keyGenerated, "iv_generated", ivGenerated)
	return result, nil
}

// Decrypt decodes the ciphertext, decrypts it and strips the padding
func (s *aesService) Decrypt(ctx context.Context, req *workbench.AESDecryptRequest) (result *workbench.AESDecryptResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "aes.decrypt",
		attribute.Int("key_size", int(req.KeySize)),
		attribute.String("mode", string(req.Mode)),
	)
	record := &audit.OperationRecord{
		SessionID: sessionOrEmpty(req.SessionID),
		Operation: audit.OperationAESDecrypt,
		Algorithm: "AES",
		KeySize:   uint32(req.KeySize),
		Mode:      string(req.Mode),
		Encoding:  string(req.CiphertextEncoding),
	}
	defer func() {
		s.recorder.Record(ctx, finishRecord(record, err))
		tracing.EndSpan(span, err)
	}()

	if err := s.requireAES(); err != nil {
		return nil, err
	}
	if err := validateAESParameters(req.KeySize, req.Mode, req.KeyEncoding, req.CiphertextEncoding, "ciphertext"); err != nil {
		return nil, err
	}

	ciphertext, err := codec.DecodeCiphertext(req.Ciphertext, req.CiphertextEncoding)
	if err != nil {
		return nil, err
	}

	key, err := codec.ParseKeyOrIV(req.Key, req.KeyEncoding, req.KeySize.Bytes(), "key")
	if err != nil {
		return nil, err
	}

	var iv []byte
	if req.Mode.RequiresIV() {
		if strings.TrimSpace(req.IV) == "" {
			return nil, &codec.ValidationError{
				Field:  "IV",
				Reason: codec.ErrEmptyInput,
				Detail: "IV is required for CBC mode.",
			}
		}
		iv, err = codec.ParseKeyOrIV(req.IV, req.KeyEncoding, codec.IVSize, "IV")
		if err != nil {
			return nil, err
		}
	}

	plaintext, err := s.processor.Decrypt(ciphertext, key, iv, req.Mode)
	if err != nil {
		if errors.Is(err, cryptoalg.ErrInvalidPadding) {
			return nil, workbench.ErrDecryptionFailed
		}
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}

	result = &workbench.AESDecryptResult{
		Raw:       plaintext,
		ValidUTF8: utf8.Valid(plaintext),
	}
	if result.ValidUTF8 {
		result.Plaintext = string(plaintext)
	} else {
		result.Plaintext = strings.ToValidUTF8(string(plaintext), "�")
	}
	if len(plaintext) == 0 {
		result.EmptyWarning = true
		result.Warning = workbench.EmptyDecryptWarning
	}
	if result.EmptyWarning || !result.ValidUTF8 {
		record.Outcome = audit.OutcomeWarning
	}

	if s.sessions != nil {
		s.sessions.Update(req.SessionID, func(rc *workbench.ResultContext) { rc.ApplyDecrypt(result) })
	}

	s.logger.InfoContext(ctx, "AES decryption completed", "bytes", len(plaintext), "valid_utf8", result.ValidUTF8)
	return result, nil
}

func (s *aesService) requireAES() error {
	if s.capabilities == nil {
		return nil
	}
	report := s.capabilities.Report()
	if !report.AESAvailable() {
		return fmt.Errorf("%w: AES", workbench.ErrCapabilityUnavailable)
	}
	return nil
}

// resolveKey parses the supplied key or generates one when the input is blank
func (s *aesService) resolveKey(input string, enc codec.Encoding, byteLength int) ([]byte, bool, error) {
	if strings.TrimSpace(input) != "" {
		key, err := codec.ParseKeyOrIV(input, enc, byteLength, "key")
		return key, false, err
	}

	key, err := s.processor.GenerateKey(byteLength)
	if err != nil {
		return nil, false, err
	}
	if len(key) != byteLength {
		return nil, false, fmt.Errorf("%w: generated %d of %d key bytes", cryptoalg.ErrRandomSourceShortRead, len(key), byteLength)
	}
	return key, true, nil
}

// resolveIV parses the supplied IV or generates one when the input is blank
func (s *aesService) resolveIV(input string, enc codec.Encoding) ([]byte, bool, error) {
	if strings.TrimSpace(input) != "" {
		iv, err := codec.ParseKeyOrIV(input, enc, codec.IVSize, "IV")
		return iv, false, err
	}

	iv, err := s.processor.GenerateIV()
	if err != nil {
		return nil, false, err
	}
	if len(iv) != codec.IVSize {
		return nil, false, fmt.Errorf("%w: generated %d of %d IV bytes", cryptoalg.ErrRandomSourceShortRead, len(iv), codec.IVSize)
	}
	return iv, true, nil
}

func validateAESParameters(keySize cryptoalg.KeySize, mode cryptoalg.Mode, keyEncoding, dataEncoding codec.Encoding, dataLabel string) error {
	if !keySize.Valid() {
		return fmt.Errorf("%d bits: %w", int(keySize), cryptoalg.ErrInvalidKeySize)
	}
	if mode != cryptoalg.ModeCBC && mode != cryptoalg.ModeECB {
		return fmt.Errorf("%q: %w", mode, cryptoalg.ErrUnsupportedMode)
	}
	switch keyEncoding {
	case codec.EncodingUTF8, codec.EncodingHex, codec.EncodingBase64:
	default:
		return fmt.Errorf("key encoding %q: %w", keyEncoding, codec.ErrUnsupportedEncoding)
	}
	if !dataEncoding.IsBinary() {
		return fmt.Errorf("%s encoding %q: %w", dataLabel, dataEncoding, codec.ErrUnsupportedEncoding)
	}
	return nil
}
