package app

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/tracing"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
)

// signatureService implements the workbench.SignatureService interface
type signatureService struct {
	processor    cryptoalg.RSAProcessor
	capabilities workbench.CapabilityService
	sessions     workbench.SessionStore
	recorder     audit.Recorder
	logger       logger.Logger
}

// NewSignatureService creates a new signatureService instance
func NewSignatureService(
	processor cryptoalg.RSAProcessor,
	capabilities workbench.CapabilityService,
	sessions workbench.SessionStore,
	recorder audit.Recorder,
	logger logger.Logger,
) (workbench.SignatureService, error) {
	if processor == nil {
		return nil, fmt.Errorf("RSA processor cannot be nil")
	}
	if recorder == nil {
		recorder = NewNoopRecorder()
	}
	return &signatureService{
		processor:    processor,
		capabilities: capabilities,
		sessions:     sessions,
		recorder:     recorder,
		logger:       logger,
	}, nil
}

// Sign hashes the content with the selected digest and signs it with the private key
func (s *signatureService) Sign(ctx context.Context, req *workbench.SignRequest) (result *workbench.SignResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "rsa.sign", attribute.String("digest", string(req.Digest)))
	record := &audit.OperationRecord{
		SessionID: sessionOrEmpty(req.SessionID),
		Operation: audit.OperationRSASign,
		Algorithm: "RSA",
		Digest:    string(req.Digest),
		Encoding:  string(req.OutputEncoding),
	}
	defer func() {
		s.recorder.Record(ctx, finishRecord(record, err))
		tracing.EndSpan(span, err)
	}()

	if err := s.requireSigning(); err != nil {
		return nil, err
	}
	if _, err := req.Digest.Hash(); err != nil {
		return nil, err
	}
	if !req.OutputEncoding.IsBinary() {
		return nil, fmt.Errorf("signature encoding %q: %w", req.OutputEncoding, codec.ErrUnsupportedEncoding)
	}

	privateKey, err := s.parsePrivateKey(req.PrivateKeyPEM)
	if err != nil {
		return nil, err
	}
	record.KeySize = uint32(privateKey.N.BitLen())

	content, err := contentBytes(req.Content)
	if err != nil {
		return nil, err
	}

	signature, err := s.processor.Sign(content, privateKey, req.Digest)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	formatted, err := codec.FormatLower(signature, req.OutputEncoding)
	if err != nil {
		return nil, err
	}
	result = &workbench.SignResult{
		Signature: formatted,
		Digest:    req.Digest,
		Encoding:  req.OutputEncoding,
	}

	if s.sessions != nil {
		s.sessions.Update(req.SessionID, func(rc *workbench.ResultContext) { rc.ApplySignature(result) })
	}

	s.logger.InfoContext(ctx, "RSA signature created", "digest", string(req.Digest), "bytes", len(content))
	return result, nil
}

// Verify checks the signature over the content. A mismatch is a result, not an error.
func (s *signatureService) Verify(ctx context.Context, req *workbench.VerifyRequest) (result *workbench.VerifyResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "rsa.verify", attribute.String("digest", string(req.Digest)))
	record := &audit.OperationRecord{
		SessionID: sessionOrEmpty(req.SessionID),
		Operation: audit.OperationRSAVerify,
		Algorithm: "RSA",
		Digest:    string(req.Digest),
		Encoding:  string(req.SignatureEncoding),
	}
	defer func() {
		s.recorder.Record(ctx, finishRecord(record, err))
		tracing.EndSpan(span, err)
	}()

	if err := s.requireSigning(); err != nil {
		return nil, err
	}
	if _, err := req.Digest.Hash(); err != nil {
		return nil, err
	}

	publicKey, err := s.parsePublicKey(req.PublicKeyPEM)
	if err != nil {
		return nil, err
	}
	record.KeySize = uint32(publicKey.N.BitLen())

	content, err := contentBytes(req.Content)
	if err != nil {
		return nil, err
	}

	signature, err := codec.DecodeSignature(req.Signature, req.SignatureEncoding)
	if err != nil {
		return nil, err
	}

	valid, err := s.processor.Verify(content, signature, publicKey, req.Digest)
	if err != nil {
		return nil, fmt.Errorf("failed to verify signature: %w", err)
	}
	if !valid {
		record.Outcome = audit.OutcomeInvalid
	}

	span.SetAttributes(attribute.Bool("valid", valid))
	s.logger.InfoContext(ctx, "RSA signature verification completed", "digest", string(req.Digest), "valid", valid)
	return &workbench.VerifyResult{Valid: valid, Digest: req.Digest}, nil
}

func (s *signatureService) requireSigning() error {
	if s.capabilities == nil {
		return nil
	}
	if !s.capabilities.Report().SigningAvailable() {
		return fmt.Errorf("%w: RSA signatures", workbench.ErrCapabilityUnavailable)
	}
	return nil
}

func (s *signatureService) parsePrivateKey(pemText string) (*rsa.PrivateKey, error) {
	if strings.TrimSpace(pemText) == "" {
		return nil, &codec.ValidationError{Field: "private key", Reason: codec.ErrEmptyInput, Detail: "private key cannot be empty."}
	}
	privateKey, err := s.processor.ParsePrivateKey(pemText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", workbench.ErrInvalidKeyMaterial, err)
	}
	return privateKey, nil
}

func (s *signatureService) parsePublicKey(pemText string) (*rsa.PublicKey, error) {
	if strings.TrimSpace(pemText) == "" {
		return nil, &codec.ValidationError{Field: "public key", Reason: codec.ErrEmptyInput, Detail: "public key cannot be empty."}
	}
	publicKey, err := s.processor.ParsePublicKey(pemText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", workbench.ErrInvalidKeyMaterial, err)
	}
	return publicKey, nil
}

func contentBytes(content workbench.Content) ([]byte, error) {
	data := content.SigningBytes()
	if len(data) == 0 {
		return nil, &codec.ValidationError{Field: "content", Reason: codec.ErrEmptyInput, Detail: "content cannot be empty."}
	}
	return data, nil
}
