package app

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/tracing"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
)

// rsaKeyService implements the workbench.RSAKeyService interface
type rsaKeyService struct {
	primary      cryptoalg.RSAKeyGenerator
	fallback     cryptoalg.RSAKeyGenerator
	capabilities workbench.CapabilityService
	sessions     workbench.SessionStore
	recorder     audit.Recorder
	settings     config.CryptoSettings
	logger       logger.Logger
}

// NewRSAKeyService creates a new rsaKeyService instance. fallback may be nil.
func NewRSAKeyService(
	primary cryptoalg.RSAKeyGenerator,
	fallback cryptoalg.RSAKeyGenerator,
	capabilities workbench.CapabilityService,
	sessions workbench.SessionStore,
	recorder audit.Recorder,
	settings config.CryptoSettings,
	logger logger.Logger,
) (workbench.RSAKeyService, error) {
	if primary == nil {
		return nil, fmt.Errorf("RSA key generator cannot be nil")
	}
	if recorder == nil {
		recorder = NewNoopRecorder()
	}
	return &rsaKeyService{
		primary:      primary,
		fallback:     fallback,
		capabilities: capabilities,
		sessions:     sessions,
		recorder:     recorder,
		settings:     settings,
		logger:       logger,
	}, nil
}

// Generate creates a key pair with the in-process generator, or with the fallback
// when the startup probe found the in-process generator unusable
func (s *rsaKeyService) Generate(ctx context.Context, req *workbench.RSAKeyRequest) (result *workbench.RSAKeyResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "rsa.generate", attribute.Int("key_size", req.KeySize))
	record := &audit.OperationRecord{
		SessionID: sessionOrEmpty(req.SessionID),
		Operation: audit.OperationRSAGenerate,
		Algorithm: "RSA",
		KeySize:   uint32(max(req.KeySize, 0)),
	}
	defer func() {
		s.recorder.Record(ctx, finishRecord(record, err))
		tracing.EndSpan(span, err)
	}()

	if !s.settings.AllowsRSAKeySize(req.KeySize) {
		return nil, fmt.Errorf("%d bits: %w", req.KeySize, cryptoalg.ErrUnsupportedRSAKeySize)
	}

	generator, name, err := s.selectGenerator()
	if err != nil {
		return nil, err
	}

	pair, err := generator.GenerateKeyPair(req.KeySize)
	if err != nil {
		s.logger.ErrorContext(ctx, "RSA key generation failed", "generator", name, "error", err.Error())
		return nil, fmt.Errorf("%w: %w", workbench.ErrKeyGenerationFailed, err)
	}

	result = &workbench.RSAKeyResult{
		PublicKeyPEM:  pair.PublicKeyPEM,
		PrivateKeyPEM: pair.PrivateKeyPEM,
		KeySize:       req.KeySize,
		Generator:     name,
	}

	if s.sessions != nil {
		s.sessions.Update(req.SessionID, func(rc *workbench.ResultContext) { rc.ApplyKeyPair(result) })
	}

	s.logger.InfoContext(ctx, "RSA key pair generated", "key_size", req.KeySize, "generator", name)
	return result, nil
}

func (s *rsaKeyService) selectGenerator() (cryptoalg.RSAKeyGenerator, string, error) {
	if s.capabilities == nil {
		return s.primary, workbench.GeneratorNative, nil
	}

	report := s.capabilities.Report()
	switch {
	case !report.RSAKeyGenerationAvailable():
		return nil, "", fmt.Errorf("%w: RSA key generation", workbench.ErrCapabilityUnavailable)
	case report.RSAPrimary.Available:
		return s.primary, workbench.GeneratorNative, nil
	case s.fallback != nil && s.settings.NativeFallback:
		return s.fallback, workbench.GeneratorOpenSSL, nil
	default:
		return nil, "", fmt.Errorf("%w: RSA key generation", workbench.ErrCapabilityUnavailable)
	}
}
