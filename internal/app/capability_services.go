package app

import (
	"bytes"
	"context"
	"crypto"
	"crypto/sha256"
	_ "crypto/sha512" // registers SHA-384 and SHA-512
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"
)

// probeRSAKeySize keeps the startup key generation short
const probeRSAKeySize = 1024

// FIPS-197 appendix C.1 known answer
var (
	probeAESKey, _        = hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	probeAESPlaintext, _  = hex.DecodeString("00112233445566778899aabbccddeeff")
	probeAESCiphertext, _ = hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")
	probeSHA256ABC, _     = hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
)

var probeSignMessage = []byte("capability self-test")

// availabilityChecker is implemented by key generators that depend on an external binary
type availabilityChecker interface {
	Available() bool
}

// capabilityService implements workbench.CapabilityService
type capabilityService struct {
	random   io.Reader
	aes      cryptoalg.AESProcessor
	rsa      cryptoalg.RSAKeyGenerator
	fallback cryptoalg.RSAKeyGenerator
	logger   logger.Logger
	mu       sync.RWMutex
	report   *workbench.CapabilityReport
}

// NewCapabilityService creates a capability service. fallback may be nil when the native fallback is disabled.
func NewCapabilityService(
	random io.Reader,
	aesProcessor cryptoalg.AESProcessor,
	rsaGenerator cryptoalg.RSAKeyGenerator,
	fallback cryptoalg.RSAKeyGenerator,
	logger logger.Logger,
) (workbench.CapabilityService, error) {
	if random == nil || aesProcessor == nil || rsaGenerator == nil {
		return nil, fmt.Errorf("random source, AES processor and RSA generator are required")
	}
	return &capabilityService{
		random:   random,
		aes:      aesProcessor,
		rsa:      rsaGenerator,
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Probe runs every self-test and caches the report
func (s *capabilityService) Probe(ctx context.Context) *workbench.CapabilityReport {
	report := &workbench.CapabilityReport{
		RandomSource: s.probeRandom(),
		AES:          s.probeAES(),
		RSAPrimary:   s.probeRSAPrimary(),
		RSAFallback:  s.probeRSAFallback(),
		SHA2:         probeSHA2(),
		CheckedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.report = report
	s.mu.Unlock()

	if err := report.Err(); err != nil {
		s.logger.ErrorContext(ctx, "capability check failed", "error", err.Error())
	} else {
		s.logger.InfoContext(ctx, "capability check passed", "rsa_fallback", report.RSAFallback.Available)
	}
	return report
}

// Report returns the cached report, probing first if Probe was never called
func (s *capabilityService) Report() *workbench.CapabilityReport {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		return s.Probe(context.Background())
	}
	return report
}

func (s *capabilityService) probeRandom() workbench.Capability {
	capability := workbench.Capability{Name: workbench.CapabilityRandomSource}
	buf := make([]byte, 32)
	if n, err := io.ReadFull(s.random, buf); err != nil {
		capability.Detail = fmt.Sprintf("read %d of %d bytes: %v", n, len(buf), err)
		return capability
	}
	if bytes.Equal(buf, make([]byte, len(buf))) {
		capability.Detail = "random source returned only zero bytes"
		return capability
	}
	capability.Available = true
	return capability
}

func (s *capabilityService) probeAES() workbench.Capability {
	capability := workbench.Capability{Name: workbench.CapabilityAES}

	ciphertext, err := s.aes.Encrypt(probeAESPlaintext, probeAESKey, nil, cryptoalg.ModeECB)
	if err != nil {
		capability.Detail = err.Error()
		return capability
	}
	if len(ciphertext) < 16 || !bytes.Equal(ciphertext[:16], probeAESCiphertext) {
		capability.Detail = "known-answer test mismatch"
		return capability
	}

	plaintext, err := s.aes.Decrypt(ciphertext, probeAESKey, nil, cryptoalg.ModeECB)
	if err != nil || !bytes.Equal(plaintext, probeAESPlaintext) {
		capability.Detail = "round trip failed"
		return capability
	}

	capability.Available = true
	return capability
}

func (s *capabilityService) probeRSAPrimary() workbench.Capability {
	capability := workbench.Capability{Name: workbench.CapabilityRSAPrimary}
	pair, err := s.rsa.GenerateKeyPair(probeRSAKeySize)
	if err != nil {
		capability.Detail = err.Error()
		return capability
	}

	// Generators that also sign get a sign/verify round trip with the fresh pair
	if processor, ok := s.rsa.(cryptoalg.RSAProcessor); ok {
		if err := probeSignVerify(processor, pair); err != nil {
			capability.Detail = err.Error()
			return capability
		}
	}

	capability.Available = true
	return capability
}

func probeSignVerify(processor cryptoalg.RSAProcessor, pair *cryptoalg.RSAKeyPair) error {
	privateKey, err := processor.ParsePrivateKey(pair.PrivateKeyPEM)
	if err != nil {
		return fmt.Errorf("parse generated private key: %w", err)
	}
	publicKey, err := processor.ParsePublicKey(pair.PublicKeyPEM)
	if err != nil {
		return fmt.Errorf("parse generated public key: %w", err)
	}

	signature, err := processor.Sign(probeSignMessage, privateKey, cryptoalg.DigestSHA256)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	valid, err := processor.Verify(probeSignMessage, signature, publicKey, cryptoalg.DigestSHA256)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !valid {
		return fmt.Errorf("sign/verify round trip failed")
	}

	tampered := append(append([]byte(nil), probeSignMessage...), '!')
	if valid, _ := processor.Verify(tampered, signature, publicKey, cryptoalg.DigestSHA256); valid {
		return fmt.Errorf("signature verified over altered message")
	}
	return nil
}

func (s *capabilityService) probeRSAFallback() workbench.Capability {
	capability := workbench.Capability{Name: workbench.CapabilityRSAFallback}
	if s.fallback == nil {
		capability.Detail = "disabled"
		return capability
	}
	if checker, ok := s.fallback.(availabilityChecker); ok && !checker.Available() {
		capability.Detail = "openssl binary not found"
		return capability
	}
	capability.Available = true
	return capability
}

func probeSHA2() workbench.Capability {
	capability := workbench.Capability{Name: workbench.CapabilitySHA2}
	for _, hash := range []crypto.Hash{crypto.SHA256, crypto.SHA384, crypto.SHA512} {
		if !hash.Available() {
			capability.Detail = hash.String() + " not linked"
			return capability
		}
	}
	digest := sha256.Sum256([]byte("abc"))
	if !bytes.Equal(digest[:], probeSHA256ABC) {
		capability.Detail = "SHA-256 known-answer test mismatch"
		return capability
	}
	capability.Available = true
	return capability
}
