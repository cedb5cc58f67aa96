//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type unavailableGenerator struct {
	MockRSAKeyGenerator
}

func (g *unavailableGenerator) Available() bool { return false }

// rejectingProcessor signs normally but never accepts a signature
type rejectingProcessor struct {
	cryptoalg.RSAProcessor
}

func (p *rejectingProcessor) Verify(_, _ []byte, _ *rsa.PublicKey, _ cryptoalg.DigestAlgorithm) (bool, error) {
	return false, nil
}

func TestCapabilityService(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	aesProcessor, err := cryptography.NewAESProcessor(logger)
	require.NoError(t, err)
	rsaProcessor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)

	t.Run("AllAvailable", func(t *testing.T) {
		service, err := NewCapabilityService(rand.Reader, aesProcessor, rsaProcessor, nil, logger)
		require.NoError(t, err)

		report := service.Probe(context.Background())
		assert.True(t, report.OK())
		assert.NoError(t, report.Err())
		assert.False(t, report.RSAFallback.Available)
		assert.Equal(t, "disabled", report.RSAFallback.Detail)
		assert.Same(t, report, service.Report())
	})

	t.Run("ZeroRandomSource", func(t *testing.T) {
		service, err := NewCapabilityService(bytes.NewReader(make([]byte, 64)), aesProcessor, rsaProcessor, nil, logger)
		require.NoError(t, err)

		report := service.Report()
		assert.False(t, report.RandomSource.Available)
		assert.False(t, report.AESAvailable())
		assert.ErrorIs(t, report.Err(), workbench.ErrCapabilityUnavailable)
	})

	t.Run("PrimaryFailsFallbackMissing", func(t *testing.T) {
		primary := new(MockRSAKeyGenerator)
		primary.On("GenerateKeyPair", mock.Anything).Return(nil, errors.New("no entropy"))
		fallback := new(unavailableGenerator)

		service, err := NewCapabilityService(rand.Reader, aesProcessor, primary, fallback, logger)
		require.NoError(t, err)

		report := service.Probe(context.Background())
		assert.False(t, report.RSAPrimary.Available)
		assert.Equal(t, "no entropy", report.RSAPrimary.Detail)
		assert.False(t, report.RSAFallback.Available)
		assert.False(t, report.RSAKeyGenerationAvailable())
		assert.True(t, report.AESAvailable())
		assert.True(t, report.SigningAvailable())
		assert.Contains(t, report.Err().Error(), "openssl binary not found")
	})

	t.Run("PrimaryFailsFallbackPresent", func(t *testing.T) {
		primary := new(MockRSAKeyGenerator)
		primary.On("GenerateKeyPair", mock.Anything).Return(nil, errors.New("broken"))
		fallback := new(MockRSAKeyGenerator)

		service, err := NewCapabilityService(rand.Reader, aesProcessor, primary, fallback, logger)
		require.NoError(t, err)

		report := service.Probe(context.Background())
		assert.True(t, report.RSAKeyGenerationAvailable())
		assert.True(t, report.OK())
	})

	t.Run("PrimarySignVerifyRoundTripFails", func(t *testing.T) {
		service, err := NewCapabilityService(rand.Reader, aesProcessor, &rejectingProcessor{rsaProcessor}, nil, logger)
		require.NoError(t, err)

		report := service.Probe(context.Background())
		assert.False(t, report.RSAPrimary.Available)
		assert.Equal(t, "sign/verify round trip failed", report.RSAPrimary.Detail)
		assert.False(t, report.RSAKeyGenerationAvailable())
	})

	t.Run("RequiredDependencies", func(t *testing.T) {
		var generator cryptoalg.RSAKeyGenerator
		_, err := NewCapabilityService(rand.Reader, aesProcessor, generator, nil, logger)
		assert.Error(t, err)
	})
}
