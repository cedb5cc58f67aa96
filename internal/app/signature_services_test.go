//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signatureFixture struct {
	service  workbench.SignatureService
	pair     *cryptoalg.RSAKeyPair
	recorder *capturingRecorder
	report   *workbench.CapabilityReport
}

func setupSignatureService(t *testing.T) *signatureFixture {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)

	pair, err := processor.GenerateKeyPair(2048)
	require.NoError(t, err)

	f := &signatureFixture{
		pair:     pair,
		recorder: &capturingRecorder{},
		report:   availableReport(),
	}
	f.service, err = NewSignatureService(processor, &staticCapabilities{report: f.report}, nil, f.recorder, logger)
	require.NoError(t, err)
	return f
}

func TestSignatureService_SignAndVerify(t *testing.T) {
	f := setupSignatureService(t)
	ctx := context.Background()

	signed, err := f.service.Sign(ctx, &workbench.SignRequest{
		PrivateKeyPEM:  f.pair.PrivateKeyPEM,
		Content:        workbench.TextContent("test message"),
		Digest:         cryptoalg.DigestSHA256,
		OutputEncoding: codec.EncodingHex,
	})
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(signed.Signature), signed.Signature)

	raw, err := hex.DecodeString(signed.Signature)
	require.NoError(t, err)
	assert.Len(t, raw, 256)

	verify := func(content workbench.Content) *workbench.VerifyResult {
		t.Helper()
		result, err := f.service.Verify(ctx, &workbench.VerifyRequest{
			PublicKeyPEM:      f.pair.PublicKeyPEM,
			Content:           content,
			Digest:            cryptoalg.DigestSHA256,
			Signature:         signed.Signature,
			SignatureEncoding: codec.EncodingHex,
		})
		require.NoError(t, err)
		return result
	}

	assert.True(t, verify(workbench.TextContent("test message")).Valid)
	assert.True(t, verify(workbench.TextContent("  test message\n")).Valid)
	assert.Equal(t, audit.OutcomeSuccess, f.recorder.last().Outcome)

	assert.False(t, verify(workbench.TextContent("another message")).Valid)
	assert.Equal(t, audit.OutcomeInvalid, f.recorder.last().Outcome)
	assert.Equal(t, uint32(2048), f.recorder.last().KeySize)
}

func TestSignatureService_DigestMismatchIsInvalid(t *testing.T) {
	f := setupSignatureService(t)
	ctx := context.Background()
	content := workbench.FileContent([]byte("binary\x00payload"))

	signed, err := f.service.Sign(ctx, &workbench.SignRequest{
		PrivateKeyPEM:  f.pair.PrivateKeyPEM,
		Content:        content,
		Digest:         cryptoalg.DigestSHA512,
		OutputEncoding: codec.EncodingBase64,
	})
	require.NoError(t, err)

	result, err := f.service.Verify(ctx, &workbench.VerifyRequest{
		PublicKeyPEM:      f.pair.PublicKeyPEM,
		Content:           content,
		Digest:            cryptoalg.DigestSHA384,
		Signature:         signed.Signature,
		SignatureEncoding: codec.EncodingBase64,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestSignatureService_Rejections(t *testing.T) {
	f := setupSignatureService(t)
	ctx := context.Background()

	t.Run("EmptyPrivateKey", func(t *testing.T) {
		_, err := f.service.Sign(ctx, &workbench.SignRequest{
			PrivateKeyPEM:  "   ",
			Content:        workbench.TextContent("data"),
			Digest:         cryptoalg.DigestSHA256,
			OutputEncoding: codec.EncodingHex,
		})
		require.Error(t, err)
		assert.Equal(t, "private key cannot be empty.", err.Error())
	})

	t.Run("GarbagePrivateKey", func(t *testing.T) {
		_, err := f.service.Sign(ctx, &workbench.SignRequest{
			PrivateKeyPEM:  "not a pem block",
			Content:        workbench.TextContent("data"),
			Digest:         cryptoalg.DigestSHA256,
			OutputEncoding: codec.EncodingHex,
		})
		assert.ErrorIs(t, err, workbench.ErrInvalidKeyMaterial)
	})

	t.Run("EmptyContent", func(t *testing.T) {
		_, err := f.service.Sign(ctx, &workbench.SignRequest{
			PrivateKeyPEM:  f.pair.PrivateKeyPEM,
			Content:        workbench.TextContent(" \n"),
			Digest:         cryptoalg.DigestSHA256,
			OutputEncoding: codec.EncodingHex,
		})
		assert.ErrorIs(t, err, codec.ErrEmptyInput)
	})

	t.Run("UTF8SignatureEncoding", func(t *testing.T) {
		_, err := f.service.Sign(ctx, &workbench.SignRequest{
			PrivateKeyPEM:  f.pair.PrivateKeyPEM,
			Content:        workbench.TextContent("data"),
			Digest:         cryptoalg.DigestSHA256,
			OutputEncoding: codec.EncodingUTF8,
		})
		assert.ErrorIs(t, err, codec.ErrUnsupportedEncoding)
	})

	t.Run("UnknownDigest", func(t *testing.T) {
		_, err := f.service.Verify(ctx, &workbench.VerifyRequest{
			PublicKeyPEM:      f.pair.PublicKeyPEM,
			Content:           workbench.TextContent("data"),
			Digest:            cryptoalg.DigestAlgorithm("MD5"),
			Signature:         "00",
			SignatureEncoding: codec.EncodingHex,
		})
		assert.ErrorIs(t, err, cryptoalg.ErrUnsupportedDigest)
		assert.Empty(t, f.recorder.last().Digest)
	})

	t.Run("MalformedSignature", func(t *testing.T) {
		_, err := f.service.Verify(ctx, &workbench.VerifyRequest{
			PublicKeyPEM:      f.pair.PublicKeyPEM,
			Content:           workbench.TextContent("data"),
			Digest:            cryptoalg.DigestSHA256,
			Signature:         "zz",
			SignatureEncoding: codec.EncodingHex,
		})
		assert.ErrorIs(t, err, codec.ErrMalformedHex)
	})

	t.Run("SigningUnavailable", func(t *testing.T) {
		f.report.SHA2.Available = false
		defer func() { f.report.SHA2.Available = true }()

		_, err := f.service.Sign(ctx, &workbench.SignRequest{
			PrivateKeyPEM:  f.pair.PrivateKeyPEM,
			Content:        workbench.TextContent("data"),
			Digest:         cryptoalg.DigestSHA256,
			OutputEncoding: codec.EncodingHex,
		})
		assert.ErrorIs(t, err, workbench.ErrCapabilityUnavailable)
	})
}
