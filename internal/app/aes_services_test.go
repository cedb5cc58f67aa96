//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/base64"
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

type aesFixture struct {
	service  workbench.AESService
	sessions *memorySessionStore
	recorder *capturingRecorder
	report   *workbench.CapabilityReport
}

func setupAESService(t *testing.T) *aesFixture {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewAESProcessor(logger)
	require.NoError(t, err)

	fixture := &aesFixture{
		sessions: newMemorySessionStore(workbenchIdle, nowUTC, logger),
		recorder: &capturingRecorder{},
		report:   availableReport(),
	}
	fixture.service, err = NewAESService(processor, &staticCapabilities{report: fixture.report}, fixture.sessions, fixture.recorder, logger)
	require.NoError(t, err)
	return fixture
}

func TestAESService_RandomKeyAndIVRoundTrip(t *testing.T) {
	f := setupAESService(t)
	ctx := context.Background()
	sessionID := f.sessions.NewSession()

	encrypted, err := f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		SessionID:      sessionID,
		Plaintext:      workbench.TextContent("hello world"),
		KeySize:        cryptoalg.KeySize128,
		Mode:           cryptoalg.ModeCBC,
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingHex,
	})
	require.NoError(t, err)
	assert.True(t, encrypted.KeyGenerated)
	assert.True(t, encrypted.IVGenerated)

	iv, err := hex.DecodeString(encrypted.IV)
	require.NoError(t, err)
	assert.Len(t, iv, 16)

	ciphertext, err := hex.DecodeString(encrypted.Ciphertext)
	require.NoError(t, err)
	assert.Zero(t, len(ciphertext)%16)
	assert.Equal(t, strings.ToUpper(encrypted.Ciphertext), encrypted.Ciphertext)

	decrypted, err := f.service.Decrypt(ctx, &workbench.AESDecryptRequest{
		SessionID:          sessionID,
		Ciphertext:         encrypted.Ciphertext,
		KeySize:            cryptoalg.KeySize128,
		Mode:               cryptoalg.ModeCBC,
		Key:                encrypted.Key,
		IV:                 encrypted.IV,
		KeyEncoding:        codec.EncodingHex,
		CiphertextEncoding: codec.EncodingHex,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", decrypted.Plaintext)
	assert.True(t, decrypted.ValidUTF8)
	assert.False(t, decrypted.EmptyWarning)

	snapshot, ok := f.sessions.Snapshot(sessionID)
	require.True(t, ok)
	assert.Equal(t, encrypted.Key, snapshot.AESKey)
	assert.Equal(t, encrypted.IV, snapshot.AESIV)
	assert.Equal(t, encrypted.Ciphertext, snapshot.AESCiphertext)
	assert.Equal(t, "hello world", snapshot.AESDecrypted)

	require.Len(t, f.recorder.records, 2)
	assert.Equal(t, audit.OperationAESEncrypt, f.recorder.records[0].Operation)
	assert.Equal(t, audit.OutcomeSuccess, f.recorder.records[0].Outcome)
	assert.Equal(t, uint32(128), f.recorder.records[0].KeySize)
	assert.Equal(t, sessionID, f.recorder.records[1].SessionID)
}

func TestAESService_EmptyPlaintextECB(t *testing.T) {
	f := setupAESService(t)
	ctx := context.Background()
	key := strings.Repeat("0F", 32)

	encrypted, err := f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.TextContent(""),
		KeySize:        cryptoalg.KeySize256,
		Mode:           cryptoalg.ModeECB,
		Key:            key,
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingHex,
	})
	require.NoError(t, err)
	assert.False(t, encrypted.KeyGenerated)
	assert.Empty(t, encrypted.IV)
	assert.Len(t, encrypted.Ciphertext, 32)

	decrypted, err := f.service.Decrypt(ctx, &workbench.AESDecryptRequest{
		Ciphertext:         encrypted.Ciphertext,
		KeySize:            cryptoalg.KeySize256,
		Mode:               cryptoalg.ModeECB,
		Key:                key,
		KeyEncoding:        codec.EncodingHex,
		CiphertextEncoding: codec.EncodingHex,
	})
	require.NoError(t, err)
	assert.Empty(t, decrypted.Plaintext)
	assert.True(t, decrypted.EmptyWarning)
	assert.Equal(t, workbench.EmptyDecryptWarning, decrypted.Warning)
	assert.Equal(t, audit.OutcomeWarning, f.recorder.last().Outcome)
}

func TestAESService_MalformedBase64Ciphertext(t *testing.T) {
	f := setupAESService(t)

	_, err := f.service.Decrypt(context.Background(), &workbench.AESDecryptRequest{
		Ciphertext:         "AAAA$AAAAAAAAAAAAAAAAAAA",
		KeySize:            cryptoalg.KeySize128,
		Mode:               cryptoalg.ModeECB,
		Key:                "0123456789abcdef",
		KeyEncoding:        codec.EncodingUTF8,
		CiphertextEncoding: codec.EncodingBase64,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedBase64)
	assert.Contains(t, err.Error(), "base64")
	assert.Equal(t, workbench.CategoryValidation, workbench.Classify(err))

	record := f.recorder.last()
	require.NotNil(t, record)
	assert.Equal(t, audit.OutcomeFailure, record.Outcome)
	assert.Equal(t, string(workbench.CategoryValidation), record.ErrorCategory)
}

func TestAESService_DecryptFailures(t *testing.T) {
	f := setupAESService(t)
	ctx := context.Background()
	key := "0123456789abcdef"

	encrypted, err := f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.TextContent("payload"),
		KeySize:        cryptoalg.KeySize128,
		Mode:           cryptoalg.ModeCBC,
		Key:            key,
		KeyEncoding:    codec.EncodingUTF8,
		OutputEncoding: codec.EncodingBase64,
	})
	require.NoError(t, err)
	assert.True(t, encrypted.IVGenerated)
	_, err = base64.StdEncoding.DecodeString(encrypted.Ciphertext)
	require.NoError(t, err)

	base := workbench.AESDecryptRequest{
		Ciphertext:         encrypted.Ciphertext,
		KeySize:            cryptoalg.KeySize128,
		Mode:               cryptoalg.ModeCBC,
		Key:                key,
		KeyEncoding:        codec.EncodingUTF8,
		CiphertextEncoding: codec.EncodingBase64,
	}

	t.Run("MissingIV", func(t *testing.T) {
		req := base
		_, err := f.service.Decrypt(ctx, &req)
		require.Error(t, err)
		assert.Equal(t, "IV is required for CBC mode.", err.Error())
	})

	t.Run("WrongKeyLength", func(t *testing.T) {
		req := base
		req.KeyEncoding = codec.EncodingHex
		req.Key = "0011"
		req.IV = strings.Repeat("00", 16)
		req.Ciphertext = hex.EncodeToString(make([]byte, 16))
		req.CiphertextEncoding = codec.EncodingHex
		_, err := f.service.Decrypt(ctx, &req)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrInvalidLength)
		assert.Contains(t, err.Error(), "16 bytes (128 bits), but has 2 bytes (16 bits)")
		assert.Equal(t, workbench.CategoryValidation, workbench.Classify(err))
	})

	t.Run("BlockMisaligned", func(t *testing.T) {
		req := base
		req.IV = strings.Repeat("x", 16)
		req.Ciphertext = base64.StdEncoding.EncodeToString(make([]byte, 20))
		_, err := f.service.Decrypt(ctx, &req)
		assert.ErrorIs(t, err, codec.ErrBlockAlignment)
	})

	t.Run("PaddingNeverVerifiesWithWrongKey", func(t *testing.T) {
		plaintext := []byte("payload")
		for i := 0; i < 8; i++ {
			req := base
			req.IV = strings.Repeat("x", 16)
			req.Key = strings.Repeat(string(rune('a'+i)), 16)
			result, err := f.service.Decrypt(ctx, &req)
			if err != nil {
				assert.ErrorIs(t, err, workbench.ErrDecryptionFailed)
				continue
			}
			assert.NotEqual(t, plaintext, result.Raw)
		}
	})

	t.Run("CapabilityUnavailable", func(t *testing.T) {
		f.report.AES.Available = false
		defer func() { f.report.AES.Available = true }()

		req := base
		_, err := f.service.Decrypt(ctx, &req)
		assert.ErrorIs(t, err, workbench.ErrCapabilityUnavailable)
		assert.Equal(t, workbench.CategoryEnvironment, workbench.Classify(err))
	})
}

func TestAESService_InvalidParameters(t *testing.T) {
	f := setupAESService(t)
	ctx := context.Background()

	_, err := f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.TextContent("x"),
		KeySize:        cryptoalg.KeySize(100),
		Mode:           cryptoalg.ModeECB,
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingHex,
	})
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeySize)
	assert.Zero(t, f.recorder.last().KeySize)

	_, err = f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.TextContent("x"),
		KeySize:        cryptoalg.KeySize128,
		Mode:           cryptoalg.ModeECB,
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingUTF8,
	})
	assert.ErrorIs(t, err, codec.ErrUnsupportedEncoding)

	_, err = f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.TextContent("x"),
		KeySize:        cryptoalg.KeySize128,
		Mode:           cryptoalg.Mode("CTR"),
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingHex,
	})
	assert.ErrorIs(t, err, cryptoalg.ErrUnsupportedMode)
	assert.Empty(t, f.recorder.last().Mode)
}

func TestAESService_NonUTF8Plaintext(t *testing.T) {
	f := setupAESService(t)
	ctx := context.Background()
	key := strings.Repeat("AB", 16)

	encrypted, err := f.service.Encrypt(ctx, &workbench.AESEncryptRequest{
		Plaintext:      workbench.FileContent([]byte{0xff, 0xfe, 0x00, 0x41}),
		KeySize:        cryptoalg.KeySize128,
		Mode:           cryptoalg.ModeECB,
		Key:            key,
		KeyEncoding:    codec.EncodingHex,
		OutputEncoding: codec.EncodingBase64,
	})
	require.NoError(t, err)

	decrypted, err := f.service.Decrypt(ctx, &workbench.AESDecryptRequest{
		Ciphertext:         encrypted.Ciphertext,
		KeySize:            cryptoalg.KeySize128,
		Mode:               cryptoalg.ModeECB,
		Key:                key,
		KeyEncoding:        codec.EncodingHex,
		CiphertextEncoding: codec.EncodingBase64,
	})
	require.NoError(t, err)
	assert.False(t, decrypted.ValidUTF8)
	assert.Equal(t, []byte{0xff, 0xfe, 0x00, 0x41}, decrypted.Raw)
	assert.Equal(t, audit.OutcomeWarning, f.recorder.last().Outcome)
}
