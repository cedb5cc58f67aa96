//go:build unit
// +build unit

package workbench

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	_, validationErr := codec.ParseKeyOrIV("zz", codec.EncodingHex, 16, "key")
	require.Error(t, validationErr)

	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil", nil, CategoryNone},
		{"codec validation", validationErr, CategoryValidation},
		{"wrapped codec validation", fmt.Errorf("failed to parse key: %w", validationErr), CategoryValidation},
		{"unsupported mode", cryptoalg.ErrUnsupportedMode, CategoryValidation},
		{"unsupported rsa size", fmt.Errorf("x: %w", cryptoalg.ErrUnsupportedRSAKeySize), CategoryValidation},
		{"invalid pem", fmt.Errorf("%w: bad", ErrInvalidKeyMaterial), CategoryValidation},
		{"decryption failed", ErrDecryptionFailed, CategoryCrypto},
		{"unknown error", errors.New("boom"), CategoryCrypto},
		{"capability", fmt.Errorf("%w: aes", ErrCapabilityUnavailable), CategoryEnvironment},
		{"short read", fmt.Errorf("gen: %w", cryptoalg.ErrRandomSourceShortRead), CategoryEnvironment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestContentSigningBytes(t *testing.T) {
	assert.Equal(t, []byte("hello"), TextContent("  hello \n").SigningBytes())
	assert.Equal(t, []byte("  hello \n"), FileContent([]byte("  hello \n")).SigningBytes())
}

func TestResultContext(t *testing.T) {
	t.Run("MissingArtifact", func(t *testing.T) {
		ctx := &ResultContext{}
		_, err := ctx.Read(ArtifactSignature)
		assert.ErrorIs(t, err, ErrNoArtifact)
		assert.Equal(t, "no content available for download", err.Error())
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		ctx := &ResultContext{}
		ctx.ApplyEncrypt(&AESEncryptResult{Key: "K1", IV: "IV1", Ciphertext: "C1"})
		ctx.ApplyEncrypt(&AESEncryptResult{Key: "K2", Ciphertext: "C2"})

		key, err := ctx.Read(ArtifactAESKey)
		require.NoError(t, err)
		assert.Equal(t, "K2", key)

		_, err = ctx.Read(ArtifactAESIV)
		assert.ErrorIs(t, err, ErrNoArtifact)
	})

	t.Run("AllArtifacts", func(t *testing.T) {
		ctx := &ResultContext{}
		ctx.ApplyEncrypt(&AESEncryptResult{Key: "K", IV: "I", Ciphertext: "C"})
		ctx.ApplyDecrypt(&AESDecryptResult{Plaintext: "P"})
		ctx.ApplyKeyPair(&RSAKeyResult{PublicKeyPEM: "PUB", PrivateKeyPEM: "PRIV"})
		ctx.ApplySignature(&SignResult{Signature: "S"})

		expected := map[Artifact]string{
			ArtifactAESKey:        "K",
			ArtifactAESIV:         "I",
			ArtifactAESCiphertext: "C",
			ArtifactAESDecrypted:  "P",
			ArtifactPublicKey:     "PUB",
			ArtifactPrivateKey:    "PRIV",
			ArtifactSignature:     "S",
		}
		for artifact, value := range expected {
			content, err := ctx.Read(artifact)
			require.NoError(t, err)
			assert.Equal(t, value, content)
		}
	})
}

func TestParseArtifact(t *testing.T) {
	names := map[string]string{
		"aes-key":        "aes_key.txt",
		"aes-iv":         "aes_iv.txt",
		"aes-ciphertext": "aes_ciphertext.txt",
		"aes-decrypted":  "aes_decrypted.txt",
		"public-key":     "public_key.pem",
		"private-key":    "private_key.pem",
		"signature":      "signature.txt",
	}
	for name, fileName := range names {
		artifact, err := ParseArtifact(name)
		require.NoError(t, err)
		assert.Equal(t, fileName, artifact.FileName())
	}

	_, err := ParseArtifact("../etc/passwd")
	assert.ErrorIs(t, err, ErrUnknownArtifact)
}

func TestCapabilityReport(t *testing.T) {
	ok := func(name string) Capability { return Capability{Name: name, Available: true} }
	down := func(name, detail string) Capability { return Capability{Name: name, Detail: detail} }

	report := &CapabilityReport{
		RandomSource: ok(CapabilityRandomSource),
		AES:          ok(CapabilityAES),
		RSAPrimary:   ok(CapabilityRSAPrimary),
		RSAFallback:  down(CapabilityRSAFallback, "openssl not found"),
		SHA2:         ok(CapabilitySHA2),
	}
	assert.True(t, report.OK())
	assert.NoError(t, report.Err())

	report.RSAPrimary = down(CapabilityRSAPrimary, "keygen failed")
	assert.False(t, report.RSAKeyGenerationAvailable())
	assert.True(t, report.AESAvailable())
	err := report.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.Contains(t, err.Error(), "keygen failed")
	assert.Contains(t, err.Error(), "openssl not found")

	report.RSAFallback = ok(CapabilityRSAFallback)
	assert.True(t, report.RSAKeyGenerationAvailable())
	assert.NoError(t, report.Err())

	report.RandomSource = down(CapabilityRandomSource, "no entropy")
	assert.False(t, report.AESAvailable())
	assert.False(t, report.SigningAvailable())
}
