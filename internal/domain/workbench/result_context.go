package workbench

import (
	"fmt"
	"time"
)

// ResultContext keeps the last formatted outputs of one session for download.
// Each operation overwrites the fields it produces.
type ResultContext struct {
	AESKey        string
	AESIV         string
	AESCiphertext string
	AESDecrypted  string
	Signature     string
	PublicKeyPEM  string
	PrivateKeyPEM string
	UpdatedAt     time.Time
}

// Artifact names a downloadable value of the result context.
type Artifact string

// Downloadable artifacts.
const (
	ArtifactAESKey        Artifact = "aes-key"
	ArtifactAESIV         Artifact = "aes-iv"
	ArtifactAESCiphertext Artifact = "aes-ciphertext"
	ArtifactAESDecrypted  Artifact = "aes-decrypted"
	ArtifactPublicKey     Artifact = "public-key"
	ArtifactPrivateKey    Artifact = "private-key"
	ArtifactSignature     Artifact = "signature"
)

var artifactFileNames = map[Artifact]string{
	ArtifactAESKey:        "aes_key.txt",
	ArtifactAESIV:         "aes_iv.txt",
	ArtifactAESCiphertext: "aes_ciphertext.txt",
	ArtifactAESDecrypted:  "aes_decrypted.txt",
	ArtifactPublicKey:     "public_key.pem",
	ArtifactPrivateKey:    "private_key.pem",
	ArtifactSignature:     "signature.txt",
}

// ParseArtifact validates an artifact name.
func ParseArtifact(name string) (Artifact, error) {
	artifact := Artifact(name)
	if _, ok := artifactFileNames[artifact]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownArtifact)
	}
	return artifact, nil
}

// FileName is the default download name of the artifact.
func (a Artifact) FileName() string {
	return artifactFileNames[a]
}

// Read returns the artifact's content, or ErrNoArtifact when it has not been produced.
func (c *ResultContext) Read(artifact Artifact) (string, error) {
	var value string
	switch artifact {
	case ArtifactAESKey:
		value = c.AESKey
	case ArtifactAESIV:
		value = c.AESIV
	case ArtifactAESCiphertext:
		value = c.AESCiphertext
	case ArtifactAESDecrypted:
		value = c.AESDecrypted
	case ArtifactPublicKey:
		value = c.PublicKeyPEM
	case ArtifactPrivateKey:
		value = c.PrivateKeyPEM
	case ArtifactSignature:
		value = c.Signature
	default:
		return "", fmt.Errorf("%q: %w", artifact, ErrUnknownArtifact)
	}

	if value == "" {
		return "", ErrNoArtifact
	}
	return value, nil
}

// ApplyEncrypt stores an encryption result. The IV is cleared for ECB.
func (c *ResultContext) ApplyEncrypt(result *AESEncryptResult) {
	c.AESKey = result.Key
	c.AESIV = result.IV
	c.AESCiphertext = result.Ciphertext
}

// ApplyDecrypt stores a decryption result.
func (c *ResultContext) ApplyDecrypt(result *AESDecryptResult) {
	c.AESDecrypted = result.Plaintext
}

// ApplyKeyPair stores a generated key pair.
func (c *ResultContext) ApplyKeyPair(result *RSAKeyResult) {
	c.PublicKeyPEM = result.PublicKeyPEM
	c.PrivateKeyPEM = result.PrivateKeyPEM
}

// ApplySignature stores a signature.
func (c *ResultContext) ApplySignature(result *SignResult) {
	c.Signature = result.Signature
}
