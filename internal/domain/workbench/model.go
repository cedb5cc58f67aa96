package workbench

import (
	"strings"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
)

// EmptyDecryptWarning is attached to a decrypt result whose plaintext is empty.
const EmptyDecryptWarning = "decrypted text is empty"

// Content is user input that arrived either as pasted text or as an uploaded file.
type Content struct {
	Data     []byte
	FromFile bool
}

// TextContent wraps pasted text.
func TextContent(text string) Content {
	return Content{Data: []byte(text)}
}

// FileContent wraps uploaded file bytes.
func FileContent(data []byte) Content {
	return Content{Data: data, FromFile: true}
}

// SigningBytes returns the bytes to hash: pasted text is trimmed, files are used verbatim.
func (c Content) SigningBytes() []byte {
	if c.FromFile {
		return c.Data
	}
	return []byte(strings.TrimSpace(string(c.Data)))
}

// AESEncryptRequest carries the encrypt form. Key and IV are optional; when blank they are generated.
type AESEncryptRequest struct {
	SessionID      string
	Plaintext      Content
	KeySize        cryptoalg.KeySize
	Mode           cryptoalg.Mode
	Key            string
	IV             string
	KeyEncoding    codec.Encoding
	OutputEncoding codec.Encoding
}

// AESEncryptResult holds the formatted outputs of an encryption. IV is empty for ECB.
type AESEncryptResult struct {
	Key            string
	IV             string
	Ciphertext     string
	KeyGenerated   bool
	IVGenerated    bool
	KeySize        cryptoalg.KeySize
	Mode           cryptoalg.Mode
	OutputEncoding codec.Encoding
}

// AESDecryptRequest carries the decrypt form. Key is required, IV is required for CBC.
type AESDecryptRequest struct {
	SessionID          string
	Ciphertext         string
	KeySize            cryptoalg.KeySize
	Mode               cryptoalg.Mode
	Key                string
	IV                 string
	KeyEncoding        codec.Encoding
	CiphertextEncoding codec.Encoding
}

// AESDecryptResult holds the recovered plaintext.
type AESDecryptResult struct {
	Plaintext    string
	Raw          []byte
	EmptyWarning bool
	ValidUTF8    bool
	Warning      string
}

// RSAKeyRequest selects the modulus size of a new key pair.
type RSAKeyRequest struct {
	SessionID string
	KeySize   int
}

// RSAKeyResult holds a generated key pair and which generator produced it.
type RSAKeyResult struct {
	PublicKeyPEM  string
	PrivateKeyPEM string
	KeySize       int
	Generator     string
}

// Key generator names reported in RSAKeyResult.
const (
	GeneratorNative  = "native"
	GeneratorOpenSSL = "openssl"
)

// SignRequest carries the sign form.
type SignRequest struct {
	SessionID      string
	PrivateKeyPEM  string
	Content        Content
	Digest         cryptoalg.DigestAlgorithm
	OutputEncoding codec.Encoding
}

// SignResult holds the formatted signature.
type SignResult struct {
	Signature string
	Digest    cryptoalg.DigestAlgorithm
	Encoding  codec.Encoding
}

// VerifyRequest carries the verify form.
type VerifyRequest struct {
	SessionID         string
	PublicKeyPEM      string
	Content           Content
	Digest            cryptoalg.DigestAlgorithm
	Signature         string
	SignatureEncoding codec.Encoding
}

// VerifyResult reports whether the signature matched.
type VerifyResult struct {
	Valid  bool
	Digest cryptoalg.DigestAlgorithm
}
