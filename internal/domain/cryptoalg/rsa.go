package cryptoalg

import (
	"crypto"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDigest is returned for digest algorithms other than SHA-256, SHA-384 and SHA-512.
var ErrUnsupportedDigest = errors.New("unsupported digest algorithm")

// ErrUnsupportedRSAKeySize is returned for modulus sizes outside RSAKeySizes.
var ErrUnsupportedRSAKeySize = errors.New("unsupported RSA key size")

// DigestAlgorithm selects the SHA-2 hash signed with RSA PKCS#1 v1.5.
type DigestAlgorithm string

// Supported digests.
const (
	DigestSHA256 DigestAlgorithm = "SHA-256"
	DigestSHA384 DigestAlgorithm = "SHA-384"
	DigestSHA512 DigestAlgorithm = "SHA-512"
)

// ParseDigestAlgorithm accepts "256", "SHA256", "sha-256" and the like.
func ParseDigestAlgorithm(value string) (DigestAlgorithm, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(strings.ReplaceAll(normalized, "-", ""), "SHA")
	switch normalized {
	case "256":
		return DigestSHA256, nil
	case "384":
		return DigestSHA384, nil
	case "512":
		return DigestSHA512, nil
	default:
		return "", fmt.Errorf("%q: %w", value, ErrUnsupportedDigest)
	}
}

// Hash maps the digest to its crypto.Hash.
func (d DigestAlgorithm) Hash() (crypto.Hash, error) {
	switch d {
	case DigestSHA256:
		return crypto.SHA256, nil
	case DigestSHA384:
		return crypto.SHA384, nil
	case DigestSHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("%q: %w", d, ErrUnsupportedDigest)
	}
}

// RSAKeySizes lists the selectable RSA modulus sizes in bits.
var RSAKeySizes = []int{1024, 2048, 3072, 4096}

// RSAKeyPair holds a generated key pair in PEM form.
type RSAKeyPair struct {
	PrivateKeyPEM string
	PublicKeyPEM  string
}

// RSAKeyGenerator produces PEM-encoded RSA key pairs with public exponent 65537.
// The private key is PKCS#1 ("RSA PRIVATE KEY") and the public key PKIX ("PUBLIC KEY").
type RSAKeyGenerator interface {
	GenerateKeyPair(keySize int) (*RSAKeyPair, error)
}

// RSAProcessor handles RSA key generation and PKCS#1 v1.5 signatures.
type RSAProcessor interface {
	RSAKeyGenerator

	// Sign hashes data with digest and signs it with RSASSA-PKCS1-v1_5.
	Sign(data []byte, privateKey *rsa.PrivateKey, digest DigestAlgorithm) ([]byte, error)

	// Verify reports whether signature matches data. A mismatch is (false, nil).
	Verify(data, signature []byte, publicKey *rsa.PublicKey, digest DigestAlgorithm) (bool, error)

	// ParsePrivateKey reads a PEM private key in PKCS#1 or PKCS#8 form.
	ParsePrivateKey(pemText string) (*rsa.PrivateKey, error)

	// ParsePublicKey reads a PEM public key in PKIX or PKCS#1 form.
	ParsePublicKey(pemText string) (*rsa.PublicKey, error)
}
