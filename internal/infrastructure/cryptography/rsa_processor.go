package cryptography

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha256" // registers SHA-256 for crypto.Hash.New
	_ "crypto/sha512" // registers SHA-384 and SHA-512
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"
)

// rsaPublicExponent is the public exponent of every generated key.
const rsaPublicExponent = 65537

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// GenerateKeyPair generates an RSA key pair with the specified bit size and returns it as PEM.
func (r *rsaProcessor) GenerateKeyPair(keySize int) (*cryptoalg.RSAKeyPair, error) {
	if err := checkRSAKeySize(keySize); err != nil {
		return nil, err
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	if privateKey.E != rsaPublicExponent {
		return nil, fmt.Errorf("generated RSA key has unexpected public exponent %d", privateKey.E)
	}

	pair, err := EncodeRSAKeyPair(privateKey)
	if err != nil {
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("Generated RSA-%d key pair", keySize))
	return pair, nil
}

// Sign creates an RSASSA-PKCS1-v1_5 signature over the digest of data.
func (r *rsaProcessor) Sign(data []byte, privateKey *rsa.PrivateKey, digest cryptoalg.DigestAlgorithm) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}

	hashed, hash, err := hashData(data, digest)
	if err != nil {
		return nil, err
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, hash, hashed)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	r.logger.Info(fmt.Sprintf("RSA %s signing succeeded", digest))
	return signature, nil
}

// Verify checks an RSASSA-PKCS1-v1_5 signature. A mismatch returns (false, nil).
func (r *rsaProcessor) Verify(data, signature []byte, publicKey *rsa.PublicKey, digest cryptoalg.DigestAlgorithm) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("public key cannot be nil")
	}

	hashed, hash, err := hashData(data, digest)
	if err != nil {
		return false, err
	}

	if err := rsa.VerifyPKCS1v15(publicKey, hash, hashed, signature); err != nil {
		r.logger.Info(fmt.Sprintf("RSA %s signature did not verify", digest))
		return false, nil
	}

	r.logger.Info("RSA signature verified successfully")
	return true, nil
}

// ParsePrivateKey reads an RSA private key from PEM text (PKCS#1 or PKCS#8 format).
func (r *rsaProcessor) ParsePrivateKey(pemText string) (*rsa.PrivateKey, error) {
	return ParseRSAPrivateKeyPEM(pemText)
}

// ParsePublicKey reads an RSA public key from PEM text (PKIX or PKCS#1 format).
func (r *rsaProcessor) ParsePublicKey(pemText string) (*rsa.PublicKey, error) {
	return ParseRSAPublicKeyPEM(pemText)
}

// ParseRSAPrivateKeyPEM decodes the first PEM block of pemText as an RSA private key.
func ParseRSAPrivateKeyPEM(pemText string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(pemText)))
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the private key")
	}

	// First try to parse as PKCS#1 format
	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return privateKey, nil
	}

	privateKeyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key in either PKCS#1 or PKCS#8 format: %w", err)
	}

	privateKey, ok := privateKeyInterface.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not of type RSA")
	}

	return privateKey, nil
}

// ParseRSAPublicKeyPEM decodes the first PEM block of pemText as an RSA public key.
func ParseRSAPublicKeyPEM(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(pemText)))
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the public key")
	}

	pubKeyInterface, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		publicKey, pkcs1Err := x509.ParsePKCS1PublicKey(block.Bytes)
		if pkcs1Err != nil {
			return nil, fmt.Errorf("unable to parse public key in either PKIX or PKCS#1 format: %w", err)
		}
		return publicKey, nil
	}

	publicKey, ok := pubKeyInterface.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not of type RSA")
	}

	return publicKey, nil
}

// EncodeRSAKeyPair exports the private key as PKCS#1 PEM and its public half as PKIX PEM.
func EncodeRSAKeyPair(privateKey *rsa.PrivateKey) (*cryptoalg.RSAKeyPair, error) {
	privKeyPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	pubKeyBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	pubKeyPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubKeyBytes,
	})

	return &cryptoalg.RSAKeyPair{
		PrivateKeyPEM: string(privKeyPem),
		PublicKeyPEM:  string(pubKeyPem),
	}, nil
}

func checkRSAKeySize(keySize int) error {
	for _, size := range cryptoalg.RSAKeySizes {
		if size == keySize {
			return nil
		}
	}
	return fmt.Errorf("%d bits: %w", keySize, cryptoalg.ErrUnsupportedRSAKeySize)
}

func hashData(data []byte, digest cryptoalg.DigestAlgorithm) ([]byte, crypto.Hash, error) {
	hash, err := digest.Hash()
	if err != nil {
		return nil, 0, err
	}
	hasher := hash.New()
	hasher.Write(data)
	return hasher.Sum(nil), hash, nil
}
