package cryptography

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"
)

// opensslKeyGenerator generates RSA keys by running `openssl genpkey`.
// It is used when the in-process generator fails its startup probe.
type opensslKeyGenerator struct {
	logger      logger.Logger
	opensslPath string
}

// NewOpenSSLKeyGenerator creates a key generator that shells out to the openssl binary at opensslPath
func NewOpenSSLKeyGenerator(logger logger.Logger, opensslPath string) (cryptoalg.RSAKeyGenerator, error) {
	if opensslPath == "" {
		return nil, fmt.Errorf("openssl path cannot be empty")
	}
	return &opensslKeyGenerator{
		logger:      logger,
		opensslPath: opensslPath,
	}, nil
}

// GenerateKeyPair runs openssl and re-encodes its output so both generators emit the same PEM formats.
func (o *opensslKeyGenerator) GenerateKeyPair(keySize int) (*cryptoalg.RSAKeyPair, error) {
	if err := checkRSAKeySize(keySize); err != nil {
		return nil, err
	}

	// #nosec G204 -- arguments are fixed flags plus a validated integer
	cmd := exec.Command(
		o.opensslPath, "genpkey", "-algorithm", "RSA",
		"-pkeyopt", "rsa_keygen_bits:"+strconv.Itoa(keySize),
		"-pkeyopt", "rsa_keygen_pubexp:"+strconv.Itoa(rsaPublicExponent),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("openssl genpkey failed: %w\nOutput: %s", err, stderr.String())
	}

	privateKey, err := ParseRSAPrivateKeyPEM(string(output))
	if err != nil {
		return nil, fmt.Errorf("failed to read openssl output: %w", err)
	}
	if privateKey.N.BitLen() != keySize {
		return nil, fmt.Errorf("openssl produced a %d-bit key, expected %d", privateKey.N.BitLen(), keySize)
	}

	pair, err := EncodeRSAKeyPair(privateKey)
	if err != nil {
		return nil, err
	}

	o.logger.Info(fmt.Sprintf("Generated RSA-%d key pair with openssl", keySize))
	return pair, nil
}

// Available reports whether the openssl binary can be found.
func (o *opensslKeyGenerator) Available() bool {
	_, err := exec.LookPath(o.opensslPath)
	return err == nil
}
