package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CryptoSettings holds the tunables of the cryptographic processors.
type CryptoSettings struct {
	// RSAKeySizes lists the key sizes offered for RSA key generation.
	RSAKeySizes []int `yaml:"rsa_key_sizes" validate:"required,min=1,dive,oneof=1024 2048 3072 4096"`
	// OpenSSLPath is the binary used by the platform-native key generation fallback.
	OpenSSLPath string `yaml:"openssl_path"`
	// NativeFallback enables the openssl fallback when the in-process generator is unavailable.
	NativeFallback bool `yaml:"native_fallback"`
}

// Validate checks that all fields in CryptoSettings are valid
func (s *CryptoSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CryptoSettings: %w", err)
	}
	if s.NativeFallback && s.OpenSSLPath == "" {
		return fmt.Errorf("openssl path is required when native fallback is enabled")
	}
	return nil
}

// AllowsRSAKeySize reports whether bits is one of the configured RSA key sizes.
func (s *CryptoSettings) AllowsRSAKeySize(bits int) bool {
	for _, size := range s.RSAKeySizes {
		if size == bits {
			return true
		}
	}
	return false
}
