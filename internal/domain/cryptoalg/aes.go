package cryptoalg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPadding is returned when PKCS#7 padding is malformed after decryption.
// It is the only signal that a decryption used the wrong key, IV, mode or ciphertext.
var ErrInvalidPadding = errors.New("invalid PKCS#7 padding")

// ErrUnsupportedMode is returned for block cipher modes other than CBC and ECB.
var ErrUnsupportedMode = errors.New("unsupported cipher mode")

// ErrInvalidKeySize is returned for AES key sizes other than 128, 192 and 256 bits.
var ErrInvalidKeySize = errors.New("invalid AES key size")

// ErrRandomSourceShortRead is returned when the random source yields fewer bytes than requested.
var ErrRandomSourceShortRead = errors.New("random source returned fewer bytes than requested")

// Mode is the block cipher chaining mode.
type Mode string

// Supported modes.
const (
	ModeCBC Mode = "CBC"
	ModeECB Mode = "ECB"
)

// ParseMode accepts "CBC" or "ECB" case-insensitively.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(value))) {
	case ModeCBC:
		return ModeCBC, nil
	case ModeECB:
		return ModeECB, nil
	default:
		return "", fmt.Errorf("%q: %w", value, ErrUnsupportedMode)
	}
}

// RequiresIV reports whether the mode consumes an initialization vector.
func (m Mode) RequiresIV() bool {
	return m == ModeCBC
}

// KeySize is an AES key size in bits.
type KeySize int

// Supported AES key sizes.
const (
	KeySize128 KeySize = 128
	KeySize192 KeySize = 192
	KeySize256 KeySize = 256
)

// ParseKeySize accepts "128", "192" or "256".
func ParseKeySize(value string) (KeySize, error) {
	bits, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidKeySize)
	}
	size := KeySize(bits)
	if !size.Valid() {
		return 0, fmt.Errorf("%d bits: %w", bits, ErrInvalidKeySize)
	}
	return size, nil
}

// Valid reports whether k is one of the AES key sizes.
func (k KeySize) Valid() bool {
	return k == KeySize128 || k == KeySize192 || k == KeySize256
}

// Bytes returns the key length in bytes.
func (k KeySize) Bytes() int {
	return int(k) / 8
}

// AESProcessor handles AES symmetric encryption operations.
type AESProcessor interface {
	// GenerateKey returns keySize random bytes (16, 24 or 32).
	// A short read from the random source is an error.
	GenerateKey(keySize int) ([]byte, error)

	// GenerateIV returns a random 16-byte initialization vector.
	GenerateIV() ([]byte, error)

	// Encrypt pads data with PKCS#7 and encrypts it in the given mode.
	// iv must be 16 bytes for CBC and is ignored for ECB.
	Encrypt(data, key, iv []byte, mode Mode) ([]byte, error)

	// Decrypt decrypts ciphertext and removes PKCS#7 padding.
	// Returns ErrInvalidPadding when the padding does not verify.
	Decrypt(ciphertext, key, iv []byte, mode Mode) ([]byte, error)
}
