package workbench

import (
	"errors"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
)

// Sentinel errors
var (
	// ErrDecryptionFailed is the single failure reported when padding does not verify after decryption.
	ErrDecryptionFailed = errors.New("decryption failed. Check that the key, the IV (CBC), the ciphertext encoding, " +
		"the key size and the mode all match the values used for encryption")
	// ErrCapabilityUnavailable marks operations the startup probe found unusable on this host.
	ErrCapabilityUnavailable = errors.New("cryptographic capability unavailable in this environment")
	// ErrKeyGenerationFailed is reported for any RSA key generation failure.
	ErrKeyGenerationFailed = errors.New("RSA key generation failed")
	// ErrInvalidKeyMaterial is reported when a PEM key cannot be read.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrNoArtifact is returned when a download is requested before the result exists.
	ErrNoArtifact = errors.New("no content available for download")
	// ErrUnknownArtifact is returned for artifact names outside the download list.
	ErrUnknownArtifact = errors.New("unknown artifact")
)

// Category groups errors for status codes and the audit trail.
type Category string

// Error categories.
const (
	CategoryNone        Category = ""
	CategoryValidation  Category = "validation"
	CategoryCrypto      Category = "crypto"
	CategoryEnvironment Category = "environment"
)

// Classify maps err to its category. Errors it does not recognise count as crypto failures.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case codec.IsValidationError(err),
		errors.Is(err, codec.ErrUnsupportedEncoding),
		errors.Is(err, cryptoalg.ErrUnsupportedMode),
		errors.Is(err, cryptoalg.ErrInvalidKeySize),
		errors.Is(err, cryptoalg.ErrUnsupportedDigest),
		errors.Is(err, cryptoalg.ErrUnsupportedRSAKeySize),
		errors.Is(err, ErrInvalidKeyMaterial),
		errors.Is(err, ErrUnknownArtifact),
		errors.Is(err, ErrNoArtifact):
		return CategoryValidation
	case errors.Is(err, ErrCapabilityUnavailable),
		errors.Is(err, cryptoalg.ErrRandomSourceShortRead):
		return CategoryEnvironment
	default:
		return CategoryCrypto
	}
}
