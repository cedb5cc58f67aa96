package codec

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// IVSize is the length of a CBC initialization vector in bytes.
const IVSize = BlockSize

var (
	hexPattern    = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

// StripWhitespace removes every Unicode whitespace rune from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseKeyOrIV converts user input into exactly byteLength bytes.
//
// HEX and BASE64 input is whitespace-stripped, checked against its alphabet,
// decoded and required to be exactly byteLength bytes long. UTF8 input is treated
// as a passphrase and derived with DeriveKeyFromPassphrase, which always
// satisfies the length. label names the field in error messages.
func ParseKeyOrIV(input string, enc Encoding, byteLength int, label string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, newValidationError(label, ErrEmptyInput, "%s cannot be empty.", label)
	}

	var (
		decoded []byte
		err     error
	)
	switch enc {
	case EncodingUTF8:
		return DeriveKeyFromPassphrase(trimmed, byteLength), nil
	case EncodingHex:
		decoded, err = DecodeHex(trimmed, label)
	case EncodingBase64:
		decoded, err = DecodeBase64(trimmed, label)
	default:
		return nil, newValidationError(label, ErrUnsupportedEncoding, "%s uses an unsupported encoding %q.", label, enc)
	}
	if err != nil {
		return nil, err
	}

	if len(decoded) != byteLength {
		return nil, newValidationError(label, ErrInvalidLength,
			"%s %s must be %d bytes (%d bits), but has %d bytes (%d bits).",
			label, enc, byteLength, byteLength*8, len(decoded), len(decoded)*8)
	}
	return decoded, nil
}

// DecodeHex strips whitespace, checks the hexadecimal alphabet and decodes.
// The alphabet check happens before any decode attempt.
func DecodeHex(input, label string) ([]byte, error) {
	cleaned := StripWhitespace(input)
	if cleaned == "" {
		return nil, newValidationError(label, ErrEmptyInput, "%s cannot be empty.", label)
	}
	if !hexPattern.MatchString(cleaned) {
		return nil, newValidationError(label, ErrMalformedHex,
			"%s is not valid hexadecimal. Use only 0-9 and A-F.", label)
	}
	if len(cleaned)%2 != 0 {
		return nil, newValidationError(label, ErrMalformedHex,
			"%s is not valid hexadecimal: odd number of digits (%d).", label, len(cleaned))
	}

	decoded, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, newValidationError(label, ErrMalformedHex, "%s is not valid hexadecimal: %v.", label, err)
	}
	return decoded, nil
}

// DecodeBase64 strips whitespace, checks the standard base64 alphabet and
// decodes. Unpadded input is accepted.
func DecodeBase64(input, label string) ([]byte, error) {
	cleaned := StripWhitespace(input)
	if cleaned == "" {
		return nil, newValidationError(label, ErrEmptyInput, "%s cannot be empty.", label)
	}
	if !base64Pattern.MatchString(cleaned) {
		return nil, newValidationError(label, ErrMalformedBase64,
			"%s is not valid base64. Check that it was copied correctly.", label)
	}

	decoder := base64.StdEncoding
	if !strings.HasSuffix(cleaned, "=") && len(cleaned)%4 != 0 {
		decoder = base64.RawStdEncoding
	}

	decoded, err := decoder.DecodeString(cleaned)
	if err != nil {
		return nil, newValidationError(label, ErrMalformedBase64,
			"%s is not valid base64. Check that it was copied correctly.", label)
	}
	return decoded, nil
}

// DecodeBinary decodes HEX or BASE64 input. UTF8 is rejected because arbitrary
// bytes have no passphrase form.
func DecodeBinary(input string, enc Encoding, label string) ([]byte, error) {
	switch enc {
	case EncodingHex:
		return DecodeHex(input, label)
	case EncodingBase64:
		return DecodeBase64(input, label)
	default:
		return nil, newValidationError(label, ErrUnsupportedEncoding,
			"%s must be given as HEX or BASE64, not %q.", label, enc)
	}
}

// DecodeCiphertext decodes ciphertext and checks it is a non-empty multiple of
// BlockSize bytes.
func DecodeCiphertext(input string, enc Encoding) ([]byte, error) {
	const label = "ciphertext"

	if strings.TrimSpace(input) == "" {
		return nil, newValidationError(label, ErrEmptyInput, "ciphertext cannot be empty.")
	}

	decoded, err := DecodeBinary(input, enc, label)
	if err != nil {
		return nil, err
	}

	if len(decoded) == 0 {
		return nil, newValidationError(label, ErrEmptyInput, "ciphertext is empty.")
	}
	if len(decoded)%BlockSize != 0 {
		return nil, newValidationError(label, ErrBlockAlignment,
			"ciphertext length must be a multiple of %d bytes (AES block size). Current length: %d bytes.",
			BlockSize, len(decoded))
	}
	return decoded, nil
}

// DecodeSignature decodes a signature string, rejecting malformed input before
// any decode attempt.
func DecodeSignature(input string, enc Encoding) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, newValidationError("signature", ErrEmptyInput, "signature cannot be empty.")
	}
	return DecodeBinary(input, enc, "signature")
}
