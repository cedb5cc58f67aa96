package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding governs how a byte sequence is rendered as, or parsed from, a string.
type Encoding string

// Supported encodings.
const (
	EncodingUTF8   Encoding = "UTF8"
	EncodingHex    Encoding = "HEX"
	EncodingBase64 Encoding = "BASE64"
)

func (e Encoding) String() string {
	return string(e)
}

// ParseEncoding accepts the page form values ("UTF8", "HEX",
// "BASE64") case-insensitively, plus "utf-8" and "b64".
func ParseEncoding(value string) (Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "UTF8", "UTF-8":
		return EncodingUTF8, nil
	case "HEX":
		return EncodingHex, nil
	case "BASE64", "B64":
		return EncodingBase64, nil
	default:
		return "", fmt.Errorf("%q: %w", value, ErrUnsupportedEncoding)
	}
}

// IsBinary reports whether e renders arbitrary bytes (HEX or BASE64).
func (e Encoding) IsBinary() bool {
	return e == EncodingHex || e == EncodingBase64
}

// Format renders data as uppercase hexadecimal or standard padded base64.
func Format(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingHex:
		return strings.ToUpper(hex.EncodeToString(data)), nil
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("cannot format bytes as %q: %w", enc, ErrUnsupportedEncoding)
	}
}

// FormatLower is Format with lowercase hexadecimal digits.
func FormatLower(data []byte, enc Encoding) (string, error) {
	if enc == EncodingHex {
		return hex.EncodeToString(data), nil
	}
	return Format(data, enc)
}
