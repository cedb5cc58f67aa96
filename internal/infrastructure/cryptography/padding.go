package cryptography

import (
	"bytes"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
)

// pkcs7Padder implements PKCS#7 padding for a fixed block size.
type pkcs7Padder struct {
	blockSize int
}

// Pad appends between 1 and blockSize bytes, each holding the pad length.
// Empty input yields one full block of padding.
func (p *pkcs7Padder) Pad(data []byte) []byte {
	padding := p.blockSize - (len(data) % p.blockSize)
	padded := make([]byte, len(data), len(data)+padding)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// Unpad strips and verifies PKCS#7 padding. Every pad byte must equal the pad
// length and the length must lie in [1, blockSize].
func (p *pkcs7Padder) Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 || length%p.blockSize != 0 {
		return nil, cryptoalg.ErrInvalidPadding
	}

	padding := int(data[length-1])
	if padding == 0 || padding > p.blockSize {
		return nil, cryptoalg.ErrInvalidPadding
	}
	for _, b := range data[length-padding:] {
		if int(b) != padding {
			return nil, cryptoalg.ErrInvalidPadding
		}
	}
	return data[:length-padding], nil
}
