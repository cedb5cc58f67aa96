package codec

import "crypto/sha256"

// DeriveKeyFromPassphrase turns a passphrase into exactly byteLength bytes.
//
// The passphrase's UTF-8 bytes are hashed with SHA-256. While the result is
// shorter than byteLength, the SHA-256 of everything accumulated so far is
// appended. The output is then truncated to byteLength. The same passphrase and
// length always yield the same bytes.
func DeriveKeyFromPassphrase(passphrase string, byteLength int) []byte {
	if byteLength <= 0 {
		return []byte{}
	}

	digest := sha256.Sum256([]byte(passphrase))
	derived := append(make([]byte, 0, byteLength+sha256.Size), digest[:]...)

	for len(derived) < byteLength {
		next := sha256.Sum256(derived)
		derived = append(derived, next[:]...)
	}

	return derived[:byteLength]
}
