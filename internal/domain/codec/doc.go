// Package codec converts user-supplied key, IV, ciphertext and signature strings
// between their textual representations (UTF-8 passphrase, hexadecimal, base64)
// and the fixed-size byte sequences the cipher and signature primitives expect.
//
// Every parse function validates charset and size before decoding and reports
// problems as *ValidationError values naming the offending field.
package codec
