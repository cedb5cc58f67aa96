// Package cryptoalg defines the contracts of the cipher and signature primitives used by the workbench:
// AES block encryption in CBC and ECB mode with PKCS#7 padding, and RSA key generation with PKCS#1 v1.5 signatures.
package cryptoalg
