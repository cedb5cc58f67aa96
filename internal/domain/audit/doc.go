// Package audit defines the operation audit trail: which workbench operation ran, with which
// algorithm parameters, and how it ended. Records never carry key material, plaintext,
// ciphertext or signatures.
package audit
