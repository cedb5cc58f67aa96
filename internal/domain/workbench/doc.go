// Package workbench defines the request and result types of the workbench operations
// (AES encrypt/decrypt, RSA key generation, RSA sign/verify), the service contracts that
// implement them, the per-session result context and the startup capability report.
package workbench
