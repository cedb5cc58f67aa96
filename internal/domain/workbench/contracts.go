package workbench

import "context"

// AESService encrypts and decrypts form input with AES.
type AESService interface {
	Encrypt(ctx context.Context, req *AESEncryptRequest) (*AESEncryptResult, error)
	Decrypt(ctx context.Context, req *AESDecryptRequest) (*AESDecryptResult, error)
}

// RSAKeyService generates RSA key pairs.
type RSAKeyService interface {
	Generate(ctx context.Context, req *RSAKeyRequest) (*RSAKeyResult, error)
}

// SignatureService signs and verifies content with RSA PKCS#1 v1.5.
type SignatureService interface {
	Sign(ctx context.Context, req *SignRequest) (*SignResult, error)
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error)
}

// CapabilityService runs and caches the startup self-test.
type CapabilityService interface {
	Probe(ctx context.Context) *CapabilityReport
	Report() *CapabilityReport
}

// SessionStore keeps one ResultContext per session.
type SessionStore interface {
	// NewSession returns a fresh session ID.
	NewSession() string
	// Update applies fn to the session's context, creating it when missing.
	Update(sessionID string, fn func(*ResultContext))
	// Read returns an artifact of a session with its download file name.
	Read(sessionID string, artifact Artifact) (content string, fileName string, err error)
	// Snapshot returns a copy of the session's context and whether it exists.
	Snapshot(sessionID string) (ResultContext, bool)
	// Close stops background expiry.
	Close()
}
