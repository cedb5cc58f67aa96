package workbench

import (
	"fmt"
	"strings"
	"time"
)

// Capability is the outcome of one startup self-test.
type Capability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// Capability names.
const (
	CapabilityRandomSource = "random-source"
	CapabilityAES          = "aes"
	CapabilityRSAPrimary   = "rsa-keygen"
	CapabilityRSAFallback  = "rsa-keygen-fallback"
	CapabilitySHA2         = "sha2"
)

// CapabilityReport is the typed result of the startup probe.
type CapabilityReport struct {
	RandomSource Capability `json:"random_source"`
	AES          Capability `json:"aes"`
	RSAPrimary   Capability `json:"rsa_primary"`
	RSAFallback  Capability `json:"rsa_fallback"`
	SHA2         Capability `json:"sha2"`
	CheckedAt    time.Time  `json:"checked_at"`
}

// AESAvailable reports whether AES encryption and decryption can run.
func (r *CapabilityReport) AESAvailable() bool {
	return r.RandomSource.Available && r.AES.Available
}

// RSAKeyGenerationAvailable reports whether at least one RSA key generator works.
func (r *CapabilityReport) RSAKeyGenerationAvailable() bool {
	return r.RandomSource.Available && (r.RSAPrimary.Available || r.RSAFallback.Available)
}

// SigningAvailable reports whether RSA sign and verify can run.
func (r *CapabilityReport) SigningAvailable() bool {
	return r.RandomSource.Available && r.SHA2.Available
}

// OK reports whether every operation is usable.
func (r *CapabilityReport) OK() bool {
	return r.AESAvailable() && r.RSAKeyGenerationAvailable() && r.SigningAvailable()
}

// Err returns nil when OK, otherwise ErrCapabilityUnavailable naming the failed checks.
func (r *CapabilityReport) Err() error {
	if r.OK() {
		return nil
	}

	var failed []string
	for _, capability := range []Capability{r.RandomSource, r.AES, r.RSAPrimary, r.SHA2} {
		if !capability.Available {
			failed = append(failed, describe(capability))
		}
	}
	if !r.RSAPrimary.Available && !r.RSAFallback.Available {
		failed = append(failed, describe(r.RSAFallback))
	}
	return fmt.Errorf("%w: %s", ErrCapabilityUnavailable, strings.Join(failed, "; "))
}

func describe(c Capability) string {
	if c.Detail == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Detail)
}
