package contextkey

import (
	"github.com/resetroot99/context-key/internal/crypto"
)

// sealConfig holds configuration for a seal operation.
type sealConfig struct {
	kdfParams crypto.KDFParams
}

// SealOption configures a seal operation.
type SealOption func(*sealConfig)

// WithKDFParams overrides the Argon2id cost parameters recorded in the
// blob and used to derive the key. The algorithm itself is fixed. Values
// outside the supported bounds cause Seal to fail with a ValidationError.
func WithKDFParams(params KDFParams) SealOption {
	return func(c *sealConfig) {
		p := params.toInternal()
		p.Algorithm = crypto.AlgorithmArgon2id
		c.kdfParams = p
	}
}
