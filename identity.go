package contextkey

import (
	"crypto/sha256"

	"github.com/resetroot99/context-key/internal/crypto"
)

// Identity is an Ed25519 signing key pair. The private key signs context
// records; the public key travels inside every envelope the identity
// produces so verifiers need no out-of-band key exchange.
//
// Custody of the private key is the caller's responsibility. This package
// never stores or transmits it.
type Identity struct {
	// PublicKey is the raw Ed25519 public key (32 bytes).
	PublicKey []byte
	// PrivateKey is the raw Ed25519 private key (64 bytes).
	PrivateKey []byte
}

// GenerateIdentity creates a new signing identity from the secure random
// source. Entropy exhaustion is the only failure mode and is fatal.
func GenerateIdentity() (*Identity, error) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	return &Identity{
		PublicKey:  kp.PublicKey,
		PrivateKey: kp.PrivateKey,
	}, nil
}

// IdentityFromPrivateKey reconstructs an identity from a 64-byte Ed25519
// private key. The public key is re-derived from the private key's seed, so
// it always matches and is never independently trusted.
func IdentityFromPrivateKey(privateKey []byte) (*Identity, error) {
	kp, err := crypto.KeypairFromPrivateKey(privateKey)
	if err != nil {
		return nil, &ValidationError{Errors: []string{"private key must be 64 bytes"}}
	}
	return &Identity{
		PublicKey:  kp.PublicKey,
		PrivateKey: kp.PrivateKey,
	}, nil
}

// Fingerprint returns a short stable identifier for the identity's public
// key: the URL-safe base64 encoding of its SHA-256 hash.
func (i *Identity) Fingerprint() string {
	hash := sha256.Sum256(i.PublicKey)
	return crypto.ToBase64URL(hash[:])
}
