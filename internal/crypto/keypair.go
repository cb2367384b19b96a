package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/ed25519"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Keypair represents an Ed25519 signing keypair.
type Keypair struct {
	// PublicKey is the raw Ed25519 public key bytes (32 bytes).
	PublicKey []byte
	// PrivateKey is the raw Ed25519 private key bytes (64 bytes,
	// seed followed by the embedded public key).
	PrivateKey []byte
}

// GenerateKeypair creates a new Ed25519 signing keypair from the secure
// random source. Entropy exhaustion is the only failure mode and is fatal.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}

	return &Keypair{
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// KeypairFromPrivateKey reconstructs a keypair from the private key. The
// public key is re-derived from the embedded seed rather than trusted from
// any external source.
func KeypairFromPrivateKey(privateKey []byte) (*Keypair, error) {
	pub, err := PublicKeyFromPrivate(privateKey)
	if err != nil {
		return nil, err
	}

	priv := make([]byte, Ed25519PrivateKeySize)
	copy(priv, privateKey)

	return &Keypair{
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// PublicKeyFromPrivate derives the public key from an Ed25519 private key.
// The derivation recomputes from the seed half, so a private key whose
// embedded public half was tampered with still yields the correct key.
func PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	if len(privateKey) != Ed25519PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}

	priv := ed25519.NewKeyFromSeed(privateKey[:ed25519.SeedSize])
	pub := make([]byte, Ed25519PublicKeySize)
	copy(pub, priv[ed25519.SeedSize:])
	return pub, nil
}

// ValidateKeypair validates that a keypair has the correct structure and
// that the public key matches the one derived from the private key.
// Returns true if all validations pass, false otherwise.
func ValidateKeypair(keypair *Keypair) bool {
	if keypair == nil {
		return false
	}

	if len(keypair.PublicKey) != Ed25519PublicKeySize {
		return false
	}

	if len(keypair.PrivateKey) != Ed25519PrivateKeySize {
		return false
	}

	derived, err := PublicKeyFromPrivate(keypair.PrivateKey)
	if err != nil {
		return false
	}

	for i := range derived {
		if derived[i] != keypair.PublicKey[i] {
			return false
		}
	}

	return true
}

// RandomBytes returns n bytes from the secure random source. A failing
// entropy source is reported as ErrEntropyUnavailable.
func RandomBytes(n int) ([]byte, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return b, nil
}

// Zeroize overwrites b with zeros. Used to scrub derived keys and plaintext
// buffers once an operation completes.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
