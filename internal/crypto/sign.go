package crypto

import (
	"github.com/cloudflare/circl/sign/ed25519"
)

// Sign produces a detached Ed25519 signature over message.
// The private key must be exactly Ed25519PrivateKeySize bytes.
func Sign(privateKey, message []byte) ([]byte, error) {
	if len(privateKey) != Ed25519PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}

	return ed25519.Sign(ed25519.PrivateKey(privateKey), message), nil
}

// Verify checks a detached Ed25519 signature over message. It returns false
// rather than an error on malformed signature bytes or wrong-length keys,
// and never panics on attacker-controlled input. Ed25519 verification is
// constant-time with respect to secret material.
func Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != Ed25519PublicKeySize {
		return false
	}

	if len(signature) != Ed25519SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
