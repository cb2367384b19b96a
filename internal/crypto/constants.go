package crypto

import "github.com/cloudflare/circl/sign/ed25519"

const (
	// SealContext is the context string mixed into the AAD transcript for
	// domain separation.
	SealContext = "contextkey:seal:v1"

	// Ed25519PublicKeySize is the size of an Ed25519 public key in bytes.
	Ed25519PublicKeySize = ed25519.PublicKeySize
	// Ed25519PrivateKeySize is the size of an Ed25519 private key in bytes.
	Ed25519PrivateKeySize = ed25519.PrivateKeySize
	// Ed25519SignatureSize is the size of an Ed25519 signature in bytes.
	Ed25519SignatureSize = ed25519.SignatureSize

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// SaltSize is the size of the KDF salt in bytes.
	SaltSize = 32

	// AlgorithmArgon2id is the identifier recorded in blob KDF parameters.
	// It is the only derivation algorithm the format supports.
	AlgorithmArgon2id = "argon2id"

	// DefaultArgon2Iterations is the default Argon2id time parameter.
	DefaultArgon2Iterations = 3
	// DefaultArgon2Memory is the default Argon2id memory parameter in KiB.
	DefaultArgon2Memory = 64 * 1024
	// DefaultArgon2Parallelism is the default Argon2id lane count.
	DefaultArgon2Parallelism = 4

	// Bounds applied to KDF parameters read back from a blob. A hostile
	// blob must not be able to pin the opener on an absurd derivation.
	MinArgon2Iterations  = 1
	MaxArgon2Iterations  = 64
	MaxArgon2Memory      = 2 * 1024 * 1024 // 2 GiB in KiB
	MinArgon2Parallelism = 1
	MaxArgon2Parallelism = 16
)

// AlgsCiphersuite is the canonical string representation of the algorithm
// suite, bound into the AAD transcript.
var AlgsCiphersuite = "Ed25519:AES-256-GCM:Argon2id"
