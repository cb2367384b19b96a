package crypto

import "errors"

var (
	// ErrInvalidPrivateKeySize is returned when the private key size is invalid.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidSaltSize is returned when the salt size is invalid.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrDecryptionFailed is returned when AEAD open fails. Wrong key and
	// corrupted ciphertext are deliberately indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrSignatureVerificationFailed is returned when signature verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrInvalidKDFParams is returned when KDF parameters are missing,
	// unrecognized, or outside the supported bounds.
	ErrInvalidKDFParams = errors.New("invalid KDF parameters")

	// ErrEntropyUnavailable is returned when the secure random source fails.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")
)
