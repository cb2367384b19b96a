package contextkey

import (
	"context"
	"errors"

	"github.com/resetroot99/context-key/internal/crypto"
)

// Open reverses Seal: it derives the key from password and the blob's
// recorded salt and KDF parameters, authenticates and decrypts the
// ciphertext, decodes the signed envelope, and verifies its signature.
// Open is all-or-nothing; there is no partial or resumable state.
//
// Failure modes, in pipeline order:
//
//   - *FormatError: the blob's fields or KDF parameters are malformed.
//   - *AuthenticationError: AEAD open failed. Wrong password and corrupted
//     ciphertext are indistinguishable by design; nothing is decoded.
//   - *FormatError: the authenticated plaintext does not parse as an
//     envelope (version mismatch or internal corruption).
//   - *SignatureError: the envelope decrypted but its signature does not
//     verify. Open returns the envelope alongside the error: the caller may
//     inspect the record at its own risk, but callers requiring strict
//     trust must treat a non-nil error as rejection.
//
// A wrong password is never retried automatically.
func Open(ctx context.Context, blob *SealedBlob, password string) (*SignedEnvelope, error) {
	if blob == nil {
		return nil, &FormatError{Err: errors.New("blob is required")}
	}

	if err := blob.validate(); err != nil {
		return nil, &FormatError{Err: err}
	}

	params := blob.KDFParams.toInternal()

	key, err := crypto.DeriveKey(ctx, []byte(password), blob.Salt, params)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKDFParams) {
			return nil, &FormatError{Err: err}
		}
		return nil, err
	}
	defer crypto.Zeroize(key)

	aad := sealTranscript(blob.Salt, params)

	plaintext, err := crypto.DecryptAESGCM(key, blob.IV, aad, blob.EncryptedData)
	if err != nil {
		return nil, &AuthenticationError{}
	}
	defer crypto.Zeroize(plaintext)

	envelope, err := decodeEnvelope(plaintext)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	if !envelope.Verify() {
		return envelope, &SignatureError{}
	}

	return envelope, nil
}
