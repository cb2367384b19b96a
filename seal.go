package contextkey

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/resetroot99/context-key/internal/crypto"
)

// Seal signs record with identity, encodes the signed envelope, and
// encrypts it under a key derived from password with a fresh random salt
// and nonce. The pipeline is fixed: sign, serialize, derive, encrypt.
// Sign-before-encrypt means the plaintext already carries an integrity
// proof independent of the encryption layer.
//
// The Argon2id derivation runs in its own goroutine; cancel ctx to abandon
// a slow derivation. Derived key material is zeroized before Seal returns.
func Seal(ctx context.Context, record *ContextRecord, identity *Identity, password string, opts ...SealOption) (*SealedBlob, error) {
	cfg := sealConfig{kdfParams: crypto.DefaultKDFParams()}
	for _, opt := range opts {
		opt(&cfg)
	}

	envelope, err := Sign(record, identity)
	if err != nil {
		return nil, err
	}

	plaintext, err := encodeEnvelope(envelope)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	defer crypto.Zeroize(plaintext)

	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	nonce, err := crypto.RandomBytes(crypto.AESNonceSize)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	key, err := crypto.DeriveKey(ctx, []byte(password), salt, cfg.kdfParams)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKDFParams) {
			return nil, &ValidationError{Errors: []string{err.Error()}}
		}
		return nil, err
	}
	defer crypto.Zeroize(key)

	aad := sealTranscript(salt, cfg.kdfParams)

	ciphertext, err := crypto.EncryptAESGCM(key, nonce, aad, plaintext)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	return &SealedBlob{
		EncryptedData: ciphertext,
		IV:            nonce,
		Salt:          salt,
		KDFParams:     fromInternalParams(cfg.kdfParams),
	}, nil
}

// sealTranscript builds the additional authenticated data bound into the
// AEAD: format version, ciphersuite, context string, salt, and the exact
// KDF parameters. Tampering with any recorded parameter makes open fail
// even before derivation would produce a wrong key.
func sealTranscript(salt []byte, params crypto.KDFParams) []byte {
	transcript := []byte{1}

	transcript = append(transcript, []byte(crypto.AlgsCiphersuite)...)
	transcript = append(transcript, []byte(crypto.SealContext)...)
	transcript = append(transcript, salt...)

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], params.Iterations)
	transcript = append(transcript, n[:]...)
	binary.BigEndian.PutUint32(n[:], params.Memory)
	transcript = append(transcript, n[:]...)
	binary.BigEndian.PutUint32(n[:], uint32(params.Parallelism))
	transcript = append(transcript, n[:]...)

	return transcript
}
