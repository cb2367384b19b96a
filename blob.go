package contextkey

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/resetroot99/context-key/internal/crypto"
)

// FileExtension is the conventional file extension for sealed blobs.
const FileExtension = ".ckey"

// Base64Bytes is a byte slice that encodes to standard base64 in JSON.
// All binary fields of the .ckey document use this type.
type Base64Bytes []byte

// MarshalJSON implements json.Marshaler for Base64Bytes.
func (b Base64Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(crypto.ToBase64(b))
}

// UnmarshalJSON implements json.Unmarshaler for Base64Bytes.
func (b *Base64Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}

	decoded, err := crypto.FromBase64(encoded)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// KDFParams records the key-derivation parameters used at seal time.
// Open-time derivation replays them, so they must describe exactly the
// computation that produced the key.
type KDFParams struct {
	// Algorithm identifies the derivation function. Always "argon2id".
	Algorithm string `json:"algorithm"`
	// Iterations is the Argon2id time parameter.
	Iterations uint32 `json:"iterations"`
	// Memory is the Argon2id memory parameter in KiB.
	Memory uint32 `json:"memory"`
	// Parallelism is the Argon2id lane count.
	Parallelism uint8 `json:"parallelism"`
}

// DefaultKDFParams returns the Argon2id parameters used when no option
// overrides them: 3 iterations, 64 MiB, 4 lanes.
func DefaultKDFParams() KDFParams {
	return fromInternalParams(crypto.DefaultKDFParams())
}

func (p KDFParams) toInternal() crypto.KDFParams {
	return crypto.KDFParams{
		Algorithm:   p.Algorithm,
		Iterations:  p.Iterations,
		Memory:      p.Memory,
		Parallelism: p.Parallelism,
	}
}

func fromInternalParams(p crypto.KDFParams) KDFParams {
	return KDFParams{
		Algorithm:   p.Algorithm,
		Iterations:  p.Iterations,
		Memory:      p.Memory,
		Parallelism: p.Parallelism,
	}
}

// SealedBlob is the storage and transport form of a context key: the AEAD
// ciphertext plus everything needed to reverse the encryption given the
// correct password. It is the only form that may cross a trust boundary.
type SealedBlob struct {
	// EncryptedData is the AES-256-GCM ciphertext and tag.
	EncryptedData Base64Bytes `json:"encrypted_data"`
	// IV is the 12-byte AES-GCM nonce, unique per seal.
	IV Base64Bytes `json:"iv"`
	// Salt is the 32-byte KDF salt, unique per seal.
	Salt Base64Bytes `json:"salt"`
	// KDFParams are the derivation parameters replayed at open time.
	KDFParams KDFParams `json:"kdf_params"`
}

// Encode serializes the blob to its .ckey JSON document form.
func (b *SealedBlob) Encode() ([]byte, error) {
	return json.Marshal(b)
}

// ParseSealedBlob parses a .ckey JSON document. Unknown fields, bad base64,
// wrong nonce or salt lengths, and out-of-range KDF parameters are all
// rejected with a *FormatError.
func ParseSealedBlob(data []byte) (*SealedBlob, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var b SealedBlob
	if err := dec.Decode(&b); err != nil {
		return nil, &FormatError{Err: err}
	}

	if err := b.validate(); err != nil {
		return nil, &FormatError{Err: err}
	}
	return &b, nil
}

// validate checks field lengths and KDF parameter bounds.
func (b *SealedBlob) validate() error {
	if len(b.EncryptedData) < crypto.AESTagSize {
		return fmt.Errorf("encrypted_data too short: %d bytes", len(b.EncryptedData))
	}

	if len(b.IV) != crypto.AESNonceSize {
		return fmt.Errorf("iv must be %d bytes, got %d", crypto.AESNonceSize, len(b.IV))
	}

	if len(b.Salt) != crypto.SaltSize {
		return fmt.Errorf("salt must be %d bytes, got %d", crypto.SaltSize, len(b.Salt))
	}

	return b.KDFParams.toInternal().Validate()
}
