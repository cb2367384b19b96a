package contextkey

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/resetroot99/context-key/internal/canonical"
	"github.com/resetroot99/context-key/internal/crypto"
)

// SignedEnvelope wraps a context record with a detached Ed25519 signature
// and the public key that produced it. The signature covers the canonical
// serialization of the record, so verification is independent of field
// ordering in any transport encoding.
//
// An envelope is immutable once created: any change to Record invalidates
// Signature. Re-sign a modified record with [Sign]; never patch an envelope
// in place.
type SignedEnvelope struct {
	// Record is the signed context record.
	Record ContextRecord `json:"record"`
	// Signature is the detached Ed25519 signature over the record's
	// canonical bytes.
	Signature []byte `json:"signature"`
	// PublicKey is the Ed25519 public key paired with the signing key.
	PublicKey []byte `json:"public_key"`
}

// Sign validates record, computes its canonical bytes, and produces a
// signed envelope using identity's private key. The envelope's public key
// is re-derived from the private key, never taken on trust.
func Sign(record *ContextRecord, identity *Identity) (*SignedEnvelope, error) {
	if record == nil {
		return nil, &ValidationError{Errors: []string{"record is required"}}
	}
	if identity == nil {
		return nil, &ValidationError{Errors: []string{"identity is required"}}
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	message, err := canonical.Marshal(record)
	if err != nil {
		return nil, &ValidationError{Errors: []string{err.Error()}}
	}

	publicKey, err := crypto.PublicKeyFromPrivate(identity.PrivateKey)
	if err != nil {
		return nil, &ValidationError{Errors: []string{"private key must be 64 bytes"}}
	}

	signature, err := crypto.Sign(identity.PrivateKey, message)
	if err != nil {
		return nil, &ValidationError{Errors: []string{"private key must be 64 bytes"}}
	}

	return &SignedEnvelope{
		Record:    *record,
		Signature: signature,
		PublicKey: publicKey,
	}, nil
}

// Verify recomputes the canonical bytes of the embedded record and checks
// the detached signature against the embedded public key. It returns false,
// never panics, on malformed signature bytes or wrong-length keys.
func (e *SignedEnvelope) Verify() bool {
	if e == nil {
		return false
	}

	message, err := canonical.Marshal(e.Record)
	if err != nil {
		return false
	}

	return crypto.Verify(e.PublicKey, message, e.Signature)
}

// CBOR modes for the envelope wire encoding inside the sealed blob.
// Decoding is strict: unknown fields are rejected so extraneous data cannot
// ride along beneath the signature.
var (
	envelopeEncMode = mustEncMode()
	envelopeDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// encodeEnvelope serializes an envelope to its CBOR wire form.
func encodeEnvelope(e *SignedEnvelope) ([]byte, error) {
	return envelopeEncMode.Marshal(e)
}

// decodeEnvelope parses CBOR wire bytes back into an envelope, rejecting
// unknown fields.
func decodeEnvelope(data []byte) (*SignedEnvelope, error) {
	var e SignedEnvelope
	if err := envelopeDecMode.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
