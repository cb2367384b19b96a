package contextkey

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/resetroot99/context-key/internal/crypto"
)

// fastKDF keeps test derivations cheap while exercising the same code path
// as the production defaults.
func fastKDF() SealOption {
	return WithKDFParams(KDFParams{Iterations: 1, Memory: 64, Parallelism: 1})
}

func TestSealOpen_RoundTrip(t *testing.T) {
	identity := testIdentity(t)
	record := validTestRecord()
	ctx := context.Background()

	blob, err := Seal(ctx, record, identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	envelope, err := Open(ctx, blob, "correct-horse")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if !reflect.DeepEqual(envelope.Record, *record) {
		t.Errorf("opened record = %+v, want %+v", envelope.Record, *record)
	}
	if !envelope.Verify() {
		t.Error("opened envelope does not verify")
	}
}

func TestSealOpen_EncodedBlobRoundTrip(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	blob, err := Seal(ctx, validTestRecord(), identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}

	// Through the .ckey document form, as a file on disk would travel.
	data, err := blob.Encode()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseSealedBlob(data)
	if err != nil {
		t.Fatal(err)
	}

	envelope, err := Open(ctx, parsed, "correct-horse")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !envelope.Verify() {
		t.Error("envelope does not verify after document round trip")
	}
}

func TestSeal_RecordsMatchingKDFParams(t *testing.T) {
	identity := testIdentity(t)
	params := KDFParams{Iterations: 2, Memory: 128, Parallelism: 1}

	blob, err := Seal(context.Background(), validTestRecord(), identity, "pw", WithKDFParams(params))
	if err != nil {
		t.Fatal(err)
	}

	if blob.KDFParams.Algorithm != "argon2id" {
		t.Errorf("algorithm = %q, want %q", blob.KDFParams.Algorithm, "argon2id")
	}
	if blob.KDFParams.Iterations != params.Iterations ||
		blob.KDFParams.Memory != params.Memory ||
		blob.KDFParams.Parallelism != params.Parallelism {
		t.Errorf("recorded params %+v do not match requested %+v", blob.KDFParams, params)
	}
}

func TestSeal_FreshSaltAndNoncePerCall(t *testing.T) {
	identity := testIdentity(t)
	record := validTestRecord()
	ctx := context.Background()

	blob1, err := Seal(ctx, record, identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}
	blob2, err := Seal(ctx, record, identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(blob1.Salt, blob2.Salt) {
		t.Error("two seals produced the same salt")
	}
	if bytes.Equal(blob1.IV, blob2.IV) {
		t.Error("two seals produced the same nonce")
	}
	if bytes.Equal(blob1.EncryptedData, blob2.EncryptedData) {
		t.Error("two seals produced the same ciphertext")
	}

	// Both still open to equal records.
	e1, err := Open(ctx, blob1, "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	e2, err := Open(ctx, blob2, "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e1.Record, e2.Record) {
		t.Error("records from the two blobs differ")
	}
}

func TestOpen_WrongPassword(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	blob, err := Seal(ctx, validTestRecord(), identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}

	envelope, err := Open(ctx, blob, "wrong-password")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
	if envelope != nil {
		t.Error("no envelope may be returned on authentication failure")
	}
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	blob, err := Seal(ctx, validTestRecord(), identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*SealedBlob)
	}{
		{"ciphertext bit flip", func(b *SealedBlob) { b.EncryptedData[0] ^= 0x01 }},
		{"tag bit flip", func(b *SealedBlob) { b.EncryptedData[len(b.EncryptedData)-1] ^= 0x01 }},
		{"nonce bit flip", func(b *SealedBlob) { b.IV[0] ^= 0x01 }},
		{"salt bit flip", func(b *SealedBlob) { b.Salt[0] ^= 0x01 }},
		{"kdf iterations bump", func(b *SealedBlob) { b.KDFParams.Iterations++ }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := blob.Encode()
			if err != nil {
				t.Fatal(err)
			}
			tampered, err := ParseSealedBlob(data)
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(tampered)

			// Even with the correct password, tampering must surface as
			// the same opaque authentication failure.
			_, err = Open(ctx, tampered, "correct-horse")
			if !errors.Is(err, ErrAuthenticationFailed) {
				t.Errorf("expected ErrAuthenticationFailed, got %v", err)
			}
		})
	}
}

func TestOpen_SignatureInvalidEnvelopeStillDiscoverable(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	// Build a blob whose envelope decrypts fine but carries a signature
	// over different record content: sign, then mutate, then seal the
	// mutated envelope manually with the same primitives Seal uses.
	envelope, err := Sign(validTestRecord(), identity)
	if err != nil {
		t.Fatal(err)
	}
	envelope.Record.Profile.DisplayName = "Eve"

	plaintext, err := encodeEnvelope(envelope)
	if err != nil {
		t.Fatal(err)
	}

	params := crypto.KDFParams{Algorithm: crypto.AlgorithmArgon2id, Iterations: 1, Memory: 64, Parallelism: 1}
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		t.Fatal(err)
	}
	nonce, err := crypto.RandomBytes(crypto.AESNonceSize)
	if err != nil {
		t.Fatal(err)
	}
	key, err := crypto.DeriveKey(ctx, []byte("correct-horse"), salt, params)
	if err != nil {
		t.Fatal(err)
	}
	ciphertext, err := crypto.EncryptAESGCM(key, nonce, sealTranscript(salt, params), plaintext)
	if err != nil {
		t.Fatal(err)
	}

	blob := &SealedBlob{
		EncryptedData: ciphertext,
		IV:            nonce,
		Salt:          salt,
		KDFParams:     fromInternalParams(params),
	}

	opened, err := Open(ctx, blob, "correct-horse")
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}

	// The decrypted record remains discoverable at the caller's own risk.
	if opened == nil {
		t.Fatal("envelope should accompany a SignatureError")
	}
	if opened.Record.Profile.DisplayName != "Eve" {
		t.Errorf("display name = %q, want %q", opened.Record.Profile.DisplayName, "Eve")
	}
	if opened.Verify() {
		t.Error("tampered envelope must not verify")
	}
}

func TestSeal_InvalidKDFParams(t *testing.T) {
	identity := testIdentity(t)

	_, err := Seal(context.Background(), validTestRecord(), identity, "pw",
		WithKDFParams(KDFParams{Iterations: 0, Memory: 64, Parallelism: 1}))

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected *ValidationError, got %v", err)
	}
}

func TestSeal_Cancellation(t *testing.T) {
	identity := testIdentity(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Default (expensive) derivation with an already-cancelled context.
	_, err := Seal(ctx, validTestRecord(), identity, "correct-horse")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpen_NilBlob(t *testing.T) {
	_, err := Open(context.Background(), nil, "pw")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestSealOpen_Concurrent(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			record := validTestRecord()
			blob, err := Seal(ctx, record, identity, "correct-horse", fastKDF())
			if err != nil {
				t.Errorf("Seal() error = %v", err)
				return
			}
			envelope, err := Open(ctx, blob, "correct-horse")
			if err != nil {
				t.Errorf("Open() error = %v", err)
				return
			}
			if envelope.Record.ID != record.ID {
				t.Errorf("record id = %q, want %q", envelope.Record.ID, record.ID)
			}
		}()
	}
	wg.Wait()
}

// The end-to-end scenario: seal a small profile, open it with the right and
// wrong passwords, and corrupt the ciphertext in transit.
func TestSealOpen_Scenario(t *testing.T) {
	identity := testIdentity(t)
	ctx := context.Background()

	record := validTestRecord()
	record.Profile = Profile{DisplayName: "Ana", Tone: "concise", Domains: []string{"ml"}}

	blob, err := Seal(ctx, record, identity, "correct-horse", fastKDF())
	if err != nil {
		t.Fatal(err)
	}

	envelope, err := Open(ctx, blob, "correct-horse")
	if err != nil {
		t.Fatalf("Open() with correct password: %v", err)
	}
	if envelope.Record.Profile.DisplayName != "Ana" ||
		envelope.Record.Profile.Tone != "concise" ||
		!reflect.DeepEqual(envelope.Record.Profile.Domains, []string{"ml"}) {
		t.Errorf("profile = %+v, want Ana/concise/[ml]", envelope.Record.Profile)
	}
	if !envelope.Verify() {
		t.Error("Verify() = false")
	}

	if _, err := Open(ctx, blob, "wrong-password"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password: expected ErrAuthenticationFailed, got %v", err)
	}

	blob.EncryptedData[3] ^= 0x04
	if _, err := Open(ctx, blob, "correct-horse"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("flipped bit: expected ErrAuthenticationFailed, got %v", err)
	}
}
