// Package contextkey bundles personal AI-interaction preferences into a
// portable, tamper-evident, password-protected file (a "context key") and
// opens such files with trust verification before use.
//
// A context key is built in two layers. The inner layer is a signed
// envelope: the user's context record plus a detached Ed25519 signature
// over its canonical serialization and the signing public key. The outer
// layer seals that envelope with AES-256-GCM under a key derived from the
// user's password with Argon2id. Sign-before-encrypt ordering means the
// record's integrity proof survives independent of the encryption layer.
//
// Basic usage:
//
//	identity, err := contextkey.GenerateIdentity()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	record := contextkey.NewContextRecord(time.Now())
//	record.Profile = contextkey.Profile{
//	    DisplayName: "Ana",
//	    Tone:        "concise",
//	    Domains:     []string{"ml"},
//	}
//
//	blob, err := contextkey.Seal(ctx, record, identity, "correct-horse")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... later, possibly in an unrelated application:
//	envelope, err := contextkey.Open(ctx, blob, "correct-horse")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("hello,", envelope.Record.Profile.DisplayName)
//
// A nil error from Open means the blob authenticated under the password
// and the envelope's signature verified. Open with the wrong password
// fails with a single generic *AuthenticationError that does not reveal
// whether the password was wrong or the file corrupted.
//
// Only [SealedBlob] ever crosses a trust boundary. Signed or plaintext
// records must never be persisted or transmitted.
package contextkey
