// Package crypto provides the cryptographic primitives for the context-key
// envelope format. It implements detached digital signatures, password-based
// key derivation, and authenticated encryption using modern, standardized
// algorithms.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - Ed25519 (RFC 8032): Edwards-curve digital signatures for signing
//     context records. Signatures are detached and verified against a
//     recomputation of the record's canonical bytes.
//
//   - Argon2id (RFC 9106): Memory-hard password-based key derivation for
//     stretching a user password and random salt into an AES-256 key. The
//     cost parameters used at seal time are recorded in the sealed blob and
//     replayed at open time.
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD)
//     for sealing the signed envelope. Provides confidentiality and
//     integrity in one primitive.
//
// # Security Model
//
// The sealing scheme provides:
//
//   - Confidentiality: Only a holder of the password can decrypt the blob.
//   - Authenticity: The Ed25519 signature proves the record was produced by
//     the holder of the signing key, independent of the encryption layer.
//   - Integrity: Tampering with the ciphertext, nonce, salt, or recorded
//     KDF parameters causes AEAD open to fail.
//
// Sign-before-encrypt ordering means the plaintext protected by encryption
// already carries its own integrity proof, so the encryption layer can be
// swapped in a future format version without re-signing.
//
// # Critical Security Notes
//
// AES-GCM nonces MUST be unique for each seal with the same key. Nonce
// reuse completely breaks the security of AES-GCM. Salts MUST be unique per
// seal so that identical passwords never derive identical keys.
//
// AEAD open failure is deliberately opaque: a wrong password and a
// corrupted ciphertext are indistinguishable from the error alone, to avoid
// acting as a decryption oracle.
//
// # Key Management
//
// Use [GenerateKeypair] to create a new Ed25519 keypair. The public key can
// be re-derived from the private key with [PublicKeyFromPrivate]. Derived
// symmetric keys should be passed to [Zeroize] as soon as the operation
// that needed them completes.
package crypto
