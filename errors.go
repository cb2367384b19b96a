package contextkey

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrAuthenticationFailed is returned when a blob cannot be opened.
	// Wrong password and corrupted ciphertext are indistinguishable by design.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSignatureInvalid is returned when a decrypted envelope's signature
	// does not verify.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrInvalidFormat is returned when a blob or envelope fails to parse.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrGenerationFailed is returned when the secure random source fails
	// during key, salt, or nonce generation. This is fatal, not retried.
	ErrGenerationFailed = errors.New("key material generation failed")
)

// ContextKeyError is implemented by all errors returned from this package.
type ContextKeyError interface {
	error
	ContextKeyError() // marker method
}

// ValidationError reports a record or input that cannot be sealed. It
// collects every problem found rather than stopping at the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// ContextKeyError implements the ContextKeyError interface.
func (e *ValidationError) ContextKeyError() {}

// GenerationError reports an entropy-source failure during key, salt, or
// nonce generation. It is fatal: the operation is not retried.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("key material generation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// ContextKeyError implements the ContextKeyError interface.
func (e *GenerationError) ContextKeyError() {}

// AuthenticationError reports that a blob could not be opened. The message
// is deliberately generic: it never distinguishes a wrong password from
// corrupted ciphertext, and is safe to surface to an end user as-is.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "unable to open context key: wrong password or corrupted data"
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// ContextKeyError implements the ContextKeyError interface.
func (e *AuthenticationError) ContextKeyError() {}

// FormatError reports bytes that fail to parse as a sealed blob or, after a
// successful decryption, as a signed envelope. The latter indicates a
// version mismatch or internal corruption rather than a wrong password.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid context key format: %v", e.Err)
	}
	return "invalid context key format"
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ContextKeyError implements the ContextKeyError interface.
func (e *FormatError) ContextKeyError() {}

// SignatureError reports that an envelope decrypted successfully but its
// signature does not verify: the password was right, but the signer is not
// trusted or the record was modified after signing.
type SignatureError struct{}

func (e *SignatureError) Error() string {
	return "signature verification failed: the context key decrypted but its content is not trusted"
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// ContextKeyError implements the ContextKeyError interface.
func (e *SignatureError) ContextKeyError() {}
