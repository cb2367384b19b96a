package crypto

import (
	"context"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KDFParams holds the Argon2id cost parameters recorded in a sealed blob.
// The parameters recorded at seal time must exactly match those used to
// derive the key, since open-time derivation replays them.
type KDFParams struct {
	// Algorithm identifies the derivation function. Always "argon2id".
	Algorithm string
	// Iterations is the Argon2id time parameter.
	Iterations uint32
	// Memory is the Argon2id memory parameter in KiB.
	Memory uint32
	// Parallelism is the Argon2id lane count.
	Parallelism uint8
}

// DefaultKDFParams returns the default Argon2id cost parameters.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Algorithm:   AlgorithmArgon2id,
		Iterations:  DefaultArgon2Iterations,
		Memory:      DefaultArgon2Memory,
		Parallelism: DefaultArgon2Parallelism,
	}
}

// Validate checks that the parameters identify a supported algorithm and
// sit inside the bounds the opener is willing to compute.
func (p KDFParams) Validate() error {
	if p.Algorithm != AlgorithmArgon2id {
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKDFParams, p.Algorithm)
	}

	if p.Iterations < MinArgon2Iterations || p.Iterations > MaxArgon2Iterations {
		return fmt.Errorf("%w: iterations %d outside [%d, %d]",
			ErrInvalidKDFParams, p.Iterations, MinArgon2Iterations, MaxArgon2Iterations)
	}

	if p.Parallelism < MinArgon2Parallelism || p.Parallelism > MaxArgon2Parallelism {
		return fmt.Errorf("%w: parallelism %d outside [%d, %d]",
			ErrInvalidKDFParams, p.Parallelism, MinArgon2Parallelism, MaxArgon2Parallelism)
	}

	// Argon2 requires at least 8 KiB per lane.
	minMemory := 8 * uint32(p.Parallelism)
	if p.Memory < minMemory || p.Memory > MaxArgon2Memory {
		return fmt.Errorf("%w: memory %d KiB outside [%d, %d]",
			ErrInvalidKDFParams, p.Memory, minMemory, MaxArgon2Memory)
	}

	return nil
}

// DeriveKey stretches a password and salt into an AES-256 key using
// Argon2id with the given cost parameters. Derivation is deterministic for
// identical inputs.
//
// The computation is CPU- and memory-intensive by design, so it runs in its
// own goroutine and the caller waits on it or on ctx. If ctx is cancelled
// first, the worker zeroizes the derived key instead of handing it over and
// DeriveKey returns ctx.Err().
func DeriveKey(ctx context.Context, password, salt []byte, params KDFParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltSize
	}

	// Unbuffered: the handoff either reaches the waiting caller or the
	// worker observes cancellation and discards the key material.
	keyCh := make(chan []byte)

	go func() {
		key := argon2.IDKey(password, salt, params.Iterations, params.Memory, params.Parallelism, AESKeySize)
		select {
		case keyCh <- key:
		case <-ctx.Done():
			Zeroize(key)
		}
	}()

	select {
	case key := <-keyCh:
		return key, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
