package crypto

import (
	"runtime"
	"sync"

	quillerr "github.com/mrz1836/quill/pkg/errors"
)

// SecureKey holds private key material in memory that is locked against
// swapping where the platform supports it and guaranteed to be zeroed on
// Destroy. A finalizer backstops callers that forget to destroy the key.
type SecureKey struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// NewSecureKey copies a 32-byte private scalar into secure memory and zeroes
// the caller's slice. The key is validated before it is accepted.
func NewSecureKey(privateKey []byte) (*SecureKey, error) {
	if err := ValidatePrivateKey(privateKey); err != nil {
		return nil, err
	}

	data := make([]byte, len(privateKey))
	copy(data, privateKey)
	Zero(privateKey)

	sk := &SecureKey{
		data:   data,
		locked: mlock(data),
	}

	runtime.SetFinalizer(sk, func(k *SecureKey) {
		k.Destroy()
	})

	return sk, nil
}

// Bytes returns the key material. Returns an error if the key has been
// destroyed. The returned slice is the live buffer; callers must not retain it
// past the operation that needed it.
func (k *SecureKey) Bytes() ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.data == nil {
		return nil, quillerr.WithDetails(quillerr.ErrInvalidKey, map[string]string{
			"reason": "key has been destroyed",
		})
	}
	return k.data, nil
}

// IsLocked returns whether the memory is locked (mlocked).
func (k *SecureKey) IsLocked() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.locked
}

// Destroy zeros the key memory and unlocks it.
// Safe to call multiple times.
func (k *SecureKey) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.data == nil {
		return
	}

	Zero(k.data)

	if k.locked {
		munlock(k.data)
		k.locked = false
	}

	k.data = nil

	// Remove the finalizer since we've already cleaned up
	runtime.SetFinalizer(k, nil)
}

// Zero overwrites a byte slice with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
