package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// Buffer holds a fetched secret payload in protected memory between the
// store call and parsing. It wraps memguard.Enclave, which encrypts the
// bytes at rest and mlocks the plaintext while it is open.
type Buffer struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy() calls and prevents use after
	// destroy
	destroyed bool
}

// NewBuffer creates a protected buffer from payload bytes. The input is
// copied into the enclave immediately; the caller keeps ownership of (and
// should zero) the original slice.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		enclave: memguard.NewEnclave(data),
	}
}

// Open decrypts the payload into a locked buffer. The caller MUST call
// Destroy() on the returned LockedBuffer once parsing is done so the
// plaintext is wiped.
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
//	parse(locked.Bytes())
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed || b.enclave == nil {
		return nil, errors.New("buffer already destroyed")
	}
	return b.enclave.Open()
}

// Destroy marks the buffer as destroyed. The enclave's data is encrypted at
// rest, so dropping the reference is sufficient; this just guards against
// accidental reuse. Idempotent.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}

// Purge wipes all memguard state. Call via defer in main so every enclave is
// destroyed on exit regardless of the command path taken.
func Purge() {
	memguard.Purge()
}
