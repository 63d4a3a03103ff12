// Package secure provides memory-safe handling of fetched secret payloads.
//
// This package wraps the memguard library to hold secret text in protected
// memory between the store call and parsing. It ensures that sensitive data
// is:
//
//   - Encrypted at rest in memory (XSalsa20Poly1305)
//   - Protected from swapping via mlock
//   - Securely wiped when no longer needed
//   - Protected from buffer overflow via guard pages
//
// # Usage
//
// Create a protected buffer from payload bytes:
//
//	buf := secure.NewBuffer(payloadBytes)
//	defer buf.Destroy() // Always destroy when done
//
//	// When you need the plaintext:
//	locked, err := buf.Open()
//	if err != nil {
//	    // Handle error
//	}
//	defer locked.Destroy() // Destroy the unlocked buffer when done
//
//	parse(locked.Bytes())
//
// The process entry point should defer secure.Purge() so every enclave is
// wiped on exit regardless of the command path taken.
//
// # Platform Behavior
//
// Memory locking behavior varies by platform:
//
//   - Linux: Requires RLIMIT_MEMLOCK to be set appropriately
//   - macOS: Works out of the box
//   - Windows: Uses VirtualLock
//
// If mlock is unavailable or fails, the package logs a warning and
// continues with standard Go memory (graceful degradation).
//
// # Security Guarantees
//
// This package provides defense-in-depth against memory-based attacks:
//
//   - Core dumps will not contain plaintext secrets
//   - Secrets won't be swapped to disk
//   - Memory is overwritten with zeros on destruction
//   - Guard pages detect buffer overflows
//
// It does NOT protect against:
//
//   - Attackers with root access to the running process
//   - Hardware-level attacks (cold boot, DMA)
//   - Spectre/Meltdown side-channel attacks
package secure
