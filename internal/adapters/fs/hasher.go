// Package fs detects file content changes by hashing.
package fs

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/spin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeDetector = (*Hasher)(nil)

// Hasher remembers the XXHash of every file it has seen.
type Hasher struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewHasher creates a new Hasher with no history.
func NewHasher() *Hasher {
	return &Hasher{hashes: make(map[string]uint64)}
}

// ComputeFileHash computes the XXHash of a file's content.
func ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the file watcher
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if info.IsDir() {
		return 0, zerr.With(zerr.New("path is a directory"), "path", path)
	}

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Changed implements ports.ChangeDetector. Directories never count as
// changed on their own; the files inside them report their own events.
func (h *Hasher) Changed(paths []string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := make([]string, 0, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}

		sum, err := ComputeFileHash(path)
		if err != nil {
			// Removed or unreadable: always worth a rebuild.
			delete(h.hashes, path)
			changed = append(changed, path)
			continue
		}

		if prev, ok := h.hashes[path]; ok && prev == sum {
			continue
		}
		h.hashes[path] = sum
		changed = append(changed, path)
	}
	return changed
}
