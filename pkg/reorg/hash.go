package reorg

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// DefaultHashThreshold is the size cutoff below which file contents are
// hashed for integrity verification. Hashing larger files would defeat the
// purpose of a fast pre-move snapshot.
const DefaultHashThreshold = 10 * 1024 * 1024

// HashFile computes the SHA-256 hex digest of a file's contents, streaming
// in chunks so large files never load fully into memory.
func HashFile(fsys filesystem.ReadFS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
