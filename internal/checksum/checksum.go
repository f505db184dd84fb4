// Package checksum computes a BLAKE2b-256 content digest over a committed
// list file's body, for operators comparing two runs of the same seed list
// without diffing files byte by byte. It is observability only -- nothing
// downstream enforces the digest.
package checksum

import (
	"fmt"
	"io"

	"github.com/gtank/blake2/blake2b"
)

// Digest streams r and returns the hex-encoded BLAKE2b-256 digest of its
// content.
func Digest(r io.Reader) (string, error) {
	d, err := blake2b.NewDigest(nil, nil, nil, 32)
	if err != nil {
		return "", fmt.Errorf("checksum: create digest: %w", err)
	}
	if _, err := io.Copy(d, r); err != nil {
		return "", fmt.Errorf("checksum: read: %w", err)
	}
	return fmt.Sprintf("%x", d.Sum(nil)), nil
}
