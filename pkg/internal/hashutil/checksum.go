package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/pubtree/pkg/types"
)

// Checksum returns the SHA256 checksum of data.
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// FileChecksum calculates the SHA256 checksum of a file read through fsys.
func FileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Checksum(data), nil
}

// SameContent reports whether file a on fsA and file b on fsB have
// identical checksums.
func SameContent(fsA types.FS, a string, fsB types.FS, b string) (bool, error) {
	sumA, err := FileChecksum(fsA, a)
	if err != nil {
		return false, err
	}
	sumB, err := FileChecksum(fsB, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
