package fsx

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// checksumPrefix identifies the hash algorithm in stored checksums.
const checksumPrefix = "sha256:"

// Checksum returns the canonical checksum of data, formatted "sha256:<hex>".
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s%x", checksumPrefix, sum)
}

// ChecksumString returns the canonical checksum of s.
func ChecksumString(s string) string {
	return Checksum([]byte(s))
}

// ChecksumFile returns the canonical checksum of the file at path.
func ChecksumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Checksum(data), nil
}
