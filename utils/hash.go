package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// NormalizeContent lowercases text and collapses every whitespace run into a
// single space. Two posts whose bodies differ only by case or spacing
// normalize to the same string.
func NormalizeContent(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

// ContentFingerprint returns the dedup key for a post body: the md5 hex
// digest of the normalized content.
func ContentFingerprint(content string) string {
	sum := md5.Sum([]byte(NormalizeContent(content)))
	return hex.EncodeToString(sum[:])
}

func HashMediaFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
