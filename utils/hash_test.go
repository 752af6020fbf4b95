package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentFingerprintIgnoresCaseAndWhitespace(t *testing.T) {
	base := ContentFingerprint("Áo polo nam đẹp giá rẻ")

	assert.Equal(t, base, ContentFingerprint("áo POLO nam đẹp giá rẻ"))
	assert.Equal(t, base, ContentFingerprint("  Áo   polo\nnam\tđẹp  giá rẻ "))
	assert.NotEqual(t, base, ContentFingerprint("Áo polo nam đẹp giá rẻ hơn"))
}

func TestNormalizeContent(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeContent("  A \n B\t\tC "))
	assert.Equal(t, "", NormalizeContent("   \n\t "))
}

func TestHashMediaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	hash, err := HashMediaFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", hash)
}

func TestGetURLExtension(t *testing.T) {
	assert.Equal(t, ".jpg", GetURLExtension("https://cdn.example.com/a/b/photo.JPG?x=1"))
	assert.Equal(t, "", GetURLExtension("https://cdn.example.com/a/b/photo"))
}
