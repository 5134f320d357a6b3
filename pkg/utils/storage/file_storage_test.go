package storage

import (
	"strings"
	"testing"
)

func TestObjectKey_ExtensionFromContentType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}

	for contentType, ext := range cases {
		key := objectKey(42, contentType)
		if !strings.HasPrefix(key, "listings/42/") {
			t.Errorf("objectKey(%q) = %q, want listings/42/ prefix", contentType, key)
		}
		if !strings.HasSuffix(key, ext) {
			t.Errorf("objectKey(%q) = %q, want %s suffix", contentType, key, ext)
		}
	}
}

func TestObjectKey_KeysAreUnique(t *testing.T) {
	if objectKey(1, "image/jpeg") == objectKey(1, "image/jpeg") {
		t.Error("objectKey returned the same key twice")
	}
}
