package naming

import (
	"path/filepath"
	"strings"
)

// MaskPath builds the artifact path for src by appending suffix to the full
// source path, extension included:
//
//	data/cat.jpg → data/cat.jpg_mask.png
func MaskPath(src, suffix string) string {
	return src + suffix
}

// IsMaskArtifact reports whether path names a generated mask. Any base name
// containing the suffix marker is reserved, not only names ending with it.
func IsMaskArtifact(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	return strings.Contains(filepath.Base(path), suffix)
}

// SourceOf is the inverse of MaskPath. It reports false when mask does not
// end with suffix.
func SourceOf(mask, suffix string) (string, bool) {
	if suffix == "" || !strings.HasSuffix(mask, suffix) {
		return "", false
	}
	return strings.TrimSuffix(mask, suffix), true
}
