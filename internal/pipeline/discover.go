package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/brightmask/internal/naming"
)

// ErrDiscovery is wrapped by Discover when the input directory cannot be
// listed. It is the only error that aborts a run.
var ErrDiscovery = errors.New("cannot list input directory")

// Supported image extensions. Matching is case-sensitive: ".JPG" is the only
// upper-case spelling accepted.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".JPG":  true,
}

// IsImageExt reports whether name carries a supported image extension.
func IsImageExt(name string) bool {
	return imageExtensions[filepath.Ext(name)]
}

// Discover lists dir (non-recursively) and returns the eligible source
// images, sorted.
func Discover(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDiscovery, dir, err)
	}
	return FilterEntries(dir, entries, suffix), nil
}

// FilterEntries selects the entries of dir that are regular files (symlinks
// must resolve to one) with a supported extension and that are not mask
// artifacts. The result is a sorted set: entries that resolve to the same
// file appear once, under the lexically first name.
func FilterEntries(dir string, entries []fs.DirEntry, suffix string) []string {
	var candidates []string
	for _, e := range entries {
		name := e.Name()
		if naming.IsMaskArtifact(name, suffix) || !IsImageExt(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if !isRegular(path, e) {
			continue
		}
		candidates = append(candidates, path)
	}
	sort.Strings(candidates)

	seen := make(map[string]bool, len(candidates))
	files := candidates[:0]
	for _, path := range candidates {
		key := identity(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		files = append(files, path)
	}
	return files
}

func isRegular(path string, e fs.DirEntry) bool {
	mode := e.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// identity is the key two paths share when they name the same file.
func identity(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
