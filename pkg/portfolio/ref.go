package portfolio

import (
	"fmt"
	"math/rand/v2"
	"path"
	"strings"
	"time"
)

// NewFileRef builds the reference for a newly stored file: the category
// segment plus a collision-resistant generated name (millisecond timestamp
// and random suffix) preserving the original file extension. Using a
// generated name avoids any global counter.
func NewFileRef(category FileCategory, filename string) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("unknown file category %q", category)
	}
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%d-%09d%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
	return RefPrefix + string(category) + "/" + name, nil
}

// ParseRef validates that ref lies under the managed upload root and
// returns its slash-separated path relative to that root. References that
// escape the root (wrong prefix, traversal segments) yield
// ErrInvalidReference; file stores must call this before touching storage.
func ParseRef(ref string) (string, error) {
	if !strings.HasPrefix(ref, RefPrefix) {
		return "", ErrInvalidReference
	}
	rel := path.Clean(strings.TrimPrefix(ref, RefPrefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || strings.HasPrefix(rel, "/") {
		return "", ErrInvalidReference
	}
	return rel, nil
}
