package storage

import (
	"path/filepath"
	"strings"
)

// Resolve maps a client supplied slash-separated path onto an absolute path
// beneath the storage root. It never touches the filesystem.
func (s *Store) Resolve(requested string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(requested))
	cleaned = strings.TrimLeft(cleaned, string(filepath.Separator))
	if cleaned == "" || cleaned == "." {
		return s.root, nil
	}

	candidate := filepath.Join(s.root, cleaned)
	if !s.isWithinRoot(candidate) {
		return "", ErrPathEscape
	}

	return candidate, nil
}

// Relative returns the slash-separated form of abs relative to the root.
func (s *Store) Relative(abs string) string {
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == "." {
		return ""
	}

	return filepath.ToSlash(rel)
}

func (s *Store) isWithinRoot(target string) bool {
	rel, err := filepath.Rel(s.root, target)
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
