package pak

import "strings"

// HashPath computes the 32-bit FNV-1a hash of a normalized asset path. This
// is the key space used by Entry.Key: the archive stores no filenames, so a
// caller-supplied path must be hashed to locate its entry. There is no
// inverse; keys cannot be turned back into names.
//
// Normalization follows the archive's convention: backslashes become forward
// slashes, the path is lowercased, and leading separators are trimmed.
func HashPath(path string) uint32 {
	const (
		fnvBasis = uint32(0x811c9dc5)
		fnvPrime = uint32(0x01000193)
	)

	normalized := normalizePath(path)

	hash := fnvBasis
	for i := 0; i < len(normalized); i++ {
		hash ^= uint32(normalized[i])
		hash *= fnvPrime
	}

	return hash
}

func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ToLower(path)
	return strings.TrimLeft(path, "/")
}
