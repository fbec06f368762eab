package pak

import "errors"

var (
	// ErrFormat reports a malformed or truncated archive container.
	ErrFormat = errors.New("malformed archive")

	// ErrNotFound reports a key or filename absent from the archive index.
	ErrNotFound = errors.New("entry not found")

	// ErrPending reports a read of a compressed entry before the background
	// decompression pass resolved it. Callers should AwaitReady first.
	ErrPending = errors.New("decompression in progress")

	// ErrDecompress reports that the codec rejected an entry's stream or that
	// the output did not match the declared raw length. Recorded per key by
	// the background pass and surfaced when that key is read.
	ErrDecompress = errors.New("decompression failed")
)
