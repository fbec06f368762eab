package pak

import (
	"fmt"
	"os"
)

// Reader owns the open archive file and its parsed index. The file is held
// read-only for the Reader's lifetime; positioned reads via ReadAt are safe
// from multiple goroutines, so decompression workers and the caller's own
// reads share the handle without locking. Close invalidates all further
// reads.
type Reader struct {
	f     *os.File
	size  int64
	index *Index
}

// OpenReader opens an archive file and parses its entry table.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	index, err := parseIndex(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing archive %s: %w", path, err)
	}

	return &Reader{f: f, size: fi.Size(), index: index}, nil
}

// Index returns the parsed entry table.
func (r *Reader) Index() *Index {
	return r.index
}

// ReadRaw reads an entry's stored bytes, exactly StoredLength bytes at
// Offset. For compressed entries this is the LZMA stream, not the asset.
func (r *Reader) ReadRaw(e Entry) ([]byte, error) {
	buf := make([]byte, e.StoredLength)
	if _, err := r.f.ReadAt(buf, int64(e.Offset)); err != nil {
		return nil, fmt.Errorf("reading entry %d (offset=%d, size=%d): %w", e.Key, e.Offset, e.StoredLength, err)
	}
	return buf, nil
}

// Close releases the archive file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}
