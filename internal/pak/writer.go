package pak

import (
	"encoding/binary"
	"fmt"
	"io"
)

type writerEntry struct {
	key        uint32
	payload    []byte
	rawLength  uint32
	compressed bool
}

// Writer builds an archive container from asset bytes. Entries keyed by path
// use the same HashPath key space the reader resolves against, so a path
// collision between two distinct assets is detected at Add time rather than
// producing a broken table.
type Writer struct {
	entries []writerEntry
	names   map[uint32]string
}

// NewWriter returns an empty archive writer.
func NewWriter() *Writer {
	return &Writer{names: make(map[uint32]string)}
}

// Add stores an asset under the hash of its path, compressing it when
// compress is set.
func (w *Writer) Add(name string, data []byte, compress bool) error {
	key := HashPath(name)
	if prev, ok := w.names[key]; ok {
		return fmt.Errorf("path %q collides with %q on key %d", name, prev, key)
	}
	if err := w.AddKeyed(key, data, compress); err != nil {
		return err
	}
	w.names[key] = name
	return nil
}

// AddKeyed stores an asset under an explicit key.
func (w *Writer) AddKeyed(key uint32, data []byte, compressed bool) error {
	for _, e := range w.entries {
		if e.key == key {
			return fmt.Errorf("duplicate key %d", key)
		}
	}

	payload := data
	if compressed {
		var err error
		payload, err = compress(data)
		if err != nil {
			return fmt.Errorf("entry %d: %w", key, err)
		}
	}

	w.entries = append(w.entries, writerEntry{
		key:        key,
		payload:    payload,
		rawLength:  uint32(len(data)),
		compressed: compressed,
	})
	return nil
}

// WriteTo writes the complete container: header, entry table, then payloads
// in insertion order.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	head := make([]byte, headerSize)
	copy(head[0:4], magic[:])
	binary.LittleEndian.PutUint32(head[4:8], formatVersion)
	binary.LittleEndian.PutUint32(head[8:12], uint32(len(w.entries)))

	var written int64
	n, err := out.Write(head)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("writing header: %w", err)
	}

	offset := uint64(headerSize) + uint64(len(w.entries))*recordSize
	table := make([]byte, len(w.entries)*recordSize)
	for i, e := range w.entries {
		rec := table[i*recordSize:]
		binary.LittleEndian.PutUint32(rec[0:4], e.key)
		binary.LittleEndian.PutUint64(rec[4:12], offset)
		binary.LittleEndian.PutUint32(rec[12:16], uint32(len(e.payload)))
		binary.LittleEndian.PutUint32(rec[16:20], e.rawLength)
		var flags uint32
		if e.compressed {
			flags |= flagCompressed
		}
		binary.LittleEndian.PutUint32(rec[20:24], flags)
		offset += uint64(len(e.payload))
	}

	n, err = out.Write(table)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("writing entry table: %w", err)
	}

	for _, e := range w.entries {
		n, err := out.Write(e.payload)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("writing entry %d payload: %w", e.key, err)
		}
	}

	return written, nil
}
