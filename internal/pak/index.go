package pak

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Container layout, all little-endian:
//
//	magic "HPAK" | version u32 | entryCount u32
//	entryCount records of:
//	  key u32 | offset u64 | storedLength u32 | rawLength u32 | flags u32
//	payload bytes, addressed by the records above
var magic = [4]byte{'H', 'P', 'A', 'K'}

const (
	formatVersion = 1

	headerSize = 12
	recordSize = 24

	flagCompressed = 1 << 0
)

// Entry describes one stored asset. The archive holds no filenames; the key
// is the hash of the original path and is the only identity an entry has.
type Entry struct {
	Key          uint32
	Offset       uint64
	StoredLength uint32
	RawLength    uint32
	Compressed   bool
}

// Class selects which storage class of entries to enumerate.
type Class int

const (
	All Class = iota
	Compressed
	Noncompressed
)

// Index maps entry keys to their on-archive metadata. Built once when the
// archive is opened and read-only afterwards, so it is safe for concurrent
// readers without locking.
type Index struct {
	entries map[uint32]Entry
}

func parseIndex(r io.ReaderAt, fileSize int64) (*Index, error) {
	head := make([]byte, headerSize)
	if _, err := r.ReadAt(head, 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}

	if [4]byte(head[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, head[0:4])
	}
	if v := binary.LittleEndian.Uint32(head[4:8]); v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}

	count := binary.LittleEndian.Uint32(head[8:12])
	tableSize := int64(count) * recordSize
	if headerSize+tableSize > fileSize {
		return nil, fmt.Errorf("%w: entry table (%d entries) exceeds file size %d", ErrFormat, count, fileSize)
	}

	table := make([]byte, tableSize)
	if _, err := r.ReadAt(table, headerSize); err != nil {
		return nil, fmt.Errorf("%w: reading entry table: %v", ErrFormat, err)
	}

	entries := make(map[uint32]Entry, count)
	for i := uint32(0); i < count; i++ {
		rec := table[int64(i)*recordSize:]
		e := Entry{
			Key:          binary.LittleEndian.Uint32(rec[0:4]),
			Offset:       binary.LittleEndian.Uint64(rec[4:12]),
			StoredLength: binary.LittleEndian.Uint32(rec[12:16]),
			RawLength:    binary.LittleEndian.Uint32(rec[16:20]),
			Compressed:   binary.LittleEndian.Uint32(rec[20:24])&flagCompressed != 0,
		}

		if _, dup := entries[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %d", ErrFormat, e.Key)
		}
		if e.Offset+uint64(e.StoredLength) > uint64(fileSize) {
			return nil, fmt.Errorf("%w: entry %d out of bounds (offset=%d, size=%d, file=%d)",
				ErrFormat, e.Key, e.Offset, e.StoredLength, fileSize)
		}
		if !e.Compressed && e.RawLength != e.StoredLength {
			return nil, fmt.Errorf("%w: noncompressed entry %d declares raw length %d but stores %d",
				ErrFormat, e.Key, e.RawLength, e.StoredLength)
		}

		entries[e.Key] = e
	}

	return &Index{entries: entries}, nil
}

// Get returns the entry for a key.
func (idx *Index) Get(key uint32) (Entry, bool) {
	e, ok := idx.entries[key]
	return e, ok
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Keys enumerates entry keys by storage class. The result carries no
// ordering guarantee.
func (idx *Index) Keys(class Class) []uint32 {
	keys := make([]uint32, 0, len(idx.entries))
	for k, e := range idx.entries {
		switch class {
		case Compressed:
			if !e.Compressed {
				continue
			}
		case Noncompressed:
			if e.Compressed {
				continue
			}
		}
		keys = append(keys, k)
	}
	return keys
}
