package pak

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Decompress inflates an LZMA stream to exactly rawLen bytes. The declared
// raw length comes from the entry table; a stream that produces fewer or
// more bytes is rejected, never silently truncated or padded. Stateless and
// safe to call concurrently with independent inputs.
func Decompress(compressed []byte, rawLen uint32) ([]byte, error) {
	zr, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}

	raw := make([]byte, rawLen)
	if _, err := io.ReadFull(zr, raw); err != nil {
		return nil, fmt.Errorf("%w: stream shorter than declared raw length %d: %v", ErrDecompress, rawLen, err)
	}

	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n != 0 {
		return nil, fmt.Errorf("%w: stream longer than declared raw length %d", ErrDecompress, rawLen)
	}

	return raw, nil
}

// compress produces the LZMA stream for an entry's raw bytes.
func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating lzma writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing lzma stream: %w", err)
	}
	return buf.Bytes(), nil
}
