package pak

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecompress(t *testing.T) {
	raw := pattern(1000)
	stream, err := compress(raw)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	t.Run("RoundTrip", func(t *testing.T) {
		got, err := Decompress(stream, uint32(len(raw)))
		if err != nil {
			t.Fatalf("decompress: %v", err)
		}
		if !bytes.Equal(got, raw) {
			t.Error("round trip mismatch")
		}
	})

	t.Run("DeclaredTooLong", func(t *testing.T) {
		if _, err := Decompress(stream, uint32(len(raw)+1)); !errors.Is(err, ErrDecompress) {
			t.Errorf("got %v, want ErrDecompress", err)
		}
	})

	t.Run("DeclaredTooShort", func(t *testing.T) {
		if _, err := Decompress(stream, uint32(len(raw)-1)); !errors.Is(err, ErrDecompress) {
			t.Errorf("got %v, want ErrDecompress", err)
		}
	})

	t.Run("GarbageStream", func(t *testing.T) {
		garbage := bytes.Repeat([]byte{0xff}, 64)
		if _, err := Decompress(garbage, 10); !errors.Is(err, ErrDecompress) {
			t.Errorf("got %v, want ErrDecompress", err)
		}
	})
}
