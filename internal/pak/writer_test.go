package pak

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter(t *testing.T) {
	t.Run("PathRoundTrip", func(t *testing.T) {
		w := NewWriter()
		big := pattern(2048)
		small := []byte("cfg")
		if err := w.Add("data/model.bin", big, true); err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := w.Add("data/settings.cfg", small, false); err != nil {
			t.Fatalf("add: %v", err)
		}

		var buf bytes.Buffer
		if _, err := w.WriteTo(&buf); err != nil {
			t.Fatalf("write: %v", err)
		}

		path := filepath.Join(t.TempDir(), "rt.pak")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		p := openReady(t, path)

		if got, err := p.GetByName("data/model.bin"); err != nil || !bytes.Equal(got, big) {
			t.Errorf("compressed round trip failed: %v", err)
		}
		if got, err := p.GetByName("Data\\Settings.CFG"); err != nil || !bytes.Equal(got, small) {
			t.Errorf("raw round trip with unnormalized lookup failed: %v", err)
		}

		if e, ok := p.Entry(HashPath("data/model.bin")); !ok || !e.Compressed {
			t.Error("large entry not stored compressed")
		}
		if e, ok := p.Entry(HashPath("data/settings.cfg")); !ok || e.Compressed {
			t.Error("small entry not stored raw")
		}
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		w := NewWriter()
		if err := w.AddKeyed(5, []byte("a"), false); err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := w.AddKeyed(5, []byte("b"), false); err == nil {
			t.Error("expected error for duplicate key")
		}
	})

	t.Run("PathCollisionOnNormalization", func(t *testing.T) {
		w := NewWriter()
		if err := w.Add("data/a.txt", []byte("x"), false); err != nil {
			t.Fatalf("add: %v", err)
		}
		// Same entry after case and separator normalization.
		if err := w.Add("Data\\A.TXT", []byte("y"), false); err == nil {
			t.Error("expected collision error for normalized duplicate path")
		}
	})

	t.Run("EmptyArchive", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := NewWriter().WriteTo(&buf); err != nil {
			t.Fatalf("write: %v", err)
		}

		path := filepath.Join(t.TempDir(), "empty.pak")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		p, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer p.Close()

		if err := p.AwaitReady(context.Background()); err != nil {
			t.Fatalf("await ready: %v", err)
		}
		if got := p.Keys(All); len(got) != 0 {
			t.Errorf("empty archive has %d keys", len(got))
		}
	})
}
