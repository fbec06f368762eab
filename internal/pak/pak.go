// Package pak reads the hashed-asset archive container. Assets are known
// only by the 32-bit hash of their original path; entries are stored either
// raw or LZMA-compressed. Opening an archive starts a background pass that
// decompresses every compressed entry exactly once; callers wait on
// AwaitReady before reading compressed-class data.
package pak

import (
	"context"
	"fmt"
	"runtime"
)

// Pak is the archive facade: the open reader, the parsed index, and the
// background decompression pass with its cache.
type Pak struct {
	reader *Reader
	coord  *coordinator
}

type options struct {
	workers int
}

// Option configures Open.
type Option func(*options)

// WithWorkers sets the number of decompression workers. Values <= 0 use one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Open parses the archive at path and immediately starts the background
// decompression pass; it returns without waiting for that pass. ctx cancels
// the background work, not the returned handle. Compressed-class reads
// before AwaitReady fail fast with ErrPending; they never block and never
// return partial bytes.
func Open(ctx context.Context, path string, opts ...Option) (*Pak, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}

	reader, err := OpenReader(path)
	if err != nil {
		return nil, err
	}

	return &Pak{
		reader: reader,
		coord:  startCoordinator(ctx, reader, o.workers),
	}, nil
}

// AwaitReady blocks until every compressed entry has been resolved, either
// decompressed into the cache or recorded as permanently failed. It must
// complete before compressed-class entries are read.
func (p *Pak) AwaitReady(ctx context.Context) error {
	return p.coord.awaitReady(ctx)
}

// InProgress reports whether the background decompression pass is still
// running.
func (p *Pak) InProgress() bool {
	return p.coord.inProgress()
}

// Keys enumerates entry keys by storage class, unordered.
func (p *Pak) Keys(class Class) []uint32 {
	return p.reader.Index().Keys(class)
}

// Entry returns the index metadata for a key.
func (p *Pak) Entry(key uint32) (Entry, bool) {
	return p.reader.Index().Get(key)
}

// Get returns an entry's asset bytes. Compressed entries come from the
// decompression cache; noncompressed entries are read from the archive on
// every call and are not cached.
func (p *Pak) Get(key uint32) ([]byte, error) {
	entry, ok := p.reader.Index().Get(key)
	if !ok {
		return nil, fmt.Errorf("key %d: %w", key, ErrNotFound)
	}

	if entry.Compressed {
		return p.coord.get(key)
	}
	return p.reader.ReadRaw(entry)
}

// GetByName resolves an original asset path to its key and returns that
// entry's bytes.
func (p *Pak) GetByName(name string) ([]byte, error) {
	data, err := p.Get(HashPath(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

// Close cancels any outstanding background work, waits for the workers to
// drain, and closes the archive file. All reads are invalid afterwards.
func (p *Pak) Close() error {
	p.coord.stop()
	return p.reader.Close()
}
