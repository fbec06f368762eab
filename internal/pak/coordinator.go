package pak

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// coordinator drives the one-time bulk decompression pass. Every compressed
// entry is scheduled onto a bounded worker pool at open time; results land in
// a write-once cache and per-entry failures are recorded without aborting
// sibling entries. The ready channel is closed exactly once, after every
// scheduled entry has either succeeded or permanently failed. Closing the
// channel is the visibility barrier for the cache: readers that observed the
// close may read the maps without holding the mutex, but get takes it anyway
// to keep the fail-fast pre-ready path simple.
type coordinator struct {
	cancel context.CancelFunc
	ready  chan struct{}

	mu       sync.Mutex
	cache    map[uint32][]byte
	failures map[uint32]error
}

func startCoordinator(ctx context.Context, r *Reader, workers int) *coordinator {
	ctx, cancel := context.WithCancel(ctx)
	c := &coordinator{
		cancel:   cancel,
		ready:    make(chan struct{}),
		cache:    make(map[uint32][]byte),
		failures: make(map[uint32]error),
	}

	keys := r.Index().Keys(Compressed)
	go c.run(ctx, r, keys, workers)

	return c
}

func (c *coordinator) run(ctx context.Context, r *Reader, keys []uint32, workers int) {
	defer close(c.ready)

	var g errgroup.Group
	g.SetLimit(workers)

	for _, key := range keys {
		entry, _ := r.Index().Get(key)
		g.Go(func() error {
			// Per-entry failures are recorded, never returned: one corrupt
			// entry must not abort the rest of the pass.
			if err := ctx.Err(); err != nil {
				c.fail(entry.Key, fmt.Errorf("decompression canceled: %w", err))
				return nil
			}

			raw, err := r.ReadRaw(entry)
			if err != nil {
				c.fail(entry.Key, err)
				return nil
			}

			data, err := Decompress(raw, entry.RawLength)
			if err != nil {
				c.fail(entry.Key, fmt.Errorf("entry %d: %w", entry.Key, err))
				return nil
			}

			c.mu.Lock()
			c.cache[entry.Key] = data
			c.mu.Unlock()
			return nil
		})
	}

	g.Wait()

	c.mu.Lock()
	failed := len(c.failures)
	c.mu.Unlock()
	if failed > 0 {
		slog.Warn("Decompression pass finished with failures", "entries", len(keys), "failed", failed)
	} else {
		slog.Debug("Decompression pass finished", "entries", len(keys))
	}
}

func (c *coordinator) fail(key uint32, err error) {
	slog.Debug("Entry decompression failed", "key", key, "error", err)
	c.mu.Lock()
	c.failures[key] = err
	c.mu.Unlock()
}

// inProgress reports whether the background pass is still running.
func (c *coordinator) inProgress() bool {
	select {
	case <-c.ready:
		return false
	default:
		return true
	}
}

// awaitReady blocks until the pass completes or ctx is done.
func (c *coordinator) awaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// get returns the decompressed bytes for a compressed-class key. Before the
// key resolves it fails fast with ErrPending rather than blocking.
func (c *coordinator) get(key uint32) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.cache[key]; ok {
		return data, nil
	}
	if err, ok := c.failures[key]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("entry %d: %w", key, ErrPending)
}

// stop cancels outstanding work and waits for the workers to drain so the
// archive file can be closed safely behind them.
func (c *coordinator) stop() {
	c.cancel()
	<-c.ready
}
