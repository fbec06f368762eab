package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/nwestover/hashpak/internal/manifest"
	"github.com/nwestover/hashpak/internal/pak"
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <archive> <db>",
	Short: "Export the entry table to a SQLite database",
	Long: `Manifest opens the archive, waits for the background decompression pass,
and writes one row per entry to a SQLite database: key, offset, stored and
raw lengths, storage class, and whether the entry is readable.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath, dbPath := args[0], args[1]
		ctx := cmd.Context()

		p, err := pak.Open(ctx, archivePath, pak.WithWorkers(cfg.Workers))
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer p.Close()

		if err := p.AwaitReady(ctx); err != nil {
			return fmt.Errorf("waiting for decompression: %w", err)
		}

		keys := p.Keys(pak.All)
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		rows := make([]manifest.Row, 0, len(keys))
		failed := 0
		for _, key := range keys {
			e, _ := p.Entry(key)
			status := "ok"
			if e.Compressed {
				if _, err := p.Get(key); err != nil {
					status = err.Error()
					failed++
				}
			}
			rows = append(rows, manifest.Row{
				Key:          e.Key,
				Offset:       e.Offset,
				StoredLength: e.StoredLength,
				RawLength:    e.RawLength,
				Compressed:   e.Compressed,
				Status:       status,
			})
		}

		if err := manifest.Write(ctx, dbPath, rows); err != nil {
			return err
		}

		slog.Info("Manifest written", "db", dbPath, "entries", len(rows), "failed", failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
