package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nwestover/hashpak/internal/pak"
	"github.com/nwestover/hashpak/internal/utils"
	"github.com/spf13/cobra"
)

type extractStats struct {
	StartTime    time.Time
	TotalEntries int
	Written      int
	BytesWritten int64
	ReadErrors   int
	WriteErrors  int
}

var extractCmd = &cobra.Command{
	Use:   "extract <archive> <output_dir>",
	Short: "Extract every entry to <output_dir>/file<key>.dat",
	Long: `Extract opens the archive, waits for the background decompression pass to
finish, and writes every entry to <output_dir>/file<key>.dat. Entries whose
decompression failed are logged and skipped; they do not abort the rest of
the extraction. The output directory must already exist.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath, outputDir := args[0], args[1]

		if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
			return fmt.Errorf("output directory does not exist: %s", outputDir)
		}

		stats := &extractStats{StartTime: time.Now()}
		ctx := cmd.Context()

		p, err := pak.Open(ctx, archivePath, pak.WithWorkers(cfg.Workers))
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer p.Close()

		slog.Info("Archive opened", "archive", archivePath,
			"compressed", len(p.Keys(pak.Compressed)),
			"noncompressed", len(p.Keys(pak.Noncompressed)))

		if err := p.AwaitReady(ctx); err != nil {
			return fmt.Errorf("waiting for decompression: %w", err)
		}

		keys := p.Keys(pak.All)
		stats.TotalEntries = len(keys)

		progress := utils.NewProgress(len(keys), !(cfg.NoProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))

		for i, key := range keys {
			name := fmt.Sprintf("file%d.dat", key)
			progress.Update(i+1, name)

			data, err := p.Get(key)
			if err != nil {
				slog.Error("Failed to read entry", "key", key, "error", err)
				stats.ReadErrors++
				continue
			}

			outPath := filepath.Join(outputDir, name)
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				slog.Error("Failed to write entry", "key", key, "path", outPath, "error", err)
				stats.WriteErrors++
				continue
			}

			stats.Written++
			stats.BytesWritten += int64(len(data))
		}

		progress.Finish()

		fmt.Printf("Entries written: %d/%d\n", stats.Written, stats.TotalEntries)
		fmt.Printf("Bytes written: %s\n", utils.Bytes(stats.BytesWritten))
		fmt.Printf("Read errors: %d\n", stats.ReadErrors)
		fmt.Printf("Write errors: %d\n", stats.WriteErrors)
		fmt.Printf("Duration: %s\n", utils.Duration(time.Since(stats.StartTime)))

		if stats.ReadErrors > 0 || stats.WriteErrors > 0 {
			return fmt.Errorf("%d entries could not be extracted", stats.ReadErrors+stats.WriteErrors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
