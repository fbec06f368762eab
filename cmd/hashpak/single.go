package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwestover/hashpak/internal/pak"
	"github.com/spf13/cobra"
)

var singleCmd = &cobra.Command{
	Use:   "single <archive> <asset_filename> <output_dir>",
	Short: "Extract one asset by its original path",
	Long: `Single hashes the given asset path, looks the key up in the archive, and
writes the asset to <output_dir>/<asset_filename>, creating intermediate
directories as needed. Exits with code 2 when the path is not present in
the archive.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath, assetName, outputDir := args[0], args[1], args[2]

		if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
			return fmt.Errorf("output directory does not exist: %s", outputDir)
		}

		relPath, err := sanitizeAssetPath(assetName)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		p, err := pak.Open(ctx, archivePath, pak.WithWorkers(cfg.Workers))
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer p.Close()

		if err := p.AwaitReady(ctx); err != nil {
			return fmt.Errorf("waiting for decompression: %w", err)
		}

		data, err := p.GetByName(assetName)
		if err != nil {
			return err
		}

		outPath := filepath.Join(outputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("creating output directories: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		slog.Info("Asset extracted", "asset", assetName, "path", outPath, "size", len(data))
		return nil
	},
}

// sanitizeAssetPath turns a caller-supplied asset path into a path that is
// safe to join under the output directory: leading separators are stripped
// and traversal elements rejected.
func sanitizeAssetPath(name string) (string, error) {
	cleaned := strings.TrimLeft(strings.ReplaceAll(name, "\\", "/"), "/")
	cleaned = filepath.Clean(filepath.FromSlash(cleaned))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("asset path escapes output directory: %s", name)
	}
	return cleaned, nil
}

func init() {
	rootCmd.AddCommand(singleCmd)
}
