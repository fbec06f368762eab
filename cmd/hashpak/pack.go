package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nwestover/hashpak/internal/pak"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack <input_dir> <archive>",
	Short: "Build an archive from a directory tree",
	Long: `Pack walks the input directory and stores every regular file under the
hash of its slash-separated relative path, the same key space single and
the archive reader resolve against. Files at or above compress_min bytes
are LZMA-compressed; smaller files are stored raw.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, archivePath := args[0], args[1]

		w := pak.NewWriter()
		count := 0

		err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(inputDir, path)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(rel)

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			compress := len(data) >= cfg.CompressMin
			if err := w.Add(name, data, compress); err != nil {
				return fmt.Errorf("adding %s: %w", name, err)
			}

			slog.Debug("Added entry", "name", name, "key", pak.HashPath(name), "size", len(data), "compressed", compress)
			count++
			return nil
		})
		if err != nil {
			return err
		}

		out, err := os.Create(archivePath)
		if err != nil {
			return fmt.Errorf("creating archive: %w", err)
		}
		defer out.Close()

		written, err := w.WriteTo(out)
		if err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}

		slog.Info("Archive written", "archive", archivePath, "entries", count, "bytes", written)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}
