package main

import (
	"fmt"
	"sort"

	"github.com/nwestover/hashpak/internal/pak"
	"github.com/nwestover/hashpak/internal/utils"
	"github.com/spf13/cobra"
)

var listClass string

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List archive entries with sizes and storage class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var class pak.Class
		switch listClass {
		case "all":
			class = pak.All
		case "compressed":
			class = pak.Compressed
		case "noncompressed":
			class = pak.Noncompressed
		default:
			return fmt.Errorf("unknown class %q (want all, compressed or noncompressed)", listClass)
		}

		ctx := cmd.Context()

		// Listing only touches the index, so there is no need to wait for
		// the background decompression pass.
		p, err := pak.Open(ctx, args[0], pak.WithWorkers(cfg.Workers))
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer p.Close()

		keys := p.Keys(class)
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		var totalRaw int64
		for _, key := range keys {
			e, _ := p.Entry(key)
			storage := "raw"
			if e.Compressed {
				storage = "lzma"
			}
			fmt.Printf("%10d  %-4s  stored=%-10s raw=%s\n",
				e.Key, storage, utils.Bytes(int64(e.StoredLength)), utils.Bytes(int64(e.RawLength)))
			totalRaw += int64(e.RawLength)
		}

		fmt.Printf("%s entries, %s raw\n", utils.Number(int64(len(keys))), utils.Bytes(totalRaw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listClass, "class", "all", "storage class to list (all, compressed, noncompressed)")
}
