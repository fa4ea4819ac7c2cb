// vidrename renames MP4 files to YYYY-MM-DD_<original name> based on
// the creation_time tag in their container metadata, falling back to
// the file's modification time when the tag is absent.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hbomb79/MediaKit/internal/config"
	"github.com/hbomb79/MediaKit/internal/rename"
	"github.com/spf13/cobra"
)

var (
	flagDir       string
	flagRecursive bool
	flagConfig    string
)

var rootCmd = &cobra.Command{
	Use:   "vidrename",
	Short: "Rename MP4 files by their recorded creation date",
	Long: `vidrename prefixes every MP4 in a directory with the creation date
recorded in its container metadata (YYYY-MM-DD_). Files already
carrying the prefix are left alone.

Example:
  vidrename --dir ~/Videos/exports`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg rename.VideoConfig
		var err error
		if flagConfig != "" {
			err = config.LoadToolFrom(flagConfig, &cfg)
		} else {
			err = config.LoadTool("vidrename", &cfg)
		}
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		service := rename.NewVideoService(cfg, nil)
		_, err = service.RenameVideos(ctx, flagDir, flagRecursive)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagDir, "dir", "", "directory containing MP4 files to rename")
	rootCmd.Flags().BoolVar(&flagRecursive, "recursive", true, "descend into subdirectories")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default is ~/.config/mediakit/vidrename.yaml)")
	rootCmd.MarkFlagRequired("dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
