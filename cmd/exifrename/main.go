// exifrename renames image files to YYYY-MM-DD_<original name> based
// on the capture date embedded in their EXIF metadata. Images without
// a capture date keep their name and are reported as skipped.
package main

import (
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
	Use:   "exifrename",
	Short: "Rename images by their EXIF capture date",
	Long: `exifrename prefixes every image in a directory with its EXIF capture
date (YYYY-MM-DD_). Files already carrying the prefix are left alone,
so re-running over a sorted directory is harmless.

Example:
  exifrename --dir ~/Pictures/camera-roll`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg rename.ImageConfig
		var err error
		if flagConfig != "" {
			err = config.LoadToolFrom(flagConfig, &cfg)
		} else {
			err = config.LoadTool("exifrename", &cfg)
		}
		if err != nil {
			return err
		}

		service := rename.NewImageService(cfg, nil)
		_, err = service.RenameImages(flagDir, flagRecursive)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagDir, "dir", "", "directory containing images to rename")
	rootCmd.Flags().BoolVar(&flagRecursive, "recursive", true, "descend into subdirectories")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default is ~/.config/mediakit/exifrename.yaml)")
	rootCmd.MarkFlagRequired("dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
