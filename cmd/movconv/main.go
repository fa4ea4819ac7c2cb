// movconv batch-converts MOV files to MP4 using the host's ffmpeg
// installation. It accepts either a directory of candidates or a
// single file, and never aborts a batch because one file failed.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hbomb79/MediaKit/internal/config"
	"github.com/hbomb79/MediaKit/internal/convert"
	"github.com/hbomb79/MediaKit/internal/report"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AlecAivazis/survey/v2"
)

var (
	flagDir          string
	flagFile         string
	flagRecursive    bool
	flagOverwrite    bool
	flagNoDatePrefix bool
	flagConfig       string
)

// surveyPrompter asks the user on the terminal whether an existing
// output file should be replaced.
type surveyPrompter struct{}

func (surveyPrompter) ConfirmOverwrite(path string) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Output %s already exists. Overwrite?", path),
	}

	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}

	return confirmed, nil
}

var rootCmd = &cobra.Command{
	Use:   "movconv",
	Short: "Convert MOV files to MP4",
	Long: `movconv converts Apple MOV recordings to MP4 using ffmpeg, writing
each output alongside its source with the recording date prefixed to
the name.

Example:
  movconv --dir ~/Videos/imports
  movconv --file ~/Videos/imports/clip.mov --overwrite`,
	SilenceUsage: true,
	RunE:         run,
}

func run(cmd *cobra.Command, args []string) error {
	var cfg convert.Config
	if err := loadConfig(&cfg); err != nil {
		return err
	}

	if flagNoDatePrefix {
		cfg.DatePrefix = false
	}

	policy := convert.OverwriteSkip
	if flagOverwrite {
		policy = convert.OverwriteReplace
	} else if flagFile != "" && isatty.IsTerminal(os.Stdin.Fd()) {
		policy = convert.OverwriteAsk
	}

	service := convert.New(cfg, policy, surveyPrompter{}, convert.NewFfmpegTranscoder(cfg))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var runResult *report.Run
	var err error
	if flagDir != "" {
		runResult, err = service.ConvertDir(ctx, flagDir, flagRecursive)
	} else {
		runResult, err = service.ConvertFile(ctx, flagFile)
	}
	if err != nil {
		return err
	}

	if failed := runResult.Failed(); failed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", failed)
	}

	return nil
}

func loadConfig(cfg *convert.Config) error {
	if flagConfig != "" {
		return config.LoadToolFrom(flagConfig, cfg)
	}

	return config.LoadTool("movconv", cfg)
}

func init() {
	rootCmd.Flags().StringVar(&flagDir, "dir", "", "directory containing MOV files to convert")
	rootCmd.Flags().StringVar(&flagFile, "file", "", "single MOV file to convert")
	rootCmd.Flags().BoolVar(&flagRecursive, "recursive", false, "descend into subdirectories when using --dir")
	rootCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "replace existing output files instead of skipping them")
	rootCmd.Flags().BoolVar(&flagNoDatePrefix, "no-date-prefix", false, "do not prefix output names with the recording date")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default is ~/.config/mediakit/movconv.yaml)")

	rootCmd.MarkFlagsMutuallyExclusive("dir", "file")
	rootCmd.MarkFlagsOneRequired("dir", "file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
