package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
	"github.com/hbomb79/MediaKit/pkg/logger"
)

var log = logger.Get("FFmpeg")

// Config holds the paths to the ffmpeg/ffprobe binaries on the
// host machine.
type Config struct {
	FfmpegBinPath  string
	FfprobeBinPath string
}

// Progress is a snapshot of a running transcode, forwarded to the
// update handler for each message ffmpeg writes on its progress pipe.
type Progress struct {
	FramesProcessed string
	CurrentTime     string
	CurrentBitrate  string
	Progress        float64
	Speed           string
}

// TranscodeCommand wraps a single ffmpeg transcode of one source file
// to one output file.
type TranscodeCommand struct {
	inputPath  string
	outputPath string
	config     *Config
}

func NewCmd(input string, output string, config *Config) *TranscodeCommand {
	return &TranscodeCommand{input, output, config}
}

// Run starts the ffmpeg command and blocks until it completes. Each
// progress update detected from the underlying command is delivered to
// the updateHandler. Cancelling the provided context kills the
// transcode.
func (cmd *TranscodeCommand) Run(ctx context.Context, ffmpegOptions transcoder.Options, updateHandler func(*Progress)) error {
	transcoderInstance := ffmpeg.
		New(&ffmpeg.Config{
			ProgressEnabled: true,
			FfmpegBinPath:   cmd.config.FfmpegBinPath,
			FfprobeBinPath:  cmd.config.FfprobeBinPath,
		}).
		Input(cmd.inputPath).
		Output(cmd.outputPath).
		WithContext(&ctx)

	if err := os.MkdirAll(filepath.Dir(cmd.outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", cmd.outputPath, err)
	}

	progressChannel, err := transcoderInstance.Start(ffmpegOptions)
	if err != nil {
		return reduceFfmpegError(err)
	}

	for {
		prog, ok := <-progressChannel
		if !ok {
			log.Emit(logger.DEBUG, "FFmpeg command has closed progress channel... transcode finished\n")
			return nil
		}

		if updateHandler != nil {
			updateHandler(&Progress{
				FramesProcessed: prog.GetFramesProcessed(),
				CurrentTime:     prog.GetCurrentTime(),
				CurrentBitrate:  prog.GetCurrentBitrate(),
				Progress:        prog.GetProgress(),
				Speed:           prog.GetSpeed(),
			})
		}
	}
}

func (cmd *TranscodeCommand) InputPath() string {
	return cmd.inputPath
}

func (cmd *TranscodeCommand) OutputPath() string {
	return cmd.outputPath
}

func (cmd *TranscodeCommand) String() string {
	return fmt.Sprintf("{ffmpeg in_path=%s | out_path=%s}", cmd.inputPath, cmd.outputPath)
}

func reduceFfmpegError(err error) error {
	// Try and pick out some relevant information from the HUGE
	// output log from ffmpeg. The error we get contains lots of information
	// about how the binary was compiled... this is useless info, we just
	// want the 'message' JSON that is encoded inside.
	messageMatcher := regexp.MustCompile(`(?s)message: ({.*})`)
	groups := messageMatcher.FindStringSubmatch(err.Error())
	if len(groups) == 0 {
		return err
	}

	// ffmpeg error is returned as a JSON encoded string. Unmarshal so we can extract the
	// error string..
	var out map[string]interface{}
	jsonErr := json.Unmarshal([]byte(groups[1]), &out)
	if jsonErr != nil {
		// We failed to extract the info.. just use the entire string as our error
		return errors.New(groups[1])
	}

	ffmpegException, ok := out["error"].(map[string]interface{})
	if !ok {
		return errors.New(groups[1])
	}

	if msg, ok := ffmpegException["string"].(string); ok {
		return errors.New(msg)
	}

	return errors.New(groups[1])
}
