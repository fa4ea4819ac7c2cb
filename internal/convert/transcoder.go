package convert

import (
	"context"

	ffmpegopts "github.com/floostack/transcoder/ffmpeg"
	"github.com/hbomb79/MediaKit/internal/ffmpeg"
)

// Transcoder is the boundary to the host's transcoding capability.
// Tests swap this out for a mock; production uses the ffmpeg binding.
type Transcoder interface {
	// Probe inspects the source container, returning its duration in
	// seconds. A probe failure means the file is unreadable or corrupt.
	Probe(path string) (float64, error)

	// Transcode converts source into output, delivering progress
	// updates to the handler as they arrive.
	Transcode(ctx context.Context, source string, output string, onProgress func(*ffmpeg.Progress)) error
}

type ffmpegTranscoder struct {
	config Config
}

// NewFfmpegTranscoder returns a Transcoder backed by the ffmpeg and
// ffprobe binaries named in the provided config.
func NewFfmpegTranscoder(config Config) Transcoder {
	return &ffmpegTranscoder{config: config}
}

func (tc *ffmpegTranscoder) binConfig() *ffmpeg.Config {
	return &ffmpeg.Config{
		FfmpegBinPath:  tc.config.FfmpegBinaryPath,
		FfprobeBinPath: tc.config.FfprobeBinaryPath,
	}
}

func (tc *ffmpegTranscoder) Probe(path string) (float64, error) {
	metadata, err := ffmpeg.ProbeFile(path, tc.binConfig())
	if err != nil {
		return -1, err
	}

	return ffmpeg.DurationSeconds(metadata), nil
}

func (tc *ffmpegTranscoder) Transcode(ctx context.Context, source string, output string, onProgress func(*ffmpeg.Progress)) error {
	overwrite := true
	options := &ffmpegopts.Options{
		OutputFormat: &tc.config.TargetFormat,
		VideoCodec:   &tc.config.VideoCodec,
		AudioCodec:   &tc.config.AudioCodec,
		Crf:          &tc.config.Crf,
		Preset:       &tc.config.Preset,
		Overwrite:    &overwrite,
	}

	return ffmpeg.NewCmd(source, output, tc.binConfig()).Run(ctx, options, onProgress)
}
