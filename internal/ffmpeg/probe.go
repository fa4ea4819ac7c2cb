package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
)

// ProbeFile extracts container metadata for the file at the given path
// using ffprobe.
func ProbeFile(path string, config *Config) (transcoder.Metadata, error) {
	cfg := ffmpeg.Config{
		FfmpegBinPath:  config.FfmpegBinPath,
		FfprobeBinPath: config.FfprobeBinPath,
	}

	transcoderInstance := ffmpeg.New(&cfg).Input(path)
	metadata, err := transcoderInstance.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to extract file metadata information using ffprobe: %w", err)
	}

	return metadata, nil
}

// DurationSeconds pulls the container duration out of probed metadata.
// Returns -1 if the duration is missing or malformed.
func DurationSeconds(metadata transcoder.Metadata) float64 {
	format := metadata.GetFormat()
	if format == nil {
		return -1
	}

	duration, err := strconv.ParseFloat(format.GetDuration(), 64)
	if err != nil {
		return -1
	}

	return duration
}
