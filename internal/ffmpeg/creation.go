package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNoCreationTime indicates the probed file carries no usable
// creation_time tag in either its format or stream metadata, whether
// the tag is absent entirely or present in a format we cannot parse.
var ErrNoCreationTime = errors.New("no creation_time tag present in media metadata")

// CommandRunner abstracts running an external command so that probing
// can be exercised in tests without a real ffprobe binary.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
type ExecCommandRunner struct{}

func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// probeOutput mirrors the subset of ffprobe's JSON output we care
// about; the typed metadata from the transcoder package does not
// expose creation_time so we go to ffprobe directly for it.
type probeOutput struct {
	Format struct {
		Tags map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		Tags map[string]string `json:"tags"`
	} `json:"streams"`
}

// Layouts seen in the wild for the creation_time tag; fractional
// seconds and a trailing Z are stripped before parsing.
var creationTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreationTime probes the file at the given path and returns the
// creation timestamp recorded in its metadata. The format-level tag is
// preferred, falling back to the first stream which carries one.
// ErrNoCreationTime is returned when neither is present.
func CreationTime(ctx context.Context, runner CommandRunner, ffprobePath string, path string) (time.Time, error) {
	raw, err := runner.Output(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probed probeOutput
	if err := json.Unmarshal(raw, &probed); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode ffprobe output for %s: %w", path, err)
	}

	tag := probed.Format.Tags["creation_time"]
	if tag == "" {
		for _, stream := range probed.Streams {
			if v := stream.Tags["creation_time"]; v != "" {
				tag = v
				break
			}
		}
	}

	if tag == "" {
		return time.Time{}, ErrNoCreationTime
	}

	return parseCreationTime(tag)
}

func parseCreationTime(tag string) (time.Time, error) {
	normalized := strings.TrimSuffix(strings.TrimSpace(tag), "Z")
	if idx := strings.IndexRune(normalized, '.'); idx != -1 {
		normalized = normalized[:idx]
	}

	for _, layout := range creationTimeLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}

	// A tag we cannot make sense of is as good as no tag at all;
	// callers fall back to their secondary date source.
	return time.Time{}, fmt.Errorf("%w: unrecognised format '%s'", ErrNoCreationTime, tag)
}
