package rename

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbomb79/MediaKit/internal/ffmpeg"
	"github.com/hbomb79/MediaKit/internal/report"
	"github.com/hbomb79/MediaKit/internal/scan"
	"github.com/hbomb79/MediaKit/pkg/logger"
)

// VideoConfig names the ffprobe binary used to read container
// creation timestamps.
type VideoConfig struct {
	FfprobeBinaryPath string `yaml:"ffprobe_binary" env:"RENAME_FFPROBE_BINARY_PATH" env-default:"/usr/bin/ffprobe" validate:"required"`
}

// CreationSource extracts a creation timestamp from a video container.
// Returning ffmpeg.ErrNoCreationTime triggers the modification-time
// fallback rather than a skip.
type CreationSource func(ctx context.Context, path string) (time.Time, error)

type VideoService struct {
	log      logger.Logger
	creation CreationSource
}

// NewVideoService creates the video renamer. Passing a nil source uses
// ffprobe via the configured binary; tests inject their own.
func NewVideoService(config VideoConfig, source CreationSource) *VideoService {
	if source == nil {
		runner := &ffmpeg.ExecCommandRunner{}
		source = func(ctx context.Context, path string) (time.Time, error) {
			return ffmpeg.CreationTime(ctx, runner, config.FfprobeBinaryPath, path)
		}
	}

	return &VideoService{
		log:      logger.Get("VidRename"),
		creation: source,
	}
}

// RenameVideos renames every .mp4 under dir to YYYY-MM-DD_<original
// name> based on the container's creation_time tag, falling back to
// the file's modification time when the tag is absent. A file whose
// metadata cannot be read at all keeps its name and is reported as
// skipped.
func (service *VideoService) RenameVideos(ctx context.Context, dir string, recursive bool) (*report.Run, error) {
	candidates, err := scan.Candidates(dir, scan.Mp4, recursive)
	if err != nil {
		return nil, err
	}

	run := report.NewRun(service.log)
	if len(candidates) == 0 {
		service.log.Emit(logger.WARNING, "No MP4 files found in %s\n", dir)
		run.Summarize()
		return run, nil
	}

	reserver := newNameReserver()
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			// Interrupted mid-batch; still report what was done.
			run.Summarize()
			return run, err
		}

		service.renameOne(ctx, run, reserver, path)
	}

	run.Summarize()
	return run, nil
}

func (service *VideoService) renameOne(ctx context.Context, run *report.Run, reserver *nameReserver, path string) {
	filename := filepath.Base(path)
	if alreadyDated.MatchString(filename) {
		run.Skip("Skipping %s: already in correct format\n", filename)
		return
	}

	created, err := service.creation(ctx, path)
	if err != nil {
		if !errors.Is(err, ffmpeg.ErrNoCreationTime) {
			run.Skip("Skipping %s: could not read creation date (%s)\n", filename, err.Error())
			return
		}

		// No tag in the container; the file's modification time is the
		// best remaining signal.
		info, statErr := os.Stat(path)
		if statErr != nil {
			run.Fail(path, statErr)
			return
		}
		created = info.ModTime()
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	base := created.Format("2006-01-02") + "_" + stem

	target := reserver.Reserve(filepath.Dir(path), base, ext)
	if err := os.Rename(path, target); err != nil {
		run.Fail(path, err)
		return
	}

	run.Success("Renamed %s -> %s\n", filename, filepath.Base(target))
}
