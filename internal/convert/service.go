// Package convert implements the batch .mov to .mp4 converter. A run
// is one linear pass over the enumerated candidates; a failure on one
// file is reported and must never abort the remainder of the batch.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbomb79/MediaKit/internal/ffmpeg"
	"github.com/hbomb79/MediaKit/internal/report"
	"github.com/hbomb79/MediaKit/internal/scan"
	"github.com/hbomb79/MediaKit/pkg/logger"
)

// ErrInvalidInput indicates the provided path cannot be converted
// (wrong extension in single-file mode, or not a regular file).
var ErrInvalidInput = errors.New("invalid input")

// OverwritePolicy decides what happens when a conversion's output path
// already exists on disk.
type OverwritePolicy int

const (
	// OverwriteSkip leaves the existing output untouched and counts
	// the candidate as skipped.
	OverwriteSkip OverwritePolicy = iota

	// OverwriteReplace replaces the existing output.
	OverwriteReplace

	// OverwriteAsk defers the decision to the prompter. Only sensible
	// in single-file interactive mode.
	OverwriteAsk
)

// ConflictPrompter is asked whether an existing output file should be
// replaced when the policy is OverwriteAsk.
type ConflictPrompter interface {
	ConfirmOverwrite(path string) (bool, error)
}

type Service struct {
	config   Config
	log      logger.Logger
	tc       Transcoder
	policy   OverwritePolicy
	prompter ConflictPrompter
}

func New(config Config, policy OverwritePolicy, prompter ConflictPrompter, tc Transcoder) *Service {
	return &Service{
		config:   config,
		log:      logger.Get("Convert"),
		tc:       tc,
		policy:   policy,
		prompter: prompter,
	}
}

// ConvertDir converts every .mov file found in the given directory,
// optionally descending into subdirectories. Only a failure to
// enumerate the directory is fatal; per-file failures are recorded on
// the returned run.
func (service *Service) ConvertDir(ctx context.Context, dir string, recursive bool) (*report.Run, error) {
	candidates, err := scan.Candidates(dir, scan.VideoSource, recursive)
	if err != nil {
		return nil, err
	}

	run := report.NewRun(service.log)
	if len(candidates) == 0 {
		service.log.Emit(logger.WARNING, "No MOV files found in %s\n", dir)
		run.Summarize()
		return run, nil
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			// Interrupted mid-batch; still report what was done.
			run.Summarize()
			return run, err
		}

		service.convertOne(ctx, run, candidate)
	}

	run.Summarize()
	return run, nil
}

// ConvertFile converts a single .mov file. A candidate with the wrong
// extension (or one that is not a regular file) fails up-front with
// ErrInvalidInput and produces no output.
func (service *Service) ConvertFile(ctx context.Context, path string) (*report.Run, error) {
	if !scan.VideoSource.Has(path) {
		return nil, fmt.Errorf("%w: %s is not a MOV file", ErrInvalidInput, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot access %s: %s", ErrInvalidInput, path, err.Error())
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, path)
	}

	run := report.NewRun(service.log)
	service.convertOne(ctx, run, path)
	run.Summarize()

	return run, nil
}

// OutputPath derives the destination for a source file: same
// directory, same base name, target extension, optionally prefixed
// with the source's modification date (YYYYMMDD_).
func (service *Service) OutputPath(source string) string {
	dir := filepath.Dir(source)
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	name := fmt.Sprintf("%s.%s", stem, service.config.TargetFormat)
	if service.config.DatePrefix {
		if info, err := os.Stat(source); err == nil {
			name = fmt.Sprintf("%s_%s", info.ModTime().Format("20060102"), name)
		}
	}

	return filepath.Join(dir, name)
}

func (service *Service) convertOne(ctx context.Context, run *report.Run, source string) {
	job := NewJob(source, service.OutputPath(source))

	proceed, err := service.resolveConflict(job.OutputPath)
	if err != nil {
		run.Fail(source, err)
		return
	}
	if !proceed {
		run.Skip("Skipping %s: output %s already exists\n", source, job.OutputPath)
		return
	}

	duration, err := service.tc.Probe(source)
	if err != nil {
		run.Fail(source, fmt.Errorf("unable to probe source: %w", err))
		return
	}

	service.log.Emit(logger.NEW, "Converting %s (duration %.1fs)\n", job, duration)

	lastReported := -10
	onProgress := func(progress *ffmpeg.Progress) {
		percent := int(progress.Progress)
		if percent/10 > lastReported/10 {
			lastReported = percent
			service.log.Emit(logger.INFO, "Transcoding %s... %d%% (speed %s)\n",
				filepath.Base(source), percent, progress.Speed)
		}
	}

	if err := service.tc.Transcode(ctx, source, job.OutputPath, onProgress); err != nil {
		service.removePartialOutput(job.OutputPath)
		run.Fail(source, fmt.Errorf("transcode failed: %w", err))
		return
	}

	// The transcoder returning cleanly is not enough; the contract is
	// that the output exists and is non-empty.
	info, err := os.Stat(job.OutputPath)
	if err != nil || info.Size() == 0 {
		service.removePartialOutput(job.OutputPath)
		run.Fail(source, fmt.Errorf("transcode produced no output at %s", job.OutputPath))
		return
	}

	run.Success("Successfully converted %s -> %s\n", source, job.OutputPath)
}

// resolveConflict applies the overwrite policy to a would-be output
// path. Returns false when the candidate should be skipped.
func (service *Service) resolveConflict(outputPath string) (bool, error) {
	if _, err := os.Stat(outputPath); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	switch service.policy {
	case OverwriteReplace:
		return true, nil
	case OverwriteAsk:
		if service.prompter == nil {
			return false, nil
		}
		confirmed, err := service.prompter.ConfirmOverwrite(outputPath)
		if err != nil {
			return false, fmt.Errorf("overwrite confirmation failed: %w", err)
		}
		return confirmed, nil
	default:
		return false, nil
	}
}

func (service *Service) removePartialOutput(outputPath string) {
	if info, err := os.Stat(outputPath); err == nil && !info.IsDir() {
		if err := os.Remove(outputPath); err != nil {
			service.log.Emit(logger.WARNING, "Failed to clean up partial output %s: %s\n", outputPath, err.Error())
		}
	}
}
