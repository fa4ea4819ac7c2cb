// Package rename implements the metadata-driven renamers: images by
// their EXIF capture date, videos by their container creation date.
// Renames happen in place; destination names are date-prefixed and
// guaranteed unique within a run.
package rename

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbomb79/MediaKit/internal/exif"
	"github.com/hbomb79/MediaKit/internal/report"
	"github.com/hbomb79/MediaKit/internal/scan"
	"github.com/hbomb79/MediaKit/pkg/logger"
)

// ImageConfig controls which files the image renamer considers.
// The default allow-list covers the common camera formats; users with
// RAW workflows can widen it.
type ImageConfig struct {
	Extensions []string `yaml:"extensions" env:"RENAME_IMAGE_EXTENSIONS" env-default:".jpg,.jpeg,.png,.heic,.gif,.bmp" validate:"required"`
}

func (config ImageConfig) extensionSet() scan.ExtSet {
	if len(config.Extensions) == 0 {
		return scan.Image
	}

	return scan.NewExtSet(config.Extensions...)
}

// DateSource extracts a capture timestamp from a file. Returning
// exif.ErrNoDateTaken marks the file as skippable rather than failed.
type DateSource func(path string) (time.Time, error)

type ImageService struct {
	log       logger.Logger
	exts      scan.ExtSet
	dateTaken DateSource
}

// NewImageService creates the image renamer. Passing a nil source uses
// the EXIF reader; tests inject their own.
func NewImageService(config ImageConfig, source DateSource) *ImageService {
	if source == nil {
		source = exif.DateTaken
	}

	return &ImageService{
		log:       logger.Get("ExifRename"),
		exts:      config.extensionSet(),
		dateTaken: source,
	}
}

// RenameImages renames every image file under dir to
// YYYY-MM-DD_<original name>, based on its EXIF capture date. Files
// lacking the tag keep their name and are reported as skipped; only a
// failure to enumerate the directory aborts the run.
func (service *ImageService) RenameImages(dir string, recursive bool) (*report.Run, error) {
	candidates, err := scan.Candidates(dir, service.exts, recursive)
	if err != nil {
		return nil, err
	}

	run := report.NewRun(service.log)
	reserver := newNameReserver()

	for _, path := range candidates {
		service.renameOne(run, reserver, path)
	}

	run.Summarize()
	return run, nil
}

func (service *ImageService) renameOne(run *report.Run, reserver *nameReserver, path string) {
	filename := filepath.Base(path)
	if alreadyDated.MatchString(filename) {
		run.Skip("Skipping %s: already in correct format\n", filename)
		return
	}

	taken, err := service.dateTaken(path)
	if err != nil {
		if errors.Is(err, exif.ErrNoDateTaken) {
			run.Skip("Skipping %s: no capture date found\n", filename)
			return
		}

		run.Fail(path, err)
		return
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	base := taken.Format("2006-01-02") + "_" + stem

	target := reserver.Reserve(filepath.Dir(path), base, ext)
	if err := os.Rename(path, target); err != nil {
		run.Fail(path, err)
		return
	}

	run.Success("Renamed %s -> %s\n", filename, filepath.Base(target))
}
