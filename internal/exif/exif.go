// Package exif extracts the capture timestamp embedded in image files.
package exif

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoDateTaken indicates the image carries no usable capture
// timestamp. Files without EXIF data (screenshots, edited exports,
// PNGs from most tools) land here; callers should treat this as a
// skip, not a failure.
var ErrNoDateTaken = errors.New("no EXIF date taken tag present")

// DateTaken returns the capture timestamp for the image at the given
// path, preferring DateTimeOriginal over the more loosely defined
// DateTime tag. A file which cannot be opened is an error; a file with
// no (or undecodable) EXIF payload returns ErrNoDateTaken.
func DateTaken(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// goexif cannot distinguish 'no EXIF segment' from a mangled
		// one; either way there is no timestamp to be had.
		return time.Time{}, ErrNoDateTaken
	}

	if t, err := tagTime(x, exif.DateTimeOriginal); err == nil {
		return t, nil
	}

	if t, err := tagTime(x, exif.DateTime); err == nil {
		return t, nil
	}

	return time.Time{}, ErrNoDateTaken
}

func tagTime(x *exif.Exif, name exif.FieldName) (time.Time, error) {
	tag, err := x.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	value, err := tag.StringVal()
	if err != nil {
		return time.Time{}, err
	}

	// EXIF dates are 'YYYY:MM:DD HH:MM:SS'
	return time.Parse("2006:01:02 15:04:05", value)
}
