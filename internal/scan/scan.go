// Package scan enumerates candidate media files from the host
// filesystem, filtered by a closed set of file extensions.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnreadableDir indicates the target directory is missing or could
// not be read. This is fatal to a run: no candidates can be enumerated.
var ErrUnreadableDir = errors.New("directory does not exist or cannot be read")

// ExtSet is a closed set of lower-cased file extensions (dot included).
type ExtSet map[string]struct{}

func NewExtSet(exts ...string) ExtSet {
	set := make(ExtSet, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = struct{}{}
	}

	return set
}

// Has reports whether the extension of the given path is in the set.
// Matching is case-insensitive ('.MOV' matches '.mov').
func (set ExtSet) Has(path string) bool {
	_, ok := set[strings.ToLower(filepath.Ext(path))]
	return ok
}

// The supported extension sets for each tool.
var (
	VideoSource = NewExtSet(".mov")
	Mp4         = NewExtSet(".mp4")
	Image       = NewExtSet(".jpg", ".jpeg", ".png", ".heic", ".gif", ".bmp")
)

// Candidates returns every file under dir whose extension is in the
// provided set, in lexical order. When recursive is false only direct
// children are considered. A missing or unreadable directory returns
// an error wrapping ErrUnreadableDir.
func Candidates(dir string, exts ExtSet, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadableDir, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrUnreadableDir, dir)
	}

	candidates := make([]string, 0)
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnreadableDir, dir)
		}

		for _, entry := range entries {
			if entry.IsDir() || !exts.Has(entry.Name()) {
				continue
			}

			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}

		return candidates, nil
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A subdirectory we cannot descend into is skipped rather
			// than failing the whole enumeration.
			if path == dir {
				return err
			}
			return fs.SkipDir
		}

		if !d.IsDir() && exts.Has(path) {
			candidates = append(candidates, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadableDir, dir)
	}

	return candidates, nil
}
