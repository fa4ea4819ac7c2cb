package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// alreadyDated matches filenames which have previously been renamed by
// these tools (YYYY-MM-DD_ prefix). Such files are skipped, which makes
// re-running a renamer over its own output a no-op.
var alreadyDated = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_`)

// nameReserver hands out destination names that are unique both on
// disk and amongst the names already promised during this run. This is
// the one piece of state shared between files in a batch: two sources
// with identical timestamps must never be assigned the same
// destination.
type nameReserver struct {
	used map[string]struct{}
}

func newNameReserver() *nameReserver {
	return &nameReserver{used: make(map[string]struct{})}
}

// Reserve returns the first free destination path for base+ext inside
// dir, appending a numeric suffix (_1, _2, ...) until a name is found
// which neither exists on disk nor has been reserved this run.
func (reserver *nameReserver) Reserve(dir string, base string, ext string) string {
	candidate := filepath.Join(dir, base+ext)
	for counter := 1; !reserver.free(candidate); counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}

	reserver.used[candidate] = struct{}{}
	return candidate
}

func (reserver *nameReserver) free(path string) bool {
	if _, reserved := reserver.used[path]; reserved {
		return false
	}

	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
