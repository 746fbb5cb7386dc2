package source

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/ckview/pkg"
)

// EnvSearchPath names the environment variable holding additional source
// directories, separated by [os.PathListSeparator].
const EnvSearchPath = pkg.EnvPrefix + "SOURCE_PATH"

// SearchPath returns the existing directories among dirs followed by
// those listed in the environment variable named env. Duplicates keep
// their first position.
func SearchPath(env string, dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(env)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	seen := make(map[string]bool)

	var out []string

	for _, dir := range filepath.SplitList(list) {
		dir = filepath.Clean(dir)

		if seen[dir] || !isDir(dir) {
			continue
		}

		seen[dir] = true
		out = append(out, dir)
	}

	return out
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
