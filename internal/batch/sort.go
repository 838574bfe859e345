package batch

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortPaths orders glob matches deterministically with numeric-aware
// comparison, so part2.txt sorts before part10.txt regardless of how the
// filesystem enumerates them.
func sortPaths(paths []string) {
	c := collate.New(language.Und, collate.Numeric)
	sort.Slice(paths, func(i, j int) bool {
		return c.CompareString(filepath.Base(paths[i]), filepath.Base(paths[j])) < 0
	})
}

func baseWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
