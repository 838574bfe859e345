package preflight

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable/traversable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDirectories runs the access check over named directories and returns
// all results plus the first failure, if any. Directories are checked in
// name order so the reported failure is stable.
func CheckDirectories(dirs map[string]string) ([]Result, error) {
	names := make([]string, 0, len(dirs))
	for name := range dirs {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	var firstErr error
	for _, name := range names {
		result := CheckDirectoryAccess(name, dirs[name])
		results = append(results, result)
		if !result.Passed && firstErr == nil {
			firstErr = fmt.Errorf("%s: %s", result.Name, result.Detail)
		}
	}
	return results, firstErr
}
