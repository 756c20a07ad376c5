package iofs

import (
	"io/fs"
	"path/filepath"
	"slices"
)

// FindFiles walks root recursively and returns paths of all regular files
// whose base name matches the shell glob pattern. The result is sorted so
// runs are deterministic regardless of directory read order.
func FindFiles(root, pattern string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			res = append(res, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(res)
	return res, nil
}
