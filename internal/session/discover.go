package session

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover gathers the UI package files for an opened path. A file path is
// used as-is. A directory is searched for the standard install layout
// first; loose ui.package or CaSIEUI.data files anywhere under the
// directory are a fallback for extracted or modded trees.
func Discover(path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return []string{path}
	}

	files := findPackages(path, true)
	if len(files) == 0 {
		files = findPackages(path, false)
	}
	sort.Strings(files)
	return files
}

func findPackages(root string, installLayout bool) []string {
	var files []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != "ui.package" && name != "CaSIEUI.data" {
			return nil
		}
		if installLayout {
			dir := filepath.ToSlash(filepath.Dir(path))
			if !strings.HasSuffix(dir, "TSData/Res/UI") {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files
}
