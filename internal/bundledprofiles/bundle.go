// Package bundledprofiles embeds the profile documents shipped with the
// binary so `copy-profile` works without a --repo flag or network
// access, mirroring spec.md §6's "copy bundled profiles into CWD".
package bundledprofiles

import (
	"embed"
	"io/fs"
)

//go:embed *.yaml
var files embed.FS

// Files returns the bundled profile filenames.
func Files() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Read returns the contents of one bundled profile by filename.
func Read(name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}
