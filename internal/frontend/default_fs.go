// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"path/filepath"

	"gopkg.microglot.org/gollum.go/internal/fs"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

// NewDefaultFS searches the platform data directories for gollum sources.
func NewDefaultFS(lookup func(string) (string, bool)) (idl.FileSystem, error) {
	roots := getDefaultRoots(lookup)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}
