// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build aix || darwin || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris

package frontend

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultXDGDataDirs = "/usr/local/share/:/usr/share/"

func getDefaultRoots(lookup func(string) (string, bool)) []string {
	xdgDirs, ok := lookup("XDG_DATA_DIRS")
	if !ok || xdgDirs == "" {
		xdgDirs = defaultXDGDataDirs
	}
	roots := make([]string, 0, strings.Count(xdgDirs, ":")+1)
	for _, dataDir := range strings.Split(xdgDirs, ":") {
		if dataDir == "" {
			continue
		}
		expanded := os.Expand(dataDir, func(s string) string {
			v, _ := lookup(s)
			return v
		})
		roots = append(roots, filepath.Join(expanded, "gollum"))
	}
	return roots
}
