package target

import (
	"net/url"
	"path"
	"path/filepath"
)

// Normalize converts a parse target into the form used to de-duplicate work
// and to open files.
//
// Targets may be any URI or a file path. File paths and file URIs become
// clean, absolute, slash separated paths. Other URIs are returned unchanged so
// that a file system that understands the scheme can resolve them.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	return path.Clean("/" + filepath.ToSlash(target))
}
