// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

const (
	programExt = ".gollum"     // A gollum program
	typeExt    = ".gollumtype" // A standalone gollum type expression
)

var knownExts = map[string]idl.FileKind{
	programExt: idl.FileKindGollum,
	typeExt:    idl.FileKindGollumType,
}

// KindOf returns the file kind implied by the extension of name.
func KindOf(name string) idl.FileKind {
	return knownExts[path.Ext(name)]
}

var _ idl.FileSystem = FileSystemMulti{}

// FileSystemMulti is an ordered set of FileSystem implementations. Open
// returns the result of the first one that can open the URI.
type FileSystemMulti []idl.FileSystem

func (self FileSystemMulti) Open(ctx context.Context, uri string) ([]idl.File, error) {
	for _, fsys := range self {
		files, err := fsys.Open(ctx, uri)
		if err != nil {
			continue
		}
		return files, nil
	}
	return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, fmt.Sprintf("could not open %s from any file system", uri))
}

// FileFilter selects which files to open when the path being opened is a
// directory.
type FileFilter func(ctx context.Context, fname string) bool

type FileSystemLocalOption func(*fileSystemLocal)

// WithOptionFSFactory installs the factory that produces the underlying file
// system for a root directory. The default is os.DirFS. All paths given to
// Open are relative to the root.
func WithOptionFSFactory(v func(root string) fs.FS) FileSystemLocalOption {
	return func(self *fileSystemLocal) {
		self.fsFactory = v
	}
}

// WithOptionFileFilter installs the filter used to select files when a target
// is a directory. The default keeps files with a known gollum extension.
func WithOptionFileFilter(v FileFilter) FileSystemLocalOption {
	return func(self *fileSystemLocal) {
		self.fileFilter = v
	}
}

type fileSystemLocal struct {
	root       string
	fsFactory  func(string) fs.FS
	fileFilter FileFilter
}

// NewFileSystemLocal creates a FileSystem rooted at the given directory.
func NewFileSystemLocal(root string, options ...FileSystemLocalOption) (idl.FileSystem, error) {
	absroot, err := filepath.Abs(root)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: root}, err)
	}
	result := &fileSystemLocal{
		root:      absroot,
		fsFactory: os.DirFS,
		fileFilter: func(ctx context.Context, fname string) bool {
			return KindOf(fname) != idl.FileKindNone
		},
	}
	for _, option := range options {
		option(result)
	}
	return result, nil
}

func (self *fileSystemLocal) Open(ctx context.Context, uri string) ([]idl.File, error) {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		p = u.Path
	}
	p = path.Clean("/" + filepath.ToSlash(p))
	// fs.FS wants un-rooted paths and spells the root as ".".
	rel := strings.TrimPrefix(p, "/")
	if rel == "" {
		rel = "."
	}

	dir := self.fsFactory(self.root)
	stat, err := fs.Stat(dir, rel)
	if err != nil {
		return nil, fsErr(rel, err)
	}
	if !stat.IsDir() {
		return []idl.File{self.file(dir, p, rel)}, nil
	}

	entries, err := fs.ReadDir(dir, rel)
	if err != nil {
		return nil, fsErr(rel, err)
	}
	files := make([]idl.File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !self.fileFilter(ctx, entry.Name()) {
			continue
		}
		files = append(files, self.file(dir, path.Join(p, entry.Name()), path.Join(rel, entry.Name())))
	}
	if len(files) < 1 {
		return nil, exc.New(exc.Location{URI: p}, exc.CodeFileNotFound, fmt.Sprintf("found directory %s but it has no gollum files", p))
	}
	return files, nil
}

func (self *fileSystemLocal) file(dir fs.FS, p string, rel string) idl.File {
	return NewFileFN(p, func() (io.ReadCloser, error) {
		f, err := dir.Open(rel)
		if err != nil {
			return nil, fsErr(rel, err)
		}
		return f, nil
	}, KindOf(p))
}

func fsErr(p string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		p = pathErr.Path
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return exc.Wrap(exc.Location{URI: p}, exc.CodeFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return exc.Wrap(exc.Location{URI: p}, exc.CodePermissionDenied, err)
	default:
		return exc.WrapUnknown(exc.Location{URI: p}, err)
	}
}
