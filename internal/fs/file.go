// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"io"
	"strings"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

// NewFileString wraps in-memory source text in idl.File.
func NewFileString(path string, content string, kind idl.FileKind) idl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

// NewFileFN wraps a body factory in idl.File. The factory is called once per
// call to Body and must return a fresh handle each time.
func NewFileFN(path string, body func() (io.ReadCloser, error), kind idl.FileKind) idl.File {
	return &fileFN{
		path: path,
		kind: kind,
		open: body,
	}
}

type fileFN struct {
	path string
	kind idl.FileKind
	open func() (io.ReadCloser, error)
}

func (self *fileFN) Path(ctx context.Context) string {
	return self.path
}

func (self *fileFN) Kind(ctx context.Context) idl.FileKind {
	return self.kind
}

func (self *fileFN) Body(ctx context.Context) (idl.FileBody, error) {
	rc, err := self.open()
	if err != nil {
		return nil, err
	}
	return bodyFromIO(struct {
		io.Reader
		io.Closer
	}{bufio.NewReader(rc), rc}), nil
}

const readChunk = 4096

// ReadAll returns the whole body of f as a string and closes the body.
func ReadAll(ctx context.Context, f idl.File) (string, error) {
	body, err := f.Body(ctx)
	if err != nil {
		return "", err
	}
	defer body.Close(ctx)

	var b strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		chunk, err := body.Read(ctx, readChunk)
		b.Write(chunk)
		if err == nil {
			continue
		}
		if e, ok := err.(exc.Exception); ok && e.Code() == exc.CodeEOF {
			return b.String(), nil
		}
		return "", err
	}
}
