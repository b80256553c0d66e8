// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"io"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

func bodyFromIO(v io.ReadCloser) idl.FileBody {
	return &ioFileBody{rc: v}
}

// ioFileBody adapts an io.ReadCloser to idl.FileBody. The end of the stream is
// signaled by an exception with code exc.CodeEOF, possibly alongside the last
// bytes read.
type ioFileBody struct {
	rc  io.ReadCloser
	buf []byte
}

func (self *ioFileBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if cap(self.buf) < int(size) {
		self.buf = make([]byte, size)
	}
	count, err := self.rc.Read(self.buf[:size])
	switch {
	case err == io.EOF:
		return self.buf[:count], exc.Wrap(exc.Location{}, exc.CodeEOF, err)
	case err != nil:
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
	return self.buf[:count], nil
}

func (self *ioFileBody) Close(ctx context.Context) error {
	return self.rc.Close()
}
