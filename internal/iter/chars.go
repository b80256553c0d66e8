// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"context"
	"unicode/utf8"

	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/optional"
)

// NewChars iterates over the code points of an in-memory source text. Each
// invalid UTF-8 byte is returned on its own as utf8.RuneError with a width of
// one so that offsets always stay within the text.
func NewChars(text string) idl.Iterator[idl.Char] {
	return &chars{text: text}
}

type chars struct {
	text   string
	offset int
}

func (c *chars) Next(ctx context.Context) optional.Optional[idl.Char] {
	if c.offset >= len(c.text) {
		return optional.None[idl.Char]()
	}
	r, width := utf8.DecodeRuneInString(c.text[c.offset:])
	ch := idl.Char{
		Point:  idl.CodePoint(r),
		Offset: int64(c.offset),
		Width:  int32(width),
	}
	c.offset = c.offset + width
	return optional.Some(ch)
}

func (c *chars) Close(context.Context) error {
	return nil
}
