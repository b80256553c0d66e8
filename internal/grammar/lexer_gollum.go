// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"context"
	"fmt"
	"strconv"
	"unicode"

	"github.com/bufbuild/protocompile/ast"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/iter"
	"gopkg.microglot.org/gollum.go/internal/optional"
)

const (
	lexerGollumLookahead = 1
)

// LexerGollum implements a tokenizer for gollum source text.
type LexerGollum struct {
	reporter exc.Reporter
}

func NewLexerGollum(reporter exc.Reporter) *LexerGollum {
	return &LexerGollum{reporter: reporter}
}

// Lex returns the token stream of text. Line starts are recorded in info as
// the stream is consumed so that token locations carry line and column
// numbers. Token values are slices of text.
func (self *LexerGollum) Lex(ctx context.Context, info *ast.FileInfo, text string) idl.Iterator[*idl.Token] {
	return &lexerGollumTokens{
		uri:      info.Name(),
		text:     text,
		info:     info,
		body:     iter.NewLookahead(iter.NewChars(text), lexerGollumLookahead),
		reporter: self.reporter,
	}
}

type lexerGollumTokens struct {
	uri      string
	text     string
	info     *ast.FileInfo
	body     idl.Lookahead[idl.Char]
	reporter exc.Reporter
	// set once a malformed literal ends the stream
	done bool
}

func (self *lexerGollumTokens) Next(ctx context.Context) optional.Optional[*idl.Token] {
	if self.done {
		return optional.None[*idl.Token]()
	}
	for c := self.body.Next(ctx); c.IsPresent(); c = self.body.Next(ctx) {
		ch := c.Value()
		r := rune(ch.Point)
		switch r {
		case 0x0009, 0x0020:
			continue // Generally ignore space and tab.
		case '\n':
			self.info.AddLine(int(ch.Offset) + 1)
			return self.token(ch.Offset, ch.Offset+1, idl.TokenTypeNewline)
		case '\r':
			if n := self.peek(ctx); n.Point == '\n' {
				_ = self.body.Next(ctx)
				self.info.AddLine(int(ch.Offset) + 2)
				return self.token(ch.Offset, ch.Offset+2, idl.TokenTypeNewline)
			}
			self.info.AddLine(int(ch.Offset) + 1)
			return self.token(ch.Offset, ch.Offset+1, idl.TokenTypeNewline)
		case '(':
			return self.single(ch, idl.TokenTypeParenOpen)
		case ')':
			return self.single(ch, idl.TokenTypeParenClose)
		case '{':
			return self.single(ch, idl.TokenTypeCurlyOpen)
		case '}':
			return self.single(ch, idl.TokenTypeCurlyClose)
		case ',':
			return self.single(ch, idl.TokenTypeComma)
		case ':':
			return self.single(ch, idl.TokenTypeColon)
		case '-':
			if n := self.peek(ctx); n.Point == '>' {
				_ = self.body.Next(ctx)
				return self.token(ch.Offset, ch.Offset+2, idl.TokenTypeArrow)
			}
			return self.single(ch, idl.TokenTypeUnknown)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return self.readInteger(ctx, ch)
		case '_':
			// an underscore is the start of an identifier
			return self.readIdentifier(ctx, ch)
		default:
			if unicode.IsLetter(r) {
				return self.readIdentifier(ctx, ch)
			}
			return self.single(ch, idl.TokenTypeUnknown)
		}
	}
	return optional.None[*idl.Token]()
}

// peek returns the next unread character, or a zero Char at the end of the
// text.
func (self *lexerGollumTokens) peek(ctx context.Context) idl.Char {
	return self.body.Lookahead(ctx, 1).ValueOr(idl.Char{Offset: int64(len(self.text))})
}

func (self *lexerGollumTokens) readIdentifier(ctx context.Context, first idl.Char) optional.Optional[*idl.Token] {
	end := first.Offset + int64(first.Width)
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			break
		}
		r := rune(n.Value().Point)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		_ = self.body.Next(ctx)
		end = n.Value().Offset + int64(n.Value().Width)
	}
	t := self.newToken(first.Offset, end, idl.TokenTypeIdentifier)
	if kind, ok := idl.Keywords[t.Value]; ok {
		t.Type = kind
	}
	return optional.Some(t)
}

func (self *lexerGollumTokens) readInteger(ctx context.Context, first idl.Char) optional.Optional[*idl.Token] {
	end := first.Offset + int64(first.Width)
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			break
		}
		r := rune(n.Value().Point)
		if r < '0' || r > '9' {
			break
		}
		_ = self.body.Next(ctx)
		end = n.Value().Offset + int64(n.Value().Width)
	}
	t := self.newToken(first.Offset, end, idl.TokenTypeInteger)
	if _, err := strconv.ParseInt(t.Value, 10, 64); err != nil {
		_ = self.reporter.Report(exc.New(
			exc.Location{URI: self.uri, Location: t.Span.Start},
			exc.CodeInvalidNumber,
			fmt.Sprintf("integer literal %s does not fit in 64 bits", t.Value),
		))
		self.done = true
		return optional.None[*idl.Token]()
	}
	return optional.Some(t)
}

func (self *lexerGollumTokens) single(ch idl.Char, kind idl.TokenType) optional.Optional[*idl.Token] {
	return self.token(ch.Offset, ch.Offset+int64(ch.Width), kind)
}

func (self *lexerGollumTokens) token(start int64, end int64, kind idl.TokenType) optional.Optional[*idl.Token] {
	return optional.Some(self.newToken(start, end, kind))
}

func (self *lexerGollumTokens) newToken(start int64, end int64, kind idl.TokenType) *idl.Token {
	return &idl.Token{
		Span: idl.Span{
			Start: self.location(start),
			End:   self.location(end),
		},
		Type:  kind,
		Value: self.text[start:end],
	}
}

func (self *lexerGollumTokens) location(offset int64) idl.Location {
	pos := self.info.SourcePos(int(offset))
	return idl.Location{
		Line:   int32(pos.Line),
		Column: int32(pos.Col),
		Offset: offset,
	}
}

func (self *lexerGollumTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}
