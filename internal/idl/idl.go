package idl

import (
	"context"
	"fmt"

	"gopkg.microglot.org/gollum.go/internal/ast"
	"gopkg.microglot.org/gollum.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindGollum
	FileKindGollumType
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindGollum:
		return "gollum"
	case FileKindGollumType:
		return "gollum-type"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

// FileSystem resolves a URI to the files it names. A directory resolves to
// the files it directly contains.
type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
}

// Location is a single point in a source file. Line and Column are 1-based
// and Offset is a 0-based byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start Location
	End   Location
}

type Token struct {
	Span  Span
	Type  TokenType
	Value string
}

// Grammar turns source text into a concrete parse tree rooted at the single
// node matched by the start rule.
type Grammar interface {
	ParseTree(ctx context.Context, start Rule, uri string, text string) (*ParseNode, error)
}

// Frontend parses a batch of source files into syntax trees.
type Frontend interface {
	Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error)
}

type ParseRequest struct {
	Files []string
}

type ParseResponse struct {
	Modules []*Module
}

type Module struct {
	URI  string
	Kind FileKind
	Root ast.Node
}

// Char is a code point along with the byte range it occupies in its source.
type Char struct {
	Point  CodePoint
	Offset int64
	Width  int32
}
