// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package parser builds gollum syntax trees from source text.
//
// Text is first matched against the grammar, which is the only stage that can
// reject user input. The resulting parse tree is then converted into the
// curried AST: every call applies one argument at a time and every
// abstraction binds one parameter. Each AST node records the byte span of the
// source construct it came from.
package parser

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/glog"

	"gopkg.microglot.org/gollum.go/internal/ast"
	"gopkg.microglot.org/gollum.go/internal/contract"
	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/fs"
	"gopkg.microglot.org/gollum.go/internal/grammar"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

// Parser builds syntax trees using a grammar engine.
type Parser struct {
	grammar idl.Grammar
	// sources longer than this are refused before parsing
	maxSource int64
}

// New returns a Parser that matches text with g.
func New(g idl.Grammar) *Parser {
	return &Parser{grammar: g, maxSource: maxSourceSize}
}

// maxSourceSize is the largest source whose byte offsets fit in ast.Loc.
const maxSourceSize = math.MaxUint32

var defaultParser = New(grammar.New())

// Parse builds the syntax tree of a whole program.
func (self *Parser) Parse(ctx context.Context, file string, text string) (ast.Node, error) {
	return self.parse(ctx, idl.RuleProgram, file, text)
}

// ParseType builds the syntax tree of a standalone type expression.
func (self *Parser) ParseType(ctx context.Context, file string, text string) (ast.Node, error) {
	return self.parse(ctx, idl.RuleTypeExpr, file, text)
}

// ParseFile reads f and builds its syntax tree according to its kind.
func (self *Parser) ParseFile(ctx context.Context, f idl.File) (ast.Node, error) {
	path := f.Path(ctx)
	var start idl.Rule
	switch kind := f.Kind(ctx); kind {
	case idl.FileKindGollum:
		start = idl.RuleProgram
	case idl.FileKindGollumType:
		start = idl.RuleTypeExpr
	default:
		return nil, exc.New(exc.Location{URI: path}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("cannot parse %s files", kind))
	}
	text, err := fs.ReadAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return self.parse(ctx, start, path, text)
}

func (self *Parser) parse(ctx context.Context, start idl.Rule, file string, text string) (ast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if int64(len(text)) > self.maxSource {
		return nil, exc.New(exc.Location{URI: file}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("source is %d bytes, the limit is %d", len(text), self.maxSource))
	}
	root, err := self.grammar.ParseTree(ctx, start, file, text)
	if err != nil {
		return nil, err
	}
	b := &builder{file: file}
	var result ast.Node
	if start == idl.RuleTypeExpr {
		result = b.buildType(root)
	} else {
		result = b.build(root)
	}
	checkLocs(result, len(text))
	return result, nil
}

// checkLocs asserts that every node lies within a source of the given size.
func checkLocs(root ast.Node, size int) {
	count := 0
	ast.Walk(root, func(n ast.Node) {
		loc := n.Loc()
		contract.Assertf(loc.Begin <= loc.End && int64(loc.End) <= int64(size), "node at %s is outside a source of %d bytes", loc, size)
		count = count + 1
	})
	if glog.V(9) {
		glog.Infof("parser: built %d nodes from %d bytes", count, size)
	}
}

// Parse builds the syntax tree of a whole program.
func Parse(file string, text string) (ast.Node, error) {
	return ParseContext(context.Background(), file, text)
}

// ParseType builds the syntax tree of a standalone type expression.
func ParseType(file string, text string) (ast.Node, error) {
	return ParseTypeContext(context.Background(), file, text)
}

// ParseContext is Parse with a caller context.
func ParseContext(ctx context.Context, file string, text string) (ast.Node, error) {
	return defaultParser.Parse(ctx, file, text)
}

// ParseTypeContext is ParseType with a caller context.
func ParseTypeContext(ctx context.Context, file string, text string) (ast.Node, error) {
	return defaultParser.ParseType(ctx, file, text)
}

// ParseFile reads f and builds its syntax tree according to its kind.
func ParseFile(ctx context.Context, f idl.File) (ast.Node, error) {
	return defaultParser.ParseFile(ctx, f)
}
