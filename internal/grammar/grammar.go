// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package grammar turns gollum source text into a concrete parse tree.
package grammar

import (
	"context"

	"github.com/bufbuild/protocompile/ast"
	"github.com/golang/glog"

	"gopkg.microglot.org/gollum.go/internal/contract"
	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

// Gollum implements idl.Grammar. It holds no state between calls and is safe
// for concurrent use.
type Gollum struct{}

func New() *Gollum {
	return &Gollum{}
}

// ParseTree parses text starting from one of the start rules. The returned
// node is the single child of the start rule: an expression node for
// RuleProgram and a typ node for RuleTypeExpr. When the text does not match
// the grammar the first reported syntax error is returned.
func (self *Gollum) ParseTree(ctx context.Context, start idl.Rule, uri string, text string) (*idl.ParseNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reporter := exc.NewReporter(nil)
	info := ast.NewFileInfo(uri, []byte(text))
	tokens := NewLexerGollum(reporter).Lex(ctx, info, text)
	defer tokens.Close(ctx)
	p := NewParserGollum(reporter).PrepareParse(ctx, info, text, tokens)

	var root *idl.ParseNode
	switch start {
	case idl.RuleProgram:
		root = p.ParseProgram()
	case idl.RuleTypeExpr:
		root = p.ParseTypeExpr()
	default:
		contract.Failf("%s is not a start rule", start)
	}

	if reported := reporter.Reported(); len(reported) > 0 {
		if glog.V(7) {
			glog.Infof("grammar: %s rejected with %d exceptions: %v", uri, len(reported), exc.MultiException(reported))
		}
		return nil, reported[0]
	}
	contract.Assertf(root != nil, "parse of %s produced no tree and no error", uri)
	if glog.V(7) {
		glog.Infof("grammar: %s parsed as %s over bytes %d-%d", uri, start, root.Span.Start.Offset, root.Span.End.Offset)
	}
	return root, nil
}

// Parse is a convenience for New().ParseTree.
func Parse(ctx context.Context, start idl.Rule, uri string, text string) (*idl.ParseNode, error) {
	return New().ParseTree(ctx, start, uri, text)
}
