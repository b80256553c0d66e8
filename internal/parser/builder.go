// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"math"
	"strconv"

	"github.com/golang/glog"

	"gopkg.microglot.org/gollum.go/internal/ast"
	"gopkg.microglot.org/gollum.go/internal/contract"
	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/names"
)

// builder converts a concrete parse tree into the curried AST. Every node it
// sees was produced by the grammar, so any shape it does not expect is a bug
// in one side or the other and aborts through contract.
type builder struct {
	file string
}

func (self *builder) loc(n *idl.ParseNode) ast.Loc {
	contract.Assertf(
		0 <= n.Span.Start.Offset && n.Span.Start.Offset <= n.Span.End.Offset && n.Span.End.Offset <= math.MaxUint32,
		"%s node spans bytes %d-%d", n.Rule, n.Span.Start.Offset, n.Span.End.Offset,
	)
	return ast.Loc{
		File:  self.file,
		Begin: uint32(n.Span.Start.Offset),
		End:   uint32(n.Span.End.Offset),
	}
}

func (self *builder) build(n *idl.ParseNode) ast.Node {
	loc := self.loc(n)
	switch n.Rule {
	case idl.RuleInt:
		return ast.NewInteger(loc, parseInt(n.Text))
	case idl.RuleBoolean:
		return ast.NewBoolean(loc, parseBool(n.Text))
	case idl.RuleVariable:
		return ast.NewVariable(loc, names.Ident(n.Text))
	case idl.RuleCondition:
		return self.buildCondition(loc, n)
	case idl.RuleExpression:
		return self.buildExpression(loc, n)
	case idl.RuleTypedVar:
		return self.buildTypedVar(loc, n)
	case idl.RuleAbstraction:
		return self.buildAbstraction(loc, n)
	default:
		contract.Failf("unexpected %s node in expression position", n.Rule)
		return nil
	}
}

func (self *builder) buildCondition(loc ast.Loc, n *idl.ParseNode) ast.Node {
	contract.Assertf(len(n.Children) == 3, "condition has %d children, want 3", len(n.Children))
	return ast.NewIf(
		loc,
		self.build(n.Children[0]),
		self.build(n.Children[1]),
		self.build(n.Children[2]),
	)
}

// buildExpression folds calls and ascriptions left to right onto the head
// term. Each argument of a call is applied separately.
func (self *builder) buildExpression(loc ast.Loc, n *idl.ParseNode) ast.Node {
	contract.Assertf(len(n.Children) > 0, "expression has no children")
	result := self.build(n.Children[0])
	for _, suffix := range n.Children[1:] {
		switch suffix.Rule {
		case idl.RuleFuncArgs:
			for _, arg := range suffix.Children {
				result = ast.NewApplication(loc, result, self.build(arg))
			}
		case idl.RuleAscription:
			result = ast.NewAscription(loc, result, self.buildAscription(suffix))
		default:
			contract.Failf("unexpected %s node after the head of an expression", suffix.Rule)
		}
	}
	if glog.V(9) {
		glog.Infof("parser: expression at %s folded %d suffixes", loc, len(n.Children)-1)
	}
	return result
}

func (self *builder) buildAscription(n *idl.ParseNode) ast.Node {
	contract.Assertf(len(n.Children) == 1, "ascription has %d children, want 1", len(n.Children))
	return self.buildType(n.Children[0])
}

func (self *builder) buildTypedVar(loc ast.Loc, n *idl.ParseNode) ast.Node {
	switch len(n.Children) {
	case 1:
		return self.build(n.Children[0])
	case 2:
		contract.Assertf(n.Children[1].Rule == idl.RuleAscription, "typed variable annotated by %s", n.Children[1].Rule)
		return ast.NewAscription(loc, self.build(n.Children[0]), self.buildAscription(n.Children[1]))
	default:
		contract.Failf("typed variable has %d children, want 1 or 2", len(n.Children))
		return nil
	}
}

// buildAbstraction curries the parameters right to left around the body.
func (self *builder) buildAbstraction(loc ast.Loc, n *idl.ParseNode) ast.Node {
	contract.Assertf(len(n.Children) > 0, "abstraction has no body")
	last := len(n.Children) - 1
	params := make([]ast.Node, 0, last)
	for _, child := range n.Children[:last] {
		contract.Assertf(child.Rule == idl.RuleTypedVar, "abstraction parameter is a %s", child.Rule)
		params = append(params, self.build(child))
	}
	result := self.build(n.Children[last])
	for x := len(params) - 1; x >= 0; x = x - 1 {
		result = ast.NewAbstraction(loc, params[x], result)
	}
	if glog.V(9) {
		glog.Infof("parser: abstraction at %s curried %d parameters", loc, len(params))
	}
	return result
}

// buildType folds the terms of a typ node into right associative arrows. Each
// arrow spans from its parameter to the end of the whole type.
func (self *builder) buildType(n *idl.ParseNode) ast.Node {
	switch n.Rule {
	case idl.RuleTypVariable:
		return ast.NewTyName(self.loc(n), names.Ident(n.Text))
	case idl.RuleTyp:
	default:
		contract.Failf("unexpected %s node in type position", n.Rule)
	}

	loc := self.loc(n)
	contract.Assertf(len(n.Children) > 0, "type has no terms")
	terms := make([]ast.Node, 0, len(n.Children))
	begins := make([]uint32, 0, len(n.Children))
	for _, child := range n.Children {
		terms = append(terms, self.buildType(child))
		begins = append(begins, self.loc(child).Begin)
	}
	result := terms[len(terms)-1]
	for x := len(terms) - 2; x >= 0; x = x - 1 {
		result = ast.NewTyFn(ast.Loc{File: loc.File, Begin: begins[x], End: loc.End}, terms[x], result)
	}
	return result
}

func parseInt(text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		contract.Failf("integer literal %q was accepted by the grammar: %v", text, err)
	}
	return v
}

func parseBool(text string) bool {
	switch text {
	case "true":
		return true
	case "false":
		return false
	default:
		contract.Failf("boolean literal %q was accepted by the grammar", text)
		return false
	}
}
