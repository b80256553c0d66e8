// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the abstract syntax tree produced by the gollum parser.
//
// The node set is closed: Node can only be implemented inside this package and
// consumers are expected to dispatch with a type switch over the concrete
// types below. Multi-parameter abstractions and multi-argument applications are
// always represented in curried form.
package ast

import (
	"fmt"

	"gopkg.microglot.org/gollum.go/internal/names"
)

// Loc is the byte range [Begin, End) of a node within File. Begin <= End.
// Offsets are 32-bit, so the parser refuses sources over 4 GiB.
type Loc struct {
	File  string
	Begin uint32
	End   uint32
}

func (self Loc) String() string {
	return fmt.Sprintf("%s:%d-%d", self.File, self.Begin, self.End)
}

// Node is implemented by every AST node.
type Node interface {
	Loc() Loc
	node()
}

type astNode struct {
	loc Loc
}

func (self astNode) Loc() Loc {
	return self.loc
}

func (astNode) node() {}

type Integer struct {
	astNode
	Value int64
}

type Boolean struct {
	astNode
	Value bool
}

type Variable struct {
	astNode
	Name names.Name
}

// Abstraction is a function of exactly one parameter. The parameter is either
// a Variable or an Ascription wrapping one.
type Abstraction struct {
	astNode
	Parameter Node
	Body      Node
}

// Application applies Function to exactly one Argument.
type Application struct {
	astNode
	Function Node
	Argument Node
}

type If struct {
	astNode
	Condition   Node
	Consequent  Node
	Alternative Node
}

type Ascription struct {
	astNode
	Expression Node
	Type       Node
}

type TyName struct {
	astNode
	Name names.Name
}

// TyFn is the function type Parameter -> Result.
type TyFn struct {
	astNode
	Parameter Node
	Result    Node
}

func NewInteger(loc Loc, value int64) *Integer {
	return &Integer{astNode: astNode{loc}, Value: value}
}

func NewBoolean(loc Loc, value bool) *Boolean {
	return &Boolean{astNode: astNode{loc}, Value: value}
}

func NewVariable(loc Loc, name names.Name) *Variable {
	return &Variable{astNode: astNode{loc}, Name: name}
}

func NewAbstraction(loc Loc, parameter Node, body Node) *Abstraction {
	return &Abstraction{astNode: astNode{loc}, Parameter: parameter, Body: body}
}

func NewApplication(loc Loc, function Node, argument Node) *Application {
	return &Application{astNode: astNode{loc}, Function: function, Argument: argument}
}

func NewIf(loc Loc, condition Node, consequent Node, alternative Node) *If {
	return &If{astNode: astNode{loc}, Condition: condition, Consequent: consequent, Alternative: alternative}
}

func NewAscription(loc Loc, expression Node, typ Node) *Ascription {
	return &Ascription{astNode: astNode{loc}, Expression: expression, Type: typ}
}

func NewTyName(loc Loc, name names.Name) *TyName {
	return &TyName{astNode: astNode{loc}, Name: name}
}

func NewTyFn(loc Loc, parameter Node, result Node) *TyFn {
	return &TyFn{astNode: astNode{loc}, Parameter: parameter, Result: result}
}
