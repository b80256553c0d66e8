package idl

import "fmt"

// Rule identifies the grammar rule that produced a ParseNode. RuleProgram and
// RuleTypeExpr are start rules; they are silent and never appear in a tree.
type Rule uint16

const (
	RuleProgram Rule = iota
	RuleTypeExpr
	RuleCondition
	RuleTyp
	RuleTypVariable
	RuleExpression
	RuleFuncArgs
	RuleAscription
	RuleTypedVar
	RuleAbstraction
	RuleBoolean
	RuleVariable
	RuleInt
)

var ruleNames = [...]string{
	RuleProgram:     "program",
	RuleTypeExpr:    "typeexpr",
	RuleCondition:   "condition",
	RuleTyp:         "typ",
	RuleTypVariable: "typ_variable",
	RuleExpression:  "expression",
	RuleFuncArgs:    "func_args",
	RuleAscription:  "ascription",
	RuleTypedVar:    "typed_var",
	RuleAbstraction: "abstraction",
	RuleBoolean:     "boolean",
	RuleVariable:    "variable",
	RuleInt:         "int",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint16(r))
}

// ParseNode is one node of the concrete parse tree. Text is the exact slice of
// the source matched by the node.
type ParseNode struct {
	Rule     Rule
	Span     Span
	Text     string
	Children []*ParseNode
}
