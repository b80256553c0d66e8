package grammar

import (
	"context"
	"fmt"

	"github.com/bufbuild/protocompile/ast"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/iter"
)

type ParserGollum struct {
	reporter exc.Reporter
}

func NewParserGollum(reporter exc.Reporter) *ParserGollum {
	return &ParserGollum{reporter: reporter}
}

func (self *ParserGollum) PrepareParse(ctx context.Context, info *ast.FileInfo, text string, tokens idl.Iterator[*idl.Token]) *parserGollumTokens {
	// newlines carry no meaning in the grammar; they are only lexed so that
	// line starts get recorded.
	filteredTokens := iter.NewIteratorFilter(tokens, idl.Filter[*idl.Token](iter.FilterFunc[*idl.Token](func(ctx context.Context, t *idl.Token) bool {
		return t.Type != idl.TokenTypeNewline
	})))

	p := &parserGollumTokens{
		reporter: self.reporter,
		ctx:      ctx,
		uri:      info.Name(),
		text:     text,
		tokens:   iter.NewLookahead(filteredTokens, 1),
	}
	// Lookahead(0) is the current token from here on.
	_ = p.tokens.Next(ctx)
	return p
}

type parserGollumTokens struct {
	reporter exc.Reporter
	ctx      context.Context
	uri      string
	text     string
	// this is the .Span.End of the last successfully parsed token; it is the
	// end of every node being completed and the location of "unexpected EOF"
	// errors.
	loc    idl.Location
	tokens idl.Lookahead[*idl.Token]
}

func (p *parserGollumTokens) report(loc idl.Location, code string, message string) {
	_ = p.reporter.Report(exc.New(exc.Location{
		URI:      p.uri,
		Location: loc,
	}, code, message))
}

func (p *parserGollumTokens) reportUnexpected(t *idl.Token, expecting string) {
	if t.Type == idl.TokenTypeUnknown {
		p.report(t.Span.Start, exc.CodeUnexpectedCharacter, fmt.Sprintf("unexpected character %q (expecting %s)", t.Value, expecting))
		return
	}
	p.report(t.Span.Start, exc.CodeUnexpectedToken, fmt.Sprintf("unexpected %s (expecting %s)", t.Value, expecting))
}

func (p *parserGollumTokens) reportEOF(expecting string) {
	p.report(p.loc, exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF (expecting %s)", expecting))
}

func (p *parserGollumTokens) advance() {
	if t, ok := p.tokens.Lookahead(p.ctx, 0).Get(); ok {
		p.loc = t.Span.End
	}
	_ = p.tokens.Next(p.ctx)
}

// peek returns the current token or nil at the end of input.
func (p *parserGollumTokens) peek() *idl.Token {
	t, _ := p.tokens.Lookahead(p.ctx, 0).Get()
	return t
}

func (p *parserGollumTokens) peekIs(expectedType idl.TokenType) bool {
	maybeToken := p.peek()
	return maybeToken != nil && maybeToken.Type == expectedType
}

// reports an error if there is no current token, or the current token isn't of the expected type
// advances on success
func (p *parserGollumTokens) expectOne(expectedType idl.TokenType) *idl.Token {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.reportEOF(expectedType.String())
		return nil
	}
	if maybeToken.Type != expectedType {
		p.reportUnexpected(maybeToken, expectedType.String())
		return nil
	}
	p.advance()
	return maybeToken
}

// start returns the location where the next node begins.
func (p *parserGollumTokens) start() idl.Location {
	if maybeToken := p.peek(); maybeToken != nil {
		return maybeToken.Span.Start
	}
	return p.loc
}

// node completes a node that began at start and ends with the last consumed
// token.
func (p *parserGollumTokens) node(rule idl.Rule, start idl.Location, children []*idl.ParseNode) *idl.ParseNode {
	return &idl.ParseNode{
		Rule:     rule,
		Span:     idl.Span{Start: start, End: p.loc},
		Text:     p.text[start.Offset:p.loc.Offset],
		Children: children,
	}
}

func (p *parserGollumTokens) leaf(rule idl.Rule, t *idl.Token) *idl.ParseNode {
	return &idl.ParseNode{
		Rule: rule,
		Span: t.Span,
		Text: t.Value,
	}
}

func (p *parserGollumTokens) expectEnd() bool {
	if maybeToken := p.peek(); maybeToken != nil {
		p.reportUnexpected(maybeToken, "end of input")
		return false
	}
	return true
}

// Program = Expression EOF .
func (p *parserGollumTokens) ParseProgram() *idl.ParseNode {
	maybeExpression := p.parseExpression()
	if maybeExpression == nil || !p.expectEnd() {
		return nil
	}
	return maybeExpression
}

// TypeExpr = Typ EOF .
func (p *parserGollumTokens) ParseTypeExpr() *idl.ParseNode {
	maybeTyp := p.parseTyp()
	if maybeTyp == nil || !p.expectEnd() {
		return nil
	}
	return maybeTyp
}

// Expression = Term { FuncArgs | Ascription } .
func (p *parserGollumTokens) parseExpression() *idl.ParseNode {
	start := p.start()
	maybeTerm := p.parseTerm()
	if maybeTerm == nil {
		return nil
	}

	children := []*idl.ParseNode{maybeTerm}
	for {
		var maybeChild *idl.ParseNode
		switch {
		case p.peekIs(idl.TokenTypeParenOpen):
			maybeChild = p.parseFuncArgs()
		case p.peekIs(idl.TokenTypeColon):
			maybeChild = p.parseAscription()
		default:
			return p.node(idl.RuleExpression, start, children)
		}
		if maybeChild == nil {
			return nil
		}
		children = append(children, maybeChild)
	}
}

// Term = Condition | Abstraction | boolean | int | variable | paren_open Expression paren_close .
func (p *parserGollumTokens) parseTerm() *idl.ParseNode {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.reportEOF("an expression")
		return nil
	}

	switch maybeToken.Type {
	case idl.TokenTypeKeywordIf:
		return p.parseCondition()
	case idl.TokenTypeKeywordFn:
		return p.parseAbstraction()
	case idl.TokenTypeKeywordTrue, idl.TokenTypeKeywordFalse:
		p.advance()
		return p.leaf(idl.RuleBoolean, maybeToken)
	case idl.TokenTypeInteger:
		p.advance()
		return p.leaf(idl.RuleInt, maybeToken)
	case idl.TokenTypeIdentifier:
		p.advance()
		return p.leaf(idl.RuleVariable, maybeToken)
	case idl.TokenTypeParenOpen:
		p.advance()
		maybeExpression := p.parseExpression()
		if maybeExpression == nil {
			return nil
		}
		if p.expectOne(idl.TokenTypeParenClose) == nil {
			return nil
		}
		return maybeExpression
	default:
		p.reportUnexpected(maybeToken, "an expression")
		return nil
	}
}

// FuncArgs = paren_open [ Expression { comma Expression } ] paren_close .
func (p *parserGollumTokens) parseFuncArgs() *idl.ParseNode {
	start := p.start()
	if p.expectOne(idl.TokenTypeParenOpen) == nil {
		return nil
	}

	args := []*idl.ParseNode{}
	if !p.peekIs(idl.TokenTypeParenClose) {
		for {
			maybeArg := p.parseExpression()
			if maybeArg == nil {
				return nil
			}
			args = append(args, maybeArg)
			if !p.peekIs(idl.TokenTypeComma) {
				break
			}
			p.advance()
		}
	}

	if p.expectOne(idl.TokenTypeParenClose) == nil {
		return nil
	}
	return p.node(idl.RuleFuncArgs, start, args)
}

// Ascription = colon Typ .
func (p *parserGollumTokens) parseAscription() *idl.ParseNode {
	start := p.start()
	if p.expectOne(idl.TokenTypeColon) == nil {
		return nil
	}
	maybeTyp := p.parseTyp()
	if maybeTyp == nil {
		return nil
	}
	return p.node(idl.RuleAscription, start, []*idl.ParseNode{maybeTyp})
}

// Condition = if Expression curly_open Expression curly_close else curly_open Expression curly_close .
func (p *parserGollumTokens) parseCondition() *idl.ParseNode {
	start := p.start()
	if p.expectOne(idl.TokenTypeKeywordIf) == nil {
		return nil
	}
	maybeCondition := p.parseExpression()
	if maybeCondition == nil {
		return nil
	}
	maybeConsequent := p.parseBlock()
	if maybeConsequent == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeKeywordElse) == nil {
		return nil
	}
	maybeAlternative := p.parseBlock()
	if maybeAlternative == nil {
		return nil
	}
	return p.node(idl.RuleCondition, start, []*idl.ParseNode{maybeCondition, maybeConsequent, maybeAlternative})
}

// Block = curly_open Expression curly_close .
func (p *parserGollumTokens) parseBlock() *idl.ParseNode {
	if p.expectOne(idl.TokenTypeCurlyOpen) == nil {
		return nil
	}
	maybeExpression := p.parseExpression()
	if maybeExpression == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeCurlyClose) == nil {
		return nil
	}
	return maybeExpression
}

// Abstraction = fn paren_open [ TypedVar { comma TypedVar } ] paren_close Block .
func (p *parserGollumTokens) parseAbstraction() *idl.ParseNode {
	start := p.start()
	if p.expectOne(idl.TokenTypeKeywordFn) == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeParenOpen) == nil {
		return nil
	}

	children := []*idl.ParseNode{}
	if !p.peekIs(idl.TokenTypeParenClose) {
		for {
			maybeParam := p.parseTypedVar()
			if maybeParam == nil {
				return nil
			}
			children = append(children, maybeParam)
			if !p.peekIs(idl.TokenTypeComma) {
				break
			}
			p.advance()
		}
	}
	if p.expectOne(idl.TokenTypeParenClose) == nil {
		return nil
	}

	maybeBody := p.parseBlock()
	if maybeBody == nil {
		return nil
	}
	children = append(children, maybeBody)
	return p.node(idl.RuleAbstraction, start, children)
}

// TypedVar = variable [ Ascription ] .
func (p *parserGollumTokens) parseTypedVar() *idl.ParseNode {
	start := p.start()
	maybeIdentifier := p.expectOne(idl.TokenTypeIdentifier)
	if maybeIdentifier == nil {
		return nil
	}

	children := []*idl.ParseNode{p.leaf(idl.RuleVariable, maybeIdentifier)}
	if p.peekIs(idl.TokenTypeColon) {
		maybeAscription := p.parseAscription()
		if maybeAscription == nil {
			return nil
		}
		children = append(children, maybeAscription)
	}
	return p.node(idl.RuleTypedVar, start, children)
}

// Typ = TypAtom { arrow TypAtom } .
func (p *parserGollumTokens) parseTyp() *idl.ParseNode {
	start := p.start()
	maybeAtom := p.parseTypAtom()
	if maybeAtom == nil {
		return nil
	}

	atoms := []*idl.ParseNode{maybeAtom}
	for p.peekIs(idl.TokenTypeArrow) {
		p.advance()
		maybeAtom = p.parseTypAtom()
		if maybeAtom == nil {
			return nil
		}
		atoms = append(atoms, maybeAtom)
	}
	return p.node(idl.RuleTyp, start, atoms)
}

// TypAtom = typ_variable | paren_open Typ paren_close .
func (p *parserGollumTokens) parseTypAtom() *idl.ParseNode {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.reportEOF("a type")
		return nil
	}

	switch maybeToken.Type {
	case idl.TokenTypeIdentifier:
		p.advance()
		return p.leaf(idl.RuleTypVariable, maybeToken)
	case idl.TokenTypeParenOpen:
		p.advance()
		maybeTyp := p.parseTyp()
		if maybeTyp == nil {
			return nil
		}
		if p.expectOne(idl.TokenTypeParenClose) == nil {
			return nil
		}
		return maybeTyp
	default:
		p.reportUnexpected(maybeToken, "a type")
		return nil
	}
}
