package idl

import "fmt"

type TokenType uint16

const (
	TokenTypeUnknown      TokenType = 0
	TokenTypeIdentifier   TokenType = 1
	TokenTypeInteger      TokenType = 2
	TokenTypeParenOpen    TokenType = 3
	TokenTypeParenClose   TokenType = 4
	TokenTypeCurlyOpen    TokenType = 5
	TokenTypeCurlyClose   TokenType = 6
	TokenTypeComma        TokenType = 7
	TokenTypeColon        TokenType = 8
	TokenTypeArrow        TokenType = 9
	TokenTypeKeywordIf    TokenType = 10
	TokenTypeKeywordElse  TokenType = 11
	TokenTypeKeywordFn    TokenType = 12
	TokenTypeKeywordTrue  TokenType = 13
	TokenTypeKeywordFalse TokenType = 14
	TokenTypeNewline      TokenType = 15
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeUnknown:      "unknown",
	TokenTypeIdentifier:   "identifier",
	TokenTypeInteger:      "integer",
	TokenTypeParenOpen:    "(",
	TokenTypeParenClose:   ")",
	TokenTypeCurlyOpen:    "{",
	TokenTypeCurlyClose:   "}",
	TokenTypeComma:        ",",
	TokenTypeColon:        ":",
	TokenTypeArrow:        "->",
	TokenTypeKeywordIf:    "if",
	TokenTypeKeywordElse:  "else",
	TokenTypeKeywordFn:    "fn",
	TokenTypeKeywordTrue:  "true",
	TokenTypeKeywordFalse: "false",
	TokenTypeNewline:      "newline",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", uint16(t))
}

// Keywords maps reserved words to their token types. Reserved words are never
// lexed as identifiers.
var Keywords = map[string]TokenType{
	"if":    TokenTypeKeywordIf,
	"else":  TokenTypeKeywordElse,
	"fn":    TokenTypeKeywordFn,
	"true":  TokenTypeKeywordTrue,
	"false": TokenTypeKeywordFalse,
}
