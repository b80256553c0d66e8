// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"context"
	"testing"

	"github.com/bufbuild/protocompile/ast"
	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/iter"
)

func newToken(startLine int32, startCol int32, startOffset int64, endLine int32, endCol int32, endOffset int64, kind idl.TokenType, value string) *idl.Token {
	return &idl.Token{
		Span: idl.Span{
			Start: idl.Location{Line: startLine, Column: startCol, Offset: startOffset},
			End:   idl.Location{Line: endLine, Column: endCol, Offset: endOffset},
		},
		Type:  kind,
		Value: value,
	}
}

// newTokenLine builds a token contained in the first line of the input.
func newTokenLine(start int64, end int64, kind idl.TokenType, value string) *idl.Token {
	return newToken(1, int32(start)+1, start, 1, int32(end)+1, end, kind, value)
}

func lexAll(t *testing.T, input string) ([]*idl.Token, []exc.Exception) {
	t.Helper()
	ctx := context.Background()
	rep := exc.NewReporter(nil)
	tokens, err := iter.Collect(ctx, NewLexerGollum(rep).Lex(ctx, ast.NewFileInfo("/test.gollum", []byte(input)), input))
	require.NoError(t, err)
	return tokens, rep.Reported()
}

func TestLexer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []*idl.Token
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    " \t ",
			expected: nil,
		},
		{
			name:  "new lines",
			input: "\n\r\r\n",
			expected: []*idl.Token{
				newToken(1, 1, 0, 2, 1, 1, idl.TokenTypeNewline, "\n"),
				newToken(2, 1, 1, 3, 1, 2, idl.TokenTypeNewline, "\r"),
				newToken(3, 1, 2, 4, 1, 4, idl.TokenTypeNewline, "\r\n"),
			},
		},
		{
			name:  "punctuation",
			input: "(){},:->",
			expected: []*idl.Token{
				newTokenLine(0, 1, idl.TokenTypeParenOpen, "("),
				newTokenLine(1, 2, idl.TokenTypeParenClose, ")"),
				newTokenLine(2, 3, idl.TokenTypeCurlyOpen, "{"),
				newTokenLine(3, 4, idl.TokenTypeCurlyClose, "}"),
				newTokenLine(4, 5, idl.TokenTypeComma, ","),
				newTokenLine(5, 6, idl.TokenTypeColon, ":"),
				newTokenLine(6, 8, idl.TokenTypeArrow, "->"),
			},
		},
		{
			name:  "keywords",
			input: "if else fn true false",
			expected: []*idl.Token{
				newTokenLine(0, 2, idl.TokenTypeKeywordIf, "if"),
				newTokenLine(3, 7, idl.TokenTypeKeywordElse, "else"),
				newTokenLine(8, 10, idl.TokenTypeKeywordFn, "fn"),
				newTokenLine(11, 15, idl.TokenTypeKeywordTrue, "true"),
				newTokenLine(16, 21, idl.TokenTypeKeywordFalse, "false"),
			},
		},
		{
			name:  "identifiers that start with keywords",
			input: "iffy fn_ _x1 truest",
			expected: []*idl.Token{
				newTokenLine(0, 4, idl.TokenTypeIdentifier, "iffy"),
				newTokenLine(5, 8, idl.TokenTypeIdentifier, "fn_"),
				newTokenLine(9, 12, idl.TokenTypeIdentifier, "_x1"),
				newTokenLine(13, 19, idl.TokenTypeIdentifier, "truest"),
			},
		},
		{
			name:  "integers",
			input: "0 42 007",
			expected: []*idl.Token{
				newTokenLine(0, 1, idl.TokenTypeInteger, "0"),
				newTokenLine(2, 4, idl.TokenTypeInteger, "42"),
				newTokenLine(5, 8, idl.TokenTypeInteger, "007"),
			},
		},
		{
			name:  "integer followed by identifier",
			input: "12ab",
			expected: []*idl.Token{
				newTokenLine(0, 2, idl.TokenTypeInteger, "12"),
				newTokenLine(2, 4, idl.TokenTypeIdentifier, "ab"),
			},
		},
		{
			name:  "unknown characters",
			input: "x + -",
			expected: []*idl.Token{
				newTokenLine(0, 1, idl.TokenTypeIdentifier, "x"),
				newTokenLine(2, 3, idl.TokenTypeUnknown, "+"),
				newTokenLine(4, 5, idl.TokenTypeUnknown, "-"),
			},
		},
		{
			name:  "multi-byte identifier",
			input: "λx y",
			expected: []*idl.Token{
				newToken(1, 1, 0, 1, 3, 3, idl.TokenTypeIdentifier, "λx"),
				newToken(1, 4, 4, 1, 5, 5, idl.TokenTypeIdentifier, "y"),
			},
		},
		{
			name:  "second line",
			input: "f\n  (x)",
			expected: []*idl.Token{
				newTokenLine(0, 1, idl.TokenTypeIdentifier, "f"),
				newToken(1, 2, 1, 2, 1, 2, idl.TokenTypeNewline, "\n"),
				newToken(2, 3, 4, 2, 4, 5, idl.TokenTypeParenOpen, "("),
				newToken(2, 4, 5, 2, 5, 6, idl.TokenTypeIdentifier, "x"),
				newToken(2, 5, 6, 2, 6, 7, idl.TokenTypeParenClose, ")"),
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens, reported := lexAll(t, testCase.input)
			require.Empty(t, reported)
			require.Equal(t, testCase.expected, tokens)
		})
	}
}

func TestLexerIntegerRange(t *testing.T) {
	t.Parallel()

	tokens, reported := lexAll(t, "9223372036854775807")
	require.Empty(t, reported)
	require.Len(t, tokens, 1)
	require.Equal(t, idl.TokenTypeInteger, tokens[0].Type)

	tokens, reported = lexAll(t, "1 9223372036854775808 2")
	require.Len(t, reported, 1)
	require.Equal(t, exc.CodeInvalidNumber, reported[0].Code())
	require.Equal(t, int64(2), reported[0].Location().Offset)
	// the stream ends at the malformed literal
	require.Len(t, tokens, 1)
}
