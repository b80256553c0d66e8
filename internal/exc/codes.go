package exc

import "sort"

const (
	CodeUnknownFatal          = "G0000"
	CodeFileNotFound          = "G0001"
	CodePermissionDenied      = "G0002"
	CodeUnsupportedFileFormat = "G0003"
	CodeUnexpectedEOF         = "G0004"
	CodeUnexpectedToken       = "G0005"
	CodeUnexpectedCharacter   = "G0006"
	CodeInvalidNumber         = "G0007"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}

	syntaxCodes = map[string]bool{
		CodeUnexpectedEOF:       true,
		CodeUnexpectedToken:     true,
		CodeUnexpectedCharacter: true,
		CodeInvalidNumber:       true,
	}
)

// IsSyntax reports whether code identifies a user-facing syntax error raised
// by the grammar.
func IsSyntax(code string) bool {
	return syntaxCodes[code]
}

// SyntaxCodes lists the codes for which IsSyntax is true.
func SyntaxCodes() []string {
	codes := make([]string, 0, len(syntaxCodes))
	for code := range syntaxCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
