package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// upperFirst capitalizes the first letter of a string, leaving the rest as is.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

// padRight pads s with spaces up to the given width.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// textWidth returns the display width used by the alignment passes.
func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// paramName returns the Go parameter name of a field, avoiding keywords
// and the names used by the generated methods.
func paramName(name string) string {
	if token.Lookup(name).IsKeyword() || reservedParam[name] {
		return name + "Value"
	}
	return name
}

var reservedParam = map[string]bool{
	"ctx":          true,
	"query":        true,
	"s":            true,
	"fields":       true,
	"credentialID": true,
	"withDeleted":  true,
	"skipID":       true,
}
