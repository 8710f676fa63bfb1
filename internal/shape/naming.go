package shape

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalise upper-cases the first rune. A one-character name is a plain
// case fold; an empty name stays empty so prefixed forms degrade to the
// bare prefix.
func Capitalise(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune.
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// GetterCandidates lists accessor names for a field in resolution priority
// order: plain accessor, "Get"-prefixed, then "Is"-prefixed for
// boolean-shaped fields. The first that structurally exists wins.
func GetterCandidates(field string) []string {
	cap := Capitalise(field)
	if cap == "" {
		return []string{"Get", "Is"}
	}
	return []string{cap, "Get" + cap, "Is" + cap}
}

// IsBoolShaped reports whether a reference names a boolean-shaped type.
func IsBoolShaped(name string) bool {
	return name == "bool" || strings.HasSuffix(name, ".Bool")
}
