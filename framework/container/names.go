package container

import (
	"strings"
	"unicode"
)

// Camelize normalizes a component or view-model name: the first word
// character is lower-cased, every other word start is upper-cased, existing
// capitals are kept and whitespace is removed.
//
//	Camelize("User List")     // "userList"
//	Camelize("CustomerForm")  // "customerForm"
//	Camelize("order-details") // "order-Details"
func Camelize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevWord := false
	for i, r := range s {
		word := isWordRune(r)
		switch {
		case word && i == 0:
			r = unicode.ToLower(r)
		case word && !prevWord:
			r = unicode.ToUpper(r)
		}
		prevWord = word
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isWordRune matches the ASCII \w class.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// sameName is the case-insensitive identity used by every store.
func sameName(a, b string) bool { return strings.EqualFold(a, b) }
