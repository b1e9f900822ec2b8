package lexical

import "strings"

// isSpace reports whether c is one of the four XML whitespace characters.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// TrimSpace removes leading and trailing XML whitespace. For every type whose
// whiteSpace facet is "collapse" and whose lexical space contains no inner
// spaces this is equivalent to full collapsing.
func TrimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

// Replace applies whiteSpace=replace: tab, line feed and carriage return
// become a single space each.
func Replace(s string) string {
	if strings.IndexAny(s, "\t\n\r") < 0 {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c == '\t' || c == '\n' || c == '\r' {
			b[i] = ' '
		}
	}
	return string(b)
}

// Collapse applies whiteSpace=collapse: Replace, then runs of spaces are
// reduced to one and leading/trailing spaces removed.
func Collapse(s string) string {
	s = TrimSpace(s)
	needs := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) && (s[i] != ' ' || (i+1 < len(s) && isSpace(s[i+1]))) {
			needs = true
			break
		}
	}
	if !needs {
		return s
	}
	b := &strings.Builder{}
	b.Grow(len(s))
	prevSpace := false
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteByte(s[i])
	}
	return b.String()
}
