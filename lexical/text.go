package lexical

import (
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ParseBase64Binary decodes xs:base64Binary. XML whitespace may appear
// anywhere between characters; padding bits must be zero.
func ParseBase64Binary(s string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.Strict().DecodeString(compact)
	if err != nil {
		return nil, &Error{Code: CodeInvalidFormat, Cause: err}
	}
	return b, nil
}

// ParseHexBinary decodes xs:hexBinary; both letter cases are accepted.
func ParseHexBinary(s string) ([]byte, error) {
	s = TrimSpace(s)
	if len(s)%2 != 0 {
		return nil, errorf(CodeInvalidFormat, "odd number of hex digits")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &Error{Code: CodeInvalidCharacter, Cause: err}
	}
	return b, nil
}

// ParseAnyURI checks an xs:anyURI value as an RFC 3986 URI reference after
// escaping the characters XML Schema tolerates in it (spaces and other
// characters outside the URI repertoire), and returns the collapsed value.
func ParseAnyURI(s string) (string, error) {
	s = Collapse(s)
	if strings.Contains(s, "%") {
		for i := 0; i < len(s); i++ {
			if s[i] != '%' {
				continue
			}
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return "", errorf(CodeInvalidFormat, "malformed percent escape at offset %d", i)
			}
		}
	}
	if strings.Count(s, "#") > 1 {
		return "", errorf(CodeInvalidFormat, "more than one fragment separator")
	}
	if _, err := url.Parse(escapeIRI(s)); err != nil {
		return "", &Error{Code: CodeInvalidFormat, Cause: err}
	}
	return s, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// escapeIRI percent-encodes spaces and non-ASCII so the result can be
// checked with an RFC 3986 parser.
func escapeIRI(s string) string {
	b := &strings.Builder{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7f || c == '"' || c == '<' || c == '>' || c == '\\' || c == '^' || c == '`' || c == '{' || c == '|' || c == '}' {
			b.WriteString(url.PathEscape(string(c)))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// QName is a prefixed name; Prefix is empty for unprefixed names.
type QName struct {
	Prefix string
	Local  string
}

func (q QName) String() string {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

// ParseQName reads (NCName ':')? NCName. The prefix is not resolved.
func ParseQName(s string) (QName, error) {
	s = TrimSpace(s)
	if s == "" {
		return QName{}, emptyError()
	}
	prefix, local, ok := strings.Cut(s, ":")
	if !ok {
		prefix, local = "", s
	}
	if ok {
		if err := checkNCName(prefix); err != nil {
			return QName{}, err
		}
	}
	if err := checkNCName(local); err != nil {
		return QName{}, err
	}
	return QName{Prefix: prefix, Local: local}, nil
}

// ParseNormalizedString applies whiteSpace=replace.
func ParseNormalizedString(s string) (string, error) { return Replace(s), nil }

// ParseToken applies whiteSpace=collapse.
func ParseToken(s string) (string, error) { return Collapse(s), nil }

// ParseLanguage reads [a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*.
func ParseLanguage(s string) (string, error) {
	s = TrimSpace(s)
	if s == "" {
		return "", emptyError()
	}
	for i, part := range strings.Split(s, "-") {
		if len(part) < 1 || len(part) > 8 {
			return "", errorf(CodeInvalidFormat, "subtag %q must have 1 to 8 characters", part)
		}
		for j := 0; j < len(part); j++ {
			c := part[j]
			alpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
			if !alpha && (i == 0 || c < '0' || c > '9') {
				return "", errorf(CodeInvalidCharacter, "unexpected %q in subtag %q", c, part)
			}
		}
	}
	return s, nil
}

// ParseName reads an XML Name (colons allowed).
func ParseName(s string) (string, error) {
	s = TrimSpace(s)
	return s, checkName(s, true, true)
}

// ParseNCName reads a non-colonized XML name (also ID, IDREF, ENTITY).
func ParseNCName(s string) (string, error) {
	s = TrimSpace(s)
	return s, checkNCName(s)
}

// ParseNMTOKEN reads one or more XML name characters.
func ParseNMTOKEN(s string) (string, error) {
	s = TrimSpace(s)
	return s, checkName(s, false, true)
}

func checkNCName(s string) error { return checkName(s, true, false) }

func checkName(s string, startRule, colon bool) error {
	if s == "" {
		return emptyError()
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return errorf(CodeInvalidCharacter, "invalid UTF-8 at offset %d", i)
		}
		if r == ':' && !colon {
			return errorf(CodeInvalidCharacter, "':' not allowed at offset %d", i)
		}
		ok := isNameChar(r)
		if i == 0 && startRule {
			ok = isNameStartChar(r)
		}
		if !ok {
			return errorf(CodeInvalidCharacter, "%q not allowed at offset %d", r, i)
		}
	}
	return nil
}

// isNameStartChar follows the NameStartChar production of XML 1.0 (5th ed.).
func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF,
		r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF, r >= 0x200C && r <= 0x200D,
		r >= 0x2070 && r <= 0x218F, r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD, r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r):
		return true
	case r == '-' || r == '.' || (r >= '0' && r <= '9') || r == 0xB7:
		return true
	case r >= 0x300 && r <= 0x36F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
