package glossary

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrTableNotFound is returned when a source file has no assignment of the
// requested table literal
var ErrTableNotFound = errors.New("glossary table not found")

// keyPattern matches a quoted object key followed by a colon
var keyPattern = regexp.MustCompile(`(?:'((?:[^'\\\n]|\\.)*)'|"((?:[^"\\\n]|\\.)*)")\s*:`)

// ParseSource extracts the table assigned to name (e.g. `const WORD_MEANINGS
// = {...};`) from JavaScript source text. This is a text scrape, not a
// JavaScript parser: the literal is located by brace matching and entries are
// recognised by their quoted keys. Values may be a quoted string or an array
// of quoted strings; anything else yields a key with no meanings.
func ParseSource(src, name string) (Glossary, error) {
	decl := regexp.MustCompile(`\b(?:const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*=\s*\{`)
	loc := decl.FindStringIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	open := loc[1] - 1
	end, err := matchBracket(src, open)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	body := src[open+1 : end]

	raw := make(map[string][]string)
	for _, m := range keyPattern.FindAllStringSubmatchIndex(body, -1) {
		var key string
		if m[2] >= 0 {
			key = unescape(body[m[2]:m[3]])
		} else {
			key = unescape(body[m[4]:m[5]])
		}
		if _, seen := raw[key]; !seen {
			raw[key] = nil
		}
		raw[key] = append(raw[key], parseValue(body[m[1]:])...)
	}
	return normalize(raw), nil
}

// matchBracket returns the index of the bracket closing the one at open,
// skipping string literals and comments
func matchBracket(src string, open int) (int, error) {
	pairs := map[byte]byte{'{': '}', '[': ']', '(': ')'}
	var stack []byte

	for i := open; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			j, err := skipString(src, i)
			if err != nil {
				return 0, err
			}
			i = j
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				return 0, errors.New("unterminated table literal")
			}
			i += nl
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return 0, errors.New("unterminated comment")
			}
			i += end + 3
		case pairs[c] != 0:
			stack = append(stack, pairs[c])
		case c == '}' || c == ']' || c == ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, fmt.Errorf("unbalanced %q at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return 0, errors.New("unterminated table literal")
}

// skipString returns the index of the quote closing the literal starting at i
func skipString(src string, i int) (int, error) {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j, nil
		case '\n':
			if quote != '`' {
				return 0, fmt.Errorf("unterminated string at offset %d", i)
			}
		}
	}
	return 0, fmt.Errorf("unterminated string at offset %d", i)
}

// parseValue reads the value following a key: a quoted string or an array of
// quoted strings
func parseValue(rest string) []string {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return nil
	}

	switch rest[0] {
	case '\'', '"', '`':
		end, err := skipString(rest, 0)
		if err != nil {
			return nil
		}
		return []string{unescape(rest[1:end])}
	case '[':
		end, err := matchBracket(rest, 0)
		if err != nil {
			return nil
		}
		var values []string
		inner := rest[1:end]
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c != '\'' && c != '"' && c != '`' {
				continue
			}
			j, err := skipString(inner, i)
			if err != nil {
				break
			}
			values = append(values, unescape(inner[i+1:j]))
			i = j
		}
		return values
	}
	return nil
}

// unescape resolves the backslash escapes of a JavaScript string body
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String()
}
