package outreach

import (
	"fmt"
	"strings"
)

// Substitute expands $NAME and ${NAME} placeholders in tmpl using vars.
// "$$" yields a literal dollar sign. A placeholder without a value, or a "$"
// that starts no valid placeholder, fails with ErrTemplateSubstitution.
// Both failures share that kind. The generator then keeps the unformatted
// body, so a stray "$" in a template never drops a contact from the run.
func Substitute(tmpl string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		if ch != '$' {
			b.WriteByte(ch)
			continue
		}

		rest := tmpl[i+1:]
		switch {
		case strings.HasPrefix(rest, "$"):
			b.WriteByte('$')
			i++
		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			if end < 0 || !isIdentifier(rest[1:end]) {
				return "", invalidPlaceholder(tmpl, i)
			}
			name := rest[1:end]
			value, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("%w: missing value for %q", ErrTemplateSubstitution, name)
			}
			b.WriteString(value)
			i += end + 1
		default:
			n := identifierLen(rest)
			if n == 0 {
				return "", invalidPlaceholder(tmpl, i)
			}
			name := rest[:n]
			value, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("%w: missing value for %q", ErrTemplateSubstitution, name)
			}
			b.WriteString(value)
			i += n
		}
	}

	return b.String(), nil
}

// Placeholders lists the placeholder names used in tmpl, in order of appearance.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' {
			continue
		}
		rest := tmpl[i+1:]
		var name string
		switch {
		case strings.HasPrefix(rest, "$"):
			i++
			continue
		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			if end < 0 || !isIdentifier(rest[1:end]) {
				continue
			}
			name = rest[1:end]
			i += end + 1
		default:
			n := identifierLen(rest)
			if n == 0 {
				continue
			}
			name = rest[:n]
			i += n
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func invalidPlaceholder(tmpl string, pos int) error {
	line := strings.Count(tmpl[:pos], "\n") + 1
	return fmt.Errorf("%w: invalid placeholder on line %d", ErrTemplateSubstitution, line)
}

func identifierLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return i
	}
	return len(s)
}

func isIdentifier(s string) bool {
	return s != "" && identifierLen(s) == len(s)
}
