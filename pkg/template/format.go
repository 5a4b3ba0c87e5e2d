package template

import (
	"fmt"
	"strings"

	"github.com/aretw0/baxter/pkg/domain"
)

// Format replaces every {name} slot in tmpl with fmt.Sprint(values[name]).
// Doubled braces ({{ and }}) produce literal braces. A slot without a value is
// a *domain.TemplateMissingKeyError; an unterminated slot is a
// *domain.TemplateSyntaxError.
func Format(tmpl string, values map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", &domain.TemplateSyntaxError{Template: tmpl, Reason: "unterminated placeholder"}
			}
			key := tmpl[i+1 : i+1+end]
			v, ok := values[key]
			if !ok {
				return "", &domain.TemplateMissingKeyError{Key: key}
			}
			b.WriteString(fmt.Sprint(v))
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// Placeholders lists the slot names referenced by tmpl, in order of appearance.
func Placeholders(tmpl string) []string {
	var names []string
	for _, m := range slotPattern.FindAllStringSubmatch(tmpl, -1) {
		names = append(names, m[1])
	}
	return names
}
