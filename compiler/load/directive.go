package load

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/structtag"
)

const (
	// Prefix starts every boulder comment directive.
	Prefix = "//boulder:"
	// TagKey is the struct tag key holding field directives.
	TagKey = "boulder"
)

// Record-level directive names.
const (
	RecordBuildable   = "buildable"
	RecordGeneratable = "generatable"
	RecordContext     = "context"
)

// ParseComment parses the text of a single //boulder: comment line.
// It returns nil, nil for comments that are not boulder directives.
func ParseComment(text string) (*Directive, error) {
	rest, ok := strings.CutPrefix(text, Prefix)
	if !ok {
		return nil, nil
	}
	d, rest, err := parseHead(rest)
	if err != nil {
		return nil, err
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, fmt.Errorf("directive %q: expected space after name", strings.TrimSpace(text))
	}
	d.Arg = strings.TrimSpace(rest)
	d.Source = SourceComment
	return d, nil
}

// ParseTag parses the boulder key of a struct tag (without the enclosing
// backquotes). Items are separated by top-level semicolons and take the
// form name[(annotation)][=argument].
func ParseTag(tag string) ([]*Directive, error) {
	if tag == "" {
		return nil, nil
	}
	tags, err := structtag.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse struct tag: %w", err)
	}
	t, err := tags.Get(TagKey)
	if err != nil {
		// Missing key.
		return nil, nil
	}
	var ds []*Directive
	for _, item := range Split(t.Value(), ';') {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		d, rest, err := parseHead(item)
		if err != nil {
			return nil, err
		}
		rest = strings.TrimSpace(rest)
		if rest != "" {
			arg, ok := strings.CutPrefix(rest, "=")
			if !ok {
				return nil, fmt.Errorf("tag directive %q: expected '=' after name", item)
			}
			d.Arg = strings.TrimSpace(arg)
		}
		d.Source = SourceTag
		ds = append(ds, d)
	}
	return ds, nil
}

// parseHead reads "name[(annotation)]" from the start of s and returns the
// unconsumed remainder.
func parseHead(s string) (*Directive, string, error) {
	i := 0
	for i < len(s) && (s[i] == '_' || s[i] >= 'a' && s[i] <= 'z' || s[i] >= '0' && s[i] <= '9') {
		i++
	}
	if i == 0 {
		return nil, "", fmt.Errorf("directive %q: missing name", s)
	}
	d := &Directive{Name: s[:i]}
	rest := s[i:]
	if strings.HasPrefix(rest, "(") {
		end := closing(rest)
		if end < 0 {
			return nil, "", fmt.Errorf("directive %q: unbalanced type annotation", s)
		}
		d.Annotation = strings.TrimSpace(rest[1:end])
		if d.Annotation == "" {
			return nil, "", fmt.Errorf("directive %q: empty type annotation", s)
		}
		rest = rest[end+1:]
	}
	return d, rest, nil
}

// closing returns the index of the parenthesis closing s[0], or -1.
func closing(s string) int {
	depth := 0
	for i, part := range scan(s) {
		switch part {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Split splits s at every top-level occurrence of sep, ignoring separators
// nested in brackets or inside string and rune literals.
func Split(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range scan(s) {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// errUnterminated reports a string or rune literal without a closing quote.
// scan stops at such a literal.
var errUnterminated = errors.New("unterminated literal")

// scan iterates over the structural runes of s, yielding the byte offset
// and rune of every character outside string and rune literals. Literal
// contents are skipped.
func scan(s string) func(yield func(int, rune) bool) {
	return func(yield func(int, rune) bool) {
		for i := 0; i < len(s); i++ {
			c := s[i]
			switch c {
			case '"', '\'', '`':
				end, err := skipLiteral(s, i)
				if err != nil {
					return
				}
				i = end
				continue
			}
			if !yield(i, rune(c)) {
				return
			}
		}
	}
}

// skipLiteral returns the index of the quote closing the literal that
// starts at s[i].
func skipLiteral(s string, i int) (int, error) {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch {
		case s[j] == '\\' && q != '`':
			j++
		case s[j] == q:
			return j, nil
		}
	}
	return 0, errUnterminated
}
