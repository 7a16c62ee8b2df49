package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// acronyms are kept upper-case in generated identifiers.
	acronyms = names(
		"acl", "api", "ascii", "cpu", "css", "dns", "eof", "guid", "html",
		"http", "https", "id", "ip", "json", "lhs", "qps", "ram", "rhs",
		"rpc", "sla", "smtp", "sql", "ssh", "tcp", "tls", "ttl", "udp",
		"ui", "uid", "uri", "url", "utf8", "uuid", "vm", "xml", "xmpp",
		"xsrf", "xss",
	)

	// private fields used by the generated builders and generators.
	privateField = names(
		"built",
		"convert",
		"ctx",
	)
)

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// pascal converts a field name to an exported identifier.
//
//	user_info => UserInfo
//	user_id   => UserID
//	userInfo  => UserInfo
//
// Casers are stateful, so one is created per call.
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	var b strings.Builder
	for _, w := range words {
		if _, ok := acronyms[strings.ToLower(w)]; ok {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		b.WriteString(cases.Title(language.Und, cases.NoLower).String(w))
	}
	return b.String()
}

// camel converts a field name to an unexported identifier. The leading
// upper-case run is lowered as a whole.
//
//	UserID   => userID
//	HTTPCode => httpCode
//	ID       => id
func camel(s string) string {
	p := []rune(pascal(s))
	n := 0
	for n < len(p) && unicode.IsUpper(p[n]) {
		n++
	}
	switch {
	case n == 0:
		return string(p)
	case n == len(p) || n == 1:
	default:
		// The last capital starts the next word.
		n--
	}
	return cases.Lower(language.Und).String(string(p[:n])) + string(p[n:])
}

// builderField returns the struct field for the given name
// and ensures it doesn't conflict with Go keywords and other
// builder fields, and it is not exported.
func builderField(name string) string {
	name = camel(name)
	_, ok := privateField[name]
	if ok || token.Lookup(name).IsKeyword() || name == "" || strings.ToUpper(name[:1]) == name[:1] {
		return "_" + name
	}
	return name
}

// builderName returns the name of the builder generated for a record.
func builderName(record string) string {
	return record + "Builder"
}

// generatorName returns the name of the generator generated for a record.
func generatorName(record string) string {
	return record + "Generator"
}

// plural returns the plural form of a record name, used in doc comments.
func plural(record string) string {
	return inflect.Pluralize(record)
}

// funcSetter returns the name of the function-accepting generator setter.
func funcSetter(setter string) string {
	return setter + "Func"
}
