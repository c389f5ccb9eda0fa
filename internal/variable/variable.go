// Package variable finds and substitutes {{identifier}} placeholders in
// template text. Identifiers are ASCII letters, digits and underscores.
package variable

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// token is a well formed placeholder located at text[start:end].
type token struct {
	start, end int
	name       string
}

// scan walks text left to right and calls fn for every well formed token.
// After a match scanning resumes at the end of the token; after a failed
// candidate it resumes one byte further so "{{{a}}" still yields a.
func scan(text string, fn func(token)) {
	for i := 0; i+len(openDelim) <= len(text); {
		if text[i] != '{' || text[i+1] != '{' {
			i++
			continue
		}
		j := i + len(openDelim)
		for j < len(text) && isIdent(text[j]) {
			j++
		}
		if j == i+len(openDelim) || !strings.HasPrefix(text[j:], closeDelim) {
			i++
			continue
		}
		end := j + len(closeDelim)
		fn(token{start: i, end: end, name: text[i+len(openDelim) : j]})
		i = end
	}
}

func isIdent(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

// Extract returns the variable names used in text, each once, in order of
// first occurrence.
func Extract(text string) []string {
	names := []string{}
	seen := map[string]struct{}{}
	scan(text, func(t token) {
		if _, ok := seen[t.name]; ok {
			return
		}
		seen[t.name] = struct{}{}
		names = append(names, t.name)
	})
	return names
}

// ExtractAll extracts from each text in turn and merges the results,
// keeping first occurrence order across all of them.
func ExtractAll(texts ...string) []string {
	names := []string{}
	seen := map[string]struct{}{}
	for _, text := range texts {
		for _, name := range Extract(text) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Render substitutes every token bound in bindings. Unbound tokens and
// malformed placeholders are copied verbatim.
func Render(text string, bindings map[string]string) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	scan(text, func(t token) {
		value, ok := bindings[t.name]
		if !ok {
			return
		}
		b.WriteString(text[last:t.start])
		b.WriteString(value)
		last = t.end
	})
	b.WriteString(text[last:])
	return b.String()
}
