// Package match implements '*' wildcard matching used by drop_event filters.
package match

import "strings"

// Pattern is a compiled '*' wildcard matcher.
// Params: literal segments between wildcards.
// Returns: reusable matcher for many Match calls.
type Pattern struct {
	raw      string
	prefix   string
	suffix   string
	middle   []string
	wildcard bool
}

// Compile compiles pattern into a reusable matcher.
// Params: pattern may contain '*' wildcards; surrounding spaces are ignored.
// Returns: compiled matcher and false when pattern is empty.
func Compile(pattern string) (Pattern, bool) {
	p := strings.TrimSpace(pattern)
	if p == "" {
		return Pattern{}, false
	}

	parts := strings.Split(p, "*")
	if len(parts) == 1 {
		return Pattern{raw: p, prefix: p}, true
	}

	middle := make([]string, 0, len(parts)-2)
	for _, part := range parts[1 : len(parts)-1] {
		if part != "" {
			middle = append(middle, part)
		}
	}

	return Pattern{
		raw:      p,
		prefix:   parts[0],
		suffix:   parts[len(parts)-1],
		middle:   middle,
		wildcard: true,
	}, true
}

// HasWildcard reports whether the pattern contains at least one '*'.
func (p Pattern) HasWildcard() bool {
	return p.wildcard
}

// String returns the trimmed source pattern.
func (p Pattern) String() string {
	return p.raw
}

// Match evaluates the compiled pattern against value.
// Params: value is compared text.
// Returns: true on pattern match.
func (p Pattern) Match(value string) bool {
	if !p.wildcard {
		return p.raw != "" && value == p.prefix
	}
	if len(value) < len(p.prefix)+len(p.suffix) {
		return false
	}
	if !strings.HasPrefix(value, p.prefix) || !strings.HasSuffix(value, p.suffix) {
		return false
	}

	// Middle segments must fit between prefix and suffix without overlapping them.
	rest := value[len(p.prefix) : len(value)-len(p.suffix)]
	for _, segment := range p.middle {
		idx := strings.Index(rest, segment)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(segment):]
	}
	return true
}

// Wildcard evaluates pattern against value without keeping the compiled form.
// Params: pattern may contain '*' wildcards; value is compared text.
// Returns: true on pattern match.
func Wildcard(pattern, value string) bool {
	compiled, ok := Compile(pattern)
	if !ok {
		return false
	}
	return compiled.Match(value)
}
