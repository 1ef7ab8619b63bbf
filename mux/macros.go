package mux

import (
	"fmt"
	"regexp"
	"slices"
)

// varMatcher validates a single route variable value when building URLs.
// *regexp.Regexp satisfies this interface.
type varMatcher interface {
	MatchString(string) bool
	String() string
}

// lengthMatcher wraps a regexp with an additional maximum length constraint.
type lengthMatcher struct {
	re     *regexp.Regexp
	maxLen int
}

func (m *lengthMatcher) MatchString(s string) bool {
	return len(s) <= m.maxLen && m.re.MatchString(s)
}

func (m *lengthMatcher) String() string {
	return m.re.String()
}

// macro holds a constraint pattern and its pre-compiled value matcher.
type macro struct {
	pattern string
	matcher varMatcher
}

// constraintMacros maps macro names usable as Where constraints (and inline
// {name:macro} patterns) to their regexp bodies.
var constraintMacros = func() map[string]macro {
	raw := map[string]string{
		"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		"int":      `[0-9]+`,
		"float":    `[0-9]*\.?[0-9]+`,
		"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
		"alpha":    `[a-zA-Z]+`,
		"alphanum": `[a-zA-Z0-9]+`,
		"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
		"hex":      `[0-9a-fA-F]+`,
		// RFC 1035/1123: labels 1-63 chars, total up to 253 chars.
		"domain": `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
	}

	maxLengths := map[string]int{
		"domain": 253,
	}

	m := make(map[string]macro, len(raw))
	for name, pattern := range raw {
		re := regexp.MustCompile(fmt.Sprintf("^(?:%s)$", pattern))

		var matcher varMatcher = re
		if maxLen, ok := maxLengths[name]; ok {
			matcher = &lengthMatcher{re: re, maxLen: maxLen}
		}

		m[name] = macro{pattern: pattern, matcher: matcher}
	}

	return m
}()

// Macros returns the sorted names of the built-in constraint macros.
func Macros() []string {
	names := make([]string, 0, len(constraintMacros))
	for name := range constraintMacros {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// expandMacro returns the regexp body for a constraint. Unknown names are
// returned unchanged and treated as raw regexp bodies.
func expandMacro(constraint string) string {
	if m, ok := constraintMacros[constraint]; ok {
		return m.pattern
	}
	return constraint
}

// constraintMatcher returns a matcher that validates a whole variable value
// against constraint.
func constraintMatcher(constraint string) (varMatcher, error) {
	if m, ok := constraintMacros[constraint]; ok {
		return m.matcher, nil
	}
	re, err := compileRegexp(fmt.Sprintf("^(?:%s)$", constraint))
	if err != nil {
		return nil, fmt.Errorf("mux: invalid constraint %q: %w", constraint, err)
	}
	return re, nil
}
