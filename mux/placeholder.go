package mux

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// defaultPattern matches a placeholder that has no constraint: one path
// segment.
const defaultPattern = "[^/]+"

// placeholder is a {name} or {name?} token found in a route template.
type placeholder struct {
	name     string
	optional bool
}

// token returns the literal text of the placeholder in a template.
func (p placeholder) token() string {
	if p.optional {
		return "{" + p.name + "?}"
	}
	return "{" + p.name + "}"
}

// ApplyConstraints rewrites the {name} and {name?} placeholders of path into
// named capture groups whose body is the constraint registered for name.
// A constraint is either a macro name (see Macros) or a raw regexp body.
//
// Optional placeholders become optional groups; when the placeholder
// directly follows a "/", the separator moves inside the optional group so
// "/posts/{slug?}" matches both "/posts" and "/posts/hello".
//
// All substitutions are performed in a single pass, so the text of one
// replacement is never rewritten by another. Placeholders without a
// constraint are left untouched.
func ApplyConstraints(path string, constraints map[string]string) string {
	if len(constraints) == 0 {
		return path
	}

	names := make([]string, 0, len(constraints))
	for name := range constraints {
		names = append(names, name)
	}
	slices.Sort(names)

	pairs := make([]string, 0, len(names)*4)
	for _, name := range names {
		patt := expandMacro(constraints[name])
		optional := placeholder{name: name, optional: true}.token()
		if strings.Contains(path, optional) {
			pairs = append(pairs,
				"/"+optional, fmt.Sprintf("(?:/(?P<%s>%s))?", name, patt),
				optional, fmt.Sprintf("(?P<%s>%s)?", name, patt),
			)
			continue
		}
		pairs = append(pairs, placeholder{name: name}.token(), fmt.Sprintf("(?P<%s>%s)", name, patt))
	}

	return strings.NewReplacer(pairs...).Replace(path)
}

// parseTemplate extracts the placeholders of tpl. Inline constraints written
// as {name:pattern} are stripped from the returned template and returned in
// the constraints map. Brace pairs whose content is not a valid capture name
// (regexp quantifiers such as {2,4}) are left alone.
func parseTemplate(tpl string) (string, []placeholder, map[string]string, error) {
	idxs, err := braceIndices(tpl)
	if err != nil {
		return "", nil, nil, err
	}

	var (
		out         strings.Builder
		vars        []placeholder
		constraints map[string]string
		end         int
	)

	for i := 0; i < len(idxs); i += 2 {
		inner := tpl[idxs[i]+1 : idxs[i+1]-1]
		name, patt, hasPattern := strings.Cut(inner, ":")
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")

		if !validVarName(name) {
			continue
		}

		p := placeholder{name: name, optional: optional}
		vars = append(vars, p)

		out.WriteString(tpl[end:idxs[i]])
		out.WriteString(p.token())
		end = idxs[i+1]

		if hasPattern {
			if patt == "" {
				return "", nil, nil, fmt.Errorf("mux: empty pattern for variable %q in %q", name, tpl)
			}
			if constraints == nil {
				constraints = make(map[string]string)
			}
			constraints[name] = patt
		}
	}
	out.WriteString(tpl[end:])

	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.name
	}
	if err := checkDuplicateVars(names); err != nil {
		return "", nil, nil, err
	}

	return out.String(), vars, constraints, nil
}

// validVarName reports whether s can name a regexp capture group.
func validVarName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s. Returns an error if braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("mux: unbalanced braces in %q", s)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("mux: unbalanced braces in %q", s)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any variable name is repeated.
func checkDuplicateVars(vars []string) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return fmt.Errorf("mux: duplicated route variable %q", v)
		}
		seen[v] = true
	}
	return nil
}

// regexpCache holds compiled route patterns keyed by source. Routes sharing
// a pattern share the compiled value, and the cache stops growing once
// registration is done.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for pattern.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}
