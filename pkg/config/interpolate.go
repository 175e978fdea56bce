package config

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/arthur-debert/drupalctl/pkg/ordered"
)

// tokenPattern matches ${dotted.key} references.
var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_.\-]+)\}`)

// maxDepth bounds chains of references to references.
const maxDepth = 16

type interpolator struct {
	tree *ordered.Map
}

// Interpolate replaces ${a.b} tokens in every string value of tree.
// A string made of a single token takes the referenced value with its type,
// so "${drupal.database.port}" stays an integer. Tokens that cannot be
// resolved (missing keys, cycles, or mappings and sequences inside a longer
// string) are left as they are.
func Interpolate(tree *ordered.Map) {
	in := &interpolator{tree: tree}
	tree.Walk(func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		resolved, _ := in.resolve(s, nil)
		return resolved
	})
}

// ExpandString resolves tokens in text against tree and always returns a string.
func ExpandString(tree *ordered.Map, text string) string {
	in := &interpolator{tree: tree}
	out, _ := in.expand(text, nil)
	return out
}

// resolve returns the value of s with tokens replaced, and whether every
// token could be resolved.
func (in *interpolator) resolve(s string, stack []string) (any, bool) {
	if loc := tokenPattern.FindStringSubmatchIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
		v, ok := in.value(s[loc[2]:loc[3]], stack)
		if ok && isScalar(v) {
			return v, true
		}
		return s, false
	}
	return in.expand(s, stack)
}

func (in *interpolator) expand(s string, stack []string) (string, bool) {
	complete := true
	out := tokenPattern.ReplaceAllStringFunc(s, func(tok string) string {
		v, ok := in.value(tok[2:len(tok)-1], stack)
		if !ok || !isScalar(v) {
			complete = false
			return tok
		}
		return scalarString(v)
	})
	return out, complete
}

func (in *interpolator) value(key string, stack []string) (any, bool) {
	if len(stack) >= maxDepth || slices.Contains(stack, key) {
		return nil, false
	}
	v, ok := in.tree.Lookup(key)
	if !ok {
		return nil, false
	}
	if s, isString := v.(string); isString {
		return in.resolve(s, append(stack[:len(stack):len(stack)], key))
	}
	return v, true
}

func isScalar(v any) bool {
	switch v.(type) {
	case *ordered.Map, []any:
		return false
	default:
		return true
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
