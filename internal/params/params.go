// Package params substitutes placeholder tokens in task content.
//
// Seven placeholder styles are recognized. Their delimiters overlap
// ({{x}} contains {x}, ${x} starts like $x), so substitution always runs in
// the fixed precedence order returned by AllStyles, whatever order the
// caller requested the styles in.
package params

import (
	"fmt"
	"regexp"
	"strings"
)

// Style identifies a placeholder delimiter grammar
type Style int

const (
	// DoubleCurly matches {{key}}; keys may contain dots (user.name)
	DoubleCurly Style = iota
	// Curly matches {key}
	Curly
	// DollarBrace matches ${key}
	DollarBrace
	// Dollar matches $key
	Dollar
	// DoubleUnderscore matches __key__
	DoubleUnderscore
	// Percent matches %key%
	Percent
	// Angle matches <key>
	Angle
)

// styleDef holds the grammar of one style. reject, when set, vetoes a
// candidate match by looking at the bytes around it.
type styleDef struct {
	name    string
	pattern *regexp.Regexp
	reject  func(s string, start, end int) bool
	// foldCase retries the lookup with the lower- and upper-cased key (__USER__ -> user)
	foldCase bool
}

// styleDefs is indexed by Style and listed in precedence order
var styleDefs = []styleDef{
	{name: "double_curly", pattern: regexp.MustCompile(`\{\{([A-Za-z0-9_.]+)\}\}`)},
	{name: "curly", pattern: regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`), reject: insideBraces},
	{name: "dollar_brace", pattern: regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)},
	{name: "dollar", pattern: regexp.MustCompile(`\$([A-Za-z0-9_]+)`)},
	{name: "double_underscore", pattern: regexp.MustCompile(`__([A-Za-z0-9]+(?:_[A-Za-z0-9]+)*)__`), foldCase: true},
	{name: "percent", pattern: regexp.MustCompile(`%([A-Za-z0-9_]+)%`)},
	{name: "angle", pattern: regexp.MustCompile(`<([A-Za-z0-9_]+)>`)},
}

// insideBraces rejects {key} when it is the inner part of {{key}} or ${key}.
// A single stray brace on one side does not count: {"a":{key}} is a placeholder.
func insideBraces(s string, start, end int) bool {
	if start == 0 {
		return false
	}
	if s[start-1] == '$' {
		return true
	}
	return s[start-1] == '{' && end < len(s) && s[end] == '}'
}

// AllStyles returns every style in precedence order
func AllStyles() []Style {
	return []Style{DoubleCurly, Curly, DollarBrace, Dollar, DoubleUnderscore, Percent, Angle}
}

// String returns the snake_case name of the style
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleDefs) {
		return "unknown"
	}
	return styleDefs[s].name
}

// ParseStyle resolves a style by name. Matching is case-insensitive and
// accepts "-" in place of "_" (double-curly == double_curly).
func ParseStyle(name string) (Style, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, def := range styleDefs {
		if def.name == normalized || strings.ReplaceAll(def.name, "_", "") == normalized {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown placeholder style %q", name)
}

// ParseStyles resolves a list of style names; an empty list yields nil,
// which Apply treats as every style
func ParseStyles(names []string) ([]Style, error) {
	if len(names) == 0 {
		return nil, nil
	}
	styles := make([]Style, 0, len(names))
	for _, name := range names {
		s, err := ParseStyle(name)
		if err != nil {
			return nil, err
		}
		styles = append(styles, s)
	}
	return styles, nil
}

// requested reports which styles take part in a pass
func requested(styles []Style) [7]bool {
	var set [7]bool
	if len(styles) == 0 {
		for i := range set {
			set[i] = true
		}
		return set
	}
	for _, s := range styles {
		if s >= 0 && int(s) < len(set) {
			set[s] = true
		}
	}
	return set
}

// Apply returns content with every placeholder of a requested style whose
// key exists in values replaced by its value. Placeholders of other styles
// and placeholders with unknown keys are left untouched. When no styles are
// given all styles are applied.
func Apply(content string, values map[string]string, styles ...Style) string {
	if content == "" || len(values) == 0 {
		return content
	}

	set := requested(styles)
	for _, style := range AllStyles() {
		if !set[style] {
			continue
		}
		content = replace(content, style, values)
	}
	return content
}

// matches returns the submatch indices of every accepted candidate of style in s
func matches(s string, style Style) [][]int {
	def := styleDefs[style]
	all := def.pattern.FindAllStringSubmatchIndex(s, -1)
	if def.reject == nil {
		return all
	}
	accepted := all[:0]
	for _, loc := range all {
		if !def.reject(s, loc[0], loc[1]) {
			accepted = append(accepted, loc)
		}
	}
	return accepted
}

// lookup resolves key in values for style
func lookup(style Style, key string, values map[string]string) (string, bool) {
	if value, ok := values[key]; ok {
		return value, true
	}
	if !styleDefs[style].foldCase {
		return "", false
	}
	if value, ok := values[strings.ToLower(key)]; ok {
		return value, true
	}
	value, ok := values[strings.ToUpper(key)]
	return value, ok
}

// replace runs one full pass of style over content
func replace(content string, style Style, values map[string]string) string {
	locs := matches(content, style)
	if len(locs) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, loc := range locs {
		b.WriteString(content[last:loc[0]])
		if value, ok := lookup(style, content[loc[2]:loc[3]], values); ok {
			b.WriteString(value)
		} else {
			b.WriteString(content[loc[0]:loc[1]])
		}
		last = loc[1]
	}
	b.WriteString(content[last:])
	return b.String()
}

// Placeholder is one placeholder occurrence found in content
type Placeholder struct {
	Style Style
	Key   string
	Token string
}

// Find lists the distinct placeholders present in content for the requested
// styles (all styles when none are given), in precedence order and then in
// order of first appearance. Text claimed by a more specific style is not
// reported again for a less specific one.
func Find(content string, styles ...Style) []Placeholder {
	set := requested(styles)
	var found []Placeholder
	seen := make(map[string]bool)

	remaining := []byte(content)
	for _, style := range AllStyles() {
		for _, loc := range matches(string(remaining), style) {
			token := string(remaining[loc[0]:loc[1]])
			if set[style] && !seen[token] {
				seen[token] = true
				found = append(found, Placeholder{Style: style, Key: string(remaining[loc[2]:loc[3]]), Token: token})
			}
			// Blank out claimed tokens so {{x}} is not reported again as {x}
			for i := loc[0]; i < loc[1]; i++ {
				remaining[i] = ' '
			}
		}
	}
	return found
}
