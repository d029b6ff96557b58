package filtering

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

// maxClassSize bounds how many runes a bracket expression may expand to.
const maxClassSize = 4096

// ErrClassTooLarge is returned for bracket expressions whose ranges cover more
// runes than can be expanded into a single character list.
var ErrClassTooLarge = errors.New("bracket expression too large")

// NameFilter handles name-based filtering using glob patterns
type NameFilter interface {
	// ShouldInclude determines if a package name matches at least one allow list pattern
	// Returns (shouldInclude bool, reason string)
	ShouldInclude(name string, patterns []string) (bool, string)
}

// defaultNameFilter implements name filtering using shell-style glob patterns
type defaultNameFilter struct{}

var _ NameFilter = (*defaultNameFilter)(nil)

// NewDefaultNameFilter creates a new defaultNameFilter
func NewDefaultNameFilter() NameFilter {
	return &defaultNameFilter{}
}

// ShouldInclude determines if a package name should be kept.
//
// Logic:
// 1. An empty name never matches
// 2. Patterns are tried in order and the first match includes the name
// 3. A pattern that fails to compile is skipped, it never matches
// 4. If no pattern matches, the name is excluded
func (*defaultNameFilter) ShouldInclude(name string, patterns []string) (bool, string) {
	if name == "" {
		return false, "empty name"
	}

	for _, pattern := range patterns {
		matches, err := MatchPattern(pattern, name)
		if err != nil {
			continue
		}
		if matches {
			return true, fmt.Sprintf("included by pattern '%s'", pattern)
		}
	}

	return false, fmt.Sprintf("no match found in allow list patterns %v", patterns)
}

// MatchPattern matches a shell-style glob pattern against a whole name.
//
// The pattern follows fnmatch(3) without flags: '*' matches any run of
// characters including '/', '?' matches exactly one character, and bracket
// expressions support ranges, negation with '!' or '^', and POSIX character
// classes. Backslash escapes the next character. Braces and commas are plain
// characters. Matching is case-sensitive.
//
// A trailing backslash or an unknown class name such as "[[:bogus:]]" makes
// the pattern invalid. The pattern is compiled on every call.
func MatchPattern(pattern, name string) (bool, error) {
	translated, minLen, err := translatePattern(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
	}

	// No separators: '*' matches across '/' as well.
	compiled, err := glob.Compile(translated)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
	}

	// gobwas prefix/suffix matchers let "ab*bc" overlap on "abc".
	if utf8.RuneCountInString(name) < minLen {
		return false, nil
	}

	return compiled.Match(name), nil
}

// translatePattern rewrites an fnmatch pattern into gobwas/glob syntax and
// returns the minimum number of runes a matching name has. Every literal is
// emitted escaped so gobwas-only syntax such as '{a,b}' is never interpreted.
func translatePattern(pattern string) (string, int, error) {
	src := []rune(pattern)
	var b strings.Builder
	minLen := 0

	for i := 0; i < len(src); i++ {
		switch r := src[i]; r {
		case '*':
			b.WriteRune('*')
			continue
		case '?':
			b.WriteRune('?')
		case '\\':
			if i+1 >= len(src) {
				return "", 0, errors.New("trailing backslash")
			}
			i++
			writeEscaped(&b, src[i])
		case '[':
			class, next, ok := parseClass(src, i+1)
			if !ok {
				// Unterminated: the bracket is an ordinary character.
				writeEscaped(&b, '[')
				break
			}
			out, err := class.render()
			if err != nil {
				return "", 0, err
			}
			b.WriteString(out)
			i = next
		default:
			writeEscaped(&b, r)
		}
		minLen++
	}

	return b.String(), minLen, nil
}

func writeEscaped(b *strings.Builder, r rune) {
	b.WriteRune('\\')
	b.WriteRune(r)
}

type runeRange struct {
	lo, hi rune
}

type charClass struct {
	negated bool
	ranges  []runeRange
	// unknown holds a class name such as "bogus" in "[[:bogus:]]".
	unknown string
}

// parseClass parses a bracket expression starting just after '['. It returns
// the class, the index of the closing ']' and whether the expression was
// terminated.
func parseClass(src []rune, start int) (charClass, int, bool) {
	var class charClass
	i := start

	if i < len(src) && (src[i] == '!' || src[i] == '^') {
		class.negated = true
		i++
	}

	first := true
	for i < len(src) {
		r := src[i]

		if r == ']' && !first {
			return class, i, true
		}
		first = false

		if r == '[' && i+1 < len(src) && src[i+1] == ':' {
			if end := indexClassName(src, i+2); end >= 0 {
				name := string(src[i+2 : end])
				if ranges, ok := posixClasses[name]; ok {
					class.ranges = append(class.ranges, ranges...)
				} else if class.unknown == "" {
					class.unknown = name
				}
				i = end + 2
				continue
			}
		}

		lo, next := classRune(src, i)
		if lo < 0 {
			return class, 0, false
		}
		i = next

		if i+1 < len(src) && src[i] == '-' && src[i+1] != ']' {
			hi, after := classRune(src, i+1)
			if hi < 0 {
				return class, 0, false
			}
			i = after
			if lo <= hi {
				class.ranges = append(class.ranges, runeRange{lo: lo, hi: hi})
			}
			continue
		}

		class.ranges = append(class.ranges, runeRange{lo: lo, hi: lo})
	}

	return class, 0, false
}

// classRune reads one possibly escaped rune inside a bracket expression.
func classRune(src []rune, i int) (rune, int) {
	if src[i] == '\\' {
		if i+1 >= len(src) {
			return -1, i
		}
		return src[i+1], i + 2
	}
	return src[i], i + 1
}

// indexClassName returns the index of the ':' in ":]" closing a POSIX class
// name that starts at start, or -1.
func indexClassName(src []rune, start int) int {
	for j := start; j+1 < len(src); j++ {
		if src[j] == ':' && src[j+1] == ']' {
			return j
		}
		if src[j] == ']' {
			return -1
		}
	}
	return -1
}

// render writes the class in gobwas/glob syntax. A single plain range is kept
// as a range; anything else is expanded into an escaped character list since
// gobwas accepts either one range or one list per bracket.
func (c charClass) render() (string, error) {
	if c.unknown != "" {
		return "", fmt.Errorf("unknown character class %q", c.unknown)
	}

	if len(c.ranges) == 0 {
		// Only reversed ranges such as "[z-a]" get here. They match nothing,
		// so the negation matches any single character.
		if c.negated {
			return "?", nil
		}
		return "", fmt.Errorf("empty bracket expression")
	}

	var b strings.Builder
	b.WriteRune('[')
	if c.negated {
		b.WriteRune('!')
	}

	if len(c.ranges) == 1 && c.ranges[0].lo < c.ranges[0].hi && c.ranges[0].lo != '!' {
		b.WriteRune(c.ranges[0].lo)
		b.WriteRune('-')
		b.WriteRune(c.ranges[0].hi)
		b.WriteRune(']')
		return b.String(), nil
	}

	size := 0
	hasDash := false
	seen := make(map[rune]struct{})
	for _, rr := range c.ranges {
		size += int(rr.hi-rr.lo) + 1
		if size > maxClassSize {
			return "", ErrClassTooLarge
		}
		for r := rr.lo; r <= rr.hi; r++ {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			if r == '-' {
				hasDash = true
				continue
			}
			writeEscaped(&b, r)
		}
	}

	// The lexer reads "x-" at the start of a list as a range, so a dash goes
	// last, and unescaped when it is the only member.
	if hasDash {
		if len(seen) == 1 {
			b.WriteRune('-')
		} else {
			writeEscaped(&b, '-')
		}
	}

	b.WriteRune(']')
	return b.String(), nil
}

var posixClasses = map[string][]runeRange{
	"alpha":  {{'a', 'z'}, {'A', 'Z'}},
	"digit":  {{'0', '9'}},
	"alnum":  {{'a', 'z'}, {'A', 'Z'}, {'0', '9'}},
	"upper":  {{'A', 'Z'}},
	"lower":  {{'a', 'z'}},
	"xdigit": {{'0', '9'}, {'a', 'f'}, {'A', 'F'}},
	"space":  {{' ', ' '}, {'\t', '\r'}},
	"blank":  {{' ', ' '}, {'\t', '\t'}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
}
