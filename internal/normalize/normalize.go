// Package normalize provides SQL normalization functions for comparing
// semantically equivalent SQL statements that may differ syntactically.
package normalize

import (
	"regexp"
	"strings"

	"github.com/sqlc-dev/spacesql/token"
)

// Pre-compiled regexes for performance
var (
	whitespaceRegex    = regexp.MustCompile(`\s+`)
	operatorSpaceRegex = regexp.MustCompile(`\s*(<>|!=|<=|>=|[=<>])\s*`)
	parenSpaceRegex    = regexp.MustCompile(`\(\s+|\s+\)`)
	backtickIdentRegex = regexp.MustCompile("`([A-Za-z_][A-Za-z0-9_$]*)`")
	ascRegex           = regexp.MustCompile(`\s+ASC\b`)
	wordRegex          = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_$]*`)
)

// Whitespace collapses all whitespace sequences to a single space
// and trims leading/trailing whitespace.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// outsideQuotes calls fn on each run of s that is not inside a string
// literal or a backtick identifier and copies quoted runs unchanged.
func outsideQuotes(s string, fn func(string) string) string {
	var result strings.Builder
	result.Grow(len(s))

	start := 0
	i := 0
	for i < len(s) {
		q := s[i]
		if q != '\'' && q != '`' {
			i++
			continue
		}
		result.WriteString(fn(s[start:i]))

		// Find the closing quote; '' inside a string is an escaped quote
		j := i + 1
		for j < len(s) {
			if s[j] == q {
				if q == '\'' && j+1 < len(s) && s[j+1] == '\'' {
					j += 2
					continue
				}
				j++
				break
			}
			j++
		}
		result.WriteString(s[i:j])
		i = j
		start = j
	}
	result.WriteString(fn(s[start:]))
	return result.String()
}

// Keywords upper-cases every keyword outside string literals and backtick
// identifiers. Other identifiers keep their case.
func Keywords(s string) string {
	return outsideQuotes(s, func(run string) string {
		return wordRegex.ReplaceAllStringFunc(run, func(word string) string {
			upper := strings.ToUpper(word)
			if token.Lookup(upper) != token.IDENT {
				return upper
			}
			return word
		})
	})
}

// CommasOutsideStrings removes spaces around commas that are outside of
// string literals and backtick identifiers.
func CommasOutsideStrings(s string) string {
	return outsideQuotes(s, func(run string) string {
		run = strings.ReplaceAll(run, ", ", ",")
		return strings.ReplaceAll(run, " ,", ",")
	})
}

// ForCompare normalizes SQL so that statements differing only in layout,
// comments, keyword case, redundant quoting or an explicit ASC compare
// equal.
func ForCompare(s string) string {
	normalized := StripComments(s)
	normalized = Keywords(normalized)
	normalized = outsideQuotes(normalized, func(run string) string {
		run = whitespaceRegex.ReplaceAllString(run, " ")
		// Normalize spaces around operators (remove spaces)
		run = operatorSpaceRegex.ReplaceAllString(run, "$1")
		run = parenSpaceRegex.ReplaceAllStringFunc(run, strings.TrimSpace)
		// "ORDER BY x ASC" is "ORDER BY x"
		run = ascRegex.ReplaceAllString(run, "")
		return strings.ReplaceAll(run, "<>", "!=")
	})
	normalized = CommasOutsideStrings(normalized)
	// Unquote backtick identifiers that do not need quoting
	normalized = backtickIdentRegex.ReplaceAllStringFunc(normalized, func(m string) string {
		name := m[1 : len(m)-1]
		if token.Lookup(strings.ToUpper(name)) != token.IDENT {
			return m
		}
		return name
	})
	// Strip trailing semicolon and any spaces around it
	normalized = strings.TrimSuffix(strings.TrimSpace(normalized), ";")
	return strings.TrimSpace(normalized)
}

// StripComments removes SQL comments from a query string.
// It handles:
//   - Line comments: -- to end of line
//   - Block comments: /* ... */
//
// A removed comment leaves a single space behind so that the tokens on
// either side stay apart.
func StripComments(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		// Check for line comment: --
		if i+1 < len(s) && s[i] == '-' && s[i+1] == '-' {
			// Skip until end of line
			for i < len(s) && s[i] != '\n' {
				i++
			}
			result.WriteByte(' ')
			continue
		}

		// Check for block comment: /* ... */
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			i += 2
			for i < len(s) && !(i+1 < len(s) && s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i += 2
			result.WriteByte(' ')
			continue
		}

		// Check for string literal or backtick identifier - don't strip
		// comments inside them
		if q := s[i]; q == '\'' || q == '`' {
			result.WriteByte(s[i])
			i++
			for i < len(s) {
				if s[i] == q {
					result.WriteByte(s[i])
					i++
					// Check for escaped quote ''
					if q == '\'' && i < len(s) && s[i] == '\'' {
						result.WriteByte(s[i])
						i++
						continue
					}
					break
				}
				result.WriteByte(s[i])
				i++
			}
			continue
		}

		result.WriteByte(s[i])
		i++
	}

	return result.String()
}
