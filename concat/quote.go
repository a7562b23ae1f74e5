// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"strings"
)

// unquote returns the text between the quotes of a string literal,
// which may carry a b or B prefix.
func unquote(o operand, quote byte) (string, error) {
	s := o.text
	if len(s) > 0 && (s[0] == 'b' || s[0] == 'B') {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
		e := &MalformedLiteralError{Text: o.text}
		if o.node != nil {
			e.Offset = int(o.node.StartByte())
		}
		return "", e
	}
	return s[1 : len(s)-1], nil
}

// fromSingleQuoted converts the body of a single-quoted literal
// into heredoc body text with the same value.
// A single-quoted literal knows only the escapes \\ and \';
// every other byte stands for itself, so in the heredoc each backslash
// is doubled and each $ is escaped.
func fromSingleQuoted(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '\'') {
			i++
			c = s[i]
		}
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// fromDoubleQuoted converts the body of a double-quoted literal
// into heredoc body text with the same value.
// Escapes other than \" and \n keep their meaning in a heredoc and are
// copied in a fixed-width form (see escape).
// Simple interpolations are rewritten in braced form, so that text
// following the fragment cannot extend them.
func fromDoubleQuoted(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i = escape(&b, s, i)

		case c == '{' && i+1 < len(s) && s[i+1] == '$':
			j := closingBrace(s, i)
			b.WriteString(s[i:j])
			i = j

		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			j := closingBrace(s, i+1)
			b.WriteString(s[i:j])
			i = j

		case c == '$' && i+1 < len(s) && isNameStart(s[i+1]):
			i = simpleInterpolation(&b, s, i)

		case c == '$':
			b.WriteString(`\$`)
			i++

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// escape writes the heredoc form of the escape sequence starting at
// s[i] ('\\') and returns the offset just past it.
// Variable-length escapes are padded to their full width so that the
// text of the next fragment cannot extend them, and a backslash that
// does not begin an escape is written as \\.
//
//	\x4      \x04
//	\1       \001
//	\x       \\x
//	\u       \\u
//	\u{41}   \u{41}
func escape(b *strings.Builder, s string, i int) int {
	switch c := s[i+1]; {
	case c == '"':
		b.WriteByte('"')
		return i + 2
	case c == 'n':
		b.WriteByte('\n')
		return i + 2
	case c == 'x':
		j := i + 2
		for j < len(s) && j < i+4 && isHex(s[j]) {
			j++
		}
		if j == i+2 {
			b.WriteString(`\\`)
			return i + 1
		}
		b.WriteString(`\x` + strings.Repeat("0", i+4-j) + s[i+2:j])
		return j
	case '0' <= c && c <= '7':
		j := i + 1
		for j < len(s) && j < i+4 && '0' <= s[j] && s[j] <= '7' {
			j++
		}
		b.WriteString(`\` + strings.Repeat("0", i+4-j) + s[i+1:j])
		return j
	case c == 'u':
		if i+2 < len(s) && s[i+2] == '{' {
			if k := strings.IndexByte(s[i+2:], '}'); k >= 0 {
				b.WriteString(s[i : i+2+k+1])
				return i + 2 + k + 1
			}
		}
		b.WriteString(`\\`)
		return i + 1
	}
	b.WriteString(s[i : i+2])
	return i + 2
}

// simpleInterpolation writes the braced form of the simple interpolation
// starting at s[i] ('$') and returns the offset just past it.
//
//	$a        {$a}
//	$a[0]     {$a[0]}
//	$a[$i]    {$a[$i]}
//	$a[key]   {$a['key']}
//	$a[01]    {$a['01']}
//	$a->b     {$a->b}
//	$a?->b    {$a?->b}
func simpleInterpolation(b *strings.Builder, s string, i int) int {
	j := scanName(s, i+1)
	name := s[i:j]
	switch {
	case j < len(s) && s[j] == '[':
		k := strings.IndexByte(s[j:], ']')
		if k < 0 {
			// Not an interpolation of an element: PHP rejects it anyway.
			b.WriteString("{" + name + "}")
			return j
		}
		key := s[j+1 : j+k]
		if !strings.HasPrefix(key, "$") && !isCanonicalInt(key) {
			key = "'" + key + "'"
		}
		b.WriteString("{" + name + "[" + key + "]}")
		return j + k + 1

	case strings.HasPrefix(s[j:], "->") && j+2 < len(s) && isNameStart(s[j+2]):
		k := scanName(s, j+2)
		b.WriteString("{" + s[i:k] + "}")
		return k

	case strings.HasPrefix(s[j:], "?->") && j+3 < len(s) && isNameStart(s[j+3]):
		k := scanName(s, j+3)
		b.WriteString("{" + s[i:k] + "}")
		return k
	}
	b.WriteString("{" + name + "}")
	return j
}

// closingBrace returns the offset just past the brace matching s[i] ('{'),
// or len(s) if there is none. Braces inside quoted strings are ignored.
func closingBrace(s string, i int) int {
	depth := 0
	for ; i < len(s); i++ {
		switch c := s[i]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '\'', '"':
			for i++; i < len(s) && s[i] != c; i++ {
				if s[i] == '\\' {
					i++
				}
			}
		}
	}
	return len(s)
}

func scanName(s string, i int) int {
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return i
}

func isNameStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c >= 0x80
}

// isCanonicalInt reports whether an unquoted element key is read as an
// integer. Other digit strings, such as 01 or -0, are string keys.
func isCanonicalInt(key string) bool {
	digits := strings.TrimPrefix(key, "-")
	if digits == "" || digits[0] == '0' && (len(digits) > 1 || digits != key) {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isNameByte(c byte) bool {
	return isNameStart(c) || '0' <= c && c <= '9'
}
