// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import "testing"

var singleQuotedTests = []struct {
	in, out string
}{
	{`plain`, `plain`},
	{`It\'s`, `It's`},
	{`\'BLA\'`, `'BLA'`},
	{`\n`, `\\n`},
	{`\\`, `\\`},
	{`\\\'BLA\\\'`, `\\'BLA\\'`},
	{`\$bla`, `\\\$bla`},
	{`$bla`, `\$bla`},
	{`{$bla}`, `{\$bla}`},
	{`\"escape\"`, `\\"escape\\"`},
	{`trailing\`, `trailing\\`},
}

func TestFromSingleQuoted(t *testing.T) {
	for _, tt := range singleQuotedTests {
		if out := fromSingleQuoted(tt.in); out != tt.out {
			t.Errorf("fromSingleQuoted(%#q) = %#q, want %#q", tt.in, out, tt.out)
		}
	}
}

var doubleQuotedTests = []struct {
	in, out string
}{
	{`plain`, `plain`},
	{`could be $very\n`, "could be {$very}\n"},
	{`\"BLA\"`, `"BLA"`},
	{`tab\there`, `tab\there`},
	{`\$x`, `\$x`},
	{`a $ b`, `a \$ b`},
	{`cost: 5$`, `cost: 5\$`},
	{`$a$b`, `{$a}{$b}`},
	{`$juices`, `{$juices}`},
	{`{$a->b()}`, `{$a->b()}`},
	{`${a}`, `${a}`},
	{`{$a['}']}x`, `{$a['}']}x`},
	{`$a[0]x`, `{$a[0]}x`},
	{`$a[$i]`, `{$a[$i]}`},
	{`$a[key]`, `{$a['key']}`},
	{`$a[-1]`, `{$a[-1]}`},
	{`$a[10]`, `{$a[10]}`},
	{`$a[01]`, `{$a['01']}`},
	{`$a[-0]`, `{$a['-0']}`},
	{`$a[0x1]`, `{$a['0x1']}`},
	{`$a->b->c`, `{$a->b}->c`},
	{`$a?->b`, `{$a?->b}`},
	{`$a->`, `{$a}->`},
	{`{ $a }`, `{ {$a} }`},
	{`\x4`, `\x04`},
	{`\x41`, `\x41`},
	{`\x4g`, `\x04g`},
	{`\1`, `\001`},
	{`\18`, `\0018`},
	{`\101`, `\101`},
	{`\x`, `\\x`},
	{`\xg`, `\\xg`},
	{`\u`, `\\u`},
	{`\u{41}`, `\u{41}`},
	{`\\x4`, `\\x4`},
}

func TestFromDoubleQuoted(t *testing.T) {
	for _, tt := range doubleQuotedTests {
		if out := fromDoubleQuoted(tt.in); out != tt.out {
			t.Errorf("fromDoubleQuoted(%#q) = %#q, want %#q", tt.in, out, tt.out)
		}
	}
}

func TestUnquote(t *testing.T) {
	for _, tt := range []struct {
		text  string
		quote byte
		body  string
		ok    bool
	}{
		{`'abc'`, '\'', `abc`, true},
		{`b'abc'`, '\'', `abc`, true},
		{`"abc"`, '"', `abc`, true},
		{`''`, '\'', ``, true},
		{`'`, '\'', ``, false},
		{`"abc'`, '"', ``, false},
		{`abc`, '\'', ``, false},
	} {
		body, err := unquote(operand{text: tt.text}, tt.quote)
		if !tt.ok {
			if _, isMalformed := err.(*MalformedLiteralError); !isMalformed {
				t.Errorf("unquote(%#q) error = %v, want *MalformedLiteralError", tt.text, err)
			}
			continue
		}
		if err != nil || body != tt.body {
			t.Errorf("unquote(%#q) = %#q, %v, want %#q, nil", tt.text, body, err, tt.body)
		}
	}
}
