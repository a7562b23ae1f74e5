// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"strings"
	"testing"

	"rsc.io/heredoc/edit"
	"rsc.io/heredoc/php"
)

var convertTests = []struct {
	name   string
	src    string
	cursor string // the cursor is at the first occurrence of this text
	old    bool   // target PHP before 7.3
	out    string
	err    string
}{
	{
		name:   "Complex",
		src:    "<?php\n$s = 'This ' . \"could be $very\\n\" . 'complicated' . print_r($array, true);\n",
		cursor: "'complicated'",
		out: `<?php
$newVarFnCall4 = print_r($array, true);
$s = <<<HEREDOC_DELIMITER
This could be {$very}
complicated{$newVarFnCall4}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "EchoList",
		src:    "<?php\necho 'Hello ', $name, \"!\\n\";\n",
		cursor: "$name",
		out: `<?php
echo <<<HEREDOC_DELIMITER
Hello {$name}!

HEREDOC_DELIMITER;
`,
	},
	{
		name:   "EchoListFlattened",
		src:    "<?php\nif ($ok) {\n    echo 'n=' . count($xs), \"\\n\";\n}\n",
		cursor: "count",
		out: `<?php
if ($ok) {
    $newVarFnCall2 = count($xs);
    echo <<<HEREDOC_DELIMITER
n={$newVarFnCall2}

HEREDOC_DELIMITER;
}
`,
	},
	{
		name:   "EchoInElse",
		src:    "<?php\nif ($c) {\n} else {\n    echo 'a', f();\n}\n",
		cursor: "'a'",
		out: `<?php
if ($c) {
} else {
    $newVarFnCall2 = f();
    echo <<<HEREDOC_DELIMITER
a{$newVarFnCall2}
HEREDOC_DELIMITER;
}
`,
	},
	{
		name:   "Assignment",
		src:    "<?php\n$s = 'x' . ($a = f()) . 'y';\n",
		cursor: "'x'",
		out: `<?php
$a = f();
$s = <<<HEREDOC_DELIMITER
x{$a}y
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "Members",
		src:    "<?php\n$s = 'a' . $o->p . $a['k'] . $o?->q . Foo::bar();\n",
		cursor: "'a'",
		out: `<?php
$newVarFnCall5 = Foo::bar();
$s = <<<HEREDOC_DELIMITER
a{$o->p}{$a['k']}{$o?->q}{$newVarFnCall5}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "Expression",
		src:    "<?php\nreturn 'n' . ($i + 1);\n",
		cursor: "'n'",
		out: `<?php
$newVarPhpExpression2 = ($i + 1);
return <<<HEREDOC_DELIMITER
n{$newVarPhpExpression2}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "MidLine",
		src:    "<?php\n$a = 1; $s = 'a' . f();\n",
		cursor: "'a'",
		out: `<?php
$a = 1; $newVarFnCall2 = f(); $s = <<<HEREDOC_DELIMITER
a{$newVarFnCall2}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "Indented",
		src:    "<?php\nfunction g() {\n\t$s = 'a' . g();\n}\n",
		cursor: "'a'",
		out:    "<?php\nfunction g() {\n\t$newVarFnCall2 = g();\n\t$s = <<<HEREDOC_DELIMITER\na{$newVarFnCall2}\nHEREDOC_DELIMITER;\n}\n",
	},
	{
		name:   "TempTaken",
		src:    "<?php\n$newVarFnCall2 = 1;\n$s = 'a' . f();\n",
		cursor: "'a'",
		out: `<?php
$newVarFnCall2 = 1;
$newVarFnCall2_2 = f();
$s = <<<HEREDOC_DELIMITER
a{$newVarFnCall2_2}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "DelimiterTaken",
		src:    "<?php\n$s = \"x\\nHEREDOC_DELIMITER\\n\" . $y;\n",
		cursor: "$y",
		out: `<?php
$s = <<<HEREDOC_DELIMITER_2
x
HEREDOC_DELIMITER
{$y}
HEREDOC_DELIMITER_2;
`,
	},
	{
		name:   "ConditionalNoHoist",
		src:    "<?php\n$s = $c ? 'a' . $b : '';\n",
		cursor: "'a'",
		out: `<?php
$s = $c ? <<<HEREDOC_DELIMITER
a{$b}
HEREDOC_DELIMITER : '';
`,
	},
	{
		name:   "OldPHP",
		src:    "<?php\n$s = 'a' . $b;\n",
		cursor: "$b",
		old:    true,
		out: `<?php
$s = <<<HEREDOC_DELIMITER
a{$b}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "Argument",
		src:    "<?php\nf('a' . $b, 1);\n",
		cursor: "$b",
		out: `<?php
f(<<<HEREDOC_DELIMITER
a{$b}
HEREDOC_DELIMITER, 1);
`,
	},
	{
		name:   "OldPHPArgument",
		src:    "<?php\nf('a' . $b, 1);\n",
		cursor: "$b",
		old:    true,
		err:    "closing heredoc delimiter must end its line",
	},
	{
		name:   "Escapes",
		src:    "<?php\n$s = \"\\x4\" . '1' . \"\\1\" . '2' . \"\\x\" . $b;\n",
		cursor: "$b",
		out: `<?php
$s = <<<HEREDOC_DELIMITER
\x041\0012\\x{$b}
HEREDOC_DELIMITER;
`,
	},
	{
		name:   "Literals",
		src:    "<?php\n$s = 'a' . \"b\";\n",
		cursor: "'a'",
		err:    "nothing to convert",
	},
	{
		name:   "NotConcatenation",
		src:    "<?php\n$s = $a + 1;\n",
		cursor: "$a",
		err:    "no concatenation",
	},
	{
		name:   "Conditional",
		src:    "<?php\n$s = $c ? 'a' . f() : '';\n",
		cursor: "'a'",
		err:    "evaluated conditionally",
	},
	{
		name:   "ShortCircuit",
		src:    "<?php\n$ok = $c && ('a' . f()) == 'ab';\n",
		cursor: "'a'",
		err:    "evaluated conditionally",
	},
	{
		name:   "NullCoalesceAssign",
		src:    "<?php\n$a ??= 'x' . f();\n",
		cursor: "'x'",
		err:    "evaluated conditionally",
	},
	{
		name:   "NullsafeArgument",
		src:    "<?php\n$o?->m('x' . f());\n",
		cursor: "'x'",
		err:    "evaluated conditionally",
	},
	{
		name:   "NullsafeProperty",
		src:    "<?php\n$v = $o?->{'x' . f()};\n",
		cursor: "'x'",
		err:    "evaluated conditionally",
	},
	{
		name:   "NoBlock",
		src:    "<?php\nif ($c) echo 'a' . f();\n",
		cursor: "'a'",
		err:    "not in a block",
	},
	{
		name:   "LoopCondition",
		src:    "<?php\nwhile ('a' . f() != 'ab') {\n}\n",
		cursor: "'a'",
		err:    "every iteration",
	},
}

func parse(t *testing.T, src string) *php.File {
	t.Helper()
	p, err := php.NewParser()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	f, err := p.Parse("a.php", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(f.Close)
	return f
}

func apply(t *testing.T, src string, edits []Edit) string {
	t.Helper()
	buf := edit.NewBuffer([]byte(src))
	for _, e := range edits {
		buf.Replace(e.Start, e.End, e.Text)
	}
	if err := buf.Check(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestConvert(t *testing.T) {
	for _, tt := range convertTests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.src)
			off := strings.Index(tt.src, tt.cursor)
			if off < 0 {
				t.Fatalf("cursor %q not in source", tt.cursor)
			}
			vars := f.Variables()
			opts := &Options{
				Flexible: !tt.old,
				Taken:    func(name string) bool { return vars[name] },
			}
			rw, err := locateAndConvert(f, off, opts)
			if tt.err != "" {
				if err == nil || !strings.Contains(err.Error(), tt.err) {
					t.Fatalf("error = %v, want %q", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			out := apply(t, tt.src, rw.Edits())
			if out != tt.out {
				t.Errorf("have:\n%s\nwant:\n%s", out, tt.out)
			}
			if g := parse(t, out); g.SyntaxError() != nil {
				t.Errorf("output does not parse: %v", g.SyntaxError())
			}
		})
	}
}

func locateAndConvert(f *php.File, off int, opts *Options) (*Rewrite, error) {
	target, err := Locate(f, off)
	if err != nil {
		return nil, err
	}
	return Convert(f, target, opts)
}

func TestConvertErrorTypes(t *testing.T) {
	f := parse(t, "<?php\n$s = $c ? 'a' . f() : '';\n")
	_, err := locateAndConvert(f, strings.Index(string(f.Src), "'a'"), nil)
	if _, ok := err.(*PreconditionError); !ok {
		t.Errorf("error = %#v, want *PreconditionError", err)
	}

	f = parse(t, "<?php\n$s = 'a' . 'b';\n")
	_, err = locateAndConvert(f, strings.Index(string(f.Src), "'a'"), nil)
	if err != ErrNothingToConvert {
		t.Errorf("error = %v, want ErrNothingToConvert", err)
	}
}

func TestAvailable(t *testing.T) {
	for _, tt := range []struct {
		src    string
		cursor string
		ok     bool
	}{
		{"<?php\n$s = 'a' . $b;\n", "$b", true},
		{"<?php\n$s = 'a' . $b;\n", "'a'", true},
		{"<?php\n$s = f('a' . $b);\n", "$b", true},
		{"<?php\necho $a, $b;\n", "$b", true},
		{"<?php\necho $a, $b;\n", "echo", true},
		{"<?php\necho $a;\n", "$a", false},
		{"<?php\n$x = 1;\n", "$x", false},
		{"<?php\n$s = 'a' . function () { return $b; };\n", "$b", false},
		{"<?php\n$s = 'a' . 'b';\n", "'a'", false},
		{"<?php\n$s = 'a' . \"b$c\";\n", "'a'", false},
		{"<?php\necho 'a', \"b\";\n", "echo", false},
	} {
		f := parse(t, tt.src)
		if ok := Available(f, strings.Index(tt.src, tt.cursor)); ok != tt.ok {
			t.Errorf("Available(%q at %q) = %v, want %v", tt.src, tt.cursor, ok, tt.ok)
		}
	}
}

func TestLocate(t *testing.T) {
	src := "<?php\necho 'a' . $b . ('c' . $d), $e;\n"
	f := parse(t, src)
	target, err := Locate(f, strings.Index(src, "$b"))
	if err != nil {
		t.Fatal(err)
	}
	if !target.Echo {
		t.Errorf("Echo = false, want true")
	}
	var items []string
	for _, n := range target.Items {
		items = append(items, f.Text(n))
	}
	if have, want := strings.Join(items, "|"), "'a'|$b|('c' . $d)|$e"; have != want {
		t.Errorf("Items = %s, want %s", have, want)
	}
	if have, want := src[target.Start:target.End], "'a' . $b . ('c' . $d), $e"; have != want {
		t.Errorf("range = %q, want %q", have, want)
	}
}
