// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"reflect"
	"testing"
)

func op(text string) operand { return operand{text: text} }

func TestBuild(t *testing.T) {
	ops := []Operand{
		singleQuoted{op(`'This '`)},
		doubleQuoted{op(`"could be $very\n"`)},
		singleQuoted{op(`'complicated'`)},
		call{op(`print_r($array, true)`)},
		expression{op(`$a + 1`)},
		assignment{op(`$x = f()`), "$x"},
		variable{op(`$y`)},
		member{op(`$o->p`)},
	}
	r, err := Build(ops, nil)
	if err != nil {
		t.Fatal(err)
	}
	body := "This could be {$very}\ncomplicated{$newVarFnCall4}{$newVarPhpExpression5}{$x}{$y}{$o->p}"
	if r.Body != body {
		t.Errorf("Body = %#q, want %#q", r.Body, body)
	}
	pre := []string{
		"$newVarFnCall4 = print_r($array, true);",
		"$newVarPhpExpression5 = $a + 1;",
		"$x = f();",
	}
	if !reflect.DeepEqual(r.Pre, pre) {
		t.Errorf("Pre = %q, want %q", r.Pre, pre)
	}
	temps := []string{"$newVarFnCall4", "$newVarPhpExpression5"}
	if !reflect.DeepEqual(r.Temps, temps) {
		t.Errorf("Temps = %q, want %q", r.Temps, temps)
	}
	if len(r.Unclassified) != 0 {
		t.Errorf("Unclassified = %v, want none", r.Unclassified)
	}
}

func TestBuildCounter(t *testing.T) {
	// The counter advances for every operand, extracted or not.
	ops := []Operand{
		call{op(`f()`)},
		singleQuoted{op(`'-'`)},
		variable{op(`$v`)},
		call{op(`g()`)},
	}
	r, err := Build(ops, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{$newVarFnCall1}-{$v}{$newVarFnCall4}"; r.Body != want {
		t.Errorf("Body = %#q, want %#q", r.Body, want)
	}
}

func TestBuildTaken(t *testing.T) {
	taken := map[string]bool{"tmp1": true, "tmp1_2": true}
	opts := &Options{
		CallPrefix: "tmp",
		Taken:      func(name string) bool { return taken[name] },
	}
	r, err := Build([]Operand{call{op(`f()`)}, call{op(`g()`)}}, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"$tmp1_3", "$tmp2"}
	if !reflect.DeepEqual(r.Temps, want) {
		t.Errorf("Temps = %q, want %q", r.Temps, want)
	}
}

func TestBuildUnclassified(t *testing.T) {
	u := unclassified{op(`?`)}
	r, err := Build([]Operand{variable{op(`$a`)}, u}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{$a}" + Sentinel; r.Body != want {
		t.Errorf("Body = %#q, want %#q", r.Body, want)
	}
	if len(r.Unclassified) != 1 || r.Unclassified[0].Text() != "?" {
		t.Errorf("Unclassified = %v, want [?]", r.Unclassified)
	}
}

func TestBuildMalformed(t *testing.T) {
	_, err := Build([]Operand{variable{op(`$a`)}, singleQuoted{op(`'oops`)}}, nil)
	if _, ok := err.(*MalformedLiteralError); !ok {
		t.Errorf("Build error = %v, want *MalformedLiteralError", err)
	}
}

func TestDelimiter(t *testing.T) {
	for _, tt := range []struct {
		body, want, delim string
	}{
		{"text", "EOT", "EOT"},
		{"EOTX\nEOT_1", "EOT", "EOT"},
		{"a\nEOT\nb", "EOT", "EOT_2"},
		{"a\n  EOT;", "EOT", "EOT_2"},
		{"EOT\nEOT_2 x", "EOT", "EOT_3"},
	} {
		if d := Delimiter(tt.body, tt.want); d != tt.delim {
			t.Errorf("Delimiter(%q, %q) = %q, want %q", tt.body, tt.want, d, tt.delim)
		}
	}
}

func TestHeredoc(t *testing.T) {
	if h, want := Heredoc("D", "a\nb"), "<<<D\na\nb\nD"; h != want {
		t.Errorf("Heredoc = %q, want %q", h, want)
	}
}
