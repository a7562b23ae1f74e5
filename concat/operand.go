// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	"rsc.io/heredoc/php"
)

// A Kind classifies an operand by how it is rendered in a heredoc body.
type Kind int

const (
	KindUnclassified Kind = iota
	KindSingleQuoted
	KindDoubleQuoted
	KindVariable
	KindMember
	KindAssignment
	KindCall
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindSingleQuoted:
		return "single-quoted string"
	case KindDoubleQuoted:
		return "double-quoted string"
	case KindVariable:
		return "variable"
	case KindMember:
		return "member access"
	case KindAssignment:
		return "assignment"
	case KindCall:
		return "call"
	case KindExpression:
		return "expression"
	}
	return "unclassified"
}

// An Operand is one leaf of a concatenation chain or echo list.
//
// The set of operand types is closed: every type implements render,
// so adding a kind does not compile until it says how it is rendered.
type Operand interface {
	Kind() Kind
	Node() *sitter.Node
	Text() string

	// render returns the operand's fragment of the heredoc body and,
	// when the operand has to be evaluated ahead of the enclosing statement,
	// the statement that does so.
	render(b *builder) (frag, pre string, err error)
}

type operand struct {
	node *sitter.Node
	text string
}

func (o operand) Node() *sitter.Node { return o.node }
func (o operand) Text() string       { return o.text }

type (
	singleQuoted struct{ operand }
	doubleQuoted struct{ operand }
	variable     struct{ operand }
	member       struct{ operand }
	call         struct{ operand }
	expression   struct{ operand }
	unclassified struct{ operand }

	assignment struct {
		operand
		target string // assigned variable or member, as written
	}
)

func (singleQuoted) Kind() Kind { return KindSingleQuoted }
func (doubleQuoted) Kind() Kind { return KindDoubleQuoted }
func (variable) Kind() Kind     { return KindVariable }
func (member) Kind() Kind       { return KindMember }
func (assignment) Kind() Kind   { return KindAssignment }
func (call) Kind() Kind         { return KindCall }
func (expression) Kind() Kind   { return KindExpression }
func (unclassified) Kind() Kind { return KindUnclassified }

func (o singleQuoted) render(b *builder) (string, string, error) {
	body, err := unquote(o.operand, '\'')
	if err != nil {
		return "", "", err
	}
	return fromSingleQuoted(body), "", nil
}

func (o doubleQuoted) render(b *builder) (string, string, error) {
	body, err := unquote(o.operand, '"')
	if err != nil {
		return "", "", err
	}
	return fromDoubleQuoted(body), "", nil
}

// Variables are always braced: {$juice}s, not $juices.
func (o variable) render(b *builder) (string, string, error) {
	return brace(o.text), "", nil
}

func (o member) render(b *builder) (string, string, error) {
	return brace(o.text), "", nil
}

func (o assignment) render(b *builder) (string, string, error) {
	return brace(o.target), o.text + ";", nil
}

func (o call) render(b *builder) (string, string, error) {
	name := b.temp(b.opts.CallPrefix)
	return brace(name), name + " = " + o.text + ";", nil
}

func (o expression) render(b *builder) (string, string, error) {
	name := b.temp(b.opts.ExprPrefix)
	return brace(name), name + " = " + o.text + ";", nil
}

func (o unclassified) render(b *builder) (string, string, error) {
	return Sentinel, "", nil
}

func brace(expr string) string {
	return "{" + expr + "}"
}

func isLiteral(op Operand) bool {
	k := op.Kind()
	return k == KindSingleQuoted || k == KindDoubleQuoted
}

// Classify returns the operand for the leaf n of a concatenation chain or echo list.
func Classify(f *php.File, n *sitter.Node) Operand {
	o := operand{node: n, text: f.Text(n)}
	if !n.IsNamed() || n.IsError() || n.IsMissing() {
		return unclassified{o}
	}
	switch n.Kind() {
	case php.KindString:
		return singleQuoted{o}
	case php.KindEncapsedString:
		return doubleQuoted{o}
	case php.KindVariable:
		return variable{o}
	case php.KindMemberAccess, php.KindNullsafeAccess, php.KindSubscript:
		// Only expressions rooted at a variable can follow "{" in a heredoc.
		if strings.HasPrefix(o.text, "$") {
			return member{o}
		}
	case php.KindAssignment, php.KindAugmentedAssign, php.KindReferenceAssign:
		if left := n.ChildByFieldName("left"); left != nil && isInterpolatable(f, left) {
			return assignment{o, f.Text(left)}
		}
	case php.KindParenthesized:
		// ($x = f()) is hoisted as $x = f();
		if n.NamedChildCount() == 1 {
			if a, ok := Classify(f, n.NamedChild(0)).(assignment); ok {
				return a
			}
		}
	case php.KindFunctionCall, php.KindMemberCall, php.KindNullsafeCall, php.KindScopedCall:
		return call{o}
	}
	return expression{o}
}

// isInterpolatable reports whether n can be written as {n} in a heredoc.
func isInterpolatable(f *php.File, n *sitter.Node) bool {
	switch n.Kind() {
	case php.KindVariable:
		return true
	case php.KindMemberAccess, php.KindNullsafeAccess, php.KindSubscript:
		return strings.HasPrefix(f.Text(n), "$")
	}
	return false
}
