// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	"rsc.io/heredoc/php"
)

// Label names the conversion in listings of available refactorings.
const Label = "Convert concatenation to heredoc"

// A Target is the code a conversion rewrites.
type Target struct {
	Node  *sitter.Node   // topmost concatenation, or echo statement
	Echo  bool           // Node is an echo statement with several operands
	Stmt  *sitter.Node   // statement enclosing Node, or nil
	Start int            // byte range replaced by the heredoc
	End   int
	Items []*sitter.Node // leaf operands in source order
}

// Available reports whether Locate would find a target at offset
// with at least one operand that is not a string literal.
func Available(f *php.File, offset int) bool {
	t, err := Locate(f, offset)
	if err != nil {
		return false
	}
	for _, n := range t.Items {
		if !isLiteral(Classify(f, n)) {
			return true
		}
	}
	return false
}

// echoList returns the echo statement enclosing n if it has several operands.
func echoList(n *sitter.Node) *sitter.Node {
	echo := php.Enclosing(n, func(n *sitter.Node) bool { return n.Kind() == php.KindEcho })
	if echo == nil {
		return nil
	}
	if _, commas := php.EchoItems(echo); commas == 0 {
		return nil
	}
	return echo
}

// Locate returns the target of a conversion at offset: the enclosing echo
// statement if it has several operands, or else the outermost concatenation.
func Locate(f *php.File, offset int) (*Target, error) {
	n := f.NodeAt(offset)
	if n == nil {
		return nil, ErrNotApplicable
	}
	t := new(Target)
	if echo := echoList(n); echo != nil {
		t.Node, t.Echo, t.Stmt = echo, true, echo
	} else if c := php.Topmost(n, php.IsConcatenation); c != nil {
		t.Node = c
		t.Stmt = php.Enclosing(c, php.IsStatement)
	} else {
		return nil, ErrNotApplicable
	}
	if err := f.SyntaxErrorIn(t.Node); err != nil {
		return nil, err
	}

	if t.Echo {
		items, _ := php.EchoItems(t.Node)
		for _, it := range items {
			t.Items = leaves(t.Items, it)
		}
		t.Start = int(items[0].StartByte())
		t.End = int(items[len(items)-1].EndByte())
	} else {
		t.Items = leaves(nil, t.Node)
		t.Start = int(t.Node.StartByte())
		t.End = int(t.Node.EndByte())
	}
	return t, nil
}

// leaves appends the operands of the concatenation chain n to list.
// Parenthesized concatenations are operands, not part of the chain.
func leaves(list []*sitter.Node, n *sitter.Node) []*sitter.Node {
	if php.IsConcatenation(n) {
		list = leaves(list, n.ChildByFieldName("left"))
		return leaves(list, n.ChildByFieldName("right"))
	}
	return append(list, n)
}
