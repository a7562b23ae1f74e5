// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package php

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node kinds of the tree-sitter PHP grammar used by this module.
const (
	KindProgram         = "program"
	KindBinary          = "binary_expression"
	KindString          = "string"
	KindEncapsedString  = "encapsed_string"
	KindVariable        = "variable_name"
	KindMemberAccess    = "member_access_expression"
	KindNullsafeAccess  = "nullsafe_member_access_expression"
	KindSubscript       = "subscript_expression"
	KindAssignment      = "assignment_expression"
	KindAugmentedAssign = "augmented_assignment_expression"
	KindReferenceAssign = "reference_assignment_expression"
	KindFunctionCall    = "function_call_expression"
	KindMemberCall      = "member_call_expression"
	KindNullsafeCall    = "nullsafe_member_call_expression"
	KindScopedCall      = "scoped_call_expression"
	KindEcho            = "echo_statement"
	KindSequence        = "sequence_expression"
	KindCompound        = "compound_statement"
	KindColonBlock      = "colon_block"
	KindCase            = "case_statement"
	KindDefault         = "default_statement"
	KindConditional     = "conditional_expression"
	KindMatch           = "match_expression"
	KindElseIf          = "else_if_clause"
	KindElse            = "else_clause"
	KindWhile           = "while_statement"
	KindDo              = "do_statement"
	KindFor             = "for_statement"
	KindComment         = "comment"
	KindParenthesized   = "parenthesized_expression"
)

// Walk calls visit for n and, while visit returns true, its descendants
// in source order.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}

// Operator returns the operator token of a binary expression
// or an augmented assignment, or "".
func Operator(n *sitter.Node) string {
	if n == nil || n.Kind() != KindBinary && n.Kind() != KindAugmentedAssign {
		return ""
	}
	op := n.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	return op.Kind()
}

// IsConcatenation reports whether n is a binary "." expression.
func IsConcatenation(n *sitter.Node) bool {
	return Operator(n) == "."
}

// IsStatement reports whether n is a statement that can have siblings
// inserted before it. Blocks are not.
func IsStatement(n *sitter.Node) bool {
	k := n.Kind()
	return strings.HasSuffix(k, "_statement") && k != KindCompound
}

// IsStatementList reports whether n holds a list of statements,
// so that new statements can be inserted among its children.
func IsStatementList(n *sitter.Node) bool {
	switch n.Kind() {
	case KindProgram, KindCompound, KindColonBlock, KindCase, KindDefault:
		return true
	}
	return false
}

// IsFunctionBoundary reports whether n starts a new function scope.
func IsFunctionBoundary(n *sitter.Node) bool {
	switch n.Kind() {
	case "anonymous_function", "anonymous_function_creation_expression",
		"arrow_function", "function_definition", "method_declaration":
		return true
	}
	return false
}

// IsConditional reports whether child, a child of n, may not be
// evaluated every time n is.
// A nil child asks about all children of n.
func IsConditional(n, child *sitter.Node) bool {
	switch n.Kind() {
	case KindConditional, KindMatch, KindElseIf, KindElse:
		return true
	case KindBinary:
		switch Operator(n) {
		case "&&", "||", "and", "or", "xor", "??":
			return true
		}
	case KindAugmentedAssign:
		return Operator(n) == "??="
	case KindNullsafeCall, KindNullsafeAccess:
		// The object is always evaluated; the rest is skipped when it is null.
		return child == nil || !Same(child, n.ChildByFieldName("object"))
	}
	return false
}

// Same reports whether a and b denote the same node.
func Same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

// Enclosing returns the nearest ancestor-or-self of n for which match
// returns true, not crossing a function boundary. It returns nil if there is none.
func Enclosing(n *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	for ; n != nil; n = n.Parent() {
		if match(n) {
			return n
		}
		if IsFunctionBoundary(n) {
			return nil
		}
	}
	return nil
}

// Topmost returns the outermost ancestor-or-self of n for which match
// returns true, not crossing a function boundary. It returns nil if there is none.
func Topmost(n *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	var top *sitter.Node
	for ; n != nil; n = n.Parent() {
		if match(n) {
			top = n
		}
		if IsFunctionBoundary(n) {
			break
		}
	}
	return top
}

// EchoItems returns the comma-separated operands of an echo statement
// in source order, and the number of commas separating them.
func EchoItems(echo *sitter.Node) (items []*sitter.Node, commas int) {
	var add func(n *sitter.Node)
	add = func(n *sitter.Node) {
		for i := uint(0); i < n.ChildCount(); i++ {
			c := n.Child(i)
			switch {
			case c.Kind() == ",":
				commas++
			case c.Kind() == KindSequence:
				add(c)
			case c.IsNamed() && c.Kind() != KindComment && c.Kind() != "text_interpolation":
				items = append(items, c)
			}
		}
	}
	add(echo)
	return items, commas
}
