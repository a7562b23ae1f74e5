// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package php

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// A SyntaxError reports the first syntax error found in a file or subtree.
// Line and Column are 1-based; Column counts bytes.
type SyntaxError struct {
	File   string
	Line   int
	Column int
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// SyntaxError returns the first syntax error in the file, or nil.
func (f *File) SyntaxError() *SyntaxError {
	return f.SyntaxErrorIn(f.Root())
}

// SyntaxErrorIn returns the first syntax error inside root, or nil.
func (f *File) SyntaxErrorIn(root *sitter.Node) *SyntaxError {
	if root == nil || !root.HasError() {
		return nil
	}
	var bad *sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsMissing() || n.IsError() {
			bad = n
			return false
		}
		return n.HasError()
	})
	if bad == nil {
		bad = root
	}
	msg := "syntax error"
	if bad.IsMissing() {
		msg = fmt.Sprintf("syntax error: expected %s", bad.Kind())
	}
	start := bad.StartPosition()
	return &SyntaxError{
		File:   f.Name,
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
		Offset: int(bad.StartByte()),
		Msg:    msg,
	}
}
