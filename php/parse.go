// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package php parses PHP source files into tree-sitter syntax trees
// and answers the structural queries the heredoc conversion needs.
package php

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsphp "github.com/tree-sitter/tree-sitter-php/bindings/go"
	"golang.org/x/xerrors"
)

// A Parser parses PHP files. It is not safe for concurrent use.
type Parser struct {
	p *sitter.Parser
}

// NewParser returns a parser for PHP files, including inline HTML.
func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tsphp.LanguagePHP())
	if lang == nil {
		return nil, fmt.Errorf("php: language not available")
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, xerrors.Errorf("php: %w", err)
	}
	return &Parser{p: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.p == nil {
		return
	}
	p.p.Close()
	p.p = nil
}

// A File is a parsed PHP source file.
// The syntax tree is immutable; edits are made to copies of Src.
type File struct {
	Name string
	Src  []byte
	tree *sitter.Tree
}

// Parse parses src. The name is used only in diagnostics.
// Syntax errors do not make Parse fail: tree-sitter always produces a tree,
// and callers decide whether File.SyntaxError matters to them.
func (p *Parser) Parse(name string, src []byte) (*File, error) {
	if p == nil || p.p == nil {
		return nil, fmt.Errorf("php: nil parser")
	}
	tree := p.p.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("php: %s: parse failed", name)
	}
	return &File{Name: name, Src: src, tree: tree}, nil
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f == nil || f.tree == nil {
		return
	}
	f.tree.Close()
	f.tree = nil
}

// Root returns the root (program) node.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text of n.
func (f *File) Text(n *sitter.Node) string {
	return string(f.Src[n.StartByte():n.EndByte()])
}

// NodeAt returns the smallest node, named or not, that spans offset.
func (f *File) NodeAt(offset int) *sitter.Node {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Src) {
		offset = len(f.Src)
	}
	return f.Root().DescendantForByteRange(uint(offset), uint(offset))
}

// Variables returns the names, without the leading $, of all variables
// that appear anywhere in the file.
func (f *File) Variables() map[string]bool {
	names := make(map[string]bool)
	Walk(f.Root(), func(n *sitter.Node) bool {
		if n.Kind() == KindVariable {
			names[VariableName(f.Text(n))] = true
			return false
		}
		return true
	})
	return names
}

// VariableName returns the name of the variable written as text ($name).
func VariableName(text string) string {
	if len(text) > 0 && text[0] == '$' {
		return text[1:]
	}
	return text
}
