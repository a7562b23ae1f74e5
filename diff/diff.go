// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// and returns a unified diff.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if string(old) == string(new) {
		return nil, nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(string(old)),
		B:        splitLines(string(new)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return []byte("diff " + oldName + " " + newName + "\n" + text), nil
}

// splitLines splits s into lines that each end in "\n".
// A missing final newline is reported the way diff -u does.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n\\ No newline at end of file\n"
	return lines
}
