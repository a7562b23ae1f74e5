// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"go/token"
	"strings"

	"rsc.io/heredoc/edit"
	"rsc.io/heredoc/php"
)

// A Snapshot is a set of parsed source files plus the edits
// to be made to those files.
type Snapshot struct {
	r    *Refactor
	fset *token.FileSet

	// files contains the files before any edits, keyed by short path.
	files map[string]*php.File
	names []string // sorted keys of files
	lines map[string]*token.File

	// edits contains the edits made to files by this Snapshot.
	// It only contains entries for files that have been modified.
	edits map[string]*edit.Buffer

	// temps records temporaries introduced by edits, per file.
	temps map[string]map[string]bool

	Errors *ErrorList
}

func newSnapshot(r *Refactor) *Snapshot {
	return &Snapshot{
		r:      r,
		fset:   token.NewFileSet(),
		files:  make(map[string]*php.File),
		lines:  make(map[string]*token.File),
		edits:  make(map[string]*edit.Buffer),
		temps:  make(map[string]map[string]bool),
		Errors: new(ErrorList),
	}
}

func (s *Snapshot) add(f *php.File) {
	tf := s.fset.AddFile(f.Name, -1, len(f.Src))
	tf.SetLinesForContent(f.Src)
	s.files[f.Name] = f
	s.lines[f.Name] = tf
	s.names = append(s.names, f.Name)
}

func (s *Snapshot) Refactor() *Refactor { return s.r }

// File returns the loaded file with the given short name, or nil.
func (s *Snapshot) File(name string) *php.File {
	return s.files[name]
}

// Files returns the loaded files, sorted by name.
func (s *Snapshot) Files() []*php.File {
	var list []*php.File
	for _, name := range s.names {
		list = append(list, s.files[name])
	}
	return list
}

// Close releases the syntax trees of all loaded files.
func (s *Snapshot) Close() {
	for _, f := range s.Files() {
		f.Close()
	}
}

// Position returns the position of the byte offset in f.
func (s *Snapshot) Position(f *php.File, offset int) token.Position {
	tf := s.lines[f.Name]
	if tf == nil || offset < 0 || offset > tf.Size() {
		return token.Position{Filename: f.Name}
	}
	return tf.Position(tf.Pos(offset))
}

// Addr returns the position of offset in f formatted as file:line:col.
func (s *Snapshot) Addr(f *php.File, offset int) string {
	return s.Position(f, offset).String()
}

func (s *Snapshot) ErrorAt(f *php.File, offset int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	msg = strings.ReplaceAll(msg, "\n", "\n\t")
	if f == nil {
		s.Errors.Add(&Error{Msg: msg})
	} else {
		s.Errors.Add(&Error{Pos: s.Position(f, offset), Msg: msg})
	}
}

// Taken returns a function reporting whether a variable name (without $)
// is in use in f, either in its source or as a temporary
// introduced by an earlier edit.
func (s *Snapshot) Taken(f *php.File) func(name string) bool {
	vars := f.Variables()
	return func(name string) bool {
		return vars[name] || s.temps[f.Name][name]
	}
}

// Reserve records temporaries (with or without $) introduced in f.
func (s *Snapshot) Reserve(f *php.File, names ...string) {
	m := s.temps[f.Name]
	if m == nil {
		m = make(map[string]bool)
		s.temps[f.Name] = m
	}
	for _, name := range names {
		m[php.VariableName(name)] = true
	}
}
