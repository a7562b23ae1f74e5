// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"os"

	"rsc.io/heredoc/diff"
	"rsc.io/heredoc/edit"
	"rsc.io/heredoc/php"
)

func (s *Snapshot) buffer(f *php.File) *edit.Buffer {
	b := s.edits[f.Name]
	if b == nil {
		b = edit.NewBuffer(f.Src)
		s.edits[f.Name] = b
	}
	return b
}

// ReplaceAt queues the replacement of f.Src[lo:hi] with repl.
func (s *Snapshot) ReplaceAt(f *php.File, lo, hi int, repl string) {
	if lo < 0 || hi < lo || hi > len(f.Src) {
		s.ErrorAt(f, lo, "invalid edit [%d,%d)", lo, hi)
		return
	}
	if repl == "" {
		s.buffer(f).Delete(lo, hi)
		return
	}
	s.buffer(f).Replace(lo, hi, repl)
}

// InsertAt queues the insertion of repl at f.Src[pos].
func (s *Snapshot) InsertAt(f *php.File, pos int, repl string) {
	if pos < 0 || pos > len(f.Src) {
		s.ErrorAt(f, pos, "invalid insertion at %d", pos)
		return
	}
	s.buffer(f).Insert(pos, repl)
}

// currentBytes returns the text of the named file with edits applied,
// or nil if the edits overlap.
func (s *Snapshot) currentBytes(name string) []byte {
	b := s.edits[name]
	if b == nil {
		f := s.files[name]
		if f == nil {
			return nil
		}
		return f.Src
	}
	if b.Check() != nil {
		return nil
	}
	return b.Bytes()
}

// Check reports conflicting edits and edits that leave a file
// that no longer parses. The errors are added to s.Errors.
func (s *Snapshot) Check() error {
	for _, f := range s.Files() {
		name := f.Name
		b := s.edits[name]
		if b == nil {
			continue
		}
		if err := b.Check(); err != nil {
			s.Errors.Add(fmt.Errorf("%s: %v", name, err))
			continue
		}
		nf, err := s.r.parser.Parse(name, b.Bytes())
		if err != nil {
			s.Errors.Add(err)
			continue
		}
		if se := nf.SyntaxError(); se != nil {
			e := syntaxError(se)
			e.Msg = "rewritten file: " + e.Msg
			s.Errors.Add(e)
		}
		nf.Close()
	}
	return s.Errors.Err()
}

func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range s.names {
		if s.edits[name] == nil {
			continue
		}
		new := s.currentBytes(name)
		if new == nil {
			return nil, fmt.Errorf("%s: conflicting edits", name)
		}
		old := s.files[name].Src
		if bytes.Equal(old, new) {
			continue
		}
		d, err := diff.Diff("old/"+name, old, "new/"+name, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Write writes the modified files back to disk.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range s.Modified() {
		new := s.currentBytes(name)
		if new == nil {
			fmt.Fprintf(s.r.Stderr, "%s: conflicting edits\n", name)
			failed = true
			continue
		}
		if err := os.WriteFile(s.r.path(name), new, 0666); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("errors writing files")
	}
	return nil
}

// Modified returns the names of the files whose text the edits change.
func (s *Snapshot) Modified() []string {
	var names []string
	for _, name := range s.names {
		b := s.edits[name]
		if b == nil || b.Len() == 0 {
			continue
		}
		if b.Check() == nil && bytes.Equal(b.Bytes(), s.files[name].Src) {
			continue
		}
		names = append(names, name)
	}
	return names
}
