// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/xerrors"
	"rsc.io/heredoc/php"
)

// A Refactor holds the state for an active refactoring.
type Refactor struct {
	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiff bool
	Config   *Config

	dir    string
	parser *php.Parser
}

// New returns a new refactoring of files in the given directory (usually ".").
func New(dir string) (*Refactor, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if d, err := filepath.EvalSymlinks(dir); err == nil {
		dir = d
	}
	p, err := php.NewParser()
	if err != nil {
		return nil, err
	}
	r := &Refactor{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: DefaultConfig(),
		dir:    filepath.Clean(dir),
		parser: p,
	}
	return r, nil
}

// Close releases the parser.
func (r *Refactor) Close() {
	r.parser.Close()
}

// Dir returns the directory that relative file names are resolved against.
func (r *Refactor) Dir() string {
	return r.dir
}

// Load reads and parses the named files.
// A file that does not parse cleanly is loaded anyway;
// its syntax errors are reported when it is edited.
func (r *Refactor) Load(names ...string) (*Snapshot, error) {
	s := newSnapshot(r)
	defer s.Errors.flushOnPanic(r.Stderr)

	seen := make(map[string]bool)
	for _, name := range names {
		name = r.shortPath(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		src, err := os.ReadFile(r.path(name))
		if err != nil {
			s.Errors.Add(xerrors.Errorf("loading %s: %w", name, err))
			continue
		}
		f, err := r.parser.Parse(name, src)
		if err != nil {
			s.Errors.Add(err)
			continue
		}
		s.add(f)
	}
	if err := s.Errors.Err(); err != nil {
		s.Close()
		return nil, err
	}
	sort.Strings(s.names)
	return s, nil
}

// path returns the file system path for the short name.
func (r *Refactor) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

// shortPath returns an absolute or relative name for path, whatever is shorter.
func (r *Refactor) shortPath(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if rel, err := filepath.Rel(r.dir, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}
