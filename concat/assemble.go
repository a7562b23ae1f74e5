// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"bytes"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	"rsc.io/heredoc/php"
)

// Heredoc returns the heredoc literal with the given delimiter and body.
func Heredoc(delim, body string) string {
	return "<<<" + delim + "\n" + body + "\n" + delim
}

// Delimiter returns want, or want_2, want_3, and so on,
// choosing the first that no line of body could be mistaken for.
func Delimiter(body, want string) string {
	delim := want
	for n := 2; closes(body, delim); n++ {
		delim = fmt.Sprintf("%s_%d", want, n)
	}
	return delim
}

// closes reports whether some line of body would end a heredoc delimited by delim.
func closes(body, delim string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, delim) && (len(line) == len(delim) || !isNameByte(line[len(delim)])) {
			return true
		}
	}
	return false
}

// An Edit replaces the bytes [Start, End) of a file with Text.
// Start == End is an insertion.
type Edit struct {
	Start int
	End   int
	Text  string
}

// A Rewrite is a planned conversion of one target.
type Rewrite struct {
	*Result
	Delimiter string
	Start     int    // replaced range
	End       int
	Text      string // heredoc literal
	At        int    // offset of the enclosing statement, if Insert != ""
	Insert    string // pre-statements, each followed by a separator
}

// Edits returns the edits that carry out the rewrite.
func (rw *Rewrite) Edits() []Edit {
	var list []Edit
	if rw.Insert != "" {
		list = append(list, Edit{rw.At, rw.At, rw.Insert})
	}
	return append(list, Edit{rw.Start, rw.End, rw.Text})
}

// Convert plans the conversion of t to a heredoc.
// It returns ErrNothingToConvert if every operand is a string literal.
func Convert(f *php.File, t *Target, opts *Options) (*Rewrite, error) {
	opts = opts.withDefaults()
	ops := make([]Operand, len(t.Items))
	literal := true
	for i, n := range t.Items {
		ops[i] = Classify(f, n)
		if !isLiteral(ops[i]) {
			literal = false
		}
	}
	if literal {
		return nil, ErrNothingToConvert
	}
	res, err := Build(ops, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Flexible {
		if err := closerEndsLine(f.Src, t.End); err != nil {
			return nil, err
		}
	}

	rw := &Rewrite{
		Result:    res,
		Delimiter: Delimiter(res.Body, opts.Delimiter),
		Start:     t.Start,
		End:       t.End,
	}
	rw.Text = Heredoc(rw.Delimiter, res.Body)
	if len(res.Pre) > 0 {
		if err := canHoist(t); err != nil {
			return nil, err
		}
		rw.At = int(t.Stmt.StartByte())
		sep := separator(f.Src, rw.At)
		var b strings.Builder
		for _, s := range res.Pre {
			b.WriteString(s)
			b.WriteString(sep)
		}
		rw.Insert = b.String()
	}
	return rw, nil
}

// canHoist checks that statements inserted before t.Stmt run exactly
// when the operands they replace would have.
func canHoist(t *Target) error {
	fail := func(format string, args ...interface{}) error {
		return &PreconditionError{Offset: t.Start, Msg: fmt.Sprintf(format, args...)}
	}
	if t.Stmt == nil {
		return fail("cannot extract operands: no enclosing statement")
	}
	if p := t.Stmt.Parent(); p == nil || !php.IsStatementList(p) {
		return fail("cannot extract operands: statement is not in a block")
	}
	var child *sitter.Node
	for n := t.Node; n != nil && !php.Same(n, t.Stmt); child, n = n, n.Parent() {
		if php.IsConditional(n, child) {
			return fail("cannot extract operands: evaluated conditionally (%s)", n.Kind())
		}
	}
	switch t.Stmt.Kind() {
	case php.KindWhile, php.KindDo, php.KindFor:
		return fail("cannot extract operands: evaluated on every iteration of %s", t.Stmt.Kind())
	}
	return nil
}

// closerEndsLine checks that a heredoc closer placed at end
// would be followed only by an optional semicolon on its line,
// as PHP before 7.3 requires.
func closerEndsLine(src []byte, end int) error {
	rest := bytes.TrimPrefix(src[end:], []byte(";"))
	if len(rest) == 0 || rest[0] == '\n' || bytes.HasPrefix(rest, []byte("\r\n")) {
		return nil
	}
	return &PreconditionError{Offset: end, Msg: "closing heredoc delimiter must end its line before PHP 7.3"}
}

// separator returns the text that follows each inserted statement:
// a newline and the indentation of the line at offset,
// or a space if offset does not begin its line.
func separator(src []byte, offset int) string {
	i := offset
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	if i == 0 || src[i-1] == '\n' {
		return "\n" + string(src[i:offset])
	}
	return " "
}
