// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"fmt"
	"strings"
)

// Sentinel is the body text emitted for an operand that could not be classified.
const Sentinel = "I_SHOULD_NOT_APPEAR"

// Options control the text a conversion produces.
// Zero fields take the values of DefaultOptions.
type Options struct {
	Delimiter  string // heredoc delimiter, before collision renaming
	CallPrefix string // temporary name prefix for extracted calls
	ExprPrefix string // temporary name prefix for other extracted expressions

	// Flexible reports whether the target PHP version accepts a closing
	// delimiter followed by more code on its line (PHP 7.3 and later).
	Flexible bool

	// Taken reports whether a variable name (without $) is already in use.
	// Temporaries never take such a name.
	Taken func(name string) bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() *Options {
	return &Options{
		Delimiter:  "HEREDOC_DELIMITER",
		CallPrefix: "newVarFnCall",
		ExprPrefix: "newVarPhpExpression",
		Flexible:   true,
	}
}

func (o *Options) withDefaults() *Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	x := *o
	if x.Delimiter == "" {
		x.Delimiter = d.Delimiter
	}
	if x.CallPrefix == "" {
		x.CallPrefix = d.CallPrefix
	}
	if x.ExprPrefix == "" {
		x.ExprPrefix = d.ExprPrefix
	}
	return &x
}

// A Result is the outcome of building a heredoc body from operands.
type Result struct {
	Body         string    // heredoc body, without delimiters
	Pre          []string  // statements to run first, in visitation order
	Temps        []string  // temporary variables introduced, with $
	Unclassified []Operand // operands rendered as Sentinel
}

type builder struct {
	opts    *Options
	index   int // 1-based visitation index of the operand being rendered
	created map[string]bool
	temps   []string
}

// temp returns a fresh temporary variable, with $, for the current operand.
func (b *builder) temp(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, b.index)
	for n := 2; b.taken(name); n++ {
		name = fmt.Sprintf("%s%d_%d", prefix, b.index, n)
	}
	b.created[name] = true
	b.temps = append(b.temps, "$"+name)
	return "$" + name
}

func (b *builder) taken(name string) bool {
	return b.created[name] || b.opts.Taken != nil && b.opts.Taken(name)
}

// Build renders ops in order into a heredoc body and the statements
// that must run before it.
func Build(ops []Operand, opts *Options) (*Result, error) {
	b := &builder{opts: opts.withDefaults(), created: make(map[string]bool)}
	var body strings.Builder
	r := new(Result)
	for i, op := range ops {
		b.index = i + 1
		frag, pre, err := op.render(b)
		if err != nil {
			return nil, err
		}
		body.WriteString(frag)
		if pre != "" {
			r.Pre = append(r.Pre, pre)
		}
		if op.Kind() == KindUnclassified {
			r.Unclassified = append(r.Unclassified, op)
		}
	}
	r.Body = body.String()
	r.Temps = b.temps
	return r, nil
}
