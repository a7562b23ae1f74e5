// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"errors"
	"fmt"
)

var (
	// ErrNotApplicable reports that the cursor is in neither a concatenation
	// nor an echo statement with several operands.
	ErrNotApplicable = errors.New("no concatenation or echo list at cursor")

	// ErrNothingToConvert reports that every operand is a string literal,
	// so there is nothing to interpolate.
	ErrNothingToConvert = errors.New("nothing to convert")
)

// A MalformedLiteralError reports a string literal whose text
// does not have the expected quotes.
type MalformedLiteralError struct {
	Offset int
	Text   string
}

func (e *MalformedLiteralError) Error() string {
	return fmt.Sprintf("malformed string literal %s", e.Text)
}

// A PreconditionError reports a well-formed target that cannot be
// rewritten without changing what the program does.
type PreconditionError struct {
	Offset int
	Msg    string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}
