// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heredoc rewrites PHP string concatenations as heredoc literals.
//
// Usage:
//
//	heredoc [-diff] [-available] [-php version] [-config file] address...
//
// Each address names a file and a position in it, as in a.php:12.
// Heredoc finds the concatenation surrounding that position and
// replaces the whole chain with a single heredoc literal:
//
//	$s = 'Hello, ' . $name . "!\n" . date('Y');
//
// becomes
//
//	$newVarFnCall4 = date('Y');
//	$s = <<<HEREDOC_DELIMITER
//	Hello, {$name}!
//	{$newVarFnCall4}
//	HEREDOC_DELIMITER;
//
// An echo statement with several comma-separated operands is rewritten
// the same way, as an echo of one heredoc.
//
// By default, heredoc writes changes back to the disk.
// The -diff flag causes heredoc to print a diff of the intended changes instead.
// The -available flag prints, for each address, whether the conversion applies there,
// and changes nothing.
//
// # Operands
//
// Each operand of the chain becomes a piece of the heredoc body.
// String literals are copied with their escapes rewritten so that
// the body has the same value. Variables, and property and element
// accesses on variables, are interpolated in braces, as {$name} or {$o->p}.
//
// Any other operand cannot be interpolated directly.
// A call is evaluated into a new variable $newVarFnCallN in a statement
// inserted before the one being rewritten, where N is the position
// of the operand in the chain. Other expressions use $newVarPhpExpressionN.
// An assignment is moved before the statement as it is,
// and the variable it assigns is interpolated.
// If a new variable name is already used in the file, a suffix _2, _3,
// and so on is added.
//
// Moving an operand before its statement would change the program if the
// operand is not always evaluated, as in one branch of ?: or the right side of &&,
// or if it is evaluated on every iteration of a loop condition.
// Heredoc refuses to rewrite such chains.
// Chains made up only of string literals are left alone.
//
// # Addresses
//
// An address is a file name followed by a colon and a range of text,
// in the syntax used by the Acme and Sam text editors.
// The most common forms are the line “N”, the byte offset “#N”,
// and the regular expression “/re/”. For example:
//
//	a.php:9          # the first concatenation on line 9
//	a.php:#120       # the concatenation at byte offset 120
//	a.php:/\$name/   # the concatenation containing $name
//
// The position used is the first non-blank byte of the range.
// See http://9p.io/sys/doc/sam/sam.html Table II for details on the syntax.
//
// # Configuration
//
// Settings are read from the file named by -config, or else from
// .heredoc.yaml in the current directory if it exists:
//
//	php: "7.2"                    # PHP version of the rewritten code
//	delimiter: EOT                # preferred heredoc delimiter
//	call_prefix: newVarFnCall     # prefix of variables holding calls
//	expr_prefix: newVarPhpExpression
//
// The -php flag overrides the configured version.
// Before PHP 7.3 the closing delimiter of a heredoc must end its line,
// so chains followed by more code on their last line cannot be rewritten.
// The delimiter is changed to DELIM_2, DELIM_3, and so on if the body
// contains a line that would end the heredoc early.
package main
