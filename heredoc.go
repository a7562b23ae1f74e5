// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/xerrors"
	"rsc.io/heredoc/concat"
	"rsc.io/heredoc/php"
	"rsc.io/heredoc/refactor"
)

var (
	showDiff   = flag.Bool("diff", false, "show diff instead of writing files")
	available  = flag.Bool("available", false, "report whether the conversion applies at each address; change nothing")
	phpVersion = flag.String("php", "", "PHP `version` of the rewritten code")
	configFile = flag.String("config", "", "read settings from `file` (default "+refactor.ConfigFile+" if present)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: heredoc [-diff] [-available] [-php version] [-config file] file.php:address ...\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("heredoc: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
	}

	rf, err := refactor.New(".")
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := refactor.LoadConfig(rf.Dir(), *configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *phpVersion != "" {
		cfg.PHP = *phpVersion
		if err := cfg.Validate(); err != nil {
			log.Fatal(newErrUsage("-php: %v", err))
		}
	}
	rf.Config = cfg
	rf.ShowDiff = *showDiff

	if *available {
		err = runAvailable(rf, args)
	} else {
		err = run(rf, args)
	}
	rf.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// load loads the files named by the addresses.
func load(rf *refactor.Refactor, args []string) (*refactor.Snapshot, error) {
	var names []string
	for _, arg := range args {
		names = append(names, refactor.Name(arg))
	}
	return rf.Load(names...)
}

// run converts the concatenation at each address.
// Either every conversion is made or, if any fails, none is.
func run(rf *refactor.Refactor, args []string) error {
	snap, err := load(rf, args)
	if err != nil {
		return err
	}
	defer snap.Close()

	opts := options(rf.Config)
	for _, arg := range args {
		snap.Errors.Add(convert(snap, arg, opts))
	}
	if err := snap.Errors.Err(); err != nil {
		return err
	}
	if len(snap.Modified()) == 0 {
		return nil
	}

	// Reparse rewritten files before showing or writing anything.
	if err := snap.Check(); err != nil {
		return xerrors.Errorf("checking rewritten files: %w", err)
	}
	if rf.ShowDiff {
		d, err := snap.Diff()
		if err != nil {
			return err
		}
		rf.Stdout.Write(d)
		return nil
	}
	return snap.Write()
}

func options(cfg *refactor.Config) *concat.Options {
	return &concat.Options{
		Delimiter:  cfg.Delimiter,
		CallPrefix: cfg.CallPrefix,
		ExprPrefix: cfg.ExprPrefix,
		Flexible:   cfg.AtLeast("7.3"),
	}
}

// lookup evaluates an address that must name a position in a file.
func lookup(snap *refactor.Snapshot, arg string) (*refactor.Item, error) {
	item, err := snap.Lookup(arg)
	if err != nil {
		return nil, newErrUsage("%v", err)
	}
	if item.Kind != refactor.ItemPos {
		return nil, newErrUsage("%s: address must name a position in %s", arg, item.Name)
	}
	return item, nil
}

// convert queues the edits converting the concatenation at the address arg.
func convert(snap *refactor.Snapshot, arg string, opts *concat.Options) error {
	item, err := lookup(snap, arg)
	if err != nil {
		return err
	}
	f := item.File
	cursor := item.Cursor()

	target, err := concat.Locate(f, cursor)
	if err != nil {
		var se *php.SyntaxError
		if errors.As(err, &se) {
			return se
		}
		return newErrPrecondition("%s: %v", snap.Addr(f, cursor), err)
	}

	o := *opts
	o.Taken = snap.Taken(f)
	rw, err := concat.Convert(f, target, &o)
	if err != nil {
		var pe *concat.PreconditionError
		var me *concat.MalformedLiteralError
		switch {
		case err == concat.ErrNothingToConvert:
			fmt.Fprintf(snap.Refactor().Stderr, "%s: %v\n", snap.Addr(f, target.Start), err)
			return nil
		case errors.As(err, &pe):
			return newErrPrecondition("%s: %s", snap.Addr(f, pe.Offset), pe.Msg)
		case errors.As(err, &me):
			return newErrPrecondition("%s: %v", snap.Addr(f, me.Offset), me)
		}
		return err
	}

	for _, u := range rw.Unclassified {
		fmt.Fprintf(snap.Refactor().Stderr, "%s: warning: cannot classify %s %q; wrote %s\n",
			snap.Addr(f, int(u.Node().StartByte())), u.Node().Kind(), u.Text(), concat.Sentinel)
	}
	for _, e := range rw.Edits() {
		if e.Start == e.End {
			snap.InsertAt(f, e.Start, e.Text)
			continue
		}
		snap.ReplaceAt(f, e.Start, e.End, e.Text)
	}
	snap.Reserve(f, rw.Temps...)
	return nil
}

// runAvailable reports, for each address, whether a conversion applies there.
func runAvailable(rf *refactor.Refactor, args []string) error {
	snap, err := load(rf, args)
	if err != nil {
		return err
	}
	defer snap.Close()

	for _, arg := range args {
		item, err := lookup(snap, arg)
		if err != nil {
			return err
		}
		cursor := item.Cursor()
		label := "not available"
		if concat.Available(item.File, cursor) {
			label = concat.Label
		}
		fmt.Fprintf(rf.Stdout, "%s: %s\n", snap.Addr(item.File, cursor), label)
	}
	return nil
}
