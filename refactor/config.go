// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the configuration file looked for
// in the refactoring directory when none is named explicitly.
const ConfigFile = ".heredoc.yaml"

// A Config controls the text that refactorings produce.
type Config struct {
	// PHP is the PHP version the rewritten code must run on, such as "8.2".
	// Before 7.3, a heredoc closing delimiter must end its line.
	PHP string `yaml:"php"`

	// Delimiter is the preferred heredoc delimiter.
	Delimiter string `yaml:"delimiter"`

	// CallPrefix and ExprPrefix name the temporaries that hold
	// extracted calls and other expressions.
	CallPrefix string `yaml:"call_prefix"`
	ExprPrefix string `yaml:"expr_prefix"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		PHP:        "8.2",
		Delimiter:  "HEREDOC_DELIMITER",
		CallPrefix: "newVarFnCall",
		ExprPrefix: "newVarPhpExpression",
	}
}

var isIdent = regexp.MustCompile(`^[A-Za-z_\x80-\xff][A-Za-z0-9_\x80-\xff]*$`)

// Validate reports whether c is usable.
func (c *Config) Validate() error {
	if !semver.IsValid(c.version()) {
		return fmt.Errorf("invalid php version %q", c.PHP)
	}
	for _, f := range []struct{ name, val string }{
		{"delimiter", c.Delimiter},
		{"call_prefix", c.CallPrefix},
		{"expr_prefix", c.ExprPrefix},
	} {
		if !isIdent.MatchString(f.val) {
			return fmt.Errorf("invalid %s %q: not a PHP identifier", f.name, f.val)
		}
	}
	return nil
}

func (c *Config) version() string {
	return "v" + c.PHP
}

// AtLeast reports whether the configured PHP version is version or later.
func (c *Config) AtLeast(version string) bool {
	return semver.Compare(c.version(), "v"+version) >= 0
}

// ParseConfig parses a YAML configuration.
// Fields missing from data keep their default values.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads the named configuration file.
// If name is empty, LoadConfig reads ConfigFile in dir if it exists
// and otherwise returns the default configuration.
func LoadConfig(dir, name string) (*Config, error) {
	optional := name == ""
	if optional {
		name = filepath.Join(dir, ConfigFile)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	c, err := ParseConfig(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", name, err)
	}
	return c, nil
}
