// Package config loads translator settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raymyers/ralph-tac/pkg/stmt"
	"github.com/raymyers/ralph-tac/pkg/tacgen"
)

var ErrInvalid = errors.New("invalid config")

// Config holds the settings a translation run can take from a file.
type Config struct {
	CommentMarker string `yaml:"comment_marker"`
	Lenient       bool   `yaml:"lenient"`
	TempPrefix    string `yaml:"temp_prefix"`
	LabelPrefix   string `yaml:"label_prefix"`
	Summary       bool   `yaml:"summary"`
}

// Default returns strict settings with t<n> temporaries and L<n> labels.
func Default() Config {
	return Config{
		CommentMarker: stmt.DefaultCommentMarker,
		TempPrefix:    "t",
		LabelPrefix:   "L",
	}
}

// Load reads and validates a config file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the prefixes spell identifiers, so generated names
// read as operands. The translator rejects source variables of the form
// <prefix><digits>, which keeps generated names apart from user ones.
func (c Config) Validate() error {
	for _, p := range []struct{ key, val string }{
		{"temp_prefix", c.TempPrefix},
		{"label_prefix", c.LabelPrefix},
	} {
		if p.val == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalid, p.key)
		}
		if !isIdent(p.val) {
			return fmt.Errorf("%w: %s %q is not an identifier", ErrInvalid, p.key, p.val)
		}
	}
	if strings.ContainsAny(c.CommentMarker, " \t\r\n") {
		return fmt.Errorf("%w: comment_marker %q contains whitespace", ErrInvalid, c.CommentMarker)
	}
	return nil
}

// Options converts the config into translator options.
func (c Config) Options() tacgen.Options {
	opts := tacgen.DefaultOptions()
	opts.CommentMarker = c.CommentMarker
	opts.Lenient = c.Lenient
	opts.TempPrefix = c.TempPrefix
	opts.LabelPrefix = c.LabelPrefix
	return opts
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
