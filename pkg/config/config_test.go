package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Config
	}{
		{"empty file", "", Default()},
		{
			name:  "all keys",
			input: "comment_marker: \"#\"\nlenient: true\ntemp_prefix: tmp\nlabel_prefix: lbl\nsummary: true\n",
			want: Config{
				CommentMarker: "#",
				Lenient:       true,
				TempPrefix:    "tmp",
				LabelPrefix:   "lbl",
				Summary:       true,
			},
		},
		{
			name:  "partial keeps defaults",
			input: "lenient: true\n",
			want:  Config{CommentMarker: "//", Lenient: true, TempPrefix: "t", LabelPrefix: "L"},
		},
		{
			name:  "comments can be disabled",
			input: "comment_marker: \"\"\n",
			want:  Config{TempPrefix: "t", LabelPrefix: "L"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "verbose: true\n"},
		{"wrong type", "lenient: sometimes\n"},
		{"empty temp prefix", "temp_prefix: \"\"\n"},
		{"prefix starts with digit", "label_prefix: 1L\n"},
		{"prefix with operator", "temp_prefix: t-\n"},
		{"marker with space", "comment_marker: \"# \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tac.yaml")
	if err := os.WriteFile(path, []byte("temp_prefix: _t\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TempPrefix != "_t" || cfg.LabelPrefix != "L" {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Lenient = true
	cfg.LabelPrefix = "B"
	opts := cfg.Options()
	if !opts.Lenient || opts.LabelPrefix != "B" || opts.TempPrefix != "t" || opts.CommentMarker != "//" {
		t.Errorf("unexpected options %+v", opts)
	}
}
