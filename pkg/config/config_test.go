package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDecode(t *testing.T) {
	src := `
[layout]
width = 1600
break_cycles = true

[layout.constants]
node_width = 200

[render]
theme = "dark"
formats = ["svg", "png"]
icons = false

[cache]
backend = "none"

[server]
addr = ":9090"
request_timeout = "45s"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if cfg.Layout.Width != 1600 || !cfg.Layout.BreakCycles {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Layout.Height != Default().Layout.Height {
		t.Errorf("unset height should keep the default, got %v", cfg.Layout.Height)
	}
	if cfg.Layout.Constants.NodeWidth != 200 || cfg.Layout.Constants.NodeHeight != 80 {
		t.Errorf("Constants = %+v", cfg.Layout.Constants)
	}
	if cfg.Render.Theme != "dark" || cfg.Render.Icons || len(cfg.Render.Formats) != 2 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.RequestTimeout != 45*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}

	opts := cfg.PipelineOptions()
	if !opts.BreakCycles || !opts.NoIcons || opts.NoAutolayout || opts.Theme != "dark" {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "[layout\nwidth = 1", errors.ErrCodeParseFailed},
		{"unknown key", "[layout]\nwidht = 1", errors.ErrCodeInvalidInput},
		{"bad theme", "[render]\ntheme = \"neon\"", errors.ErrCodeInvalidTheme},
		{"bad format", "[render]\nformats = [\"pdf\"]", errors.ErrCodeInvalidFormat},
		{"bad engine", "[layout]\nengine = \"tower\"", errors.ErrCodeInvalidEngine},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"mongo without uri", "[server]\nstore = \"mongo\"", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n[cache.redis]\naddr = \"\"", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvPath, "")

	// No file at the default location is fine.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without file = %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}

	def := filepath.Join(dir, "archdiagram", "config.toml")
	if DefaultPath() != def {
		t.Errorf("DefaultPath() = %q, want %q", DefaultPath(), def)
	}
	if err := os.MkdirAll(filepath.Dir(def), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(def, []byte("[render]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() default file = %v", err)
	}
	if cfg.Render.Theme != "dark" || cfg.Path != def {
		t.Errorf("Load() = theme %q path %q", cfg.Render.Theme, cfg.Path)
	}

	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(other, []byte("[server]\naddr = \":1234\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, other)
	if cfg, err = Load(""); err != nil || cfg.Server.Addr != ":1234" {
		t.Errorf("Load() via env = %+v, %v", cfg.Server, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("explicit missing file err = %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) = %v\n%s", err, buf.String())
	}
	if cfg.Server.RequestTimeout != Default().Server.RequestTimeout {
		t.Errorf("RequestTimeout = %v", cfg.Server.RequestTimeout)
	}
}
