package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbass698-121/aveva-diagram-style/pkg/config"
	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
)

const sampleDiagram = `{
  "metadata": {"title": "Payments"},
  "lanes": [{"id": "dmz", "title": "DMZ"}, {"id": "core", "title": "Core"}],
  "nodes": [
    {"id": "gw", "lane": "dmz", "kind": "network", "title": "Gateway"},
    {"id": "api", "lane": "core", "title": "API"},
    {"id": "ghost", "lane": "nowhere", "title": "Ghost"}
  ],
  "edges": [{"from": "gw", "to": "api", "label": "https"}]
}`

// run executes the root command with isolated config and cache directories.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolate(t)
	return runShared(t, stdin, args...)
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(config.EnvPath, "")
}

// runShared executes the root command in the current environment so several
// invocations can share one cache directory.
func runShared(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arch.json")
	if err := os.WriteFile(path, []byte(sampleDiagram), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	input := writeSample(t)
	if _, err := run(t, "", "render", input, "-f", "svg,json,dot"); err != nil {
		t.Fatalf("render: %v", err)
	}

	base := strings.TrimSuffix(input, ".json")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte(`id="node-gw"`)) {
		t.Error("svg missing gateway node")
	}
	if _, err := os.ReadFile(base + ".dot"); err != nil {
		t.Errorf("dot not written: %v", err)
	}

	var model struct {
		Nodes       []struct{ ID string } `json:"nodes"`
		Diagnostics struct {
			DroppedNodes []struct{ ID string } `json:"dropped_nodes"`
		} `json:"diagnostics"`
	}
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("json not written: %v", err)
	}
	if err := json.Unmarshal(data, &model); err != nil {
		t.Fatal(err)
	}
	if len(model.Nodes) != 2 {
		t.Errorf("placed %d nodes, want 2", len(model.Nodes))
	}
	if len(model.Diagnostics.DroppedNodes) != 1 || model.Diagnostics.DroppedNodes[0].ID != "ghost" {
		t.Errorf("dropped = %+v, want ghost", model.Diagnostics.DroppedNodes)
	}
}

func TestRenderStdinToStdout(t *testing.T) {
	out, err := run(t, sampleDiagram, "render", "-", "-f", "dot", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("stdout = %.40q, want DOT source", out)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	input := writeSample(t)
	_, err := run(t, "", "render", input, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	input := writeSample(t)
	out, err := run(t, "", "layout", input, "--stdout", "--width", "1000")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var m struct {
		Width float64 `json:"width"`
	}
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if m.Width != 1000 {
		t.Errorf("width = %v, want 1000", m.Width)
	}
}

func TestExtractCommand(t *testing.T) {
	out, err := run(t, "The web app in the DMZ connects to the Postgres database.", "extract", "-", "-f", "yaml", "--no-cache")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "nodes:") {
		t.Errorf("output is not a YAML document:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, section := range []string{"[layout]", "[render]", "[cache]", "[server]"} {
		if !strings.Contains(out, section) {
			t.Errorf("config show missing %s", section)
		}
	}

	out, err = run(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join(appName, "config.toml")) {
		t.Errorf("config path = %q", out)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "absent.toml"), "config", "show")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	input := writeSample(t)

	out, err := runShared(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir := strings.TrimSpace(out)
	if want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName); dir != want {
		t.Fatalf("cache path = %q, want %q", dir, want)
	}

	if _, err := runShared(t, "", "render", input, "-f", "svg"); err != nil {
		t.Fatalf("render: %v", err)
	}
	shards, _ := os.ReadDir(dir)
	if len(shards) == 0 {
		t.Fatal("render left the cache empty")
	}

	if _, err := runShared(t, "", "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	shards, _ = os.ReadDir(dir)
	if len(shards) != 0 {
		t.Errorf("%d entries left after clear", len(shards))
	}

	if _, err := runShared(t, "", "cache", "clear"); err != nil {
		t.Errorf("clearing an empty cache: %v", err)
	}
}
