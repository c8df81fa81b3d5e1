package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jbass698-121/aveva-diagram-style/pkg/graph"
)

// Format is a graph file encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Read decodes a document of any supported shape, fenced or not.
func Read(r io.Reader) (graph.Graph, Shape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return graph.Graph{}, ShapeUnknown, fmt.Errorf("read: %w", err)
	}
	return Parse(string(data))
}

// ImportFile reads the graph at path.
func ImportFile(path string) (graph.Graph, Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return graph.Graph{}, ShapeUnknown, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, shape, err := Read(f)
	if err != nil {
		return graph.Graph{}, shape, fmt.Errorf("%s: %w", path, err)
	}
	return g, shape, nil
}

// Write encodes g in the canonical shape.
func Write(g graph.Graph, w io.Writer, format Format) error {
	if g.Version == 0 {
		g.Version = graph.Version
	}
	if format != FormatYAML {
		return graph.WriteGraph(g, w)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Marshal encodes g in the canonical shape.
func Marshal(g graph.Graph, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile writes g to path, choosing the encoding from the extension.
func ExportFile(g graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
