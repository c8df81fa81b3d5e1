// Package io reads and writes diagram graphs in every shape the tool accepts.
//
// # Input Shapes
//
// Producers of diagram data (people, scripts, language models) do not agree
// on one layout. [Decode] probes the structure of the document, classifies
// it as exactly one [Shape], and runs the one adapter for that shape:
//
//   - [ShapeCanonical]: top-level "lanes" with "id"/"title" and a flat
//     "nodes" array whose entries carry a "lane" field.
//   - [ShapeLaneGrouped]: "lanes" whose entries embed their own "nodes".
//   - [ShapeZoneGrouped]: "zones" with "components" and a "connections"
//     array, typical of hand-written or generated summaries.
//
// There is no fallthrough: a document that matches no probe is rejected with
// [ErrUnknownShape].
//
// # Encodings
//
// JSON and YAML are both accepted; YAML is decoded with gopkg.in/yaml.v3 and
// JSON is a subset of it. Text that wraps the document in a Markdown fence
// (```arch, ```aveva-arch, ```json or ```yaml) is unwrapped by
// [ExtractBlock] first.
//
// # Files
//
// [ImportFile] and [ExportFile] choose the encoding from the file extension:
// .yaml and .yml are YAML, anything else is JSON.
package io
