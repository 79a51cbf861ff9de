// Package io reads and writes network files in several formats.
//
// # Overview
//
// Graph files describe an undirected, optionally weighted network. The JSON,
// YAML and TOML formats share the node-link structure of pkg/graph; the
// edge list format is the plain text most graph tools can export.
//
// # Formats
//
//	.json        node-link JSON          ReadJSON / WriteJSON
//	.yaml .yml   node-link YAML          ReadYAML / WriteYAML
//	.toml        [[nodes]] / [[edges]]   ReadTOML
//	other        "u v" lines             ReadEdgeList / WriteEdgeList
//
// [Import] and [Export] pick the format from the file extension.
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - label: Display label
//   - weight: Node weight for Metcalfe and Shapley values (default 1)
//   - meta: Freeform object
//
// Edges only reference IDs. Endpoints missing from the node list are
// created with default weight, so a file may consist of edges alone.
//
// # Errors
//
// Decoding problems return *errors.Error with code INVALID_FORMAT. A
// missing file returns FILE_NOT_FOUND.
package io
