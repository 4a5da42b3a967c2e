// Package io reads and writes causal model files in JSON, TOML and YAML.
//
// # Overview
//
// A model file describes a semi-Markovian causal model either as a raw
// edge-code matrix or as labelled nodes and edges. Both forms decode into a
// [File]; [File.Graph] validates it and returns an [smcm.Graph] together with
// the node labels.
//
// # Matrix Form
//
//	{
//	  "labels": ["x", "z", "y"],
//	  "matrix": [
//	    [ 0,  1,  3],
//	    [-1,  0,  1],
//	    [ 3, -1,  0]
//	  ]
//	}
//
// Entries use the edge codes of [smcm.Code]. Labels are optional and
// default to v0..vN-1.
//
// # Labelled Form
//
//	nodes:
//	  - id: x
//	  - id: z
//	  - id: y
//	edges:
//	  - {from: x, to: z}
//	  - {from: z, to: y}
//	bidirected:
//	  - {a: x, b: y}
//
// An edge with "confounded: true" is both directed and confounded (code 2).
// A bidirected pair on top of a directed edge upgrades it the same way.
//
// # Formats
//
// The format is chosen from the file extension by [ImportModel] and
// [ExportModel] (.json, .toml, .yaml, .yml). [ReadModel] and [WriteModel]
// take the format explicitly.
//
// # Metadata
//
// The "meta" object is carried through untouched. The normalize command
// records the topological permutation under the "order" key.
package io
