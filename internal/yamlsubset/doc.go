// Package yamlsubset parses the restricted YAML used by activity metadata
// files (info.yaml).
//
// The accepted grammar is deliberately narrower than YAML: top-level
// "key: value" pairs, "|" block scalars, the inline empty list "[]", block
// lists of scalars, and single-level mappings. There are no anchors, flow
// mappings, or deeper nesting. A general YAML decoder would accept and reject
// a different set of documents, so metadata files are never routed through
// one.
package yamlsubset
