// Package loader reads catalog YAML documents and classifies them.
//
// Every document ends in exactly one of three states:
//
//	FullyValid      schema checks passed; values are normalized
//	PartiallyValid  schema checks failed but the document is still usable
//	Rejected        unreadable, unparsable or missing required fields
//
// Product documents are only partially accepted when both `name` and
// `description` are present. Vendor metadata (_meta.yaml) is never rejected
// once it parses: broken fields are dropped and the rest is kept.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"steinschliff/internal/logger"
	"steinschliff/internal/model"
)

// MetaFile is the per-vendor metadata file name.
const MetaFile = "_meta.yaml"

// Status is the validation outcome of one document.
type Status int

const (
	Rejected Status = iota
	PartiallyValid
	FullyValid
)

func (s Status) String() string {
	switch s {
	case FullyValid:
		return "valid"
	case PartiallyValid:
		return "partial"
	default:
		return "rejected"
	}
}

// KeySet is the condition vocabulary used to check `condition` values.
// *conditions.Registry satisfies it.
type KeySet interface {
	IsValid(key string) bool
	ValidKeys() []string
}

// Result is the tagged outcome of ReadFile.
type Result struct {
	Path   string
	Status Status
	// Doc is the normalized mapping (FullyValid) or the raw mapping
	// (PartiallyValid). Nil when Rejected or for metadata files.
	Doc map[string]any
	// Meta is set for _meta.yaml documents that parsed.
	Meta        *model.ServiceMetadata
	Diagnostics Diagnostics
	// Reason explains a rejection.
	Reason string
}

// Usable reports whether the document should be processed further.
func (r Result) Usable() bool { return r.Status != Rejected }

// IsMeta reports whether path names a vendor metadata file.
func IsMeta(path string) bool { return filepath.Base(path) == MetaFile }

// ReadFile loads one YAML document and validates it against the product or
// metadata schema, chosen by file name. It never returns an error: problems
// are logged and encoded in the Result.
func ReadFile(path string, keys KeySet) Result {
	res := Result{Path: path}

	raw, err := parseFile(path)
	if err != nil {
		logger.Error("%s: %v", path, err)
		res.Reason = err.Error()
		return res
	}

	if IsMeta(path) {
		return readMeta(res, raw)
	}
	return readStructure(res, raw, keys)
}

// parseFile reads path and returns its top-level mapping. An empty
// document yields an empty mapping.
func parseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return map[string]any{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return map[string]any{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document must be a mapping, got %s", kindName(root))
	}
	raw := map[string]any{}
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	return raw, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar " + n.Tag
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

func readStructure(res Result, raw map[string]any, keys KeySet) Result {
	doc, diags := validateStructure(raw, keys)
	res.Diagnostics = diags
	if diags.Empty() {
		res.Status = FullyValid
		res.Doc = doc
		return res
	}

	for _, d := range diags {
		logger.Warn("%s: %s", res.Path, d)
	}

	_, hasName := raw["name"]
	_, hasDesc := raw["description"]
	if hasName && hasDesc {
		logger.Warn("%s: partially validated, using raw document", res.Path)
		logger.Dump(res.Path, raw)
		res.Status = PartiallyValid
		res.Doc = raw
		return res
	}

	res.Reason = "required fields name and description are missing"
	logger.Error("%s: %s", res.Path, res.Reason)
	return res
}

func readMeta(res Result, raw map[string]any) Result {
	meta, diags := validateMeta(raw)
	res.Meta = meta
	res.Diagnostics = diags
	if diags.Empty() {
		res.Status = FullyValid
		return res
	}
	for _, d := range diags {
		logger.Warn("%s: %s", res.Path, d)
	}
	res.Status = PartiallyValid
	return res
}
