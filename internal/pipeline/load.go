package pipeline

import (
	"os"
	"path/filepath"

	"steinschliff/internal/loader"
	"steinschliff/internal/logger"
	"steinschliff/internal/model"
)

// LoadStats counts how documents fared during loading.
type LoadStats struct {
	ValidFiles          int
	WarningFiles        int
	ErrorFiles          int
	ProcessedStructures int
}

// Loaded is the result of the load+assemble step.
type Loaded struct {
	// Services maps vendor key to its structures in discovery order.
	Services map[string][]model.StructureInfo
	// VendorOrder lists vendor keys in order of first appearance.
	VendorOrder []string
	// NameToPath indexes every structure name to its YAML path. When two
	// structures share a name the later file wins.
	NameToPath map[string]string
	Stats      LoadStats
}

// LoadStructures reads and assembles every product document in files.
// Metadata files are skipped. Rejected documents are counted as errors and
// partially valid ones as warnings.
func LoadStructures(files []string, root string, keys loader.KeySet) Loaded {
	out := Loaded{
		Services:   make(map[string][]model.StructureInfo),
		NameToPath: make(map[string]string),
	}

	for _, path := range files {
		if loader.IsMeta(path) {
			continue
		}
		res := loader.ReadFile(path, keys)
		switch res.Status {
		case loader.Rejected:
			out.Stats.ErrorFiles++
			continue
		case loader.PartiallyValid:
			out.Stats.WarningFiles++
		case loader.FullyValid:
			out.Stats.ValidFiles++
		}

		vendor, s := Assemble(res.Doc, path, root)
		out.NameToPath[s.Name] = path
		if _, seen := out.Services[vendor]; !seen {
			out.VendorOrder = append(out.VendorOrder, vendor)
		}
		out.Services[vendor] = append(out.Services[vendor], s)
		out.Stats.ProcessedStructures++
	}

	logger.Info("processed %d structures (%d valid, %d partial, %d rejected)",
		out.Stats.ProcessedStructures, out.Stats.ValidFiles, out.Stats.WarningFiles, out.Stats.ErrorFiles)
	return out
}

// MetaReport lists vendors whose metadata needed a fallback.
type MetaReport struct {
	// Empty lists vendors with an empty _meta.yaml.
	Empty []string
	// Partial lists vendors whose _meta.yaml had malformed fields.
	Partial []string
	// Errors maps vendors to the reason their _meta.yaml was unusable.
	Errors map[string]string
}

// LoadServiceMetadata reads <root>/<vendor>/_meta.yaml for every vendor
// key that has one. Vendors without the file are absent from the result.
// An empty file yields zero metadata so the title falls back to the
// capitalized key. An unreadable file or one with malformed fields falls
// back to {Name: vendorKey} and drops every other field.
func LoadServiceMetadata(root string, vendorKeys []string) (map[string]model.ServiceMetadata, MetaReport) {
	meta := make(map[string]model.ServiceMetadata)
	rep := MetaReport{Errors: map[string]string{}}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Warn("metadata directory not found: %s", root)
		return meta, rep
	}

	for _, vendor := range vendorKeys {
		path := filepath.Join(root, filepath.FromSlash(vendor), loader.MetaFile)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		res := loader.ReadFile(path, nil)
		switch {
		case res.Status == loader.Rejected || res.Meta == nil:
			rep.Errors[vendor] = res.Reason
			meta[vendor] = model.ServiceMetadata{Name: vendor}
		case res.Status == loader.PartiallyValid && len(res.Diagnostics) > 0 && res.Diagnostics[0].Code == loader.CodeEmpty:
			rep.Empty = append(rep.Empty, vendor)
			meta[vendor] = model.ServiceMetadata{}
		case res.Status == loader.PartiallyValid:
			rep.Partial = append(rep.Partial, vendor)
			logger.Debug("metadata for vendor %s is invalid, using defaults", vendor)
			meta[vendor] = model.ServiceMetadata{Name: vendor}
		default:
			logger.Debug("read metadata for vendor %s", vendor)
			meta[vendor] = *res.Meta
		}
	}
	return meta, rep
}
