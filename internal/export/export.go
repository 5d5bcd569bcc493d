package export

// export.go: flat exports of the catalog, independent of the Markdown path.
//
//   json.go  array of structure records consumed by the web front end
//   csv.go   one row per structure with localized condition names
//
// Both walk vendors in load order so output is stable across runs.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"steinschliff/internal/model"
)

// Services maps vendor key to its structures.
type Services = map[string][]model.StructureInfo

// orderedVendors returns the keys of services, first in the given order and
// then any remaining keys sorted.
func orderedVendors(services Services, order []string) []string {
	out := make([]string, 0, len(services))
	seen := make(map[string]bool, len(services))
	for _, k := range order {
		if _, ok := services[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range services {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// serviceName is the display name for a structure's vendor: its own
// service name, else the vendor's metadata name, else the vendor key.
func serviceName(s model.StructureInfo, vendor string, metadata map[string]model.ServiceMetadata) string {
	if s.Service.Name != "" {
		return s.Service.Name
	}
	if m, ok := metadata[vendor]; ok && m.Name != "" {
		return m.Name
	}
	return vendor
}

// writeFile creates parent directories and writes data to path.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
