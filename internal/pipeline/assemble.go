// Package pipeline turns loaded YAML documents into grouped, sorted catalog
// data: load -> assemble -> group by country -> sort.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"steinschliff/internal/model"
)

// VendorKey returns the document's parent directory relative to root in
// forward-slash form, or "main" when the document sits directly in root.
func VendorKey(filePath, root string) string {
	dir := filepath.Dir(filePath)
	rel, err := filepath.Rel(root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = dir
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return model.MainVendor
	}
	return rel
}

// Assemble converts one accepted document into a StructureInfo and returns
// it with its vendor key. Values are coerced leniently so partially valid
// documents still assemble.
func Assemble(raw map[string]any, filePath, root string) (string, model.StructureInfo) {
	name := scalarString(raw["name"])
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	s := model.StructureInfo{
		Name:          name,
		Description:   scalarString(raw["description"]),
		DescriptionRU: scalarString(raw["description_ru"]),
		SnowType:      snowType(raw["snow_type"]),
		Temperature:   temperature(raw["temperature"]),
		Condition:     scalarString(raw["condition"]),
		Service:       service(raw["service"]),
		Country:       scalarString(raw["country"]),
		Tags:          items(raw["tags"]),
		Similars:      items(raw["similars"]),
		Features:      items(raw["features"]),
		Images:        images(raw["images"]),
		FilePath:      filePath,
	}
	return VendorKey(filePath, root), s
}

// ---------------------------------------------------------------------------
// Coercion helpers
// ---------------------------------------------------------------------------

// scalarString stringifies YAML scalars. Null, lists and mappings give "".
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func toItem(v any) model.Item {
	switch x := v.(type) {
	case nil:
		return model.NullItem()
	case int:
		return model.IntItem(int64(x))
	case int64:
		return model.IntItem(x)
	default:
		return model.StringItem(scalarString(x))
	}
}

// items converts a list into Items. A lone scalar becomes a one-item list.
func items(v any) []model.Item {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]model.Item, len(x))
		for i, e := range x {
			out[i] = toItem(e)
		}
		return out
	case map[string]any:
		return nil
	default:
		return []model.Item{toItem(x)}
	}
}

// snowType joins list entries with ", ", keeping empty strings and dropping
// nulls. A scalar is stringified.
func snowType(v any) string {
	list, ok := v.([]any)
	if !ok {
		return scalarString(v)
	}
	parts := make([]string, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		parts = append(parts, scalarString(e))
	}
	return strings.Join(parts, ", ")
}

func service(v any) model.Service {
	if m, ok := v.(map[string]any); ok {
		return model.Service{Name: scalarString(m["name"])}
	}
	return model.Service{Name: scalarString(v)}
}

func images(v any) []string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := scalarString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// temperature converts a list of {min, max} mappings. Bounds that are not
// numbers become nil. Non-mapping entries become empty ranges.
func temperature(v any) []model.TemperatureRange {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]model.TemperatureRange, 0, len(list))
	for _, e := range list {
		m, _ := e.(map[string]any)
		out = append(out, model.TemperatureRange{Min: number(m["min"]), Max: number(m["max"])})
	}
	return out
}

func number(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}
