package loader

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"steinschliff/internal/model"
)

// ---------------------------------------------------------------------------
// Value predicates over yaml.v3 decoded values
// ---------------------------------------------------------------------------

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isInt(v any) bool {
	switch v.(type) {
	case int, int64, uint64:
		return true
	}
	return false
}

// toFloat accepts YAML numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ---------------------------------------------------------------------------
// Field checks
// ---------------------------------------------------------------------------

// optString: string or null.
func optString(raw map[string]any, field string, d *Diagnostics) {
	v, ok := raw[field]
	if !ok || v == nil || isString(v) {
		return
	}
	d.add(CodeType, field, "expected string, got %s", typeName(v))
}

// itemList: null or list of string|int|null.
func itemList(raw map[string]any, field string, d *Diagnostics) {
	v, ok := raw[field]
	if !ok || v == nil {
		return
	}
	list, isList := v.([]any)
	if !isList {
		d.add(CodeType, field, "expected list, got %s", typeName(v))
		return
	}
	for i, item := range list {
		if item == nil || isString(item) || isInt(item) {
			continue
		}
		d.add(CodeType, fmt.Sprintf("%s.%d", field, i), "expected string or int, got %s", typeName(item))
	}
}

// ---------------------------------------------------------------------------
// Product schema
// ---------------------------------------------------------------------------

var structureStrings = []string{"description_ru", "manufactory", "author", "country"}

var structureLists = []string{"tags", "similars", "features"}

// validateStructure checks raw against the product schema. On success it
// returns a normalized copy: condition folded to its key, temperature
// bounds coerced to float64.
func validateStructure(raw map[string]any, keys KeySet) (map[string]any, Diagnostics) {
	var d Diagnostics
	doc := maps.Clone(raw)

	// name: string | int, required.
	if v, ok := raw["name"]; !ok {
		d.add(CodeMissing, "name", "field required")
	} else if !isString(v) && !isInt(v) {
		d.add(CodeType, "name", "expected string or int, got %s", typeName(v))
	}

	// description: string | null, key required.
	if _, ok := raw["description"]; !ok {
		d.add(CodeMissing, "description", "field required")
	} else {
		optString(raw, "description", &d)
	}

	for _, f := range structureStrings {
		optString(raw, f, &d)
	}
	for _, f := range structureLists {
		itemList(raw, f, &d)
	}

	// snow_type: list[string|int|null] | string | null.
	if v, ok := raw["snow_type"]; ok && v != nil && !isString(v) {
		itemList(raw, "snow_type", &d)
	}

	if temps, ok := validateTemperature(raw["temperature"], &d); ok {
		if temps != nil {
			doc["temperature"] = temps
		}
	}

	doc["condition"] = validateCondition(raw, keys, &d)

	// service: mapping with optional string name, or null.
	if v, ok := raw["service"]; ok && v != nil {
		m, isMap := v.(map[string]any)
		if !isMap {
			d.add(CodeType, "service", "expected mapping, got %s", typeName(v))
		} else if name, ok := m["name"]; ok && name != nil && !isString(name) {
			d.add(CodeType, "service.name", "expected string, got %s", typeName(name))
		}
	}

	// images: list[string] | null.
	if v, ok := raw["images"]; ok && v != nil {
		list, isList := v.([]any)
		if !isList {
			d.add(CodeType, "images", "expected list, got %s", typeName(v))
		} else {
			for i, item := range list {
				if !isString(item) {
					d.add(CodeType, fmt.Sprintf("images.%d", i), "expected string, got %s", typeName(item))
				}
			}
		}
	}

	if !d.Empty() {
		return nil, d
	}
	return doc, nil
}

// validateTemperature checks a list of {min, max} mappings. Both bounds are
// required and must be numeric. Returns the coerced list.
func validateTemperature(v any, d *Diagnostics) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	list, ok := v.([]any)
	if !ok {
		d.add(CodeType, "temperature", "expected list, got %s", typeName(v))
		return nil, false
	}
	out := make([]any, 0, len(list))
	valid := true
	for i, item := range list {
		m, isMap := item.(map[string]any)
		if !isMap {
			d.add(CodeType, fmt.Sprintf("temperature.%d", i), "expected mapping, got %s", typeName(item))
			valid = false
			continue
		}
		coerced := maps.Clone(m)
		for _, bound := range []string{"min", "max"} {
			field := fmt.Sprintf("temperature.%d.%s", i, bound)
			bv, present := m[bound]
			if !present {
				d.add(CodeMissing, field, "field required")
				valid = false
				continue
			}
			f, isNum := toFloat(bv)
			if !isNum {
				d.add(CodeType, field, "expected number, got %s", typeName(bv))
				valid = false
				continue
			}
			coerced[bound] = f
		}
		out = append(out, coerced)
	}
	return out, valid
}

// validateCondition returns the folded condition key, or "" when absent.
func validateCondition(raw map[string]any, keys KeySet, d *Diagnostics) string {
	v, ok := raw["condition"]
	if !ok || v == nil {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		d.add(CodeType, "condition", "expected string, got %s", typeName(v))
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ""
	}
	if keys != nil && !keys.IsValid(key) {
		d.add(CodeCondition, "condition", "condition must be one of %s, got %q",
			strings.Join(keys.ValidKeys(), ", "), s)
	}
	return key
}

// ---------------------------------------------------------------------------
// Vendor metadata schema
// ---------------------------------------------------------------------------

// validateMeta decodes the well-typed metadata fields and reports the rest.
// The returned metadata is never nil.
func validateMeta(raw map[string]any) (*model.ServiceMetadata, Diagnostics) {
	var d Diagnostics
	meta := &model.ServiceMetadata{}

	if len(raw) == 0 {
		d.add(CodeEmpty, "", "metadata file is empty")
		return meta, d
	}

	str := func(field string, dst *string) {
		v, ok := raw[field]
		if !ok || v == nil {
			return
		}
		s, isStr := v.(string)
		if !isStr {
			d.add(CodeType, field, "expected string, got %s", typeName(v))
			return
		}
		*dst = s
	}
	str("name", &meta.Name)
	str("description", &meta.Description)
	str("description_ru", &meta.DescriptionRU)
	str("website_url", &meta.WebsiteURL)
	str("video_url", &meta.VideoURL)
	str("country", &meta.Country)
	str("city", &meta.City)

	if v, ok := raw["contact"]; ok && v != nil {
		if m, isMap := v.(map[string]any); isMap {
			meta.Contact = decodeContact(m, &d)
		} else {
			d.add(CodeType, "contact", "expected mapping, got %s", typeName(v))
		}
	}

	extra := map[string]any{}
	for k, v := range raw {
		switch k {
		case "name", "description", "description_ru", "website_url", "video_url", "country", "city", "contact":
		default:
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		meta.Extra = extra
	}
	return meta, d
}

func decodeContact(m map[string]any, d *Diagnostics) *model.ContactInfo {
	c := &model.ContactInfo{}
	str := func(field string, dst *string) {
		v, ok := m[field]
		if !ok || v == nil {
			return
		}
		s, isStr := v.(string)
		if !isStr {
			d.add(CodeType, "contact."+field, "expected string, got %s", typeName(v))
			return
		}
		*dst = s
	}
	str("email", &c.Email)
	str("telegram", &c.Telegram)
	str("address", &c.Address)

	if v, ok := m["phones"]; ok && v != nil {
		list, isList := v.([]any)
		if !isList {
			d.add(CodeType, "contact.phones", "expected list, got %s", typeName(v))
		} else {
			for i, p := range list {
				s, isStr := p.(string)
				if !isStr {
					d.add(CodeType, fmt.Sprintf("contact.phones.%d", i), "expected string, got %s", typeName(p))
					continue
				}
				c.Phones = append(c.Phones, s)
			}
		}
	}
	return c
}
