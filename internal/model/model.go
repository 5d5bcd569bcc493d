package model

// model.go: catalog entities shared by every stage of the pipeline.
//
// Entities are rebuilt from the YAML tree on every run:
//   StructureInfo    one grinding structure (one product YAML file)
//   ServiceMetadata  one vendor, from <vendor>/_meta.yaml
//   SnowCondition    one entry of the controlled condition vocabulary
//
// Structs are strict; unanticipated YAML keys land in Extra.

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MainVendor is the vendor key used for documents sitting directly in the
// catalog root.
const MainVendor = "main"

// OtherCountry is the bucket for vendors without a known country.
const OtherCountry = "Other"

// HomeCountry is always listed first in country ordering.
const HomeCountry = "Россия"

// ---------------------------------------------------------------------------
// List items
// ---------------------------------------------------------------------------

// ItemKind records which YAML scalar type a list entry came from.
type ItemKind int

const (
	ItemNull ItemKind = iota
	ItemString
	ItemInt
)

// Item is one entry of a YAML list that may mix strings, integers and nulls
// (tags, similars, features, snow_type).
type Item struct {
	Kind  ItemKind
	Value string
}

// StringItem returns a string item.
func StringItem(s string) Item { return Item{Kind: ItemString, Value: s} }

// IntItem returns an integer item.
func IntItem(n int64) Item { return Item{Kind: ItemInt, Value: strconv.FormatInt(n, 10)} }

// NullItem returns a null item.
func NullItem() Item { return Item{Kind: ItemNull} }

// Items builds string items; handy in tests and literals.
func Items(values ...string) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = StringItem(v)
	}
	return out
}

// IsNull reports whether the entry was a YAML null.
func (i Item) IsNull() bool { return i.Kind == ItemNull }

// IsBlank reports whether the entry is null or whitespace-only.
func (i Item) IsBlank() bool { return i.Kind == ItemNull || strings.TrimSpace(i.Value) == "" }

func (i Item) String() string { return i.Value }

// MarshalJSON keeps integers as JSON numbers and nulls as null.
func (i Item) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case ItemNull:
		return []byte("null"), nil
	case ItemInt:
		return []byte(i.Value), nil
	default:
		return json.Marshal(i.Value)
	}
}

// NonBlank returns items with null and blank entries dropped. Never nil.
func NonBlank(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.IsBlank() {
			out = append(out, it)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Temperature
// ---------------------------------------------------------------------------

// TemperatureRange is one {min, max} snow temperature band in °C.
// Nil bounds mean the value was absent or not a number.
type TemperatureRange struct {
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`
}

// Float returns a pointer to v, for building ranges.
func Float(v float64) *float64 { return &v }

// Range builds a fully populated TemperatureRange.
func Range(min, max float64) TemperatureRange {
	return TemperatureRange{Min: Float(min), Max: Float(max)}
}

// ---------------------------------------------------------------------------
// Structures
// ---------------------------------------------------------------------------

// Service is the optional `service` block of a structure document.
type Service struct {
	Name string `yaml:"name" json:"name"`
}

// StructureInfo is one normalized grinding structure ready for rendering.
// Only Temperature[0] is consumed today; further ranges are kept but inert.
type StructureInfo struct {
	Name          string
	Description   string
	DescriptionRU string
	SnowType      string
	Temperature   []TemperatureRange
	Condition     string
	Service       Service
	Country       string
	Tags          []Item
	Similars      []Item
	Features      []Item
	Images        []string
	FilePath      string
}

// FirstRange returns the first temperature range, if any.
func (s StructureInfo) FirstRange() (TemperatureRange, bool) {
	if len(s.Temperature) == 0 {
		return TemperatureRange{}, false
	}
	return s.Temperature[0], true
}

// Field returns a string attribute by its YAML name. Unknown attributes
// (e.g. "rating", which no structure carries) return "".
func (s StructureInfo) Field(name string) string {
	switch name {
	case "name":
		return s.Name
	case "country":
		return s.Country
	case "description":
		return s.Description
	case "description_ru":
		return s.DescriptionRU
	case "snow_type":
		return s.SnowType
	case "condition":
		return s.Condition
	case "file_path":
		return s.FilePath
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Vendors
// ---------------------------------------------------------------------------

// ContactInfo is the nested contact block of vendor metadata.
type ContactInfo struct {
	Email    string         `yaml:"email,omitempty"`
	Phones   []string       `yaml:"phones,omitempty"`
	Telegram string         `yaml:"telegram,omitempty"`
	Address  string         `yaml:"address,omitempty"`
	Extra    map[string]any `yaml:",inline"`
}

// IsEmpty reports whether no contact detail is set.
func (c *ContactInfo) IsEmpty() bool {
	return c == nil || (c.Email == "" && len(c.Phones) == 0 && c.Telegram == "" && c.Address == "")
}

// ServiceMetadata describes one vendor directory (from _meta.yaml).
type ServiceMetadata struct {
	Name          string         `yaml:"name,omitempty"`
	Description   string         `yaml:"description,omitempty"`
	DescriptionRU string         `yaml:"description_ru,omitempty"`
	WebsiteURL    string         `yaml:"website_url,omitempty"`
	VideoURL      string         `yaml:"video_url,omitempty"`
	Country       string         `yaml:"country,omitempty"`
	City          string         `yaml:"city,omitempty"`
	Contact       *ContactInfo   `yaml:"contact,omitempty"`
	Extra         map[string]any `yaml:",inline"`
}

// ---------------------------------------------------------------------------
// Snow conditions
// ---------------------------------------------------------------------------

// SnowCondition is one entry of the colour-coded condition vocabulary.
type SnowCondition struct {
	Key           string             `yaml:"key"`
	Name          string             `yaml:"name"`
	NameRU        string             `yaml:"name_ru"`
	Color         string             `yaml:"color"`
	Temperature   []TemperatureRange `yaml:"temperature"`
	SnowAge       []string           `yaml:"snow_age"`
	Humidity      []string           `yaml:"humidity"`
	Texture       []string           `yaml:"texture"`
	Description   string             `yaml:"description"`
	DescriptionRU string             `yaml:"description_ru"`
	Friction      string             `yaml:"friction"`
	FrictionRU    string             `yaml:"friction_ru"`
	Synonyms      []string           `yaml:"synonyms"`
	SynonymsRU    []string           `yaml:"synonyms_ru"`
	SourceURL     string             `yaml:"source_url"`
	Extra         map[string]any     `yaml:",inline"`
}
