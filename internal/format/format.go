// Package format renders catalog values as display strings shared by the
// Markdown, CSV and console outputs.
package format

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"steinschliff/internal/model"
)

// ---------------------------------------------------------------------------
// Temperature
// ---------------------------------------------------------------------------

// TemperatureRange renders the first range as "<max> °C … <min> °C", warm
// edge first. Negative values use the typographic minus, positive values
// get a plus sign. Empty when there is no range or a bound is missing.
func TemperatureRange(ranges []model.TemperatureRange) string {
	if len(ranges) == 0 {
		return ""
	}
	r := ranges[0]
	if r.Min == nil || r.Max == nil {
		return ""
	}
	return Degrees(*r.Max) + " °C … " + Degrees(*r.Min) + " °C"
}

// Degrees renders one temperature value without the unit.
func Degrees(v float64) string {
	var s string
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s = strconv.FormatInt(int64(v), 10)
	} else {
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	switch {
	case strings.HasPrefix(s, "-"):
		return "–" + s[1:]
	case v > 0:
		return "+" + s
	default:
		return s
	}
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

// List joins items with ", ". Nulls are always dropped; blank strings are
// dropped unless allowEmpty is set.
func List(items []model.Item, allowEmpty bool) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsNull() {
			continue
		}
		if !allowEmpty && it.IsBlank() {
			continue
		}
		parts = append(parts, it.Value)
	}
	return strings.Join(parts, ", ")
}

// SimilarsWithLinks joins similar-structure names, linking each name found
// in index (name -> YAML path) relative to outDir.
func SimilarsWithLinks(items []model.Item, index map[string]string, outDir string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsBlank() {
			continue
		}
		if path, ok := index[it.Value]; ok && path != "" {
			parts = append(parts, "["+it.Value+"]("+URLEncodePath(RelPath(path, outDir))+")")
			continue
		}
		parts = append(parts, it.Value)
	}
	return strings.Join(parts, ", ")
}

// ---------------------------------------------------------------------------
// Links
// ---------------------------------------------------------------------------

// ImageLink renders the first image as a Markdown image with name as alt
// text. Relative image paths are used as written; absolute ones are made
// relative to outDir.
func ImageLink(images []string, name, outDir string) string {
	if len(images) == 0 || images[0] == "" {
		return ""
	}
	path := images[0]
	if filepath.IsAbs(path) {
		path = RelPath(path, outDir)
	}
	return "![" + name + "](" + URLEncodePath(filepath.ToSlash(path)) + ")"
}

// PhoneLink renders a tel: link.
func PhoneLink(phone string) string {
	return "[" + phone + "](tel:" + phone + ")"
}

// RelPath returns path relative to dir in forward-slash form. Both are
// resolved to absolute paths first; on failure path is returned unchanged.
func RelPath(path, dir string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// URLEncodePath percent-encodes a path for use in a Markdown link while
// keeping "/" separators. Unreserved characters (RFC 3986) pass through.
func URLEncodePath(p string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
