package conditions

// registry.go: snow-condition vocabulary loaded from snow_conditions/*.yaml.
//
// A Registry is built once and never mutated. It answers three questions:
//   - which canonical keys are valid
//   - what metadata belongs to a key
//   - which canonical key a free-text or localized input refers to
//
// A nil *Registry behaves like an empty one.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"steinschliff/internal/logger"
	"steinschliff/internal/model"
)

// DefaultKeys is the vocabulary used when no condition files are available.
var DefaultKeys = []string{"red", "blue", "violet", "orange", "green", "yellow", "pink", "brown"}

// colorNamesRU maps Russian colour names to canonical keys.
var colorNamesRU = map[string]string{
	"красный":    "red",
	"синий":      "blue",
	"фиолетовый": "violet",
	"оранжевый":  "orange",
	"зелёный":    "green",
	"зеленый":    "green",
	"жёлтый":     "yellow",
	"желтый":     "yellow",
	"розовый":    "pink",
	"коричневый": "brown",
}

// Registry is an immutable snow-condition vocabulary.
type Registry struct {
	conditions map[string]*model.SnowCondition
	lookup     map[string]string
}

// New builds a registry from already decoded conditions. Entries with an
// empty key are ignored; later duplicates replace earlier ones.
func New(conds []model.SnowCondition) *Registry {
	r := &Registry{conditions: make(map[string]*model.SnowCondition, len(conds))}
	for i := range conds {
		c := conds[i]
		key := fold(c.Key)
		if key == "" {
			continue
		}
		c.Key = key
		r.conditions[key] = &c
	}
	r.lookup = r.buildLookup()
	return r
}

// Load reads every <dir>/*.yaml file. A missing directory yields an empty
// registry. Unreadable or non-mapping files are skipped with a warning.
func Load(dir string) (*Registry, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}
	var conds []model.SnowCondition
	for _, path := range files {
		c, err := decodeFile(path)
		if err != nil {
			logger.Warn("skipping snow condition %s: %v", path, err)
			continue
		}
		conds = append(conds, *c)
	}
	return New(conds), nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ValidKeys returns the sorted canonical keys, or DefaultKeys when the
// registry holds no conditions.
func (r *Registry) ValidKeys() []string {
	if r == nil || len(r.conditions) == 0 {
		return append([]string(nil), DefaultKeys...)
	}
	keys := make([]string, 0, len(r.conditions))
	for k := range r.conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsValid reports whether key is one of ValidKeys.
func (r *Registry) IsValid(key string) bool {
	key = fold(key)
	for _, k := range r.ValidKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Info returns the metadata for key. Empty or unknown keys report false.
func (r *Registry) Info(key string) (*model.SnowCondition, bool) {
	if r == nil || key == "" {
		return nil, false
	}
	c, ok := r.conditions[fold(key)]
	return c, ok
}

// NameRU returns the Russian display name for key, if one is set.
func (r *Registry) NameRU(key string) (string, bool) {
	c, ok := r.Info(key)
	if !ok || c.NameRU == "" {
		return "", false
	}
	return c.NameRU, true
}

// Len returns the number of loaded conditions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.conditions)
}

// Normalize maps free text to a canonical key. Input is trimmed, lowercased
// and NFC-normalized; unknown input is returned in that folded form.
func (r *Registry) Normalize(input string) string {
	s := fold(input)
	if s == "" {
		return ""
	}
	if r == nil {
		r = New(nil)
	}
	if key, ok := r.lookup[s]; ok {
		return key
	}
	return s
}

// ---------------------------------------------------------------------------
// Lookup table
// ---------------------------------------------------------------------------

func (r *Registry) buildLookup() map[string]string {
	lookup := make(map[string]string)
	for ru, key := range colorNamesRU {
		lookup[fold(ru)] = key
	}
	for _, key := range r.ValidKeys() {
		lookup[key] = key
	}

	keys := make([]string, 0, len(r.conditions))
	for k := range r.conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := r.conditions[key]
		for _, v := range []string{c.Name, c.NameRU} {
			if s := fold(v); s != "" {
				lookup[s] = key
			}
		}
		for _, list := range [][]string{c.Synonyms, c.SynonymsRU} {
			for _, v := range list {
				if s := fold(v); s != "" {
					lookup[s] = key
				}
			}
		}
	}
	return lookup
}

func fold(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// ---------------------------------------------------------------------------
// File access
// ---------------------------------------------------------------------------

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snow conditions dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// decodeFile reads one condition file. The key falls back to the file
// stem. A document that does not decode into SnowCondition still yields
// its key, names and synonyms.
func decodeFile(path string) (*model.SnowCondition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var c model.SnowCondition
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("root is not a mapping")
		}
		if err := root.Decode(&c); err != nil {
			c = lenientDecode(root)
		}
	}
	if strings.TrimSpace(c.Key) == "" {
		c.Key = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	c.Key = fold(c.Key)
	if c.Key == "" {
		return nil, fmt.Errorf("empty key")
	}
	return &c, nil
}

func lenientDecode(root *yaml.Node) model.SnowCondition {
	var raw map[string]any
	_ = root.Decode(&raw)
	str := func(k string) string {
		if v, ok := raw[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}
	list := func(k string) []string {
		items, _ := raw[k].([]any)
		var out []string
		for _, v := range items {
			if v != nil {
				out = append(out, fmt.Sprint(v))
			}
		}
		return out
	}
	return model.SnowCondition{
		Key:           str("key"),
		Name:          str("name"),
		NameRU:        str("name_ru"),
		Color:         str("color"),
		Description:   str("description"),
		DescriptionRU: str("description_ru"),
		Synonyms:      list("synonyms"),
		SynonymsRU:    list("synonyms_ru"),
	}
}
