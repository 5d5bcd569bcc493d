// Package vendordir manages vendor directories under the schliffs root.
//
// Directory layout:
//
//	<root>/<vendor>/
//	    _meta.yaml         # vendor metadata (name, country, contacts)
//	    <structure>.yaml   # one file per grinding structure
package vendordir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"steinschliff/internal/loader"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
)

// Vendor is an existing vendor directory.
type Vendor struct {
	Key string
	Dir string
}

// ValidateKey rejects keys that cannot name a vendor directory.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return model.NewUserError(model.ErrInvalidInput, "Неверный ключ", "ключ сервиса пуст")
	case key != strings.TrimSpace(key),
		strings.ContainsAny(key, `/\`),
		strings.HasPrefix(key, "."),
		strings.HasPrefix(key, "_"):
		return model.NewUserError(model.ErrInvalidInput, "Неверный ключ",
			"ключ %q не может быть именем каталога сервиса", key)
	}
	return nil
}

// Init creates <root>/<key>/ with a _meta.yaml built from meta. Errors if
// the directory already exists.
func Init(root, key string, meta model.ServiceMetadata) (*Vendor, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	dir := filepath.Join(root, key)
	if _, err := os.Stat(dir); err == nil {
		return nil, model.NewUserError(model.ErrAlreadyExists, "Сервис уже существует",
			"каталог %s уже существует", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vendor dir: %w", err)
	}
	v := &Vendor{Key: key, Dir: dir}
	if err := v.WriteMeta(meta); err != nil {
		return nil, err
	}
	return v, nil
}

// Open opens an existing vendor directory.
func Open(root, key string) (*Vendor, error) {
	dir := filepath.Join(root, key)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, model.NewUserError(model.ErrNotFound, "Сервис не найден",
			"каталог сервиса %q не найден (создайте его: steinschliff vendor init %s)", key, key)
	}
	return &Vendor{Key: key, Dir: dir}, nil
}

func (v *Vendor) metaPath() string {
	return filepath.Join(v.Dir, loader.MetaFile)
}

// WriteMeta replaces the vendor's _meta.yaml.
func (v *Vendor) WriteMeta(meta model.ServiceMetadata) error {
	if meta.Contact.IsEmpty() {
		meta.Contact = nil
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal vendor metadata: %w", err)
	}
	if err := os.WriteFile(v.metaPath(), data, 0o644); err != nil {
		return fmt.Errorf("write vendor metadata: %w", err)
	}
	return nil
}

// Meta reads the vendor's _meta.yaml with the same fallbacks as catalog
// generation. A vendor without the file has zero metadata.
func (v *Vendor) Meta() model.ServiceMetadata {
	meta, _ := pipeline.LoadServiceMetadata(filepath.Dir(v.Dir), []string{v.Key})
	return meta[v.Key]
}

// Structures returns the structure YAML files of the vendor, sorted.
func (v *Vendor) Structures() ([]string, error) {
	entries, err := os.ReadDir(v.Dir)
	if err != nil {
		return nil, fmt.Errorf("read vendor dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == loader.MetaFile {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") {
			files = append(files, filepath.Join(v.Dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// List returns the vendor keys under root, sorted. Hidden and underscore
// directories are skipped. A missing root yields no vendors.
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read schliffs dir: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		keys = append(keys, e.Name())
	}
	sort.Strings(keys)
	return keys, nil
}
