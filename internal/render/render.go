package render

// render.go: per-locale Markdown catalog pages.
//
// Rendering is split the same way as the exports:
//   Generate     pure, returns a Bundle of page path -> content
//   WriteBundle  writes the pages in sorted path order
//
// Templates live in templates/ and are compiled into the binary. They get
// a pre-shaped Data value and a FuncMap of formatters; all lookups
// (metadata, names, translations) happen before or through those funcs.

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"steinschliff/internal/format"
	"steinschliff/internal/i18n"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const mainTemplate = "readme.md.tmpl"

// Locale describes one rendered README variant.
type Locale struct {
	Code string
	// OutputFile is where the page is written.
	OutputFile string
	// DescriptionField selects "description" or "description_ru".
	DescriptionField string
}

// DefaultLocales returns the English and Russian README variants.
func DefaultLocales(readmeEN, readmeRU string) []Locale {
	return []Locale{
		{Code: "en", OutputFile: readmeEN, DescriptionField: "description"},
		{Code: "ru", OutputFile: readmeRU, DescriptionField: "description_ru"},
	}
}

// Data is the template payload for one locale.
type Data struct {
	Countries        map[string]*pipeline.Country
	Ordered          []string
	SortBy           string
	OutputDir        string
	Language         string
	DescriptionField string
}

// BuildData shapes grouped catalog data for one locale. OutputDir is the
// absolute directory of the locale's output file; links are relative to it.
func BuildData(cd pipeline.CountriesData, sortBy string, loc Locale) (Data, error) {
	abs, err := filepath.Abs(loc.OutputFile)
	if err != nil {
		return Data{}, fmt.Errorf("resolve %s: %w", loc.OutputFile, err)
	}
	return Data{
		Countries:        cd.Countries,
		Ordered:          cd.Ordered,
		SortBy:           sortBy,
		OutputDir:        filepath.Dir(abs),
		Language:         loc.Code,
		DescriptionField: loc.DescriptionField,
	}, nil
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// Render executes the README template for data.
func Render(data Data, cat *i18n.Catalog, index map[string]string) (string, error) {
	tmpl, err := template.New(mainTemplate).
		Funcs(funcMap(data, cat, index)).
		ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse templates: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, mainTemplate, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", mainTemplate, err)
	}
	return buf.String(), nil
}

func funcMap(data Data, cat *i18n.Catalog, index map[string]string) template.FuncMap {
	return template.FuncMap{
		"T": cat.Gettext,
		"countryName": func(name string) string {
			if name == model.OtherCountry {
				return cat.Gettext(model.OtherCountry)
			}
			return name
		},
		"anchor": Anchor,
		"description": func(v any) string {
			return describe(v, data.DescriptionField)
		},
		"formatTemperature": format.TemperatureRange,
		"formatList": func(items []model.Item) string {
			return format.List(items, false)
		},
		"formatSimilars": func(items []model.Item) string {
			return format.SimilarsWithLinks(items, index, data.OutputDir)
		},
		"formatImage": func(s model.StructureInfo) string {
			return format.ImageLink(s.Images, s.Name, data.OutputDir)
		},
		"relpath": func(path string) string {
			return format.URLEncodePath(format.RelPath(path, data.OutputDir))
		},
		"phoneLink":  format.PhoneLink,
		"hasContact": func(c *model.ContactInfo) bool { return !c.IsEmpty() },
		"cell":       Cell,
	}
}

// describe picks the locale's description, falling back to the other
// language when it is empty.
func describe(v any, field string) string {
	var en, ru string
	switch x := v.(type) {
	case model.StructureInfo:
		en, ru = x.Description, x.DescriptionRU
	case *pipeline.VendorView:
		en, ru = x.Description, x.DescriptionRU
	default:
		return ""
	}
	if field == "description_ru" {
		en, ru = ru, en
	}
	if en != "" {
		return strings.TrimSpace(en)
	}
	return strings.TrimSpace(ru)
}

// Cell makes text safe inside a Markdown table cell.
func Cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

// Anchor returns the GitHub heading anchor for title: lowercased, spaces to
// hyphens, punctuation other than '-' and '_' removed.
func Anchor(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Bundle
// ---------------------------------------------------------------------------

// Bundle holds rendered pages keyed by output path.
type Bundle struct {
	pages map[string]string
}

// Paths returns the page paths in sorted order.
func (b *Bundle) Paths() []string {
	paths := make([]string, 0, len(b.pages))
	for p := range b.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Page returns the content rendered for path.
func (b *Bundle) Page(path string) (string, bool) {
	c, ok := b.pages[path]
	return c, ok
}

// Generate renders every locale. No files are written.
func Generate(cd pipeline.CountriesData, sortBy string, locales []Locale, index map[string]string) (*Bundle, error) {
	pages := make(map[string]string, len(locales))
	for _, loc := range locales {
		data, err := BuildData(cd, sortBy, loc)
		if err != nil {
			return nil, err
		}
		content, err := Render(data, i18n.Load(loc.Code), index)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", loc.Code, err)
		}
		pages[loc.OutputFile] = content
	}
	return &Bundle{pages: pages}, nil
}

// WriteBundle writes all pages, in sorted path order.
func WriteBundle(b *Bundle) error {
	for _, p := range b.Paths() {
		if err := writePage(p, b.pages[p]); err != nil {
			return err
		}
	}
	return nil
}

func writePage(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
