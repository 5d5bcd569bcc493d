package site

// site.go: renders the catalog as a Jekyll site.
//
// Site layout:
//   index.md                 Russian catalog page
//   en/index.md              English catalog page
//   _config.yml              created when absent; theme: lines stripped otherwise
//   _layouts/default.html    created when absent
//   assets/style.css         created when absent
//
// Catalog pages are regenerated on every run; scaffold files are never
// overwritten so a hand-edited site keeps its customizations.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"steinschliff/internal/frontmatter"
	"steinschliff/internal/logger"
	"steinschliff/internal/pipeline"
	"steinschliff/internal/render"
)

// Page is the front matter of a catalog page.
type Page struct {
	Layout string `yaml:"layout"`
	Title  string `yaml:"title"`
	Lang   string `yaml:"lang"`
}

var pageTitles = map[string]string{
	"ru": "Steinschliff: каталог структур",
	"en": "Steinschliff: structures catalog",
}

const defaultConfig = `title: Steinschliff
description: Catalog of ski grinding structures
markdown: kramdown
plugins:
  - jekyll-seo-tag
url: https://example.com
baseurl: ''
exclude:
  - vendor
`

const defaultLayout = `<!DOCTYPE html>
<html lang="{{ page.lang | default: 'ru' }}">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{ page.title | default: site.title }}</title>
    {%- seo -%}
    <link rel="stylesheet" href="{{ '/assets/style.css' | relative_url }}" />
  </head>
  <body>
    <main class="container">{{ content }}</main>
  </body>
</html>
`

const defaultCSS = `body { font-family: -apple-system, system-ui, Segoe UI, Roboto, Ubuntu, Cantarell, Noto Sans, Arial, sans-serif;
       line-height: 1.6; margin: 0; padding: 0; }
.container { max-width: 1100px; margin: 0 auto; padding: 24px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; vertical-align: top; }
th { background: #f5f5f5; text-align: left; }
img { max-width: 240px; height: auto; }
`

// Locales returns the page variants for a site rooted at dir.
func Locales(dir string) []render.Locale {
	return render.DefaultLocales(
		filepath.Join(dir, "en", "index.md"),
		filepath.Join(dir, "index.md"),
	)
}

// EnsureScaffold creates the Jekyll skeleton under dir. Existing files are
// left alone except _config.yml, which loses any theme: line.
func EnsureScaffold(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, "_config.yml")
	created, err := writeIfAbsent(cfgPath, defaultConfig)
	if err != nil {
		return err
	}
	if !created {
		if err := stripTheme(cfgPath); err != nil {
			return err
		}
	}

	if _, err := writeIfAbsent(filepath.Join(dir, "_layouts", "default.html"), defaultLayout); err != nil {
		return err
	}
	if _, err := writeIfAbsent(filepath.Join(dir, "assets", "style.css"), defaultCSS); err != nil {
		return err
	}
	return nil
}

// Build renders the catalog pages into dir and returns the written paths.
func Build(dir string, cd pipeline.CountriesData, sortBy string, index map[string]string) ([]string, error) {
	if err := EnsureScaffold(dir); err != nil {
		return nil, err
	}

	locales := Locales(dir)
	bundle, err := render.Generate(cd, sortBy, locales, index)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, loc := range locales {
		content, _ := bundle.Page(loc.OutputFile)
		page := Page{Layout: "default", Title: pageTitles[loc.Code], Lang: loc.Code}
		data, err := frontmatter.Prepend(page, []byte(content))
		if err != nil {
			return nil, fmt.Errorf("front matter for %s: %w", loc.OutputFile, err)
		}
		if err := writeFile(loc.OutputFile, data); err != nil {
			return nil, err
		}
		logger.Debug("wrote %s", loc.OutputFile)
		written = append(written, loc.OutputFile)
	}
	return written, nil
}

// ---------------------------------------------------------------------------
// File helpers
// ---------------------------------------------------------------------------

// stripTheme drops theme: lines from a Jekyll config. The file is only
// rewritten when something was removed.
func stripTheme(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	kept := lines[:0:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "theme:") {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == len(lines) {
		return nil
	}
	logger.Info("removed theme from %s", path)
	return writeFile(path, []byte(strings.Join(kept, "\n")+"\n"))
}

func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := writeFile(path, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
