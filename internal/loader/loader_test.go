package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/conditions"
)

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var keys = conditions.New(nil)

// ---------------------------------------------------------------------------
// Product documents
// ---------------------------------------------------------------------------

func TestReadFile_FullyValid(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "s1.yaml", `
name: S1
description: Universal structure
snow_type: [fresh, "", null, 3]
temperature:
  - min: -8
    max: "1"
condition: " Blue "
service:
  name: Acme Grind
tags: [fast, null]
images: [img/s1.jpg]
custom_field: kept
`)
	res := ReadFile(path, keys)
	require.Equal(t, FullyValid, res.Status)
	assert.True(t, res.Usable())
	assert.Empty(t, res.Diagnostics)

	assert.Equal(t, "blue", res.Doc["condition"])
	assert.Equal(t, "kept", res.Doc["custom_field"])
	temps := res.Doc["temperature"].([]any)
	first := temps[0].(map[string]any)
	assert.Equal(t, -8.0, first["min"])
	assert.Equal(t, 1.0, first["max"])
}

func TestReadFile_IntegerName(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "42.yaml", "name: 42\ndescription: null\n")
	res := ReadFile(path, keys)
	assert.Equal(t, FullyValid, res.Status)
	assert.Equal(t, 42, res.Doc["name"])
}

func TestReadFile_PartialValidation(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "bad_temp.yaml", `
name: Alpha
description: Cold snow
temperature: "minus five"
`)
	res := ReadFile(path, keys)
	require.Equal(t, PartiallyValid, res.Status)
	assert.True(t, res.Usable())
	assert.Equal(t, "Alpha", res.Doc["name"])
	assert.Equal(t, "Cold snow", res.Doc["description"])
	assert.Equal(t, "minus five", res.Doc["temperature"])
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "temperature", res.Diagnostics[0].Field)
	assert.Equal(t, CodeType, res.Diagnostics[0].Code)
}

func TestReadFile_RejectedWithoutRequiredFields(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"no_desc.yaml": "name: Alpha\ntemperature: \"minus five\"\n",
		"no_name.yaml": "description: x\ntemperature: \"minus five\"\n",
		"empty.yaml":   "",
	}
	for name, content := range tests {
		res := ReadFile(writeYAML(t, dir, name, content), keys)
		assert.Equal(t, Rejected, res.Status, name)
		assert.False(t, res.Usable(), name)
		assert.Nil(t, res.Doc, name)
		assert.NotEmpty(t, res.Reason, name)
	}
}

func TestReadFile_ParseFailures(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"broken.yaml": "name: [oops\n",
		"list.yaml":   "- a\n- b\n",
		"scalar.yaml": "just text\n",
	}
	for name, content := range tests {
		res := ReadFile(writeYAML(t, dir, name, content), keys)
		assert.Equal(t, Rejected, res.Status, name)
	}

	res := ReadFile(filepath.Join(dir, "missing.yaml"), keys)
	assert.Equal(t, Rejected, res.Status)
	assert.Contains(t, res.Reason, "read")
}

func TestReadFile_UnknownCondition(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "c.yaml", "name: C\ndescription: d\ncondition: purple\n")
	res := ReadFile(path, keys)
	require.Equal(t, PartiallyValid, res.Status)
	assert.Equal(t, CodeCondition, res.Diagnostics[0].Code)
	assert.Equal(t, "purple", res.Doc["condition"])
}

func TestReadFile_ScalarServiceIsPartial(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "s.yaml", "name: S\ndescription: d\nservice: Acme\n")
	res := ReadFile(path, keys)
	assert.Equal(t, PartiallyValid, res.Status)
	assert.Equal(t, "service", res.Diagnostics[0].Field)
}

func TestReadFile_ListItemTypes(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "s.yaml", `
name: S
description: d
features: [ok, {nested: true}]
images: [a.jpg, 5]
`)
	res := ReadFile(path, keys)
	require.Equal(t, PartiallyValid, res.Status)
	fields := []string{}
	for _, d := range res.Diagnostics {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"features.1", "images.1"}, fields)
}

// ---------------------------------------------------------------------------
// Metadata documents
// ---------------------------------------------------------------------------

func TestReadFile_Meta(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "acme/_meta.yaml", `
name: Acme Grind
country: Россия
city: Москва
contact:
  email: info@acme.test
  phones: ["+7 900 000-00-00"]
founded: 1999
`)
	res := ReadFile(path, keys)
	require.Equal(t, FullyValid, res.Status)
	require.NotNil(t, res.Meta)
	assert.Equal(t, "Acme Grind", res.Meta.Name)
	assert.Equal(t, "Россия", res.Meta.Country)
	assert.Equal(t, []string{"+7 900 000-00-00"}, res.Meta.Contact.Phones)
	assert.Equal(t, 1999, res.Meta.Extra["founded"])
	assert.Nil(t, res.Doc)
}

func TestReadFile_MetaBestEffort(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "acme/_meta.yaml", `
name: Acme Grind
country: [not, a, string]
contact: "call us"
`)
	res := ReadFile(path, keys)
	require.Equal(t, PartiallyValid, res.Status)
	assert.True(t, res.Usable())
	assert.Equal(t, "Acme Grind", res.Meta.Name)
	assert.Empty(t, res.Meta.Country)
	assert.Nil(t, res.Meta.Contact)
	assert.Len(t, res.Diagnostics, 2)
}

func TestReadFile_MetaEmpty(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "acme/_meta.yaml", "")
	res := ReadFile(path, keys)
	assert.Equal(t, PartiallyValid, res.Status)
	assert.Equal(t, CodeEmpty, res.Diagnostics[0].Code)
	assert.NotNil(t, res.Meta)
}

// ---------------------------------------------------------------------------
// Discovery
// ---------------------------------------------------------------------------

func TestFindYAMLFiles(t *testing.T) {
	root := t.TempDir()
	writeYAML(t, root, "top.yaml", "")
	writeYAML(t, root, "acme/a.yaml", "")
	writeYAML(t, root, "acme/_meta.yaml", "")
	writeYAML(t, root, "acme/notes.md", "")
	writeYAML(t, root, "drafts/wip.yaml", "")
	writeYAML(t, root, "zeta/old.yaml", "")

	files, err := FindYAMLFiles(root, []string{"./drafts/**", "*/old.yaml"})
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"acme/_meta.yaml", "acme/a.yaml", "top.yaml"}, rel)
}

func TestFindYAMLFiles_MissingRoot(t *testing.T) {
	_, err := FindYAMLFiles(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"drafts/**", "drafts", true},
		{"drafts/**", "drafts/a.yaml", true},
		{"drafts/**", "drafts/x/a.yaml", true},
		{"drafts/**", "other/drafts/a.yaml", false},
		{"*.yaml", "a.yaml", true},
		{"*.yaml", "dir/a.yaml", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path), "%s ~ %s", tt.pattern, tt.path)
	}
}
