package conditions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/model"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "blue.yaml", `
key: blue
name: Blue
name_ru: Синий
color: "#0000ff"
temperature:
  - min: -12
    max: -4
synonyms: [cold fresh]
synonyms_ru: [холодный свежий]
`)
	writeFile(t, dir, "green.yaml", `
name: Green
name_ru: Зелёный мороз
synonyms_ru: [очень холодно]
any_temperature: false
`)
	writeFile(t, dir, "red.yaml", `
key: RED
name: Red
name_ru: Красный
temperature:
  - min: "warm"
    max: 5
`)
	writeFile(t, dir, "broken.yaml", "key: [unterminated\n")
	writeFile(t, dir, "list.yaml", "- a\n- b\n")
	writeFile(t, dir, "notes.txt", "ignored")
	return dir
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_MissingDirFallsBackToDefaults(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, []string{"red", "blue", "violet", "orange", "green", "yellow", "pink", "brown"}, r.ValidKeys())
}

func TestLoad_KeysFromFieldOrStem(t *testing.T) {
	r, err := Load(fixtureDir(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"blue", "green", "red"}, r.ValidKeys())

	green, ok := r.Info("green")
	require.True(t, ok)
	assert.Equal(t, "Green", green.Name)
	assert.Equal(t, false, green.Extra["any_temperature"])
}

func TestLoad_LenientDecodeKeepsNames(t *testing.T) {
	r, err := Load(fixtureDir(t))
	require.NoError(t, err)

	name, ok := r.NameRU("red")
	require.True(t, ok)
	assert.Equal(t, "Красный", name)
}

func TestInfo_EmptyOrUnknown(t *testing.T) {
	r, err := Load(fixtureDir(t))
	require.NoError(t, err)

	_, ok := r.Info("")
	assert.False(t, ok)
	_, ok = r.Info("violet")
	assert.False(t, ok)

	var nilRegistry *Registry
	_, ok = nilRegistry.Info("blue")
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	r, err := Load(fixtureDir(t))
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"blue", "blue"},
		{"  BLUE ", "blue"},
		{"Синий", "blue"},
		{"Cold Fresh", "blue"},
		{"холодный свежий", "blue"},
		{"Зелёный", "green"},
		{"зеленый", "green"},
		{"желтый", "yellow"},
		{"Жёлтый", "yellow"},
		{"Зелёный мороз", "green"},
		{"коричневый", "brown"},
		{"UnknownValue", "unknownvalue"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Normalize(tt.in), tt.in)
	}
}

func TestNormalize_DecomposedInput(t *testing.T) {
	r := New(nil)
	// "зелёный" with a combining diaeresis instead of the precomposed letter.
	assert.Equal(t, "green", r.Normalize("зеле\u0308ный"))
}

func TestNormalize_RoundTrip(t *testing.T) {
	r, err := Load(fixtureDir(t))
	require.NoError(t, err)

	for _, key := range r.ValidKeys() {
		assert.Equal(t, key, r.Normalize(key))
		if nameRU, ok := r.NameRU(key); ok {
			assert.Equal(t, key, r.Normalize(nameRU), nameRU)
		}
	}
}

func TestNormalize_RoundTripDefaults(t *testing.T) {
	r := New(nil)
	for _, key := range r.ValidKeys() {
		assert.Equal(t, key, r.Normalize(key))
	}
}

func TestNew_SkipsEmptyKeys(t *testing.T) {
	r := New([]model.SnowCondition{{Key: " "}, {Key: "Pink", NameRU: "Розовый"}})
	assert.Equal(t, []string{"pink"}, r.ValidKeys())
	assert.True(t, r.IsValid("PINK"))
	assert.False(t, r.IsValid("red"))
}

// ---------------------------------------------------------------------------
// Suggest
// ---------------------------------------------------------------------------

func TestSuggest(t *testing.T) {
	r := New(nil)
	assert.Equal(t, []string{"blue"}, r.Suggest("bleu"))
	assert.Contains(t, r.Suggest("синиий"), "blue")
	assert.Empty(t, r.Suggest("completely different"))
	assert.Nil(t, r.Suggest(""))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 3, levenshtein("", "abc"))
	assert.Equal(t, 1, levenshtein("синий", "синии"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	rep, err := Check(fixtureDir(t))
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Files)
	assert.Equal(t, 1, rep.Valid)

	byFile := map[string][]Problem{}
	for _, p := range rep.Problems {
		byFile[p.File] = append(byFile[p.File], p)
	}
	assert.Contains(t, byFile, "broken.yaml")
	assert.Contains(t, byFile, "list.yaml")
	assert.Contains(t, byFile, "red.yaml")
	require.Contains(t, byFile, "green.yaml")
	assert.Equal(t, "key", byFile["green.yaml"][0].Field)
	assert.NotContains(t, byFile, "blue.yaml")
}
