package vendordir_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/model"
	"steinschliff/internal/vendordir"
)

func TestInitAndOpen(t *testing.T) {
	root := t.TempDir()
	meta := model.ServiceMetadata{
		Name:    "Acme Grind",
		Country: "Россия",
		Contact: &model.ContactInfo{Phones: []string{"+7 900"}},
	}

	v, err := vendordir.Init(root, "acme", meta)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "acme"), v.Dir)

	got := v.Meta()
	assert.Equal(t, "Acme Grind", got.Name)
	assert.Equal(t, "Россия", got.Country)
	require.NotNil(t, got.Contact)
	assert.Equal(t, []string{"+7 900"}, got.Contact.Phones)

	_, err = vendordir.Init(root, "acme", meta)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	opened, err := vendordir.Open(root, "acme")
	require.NoError(t, err)
	assert.Equal(t, v.Dir, opened.Dir)
}

func TestMeta_Fallbacks(t *testing.T) {
	root := t.TempDir()
	for _, key := range []string{"none", "empty", "broken"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, key), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty", "_meta.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken", "_meta.yaml"),
		[]byte("name: Broken Grind\ncountry: Россия\ncontact:\n  phones: \"+7 900\"\n"), 0o644))

	for key, want := range map[string]model.ServiceMetadata{
		"none":   {},
		"empty":  {},
		"broken": {Name: "broken"},
	} {
		v, err := vendordir.Open(root, key)
		require.NoError(t, err)
		assert.Equal(t, want, v.Meta(), key)
	}
}

func TestInit_EmptyContactOmitted(t *testing.T) {
	root := t.TempDir()
	_, err := vendordir.Init(root, "bare", model.ServiceMetadata{Name: "Bare", Contact: &model.ContactInfo{}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "bare", "_meta.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "name: Bare\n", string(data))
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"", " ", "a/b", `a\b`, ".hidden", "_meta", " pad"} {
		err := vendordir.ValidateKey(key)
		assert.Error(t, err, "key %q", key)
		assert.True(t, errors.Is(err, model.ErrInvalidInput), "key %q", key)
	}
	assert.NoError(t, vendordir.ValidateKey("fischer"))
}

func TestOpenMissing(t *testing.T) {
	_, err := vendordir.Open(t.TempDir(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestStructures(t *testing.T) {
	root := t.TempDir()
	v, err := vendordir.Init(root, "acme", model.ServiceMetadata{Name: "Acme"})
	require.NoError(t, err)
	for _, name := range []string{"b.yaml", "a.yaml", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(v.Dir, name), []byte("name: x\n"), 0o644))
	}

	files, err := v.Structures()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(v.Dir, "a.yaml"), filepath.Join(v.Dir, "b.yaml")}, files)
}

func TestList(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"zeta", "alpha", ".git", "_drafts"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), nil, 0o644))

	keys, err := vendordir.List(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, keys)

	keys, err = vendordir.List(filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMetaFromAnswers(t *testing.T) {
	qs := vendordir.MetaQuestions("fischer")
	require.Equal(t, "name", qs[0].Key)
	assert.Equal(t, "Fischer", qs[0].Default)

	meta := vendordir.MetaFromAnswers("fischer", map[string]string{
		"city":  " Москва ",
		"phone": "+7 900",
	})
	assert.Equal(t, "Fischer", meta.Name)
	assert.Equal(t, model.HomeCountry, meta.Country)
	assert.Equal(t, "Москва", meta.City)
	require.NotNil(t, meta.Contact)
	assert.Equal(t, []string{"+7 900"}, meta.Contact.Phones)

	meta = vendordir.MetaFromAnswers("x", nil)
	assert.Nil(t, meta.Contact)
}
