package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, filepath.Join(dir, "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
schliffs_dir = "data/schliffs"
sort = "Temperature"
log_level = "debug"
exclude = ["./drafts/**", "*.bak.yaml"]
`)
	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "data/schliffs", cfg.SchliffsDir)
	assert.Equal(t, "temperature", cfg.Sort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "README.md", cfg.ReadmeRU, "unset keys keep defaults")
	assert.Equal(t, []string{"./drafts/**", "*.bak.yaml"}, cfg.Exclude)
}

func TestLoad_BrokenTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "sort = [")
	_, err := Load(dir, "")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "readme = \"from-file.md\"\n")
	t.Setenv("STEINSCHLIFF_README_EN", "from-env.md")
	t.Setenv("STEINSCHLIFF_EXCLUDE", "a/**,b.yaml")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env.md", cfg.Readme)
	assert.Equal(t, []string{"a/**", "b.yaml"}, cfg.Exclude)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "STEINSCHLIFF_JSON_OUT=out/dotenv.json\n")
	t.Cleanup(func() { os.Unsetenv("STEINSCHLIFF_JSON_OUT") })

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "out/dotenv.json", cfg.JSONOut)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Sort = "rating"
	assert.NoError(t, cfg.Validate())

	cfg.Sort = "price"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, model.IsUserError(err))
	assert.True(t, errors.Is(err, model.ErrInvalidInput))

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.ConditionsDir = "/abs/conditions"

	got := cfg.Resolve(root)
	assert.Equal(t, filepath.Join(root, "schliffs"), got.SchliffsDir)
	assert.Equal(t, "/abs/conditions", got.ConditionsDir)
	assert.Equal(t, filepath.Join(root, "README.md"), got.ReadmeRU)
	assert.Equal(t, "schliffs", cfg.SchliffsDir, "original untouched")
}
