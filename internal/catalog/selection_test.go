package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/conditions"
	"steinschliff/internal/model"
)

func fixture() (Services, map[string]model.ServiceMetadata) {
	services := Services{
		"ramsau": {{Name: "R1", Condition: "blue"}, {Name: "R2", Condition: "red"}},
		"acme":   {{Name: "A1", Condition: " Blue "}, {Name: "A2"}},
		"plain":  {{Name: "P1", Condition: "green"}},
	}
	metadata := map[string]model.ServiceMetadata{
		"ramsau": {Name: "Ramsau Ski"},
		"acme":   {},
		"ghost":  {Name: "Ghost"},
	}
	return services, metadata
}

func TestSelectServices_BlankFilterReturnsCopy(t *testing.T) {
	services, metadata := fixture()
	for _, filter := range []string{"", "   "} {
		got, err := SelectServices(services, metadata, filter)
		require.NoError(t, err)
		assert.Equal(t, services, got)

		got["new"] = nil
		assert.NotContains(t, services, "new")
	}
}

func TestSelectServices_ByKeyOrDisplayName(t *testing.T) {
	services, metadata := fixture()

	tests := map[string]string{
		"ramsau":       "ramsau",
		"RAMSAU":       "ramsau",
		"ramsau ski":   "ramsau",
		" Ramsau Ski ": "ramsau",
		"Acme":         "acme",
		"plain":        "plain",
	}
	for filter, want := range tests {
		got, err := SelectServices(services, metadata, filter)
		require.NoError(t, err, filter)
		require.Len(t, got, 1, filter)
		assert.Contains(t, got, want, filter)
	}
}

func TestSelectServices_NotFound(t *testing.T) {
	services, metadata := fixture()

	for _, filter := range []string{"unknown", "ghost"} {
		_, err := SelectServices(services, metadata, filter)
		require.Error(t, err, filter)
		assert.True(t, errors.Is(err, model.ErrNotFound), filter)
		assert.True(t, model.IsUserError(err), filter)
		assert.Contains(t, err.Error(), filter)
	}
}

func TestFilterByCondition(t *testing.T) {
	services, _ := fixture()

	got := FilterByCondition(services, "blue")
	assert.Len(t, got, 2)
	assert.Equal(t, "R1", got["ramsau"][0].Name)
	assert.Equal(t, "A1", got["acme"][0].Name)
	assert.NotContains(t, got, "plain")
}

func TestFilterByCondition_BlankIsIdentity(t *testing.T) {
	services, _ := fixture()
	assert.Equal(t, services, FilterByCondition(services, ""))
	assert.Equal(t, services, FilterByCondition(services, "  "))
}

func TestFilterByCondition_Idempotent(t *testing.T) {
	services, _ := fixture()
	once := FilterByCondition(services, "blue")
	assert.Equal(t, once, FilterByCondition(once, "blue"))
}

func TestResolveCondition(t *testing.T) {
	reg := conditions.New(nil)

	key, err := ResolveCondition(reg, "Синий")
	require.NoError(t, err)
	assert.Equal(t, "blue", key)

	key, err = ResolveCondition(reg, "")
	require.NoError(t, err)
	assert.Equal(t, "", key)

	_, err = ResolveCondition(reg, "bleu")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.Contains(t, err.Error(), "blue")
	assert.Contains(t, err.Error(), "вы имели в виду")
}
