package frontmatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steinschliff/internal/frontmatter"
)

type page struct {
	Layout string `yaml:"layout"`
	Title  string `yaml:"title"`
	Lang   string `yaml:"lang"`
}

func TestWriteDecodeRoundtrip(t *testing.T) {
	body := "# Каталог\n\n| a |\n"
	data, err := frontmatter.Write(page{Layout: "default", Title: "Steinschliff", Lang: "ru"}, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "---\nlayout: default\ntitle: Steinschliff\nlang: ru\n---\n"+body, string(data))

	var got page
	rest, err := frontmatter.Decode(data, &got)
	require.NoError(t, err)
	assert.Equal(t, page{Layout: "default", Title: "Steinschliff", Lang: "ru"}, got)
	assert.Equal(t, body, string(rest))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantFM   string
		wantBody string
		wantErr  bool
	}{
		{"plain", "---\nlang: en\n---\nbody\n", "lang: en\n", "body\n", false},
		{"leading blank lines", "\n\n---\nlang: en\n---\nbody", "lang: en\n", "body", false},
		{"empty block", "---\n---\nbody", "", "body", false},
		{"no opening", "# Title\n", "", "", true},
		{"no closing", "---\nlang: en\n", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := frontmatter.Parse([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFM, string(fm))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestPrepend(t *testing.T) {
	out, err := frontmatter.Prepend(page{Lang: "en"}, []byte("# Hi\n"))
	require.NoError(t, err)
	assert.True(t, frontmatter.Has(out))

	again, err := frontmatter.Prepend(page{Lang: "ru"}, out)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again), "existing front matter kept")
}
