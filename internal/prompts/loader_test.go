package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	clearCache()

	prompt, err := Get(PolishFile, SummaryKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Summary}}")
	assert.Contains(t, prompt, "{{.Role}}")
}

func TestGet_Errors(t *testing.T) {
	clearCache()

	_, err := Get("missing.json", SummaryKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get(PolishFile, "missing-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	assert.Panics(t, func() { MustGet("missing.json", SummaryKey) })
	assert.NotPanics(t, func() { assert.NotEmpty(t, MustGet(PolishFile, BulletsKey)) })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"all placeholders", "Polish for {{.Role}}: {{.Summary}}", map[string]string{"Role": "SRE", "Summary": "Text"}, "Polish for SRE: Text"},
		{"missing value", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"no placeholders", "plain", map[string]string{"Key": "v"}, "plain"},
		{"value with braces", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"}, "{{.B}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	keys, err := List(PolishFile)
	require.NoError(t, err)
	assert.Equal(t, []string{BulletsKey, SummaryKey}, keys)
}

func TestCaching(t *testing.T) {
	clearCache()
	first, err := Get(PolishFile, SummaryKey)
	require.NoError(t, err)

	cacheMu.RLock()
	_, cached := cache[PolishFile]
	cacheMu.RUnlock()
	assert.True(t, cached)

	second, err := Get(PolishFile, SummaryKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
