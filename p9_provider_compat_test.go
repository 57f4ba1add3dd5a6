package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strictOpenAI() ConvertOptions {
	opts := DefaultOptions(OpenaiStrict).normalized()
	opts.Mode = Strict
	return opts
}

func TestP9ProviderCompat_PassthroughOutsideStrictOpenAI(t *testing.T) {
	s := mustParse(t, `{"type":"string"}`)
	out, codec, err := p9ProviderCompat(s, DefaultOptions(Gemini).normalized(), Gemini)
	require.NoError(t, err)
	assert.Same(t, s, out)
	assert.Nil(t, codec)
}

func TestP9ProviderCompat_WrapsNonObjectRoot(t *testing.T) {
	s := mustParse(t, `{"type":"string"}`)
	out, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	assert.Equal(t, SchemaType{"object"}, out.Type)
	require.NotNil(t, out.Properties)
	result, ok := (*out.Properties)["result"]
	require.True(t, ok)
	assert.Equal(t, SchemaType{"string"}, result.Type)
	assert.Equal(t, []string{"result"}, out.Required)

	_, hasWrap := findEntry[RootObjectWrapper](codec)
	assert.True(t, hasWrap)
	_, hasIncompat := findEntry[RootTypeIncompatible](codec)
	assert.True(t, hasIncompat)
}

func TestP9ProviderCompat_ObjectRootNotWrapped(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"a":{"type":"string"}}}`)
	out, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	assert.Equal(t, SchemaType{"object"}, out.Type)
	_, hasWrap := findEntry[RootObjectWrapper](codec)
	assert.False(t, hasWrap)
}

func TestP9ProviderCompat_DepthBudgetExceeded(t *testing.T) {
	s := mustParse(t, `{
		"type":"object",
		"properties":{"a":{"type":"object","properties":{"b":{"type":"object","properties":{"c":{"type":"object","properties":{"d":{"type":"object","properties":{"e":{"type":"object","properties":{"f":{"type":"string"}}}}}}}}}}}}
	}`)
	_, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	entry, ok := findEntry[DepthBudgetExceeded](codec)
	require.True(t, ok)
	assert.Equal(t, openaiMaxDepth, entry.MaxDepth)
	assert.Greater(t, entry.ActualDepth, openaiMaxDepth)
}

func TestP9ProviderCompat_MixedEnumTypesFlagged(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"x":{"enum":["a",1]}}}`)
	_, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	entry, ok := findEntry[MixedEnumTypes](codec)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"string", "number"}, entry.TypesFound)
}

func TestP9ProviderCompat_UnconstrainedSubSchemaFlagged(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"x":{}}}`)
	_, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	entry, ok := findEntry[UnconstrainedSchema](codec)
	require.True(t, ok)
	assert.Equal(t, "#/properties/x", entry.Path)
}

func TestP9ProviderCompat_RootUnconstrainedNotFlagged(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"x":{"type":"string"}}}`)
	_, codec, err := p9ProviderCompat(s, strictOpenAI(), OpenaiStrict)
	require.NoError(t, err)
	_, ok := findEntry[UnconstrainedSchema](codec)
	assert.False(t, ok)
}

func TestHasContentKeyword(t *testing.T) {
	assert.False(t, hasContentKeyword(&Schema{}))
	assert.True(t, hasContentKeyword(&Schema{Type: SchemaType{"string"}}))
}

func TestJSONTypeName(t *testing.T) {
	assert.Equal(t, "string", jsonTypeName("x"))
	assert.Equal(t, "number", jsonTypeName(float64(1)))
	assert.Equal(t, "null", jsonTypeName(nil))
	assert.Equal(t, "boolean", jsonTypeName(true))
}
