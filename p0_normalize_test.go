package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestP0Normalize_BooleanTrueBecomesEmptyObject(t *testing.T) {
	s := &Schema{Boolean: boolPtr(true)}
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.Boolean)
	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "true_to_empty_object", n.NormalizeKind)
}

func TestP0Normalize_BooleanFalseBecomesRejectAll(t *testing.T) {
	s := &Schema{Boolean: boolPtr(false)}
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	require.NotNil(t, out.Not)
	assert.Nil(t, out.Not.Boolean)
	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "false_to_reject_all", n.NormalizeKind)
}

func TestP0Normalize_NestedBooleanInProperties(t *testing.T) {
	s := mustParse(t, `{"properties":{"a":true,"b":false}}`)
	out, _, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, (*out.Properties)["a"].Boolean)
	require.NotNil(t, (*out.Properties)["b"].Not)
}

func TestP0Normalize_TypeArrayExpandsToAnyOf(t *testing.T) {
	s := mustParse(t, `{"type":["string","integer"]}`)
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.Type)
	require.Len(t, out.AnyOf, 2)
	assert.Equal(t, SchemaType{"string"}, out.AnyOf[0].Type)
	assert.Equal(t, SchemaType{"integer"}, out.AnyOf[1].Type)

	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "type_array_to_anyOf", n.NormalizeKind)
}

func TestP0Normalize_NullableTypePairLeftAlone(t *testing.T) {
	s := mustParse(t, `{"type":["string","null"]}`)
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Equal(t, SchemaType{"string", "null"}, out.Type)
	assert.Nil(t, out.AnyOf)
	_, ok := findEntry[Normalized](codec)
	assert.False(t, ok)
}

func TestP0Normalize_ExclusiveMinimumBoolShapeRewritten(t *testing.T) {
	s := mustParse(t, `{"minimum": 5, "exclusiveMinimum": true}`)
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.Minimum)
	require.NotNil(t, out.ExclusiveMinimum)
	assert.False(t, out.ExclusiveMinimum.IsBool)
	require.NotNil(t, out.ExclusiveMinimum.Num)

	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "exclusiveMinimum_bool_to_numeric", n.NormalizeKind)
}

func TestP0Normalize_ExclusiveMinimumBoolShapeWithoutSiblingDropped(t *testing.T) {
	s := mustParse(t, `{"exclusiveMinimum": true}`)
	out, codec, err := p0Normalize(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.ExclusiveMinimum)

	d, ok := findEntry[DroppedConstraint](codec)
	require.True(t, ok)
	assert.Equal(t, "exclusiveMinimum", d.Constraint)
}

func boolPtr(b bool) *bool { return &b }
