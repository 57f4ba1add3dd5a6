package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestP3Unevaluated_TranslatesToAdditionalProperties(t *testing.T) {
	s := mustParse(t, `{"type":"object","unevaluatedProperties":{"type":"string"}}`)
	out, codec, err := p3Unevaluated(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	require.NotNil(t, out.AdditionalProperties)
	assert.Equal(t, SchemaType{"string"}, out.AdditionalProperties.Type)
	assert.Nil(t, out.UnevaluatedProperties)

	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "unevaluatedProperties_to_additionalProperties", n.NormalizeKind)
}

func TestP3Unevaluated_DroppedWhenComposed(t *testing.T) {
	s := mustParse(t, `{"allOf":[{"type":"object"}],"unevaluatedProperties":{"type":"string"}}`)
	out, codec, err := p3Unevaluated(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.UnevaluatedProperties)
	assert.Nil(t, out.AdditionalProperties)

	d, ok := findEntry[DroppedConstraint](codec)
	require.True(t, ok)
	assert.Equal(t, "unevaluatedProperties", d.Constraint)
	droppedSchema, ok := d.Value.(*Schema)
	require.True(t, ok)
	assert.Equal(t, SchemaType{"string"}, droppedSchema.Type)
}

func TestP3Unevaluated_DroppedWhenAdditionalPropertiesAlreadySet(t *testing.T) {
	s := mustParse(t, `{"additionalProperties":false,"unevaluatedProperties":{"type":"string"}}`)
	out, codec, err := p3Unevaluated(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	require.NotNil(t, out.AdditionalProperties)
	assert.NotNil(t, out.AdditionalProperties.Boolean)
	assert.False(t, *out.AdditionalProperties.Boolean)

	d, ok := findEntry[DroppedConstraint](codec)
	require.True(t, ok)
	assert.Equal(t, "unevaluatedProperties", d.Constraint)
	droppedSchema, ok := d.Value.(*Schema)
	require.True(t, ok)
	assert.Equal(t, SchemaType{"string"}, droppedSchema.Type)
}

func TestP3Unevaluated_ItemsTranslated(t *testing.T) {
	s := mustParse(t, `{"type":"array","unevaluatedItems":{"type":"number"}}`)
	out, codec, err := p3Unevaluated(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	require.NotNil(t, out.Items)
	assert.Equal(t, SchemaType{"number"}, out.Items.Type)
	assert.Nil(t, out.UnevaluatedItems)

	n, ok := findEntry[Normalized](codec)
	require.True(t, ok)
	assert.Equal(t, "unevaluatedItems_to_items", n.NormalizeKind)
}
