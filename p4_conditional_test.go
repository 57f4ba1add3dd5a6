package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestP4Conditional_DropsIfThenElseTogether(t *testing.T) {
	s := mustParse(t, `{
		"if": {"properties":{"a":{"const":"x"}}},
		"then": {"required":["b"]},
		"else": {"required":["c"]}
	}`)
	out, codec, err := p4Conditional(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Nil(t, out.If)
	assert.Nil(t, out.Then)
	assert.Nil(t, out.Else)

	var constraints []string
	for _, e := range codec {
		if d, ok := e.(DroppedConstraint); ok {
			constraints = append(constraints, d.Constraint)
		}
	}
	assert.ElementsMatch(t, []string{"if", "then", "else"}, constraints)
}

func TestP4Conditional_DropsNot(t *testing.T) {
	s := mustParse(t, `{"not":{"type":"string"}}`)
	out, codec, err := p4Conditional(s, DefaultOptions(Claude).normalized(), Claude)
	require.NoError(t, err)
	assert.Nil(t, out.Not)

	d, ok := findEntry[DroppedConstraint](codec)
	require.True(t, ok)
	assert.Equal(t, "not", d.Constraint)
}

func TestP4Conditional_NoOpWhenNoneSet(t *testing.T) {
	s := mustParse(t, `{"type":"string"}`)
	out, codec, err := p4Conditional(s, DefaultOptions(OpenaiStrict).normalized(), OpenaiStrict)
	require.NoError(t, err)
	assert.Equal(t, SchemaType{"string"}, out.Type)
	assert.Empty(t, codec)
}
