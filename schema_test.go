package llmschema

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema_Boolean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"accept-all", "true", true},
		{"reject-all", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSchema([]byte(tt.raw))
			require.NoError(t, err)
			require.NotNil(t, s.Boolean)
			assert.Equal(t, tt.want, *s.Boolean)
		})
	}
}

func TestSchema_DefinitionsRenamedToDefs(t *testing.T) {
	s := mustParse(t, `{"definitions":{"Foo":{"type":"string"}},"$ref":"#/definitions/Foo"}`)
	require.Contains(t, s.Defs, "Foo")
	assert.Equal(t, SchemaType{"string"}, s.Defs["Foo"].Type)
}

func TestSchema_DraftSevenTupleItems(t *testing.T) {
	s := mustParse(t, `{"items":[{"type":"string"},{"type":"number"}],"additionalItems":{"type":"boolean"}}`)
	require.Len(t, s.PrefixItems, 2)
	assert.Equal(t, SchemaType{"string"}, s.PrefixItems[0].Type)
	assert.Equal(t, SchemaType{"number"}, s.PrefixItems[1].Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, SchemaType{"boolean"}, s.Items.Type)
}

func TestSchema_ConstDistinguishesAbsentFromNull(t *testing.T) {
	withNull := mustParse(t, `{"const":null}`)
	require.NotNil(t, withNull.Const)
	assert.True(t, withNull.Const.IsSet)
	assert.Nil(t, withNull.Const.Value)

	without := mustParse(t, `{"type":"string"}`)
	assert.Nil(t, without.Const)
}

func TestSchema_ExtraKeywordsPreserved(t *testing.T) {
	s := mustParse(t, `{"type":"string","$comment":"hi","x-vendor":"thing"}`)
	require.NotNil(t, s.Extra)
	assert.Equal(t, "thing", s.Extra["x-vendor"])
	// $comment has a named slot in knownSchemaFields but no typed field;
	// it is dropped from Extra rather than silently kept twice.
	_, hasComment := s.Extra["$comment"]
	assert.False(t, hasComment)
}

func TestSchema_MarshalRoundTrip(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"a":{"type":"string"}},"required":["a"]}`)
	data, err := s.MarshalJSON()
	require.NoError(t, err)

	reparsed, err := ParseSchema(data)
	require.NoError(t, err, "%# v", pretty.Formatter(s))

	assert.Equal(t, s.Type, reparsed.Type)
	assert.Equal(t, s.Required, reparsed.Required)
}

func TestSchema_Clone_Independent(t *testing.T) {
	s := mustParse(t, `{"type":"object","properties":{"a":{"type":"string"}}}`)
	clone := s.Clone()

	(*clone.Properties)["a"].Type = SchemaType{"number"}

	assert.Equal(t, SchemaType{"string"}, (*s.Properties)["a"].Type)
	assert.Equal(t, SchemaType{"number"}, (*clone.Properties)["a"].Type)
}

func TestSchemaType_Has(t *testing.T) {
	st := SchemaType{"string", "null"}
	assert.True(t, st.Has("string"))
	assert.True(t, st.Has("null"))
	assert.False(t, st.Has("number"))
}

func TestNumOrBool_DraftFourBoolShape(t *testing.T) {
	var n NumOrBool
	require.NoError(t, n.UnmarshalJSON([]byte("true")))
	assert.True(t, n.IsBool)
	assert.True(t, n.Bool)

	var m NumOrBool
	require.NoError(t, m.UnmarshalJSON([]byte("3.5")))
	assert.False(t, m.IsBool)
	require.NotNil(t, m.Num)
}
