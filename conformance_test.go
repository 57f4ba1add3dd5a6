package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConformance_NoPanicAcrossKeywordFamilies is a hand-written
// representative sample, one schema per keyword family, run through every
// target in both Lenient and Strict mode. It does not vendor or replay the
// upstream JSON Schema Test Suite; it exercises this module's own pipeline
// contract: Convert never panics, and every well-formed input either
// succeeds or returns a well-typed *ConvertError.
func TestConformance_NoPanicAcrossKeywordFamilies(t *testing.T) {
	samples := map[string]string{
		"const":                       `{"const":"fixed"}`,
		"enum":                        `{"enum":["a","b",1]}`,
		"pattern":                     `{"type":"string","pattern":"^[a-z]+$"}`,
		"numeric_bounds":              `{"type":"number","minimum":0,"maximum":100,"multipleOf":5}`,
		"string_length":               `{"type":"string","minLength":1,"maxLength":10}`,
		"array_items":                 `{"type":"array","items":{"type":"string"},"minItems":1,"maxItems":5,"uniqueItems":true}`,
		"tuple_prefixItems":           `{"type":"array","prefixItems":[{"type":"string"},{"type":"number"}]}`,
		"draft7_tuple_items":          `{"type":"array","items":[{"type":"string"},{"type":"number"}],"additionalItems":{"type":"boolean"}}`,
		"object_properties":          `{"type":"object","properties":{"a":{"type":"string"}},"required":["a"],"additionalProperties":false}`,
		"pattern_properties":          `{"type":"object","patternProperties":{"^x-":{"type":"string"}}}`,
		"allOf":                       `{"allOf":[{"type":"object","properties":{"a":{"type":"string"}}},{"type":"object","properties":{"b":{"type":"number"}}}]}`,
		"anyOf":                       `{"anyOf":[{"type":"string"},{"type":"number"}]}`,
		"oneOf":                       `{"oneOf":[{"type":"string","enum":["a"]},{"type":"string","enum":["b"]}]}`,
		"ref_defs":                    `{"$defs":{"Name":{"type":"string"}},"properties":{"who":{"$ref":"#/$defs/Name"}}}`,
		"if_then_else":                `{"if":{"properties":{"kind":{"const":"a"}}},"then":{"required":["a_field"]},"else":{"required":["b_field"]}}`,
		"unevaluated_properties":      `{"type":"object","properties":{"a":{"type":"string"}},"unevaluatedProperties":false}`,
		"unevaluated_items":           `{"type":"array","prefixItems":[{"type":"string"}],"unevaluatedItems":false}`,
		"nullable_type_pair":          `{"type":["string","null"]}`,
		"type_array":                  `{"type":["string","integer"]}`,
		"format":                      `{"type":"string","format":"email"}`,
		"default_with_enum":           `{"enum":["x","y"],"default":"y"}`,
		"boolean_true_schema":         `true`,
		"boolean_false_schema":        `false`,
		"draft4_exclusive_bool_shape": `{"minimum":1,"exclusiveMinimum":true}`,
		"not_keyword":                 `{"not":{"type":"string"}}`,
	}

	for name, raw := range samples {
		for _, target := range []Target{OpenaiStrict, Claude, Gemini} {
			for _, mode := range []Mode{Lenient, Strict} {
				t.Run(name+"/"+target.String()+"/"+mode.String(), func(t *testing.T) {
					s := mustParse(t, raw)
					opts := DefaultOptions(target)
					opts.Mode = mode

					assert.NotPanics(t, func() {
						_, _, _ = Convert(s, opts)
					})

					_, _, err := Convert(s, opts)
					if err != nil {
						var convErr *ConvertError
						require.ErrorAs(t, err, &convErr, "errors must be *ConvertError, got %T: %v", err, err)
					}
				})
			}
		}
	}
}

// TestConformance_AtLeastOneSuccessPerFamily confirms each keyword family has
// at least one (target, mode) combination that converts cleanly, guarding
// against a family that silently always errors.
func TestConformance_AtLeastOneSuccessPerFamily(t *testing.T) {
	families := map[string]string{
		"const":            `{"const":"fixed"}`,
		"enum":             `{"enum":["a","b"]}`,
		"pattern":          `{"type":"string","pattern":"^[a-z]+$"}`,
		"numeric_bounds":   `{"type":"number","minimum":0,"maximum":100}`,
		"array_items":      `{"type":"array","items":{"type":"string"}}`,
		"object_properties": `{"type":"object","properties":{"a":{"type":"string"}}}`,
		"allOf":            `{"allOf":[{"type":"object","properties":{"a":{"type":"string"}}}]}`,
		"anyOf":            `{"anyOf":[{"type":"string"},{"type":"number"}]}`,
		"ref_defs":         `{"$defs":{"Name":{"type":"string"}},"properties":{"who":{"$ref":"#/$defs/Name"}}}`,
	}

	for name, raw := range families {
		t.Run(name, func(t *testing.T) {
			succeeded := false
			for _, target := range []Target{OpenaiStrict, Claude, Gemini} {
				s := mustParse(t, raw)
				if _, _, err := Convert(s, DefaultOptions(target)); err == nil {
					succeeded = true
				}
			}
			assert.True(t, succeeded, "family %q never converted successfully for any target", name)
		})
	}
}
