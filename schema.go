package llmschema

import (
	"maps"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// knownSchemaFields lists every keyword this module's Schema struct has a
// named field for. Unmarshal uses it to route leftover keys into Extra,
// exactly as the teacher's knownSchemaFields/collectExtraFields does.
var knownSchemaFields = map[string]struct{}{
	"$id": {}, "$schema": {}, "$ref": {}, "$anchor": {},
	"$defs": {}, "definitions": {}, "$comment": {},

	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {},
	"if": {}, "then": {}, "else": {},
	"dependentSchemas": {}, "prefixItems": {}, "items": {}, "additionalItems": {},
	"contains": {}, "properties": {}, "patternProperties": {},
	"additionalProperties": {}, "propertyNames": {},
	"unevaluatedItems": {}, "unevaluatedProperties": {},

	"type": {}, "enum": {}, "const": {},
	"multipleOf": {}, "maximum": {}, "exclusiveMaximum": {},
	"minimum": {}, "exclusiveMinimum": {},
	"maxLength": {}, "minLength": {}, "pattern": {},
	"maxItems": {}, "minItems": {}, "uniqueItems": {},
	"maxContains": {}, "minContains": {},
	"maxProperties": {}, "minProperties": {}, "required": {}, "dependentRequired": {},

	"format": {},

	"title": {}, "description": {}, "default": {}, "deprecated": {},
	"readOnly": {}, "writeOnly": {}, "examples": {},
}

// Schema is a JSON Schema node (Draft 7 or 2020-12): either a boolean
// (accept-all / reject-all) or a keyword object, per spec §3. Every
// recognized keyword has a typed field; anything else lands in Extra.
//
// Unlike the teacher's Schema, this type carries no compiler/parent/anchor
// bookkeeping — the pipeline is stateless per spec §5, and P1 builds its own
// fragment->subschema map once per Convert call rather than threading a
// compiler reference through every node.
type Schema struct {
	// Boolean holds the value when this node is a JSON boolean schema
	// (true = accept-all, false = reject-all). Mutually exclusive with
	// every other field. P0 replaces `true` with `{}` and `false` with
	// `{not: {}}` per spec §4.2 in every position it sweeps (not in
	// unevaluatedProperties/unevaluatedItems); later passes install
	// boolean `false` again where they seal objects (P6, P9).
	Boolean *bool `json:"-"`

	ID     string             `json:"$id,omitempty"`
	Schema string             `json:"$schema,omitempty"`
	Anchor string             `json:"$anchor,omitempty"`
	Ref    string             `json:"$ref,omitempty"`
	Defs   map[string]*Schema `json:"$defs,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	If   *Schema `json:"if,omitempty"`
	Then *Schema `json:"then,omitempty"`
	Else *Schema `json:"else,omitempty"`

	DependentSchemas  map[string]*Schema  `json:"dependentSchemas,omitempty"`
	DependentRequired map[string][]string `json:"dependentRequired,omitempty"`

	Properties           *SchemaMap `json:"properties,omitempty"`
	PatternProperties    *SchemaMap `json:"patternProperties,omitempty"`
	AdditionalProperties *Schema    `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema    `json:"propertyNames,omitempty"`
	Required             []string   `json:"required,omitempty"`

	// PrefixItems is the positional/tuple form: 2020-12 "prefixItems", or a
	// Draft-7 array-shaped "items" unified into this field at parse time
	// (see UnmarshalJSON) — the same unification the teacher's own
	// UnmarshalJSON performs, for the same reason: downstream code should
	// not have to re-detect which draft produced the tuple.
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	// Items is the list form: 2020-12 "items" applied to every element, or
	// (when PrefixItems is also set) the Draft-7 "additionalItems" schema
	// applied to elements past the tuple.
	Items    *Schema `json:"items,omitempty"`
	Contains *Schema `json:"contains,omitempty"`

	UnevaluatedItems      *Schema `json:"unevaluatedItems,omitempty"`
	UnevaluatedProperties *Schema `json:"unevaluatedProperties,omitempty"`

	Type  SchemaType  `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"const,omitempty"`

	MultipleOf *Rat `json:"multipleOf,omitempty"`
	Maximum    *Rat `json:"maximum,omitempty"`
	Minimum    *Rat `json:"minimum,omitempty"`
	// ExclusiveMaximum/ExclusiveMinimum carry either the Draft-7/2020-12
	// numeric shape or the Draft-4 boolean shape until P0 runs; P0 rewrites
	// the boolean shape into Maximum/Minimum + a numeric exclusive bound (or
	// drops it) per spec §4.2, after which only the Num form remains.
	ExclusiveMaximum *NumOrBool `json:"exclusiveMaximum,omitempty"`
	ExclusiveMinimum *NumOrBool `json:"exclusiveMinimum,omitempty"`

	MaxLength *float64 `json:"maxLength,omitempty"`
	MinLength *float64 `json:"minLength,omitempty"`
	Pattern   *string  `json:"pattern,omitempty"`

	MaxItems    *float64 `json:"maxItems,omitempty"`
	MinItems    *float64 `json:"minItems,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty"`
	MaxContains *float64 `json:"maxContains,omitempty"`
	MinContains *float64 `json:"minContains,omitempty"`

	MaxProperties *float64 `json:"maxProperties,omitempty"`
	MinProperties *float64 `json:"minProperties,omitempty"`

	Format *string `json:"format,omitempty"`

	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Default     *DefaultValue `json:"default,omitempty"`
	Deprecated  *bool         `json:"deprecated,omitempty"`
	ReadOnly    *bool         `json:"readOnly,omitempty"`
	WriteOnly   *bool         `json:"writeOnly,omitempty"`
	Examples    []any         `json:"examples,omitempty"`

	// Extra carries keywords this module doesn't model explicitly
	// ($dynamicRef, $vocabulary, $comment's siblings, vendor extensions, …)
	// through the pipeline untouched, per the Draft-2019-09 Open Question
	// resolution in DESIGN.md.
	Extra map[string]any `json:"-"`
}

// ParseSchema decodes raw JSON bytes into a Schema.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalJSON implements json.Marshaler with deterministic key order, the
// mechanism behind the spec §6 "bit-stable field order" codec/output
// contract — grounded on the teacher's Schema.MarshalJSON.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	if s.Boolean != nil {
		return json.Marshal(*s.Boolean, json.Deterministic(true))
	}

	type Alias Schema
	data, err := json.Marshal((*Alias)(s), json.Deterministic(true))
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	if s.Const != nil && s.Const.IsSet {
		result["const"] = s.Const.Value
	}
	if s.Default != nil && s.Default.IsSet {
		result["default"] = s.Default.Value
	}
	maps.Copy(result, s.Extra)

	return json.Marshal(result, json.Deterministic(true))
}

// MarshalJSONTo implements json.MarshalerTo for the v2 encoder, delegating to
// MarshalJSON and re-encoding with the caller's options joined with
// Deterministic(true), matching the teacher's MarshalJSONTo.
func (s *Schema) MarshalJSONTo(enc *jsontext.Encoder, opts json.Options) error {
	opts = json.JoinOptions(opts, json.Deterministic(true))
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}
	return json.MarshalEncode(enc, result, opts)
}

// UnmarshalJSON implements json.Unmarshaler. It accepts boolean schemas,
// unifies Draft-7 tuple "items" (array-shaped) into PrefixItems + Items
// (pairing "additionalItems" into Items) the same way the teacher's
// UnmarshalJSON does, renames "definitions" to "$defs" when "$defs" is
// absent, and collects unknown keys into Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		s.Boolean = &b
		return nil
	}

	type Alias Schema
	aux := &struct {
		Items           jsontext.Value `json:"items,omitempty"`
		AdditionalItems *Schema        `json:"additionalItems,omitempty"`
		*Alias
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.Items) > 0 {
		trimmed := trimLeadingSpace(aux.Items)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(aux.Items, &s.PrefixItems); err != nil {
				return err
			}
			if aux.AdditionalItems != nil {
				s.Items = aux.AdditionalItems
			}
		} else {
			if err := json.Unmarshal(aux.Items, &s.Items); err != nil {
				return err
			}
		}
	}

	var raw map[string]jsontext.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if defsData, ok := raw["definitions"]; ok && s.Defs == nil {
		var defs map[string]*Schema
		if err := json.Unmarshal(defsData, &defs); err != nil {
			return err
		}
		s.Defs = defs
	}

	if constData, ok := raw["const"]; ok {
		s.Const = &ConstValue{}
		if err := s.Const.UnmarshalJSON(constData); err != nil {
			return err
		}
	}

	if defaultData, ok := raw["default"]; ok {
		s.Default = &DefaultValue{}
		if err := s.Default.UnmarshalJSON(defaultData); err != nil {
			return err
		}
	}

	return s.collectExtraFields(data)
}

func trimLeadingSpace(v jsontext.Value) []byte {
	b := []byte(v)
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return b[i:]
}

func (s *Schema) collectExtraFields(raw []byte) error {
	var allFields map[string]any
	if err := json.Unmarshal(raw, &allFields); err != nil {
		return err
	}
	for key := range knownSchemaFields {
		delete(allFields, key)
	}
	if len(allFields) > 0 {
		s.Extra = allFields
	}
	return nil
}

// Clone returns a deep-enough copy of s suitable for pass-local mutation: the
// pipeline owns its working schema but never mutates the caller's input (spec
// §3 Lifecycles — "Input schema is owned by the caller and never mutated").
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	data, err := s.MarshalJSON()
	if err != nil {
		// MarshalJSON only fails on a broken Extra value, which can't occur
		// for a schema that was itself produced by ParseSchema/UnmarshalJSON.
		panic(err)
	}
	clone, err := ParseSchema(data)
	if err != nil {
		panic(err)
	}
	return clone
}

// SchemaMap represents "properties"/"patternProperties": a map of keyword
// keys to subschemas, serialized deterministically.
type SchemaMap map[string]*Schema

func (sm SchemaMap) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Schema, len(sm))
	maps.Copy(m, sm)
	return json.Marshal(m, json.Deterministic(true))
}

func (sm *SchemaMap) UnmarshalJSON(data []byte) error {
	m := make(map[string]*Schema)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*sm = SchemaMap(m)
	return nil
}

// SchemaType holds "type": a single string on the wire, or an array of
// strings; always represented here as a slice.
type SchemaType []string

func (st SchemaType) MarshalJSON() ([]byte, error) {
	if len(st) == 1 {
		return json.Marshal(st[0])
	}
	return json.Marshal([]string(st))
}

func (st *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*st = SchemaType{single}
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*st = SchemaType(multi)
		return nil
	}
	return ErrMalformedSchema
}

// Has reports whether t names typeName.
func (st SchemaType) Has(typeName string) bool {
	for _, t := range st {
		if t == typeName {
			return true
		}
	}
	return false
}

// ConstValue represents "const", distinguishing "absent" from "const: null".
type ConstValue struct {
	Value any
	IsSet bool
}

func (cv *ConstValue) UnmarshalJSON(data []byte) error {
	cv.IsSet = true
	if string(data) == "null" {
		cv.Value = nil
		return nil
	}
	return json.Unmarshal(data, &cv.Value)
}

func (cv ConstValue) MarshalJSON() ([]byte, error) {
	if !cv.IsSet || cv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(cv.Value)
}

// DefaultValue represents "default", distinguishing "absent" from "default: null".
type DefaultValue struct {
	Value any
	IsSet bool
}

func (dv *DefaultValue) UnmarshalJSON(data []byte) error {
	dv.IsSet = true
	if string(data) == "null" {
		dv.Value = nil
		return nil
	}
	return json.Unmarshal(data, &dv.Value)
}

func (dv DefaultValue) MarshalJSON() ([]byte, error) {
	if !dv.IsSet || dv.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(dv.Value)
}

// NumOrBool represents a keyword that may be a number (Draft 7 / 2020-12) or
// a boolean (Draft 4 exclusiveMinimum/exclusiveMaximum shape).
type NumOrBool struct {
	IsBool bool
	Bool   bool
	Num    *Rat
}

func (n *NumOrBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		n.IsBool = true
		n.Bool = b
		return nil
	}
	var r Rat
	if err := r.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Num = &r
	return nil
}

func (n NumOrBool) MarshalJSON() ([]byte, error) {
	if n.IsBool {
		return json.Marshal(n.Bool)
	}
	return n.Num.MarshalJSON()
}
