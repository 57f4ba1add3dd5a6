package llmschema

import "github.com/go-json-experiment/json"

// CodecEntry is the common interface for every codec record: a dropped
// constraint, a transform, or an advisory provider-compat error (spec §3).
// Kind returns the "kind" discriminator used in the serialized form.
type CodecEntry interface {
	Kind() string
}

// Codec is the ordered, append-only audit record produced by a Convert call.
// Entries are appended in (pass index, in-schema visit order), and that
// order is part of the public contract (spec §5) — Codec never reorders or
// deduplicates what passes append.
type Codec []CodecEntry

// MarshalJSON serializes the codec as an array of tagged objects, each
// carrying its own "kind" field, with deterministic key order per entry —
// the same mechanism Schema uses for its own bit-stable output.
func (c Codec) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]CodecEntry(c), json.Deterministic(true))
}

// DroppedConstraint records that a keyword was removed because the target
// doesn't support it. Value preserves the original for audit purposes.
type DroppedConstraint struct {
	Path       string `json:"path"`
	Constraint string `json:"constraint"`
	Value      any    `json:"value"`
	Reason     string `json:"reason"`
}

func (DroppedConstraint) Kind() string { return "DroppedConstraint" }

func (d DroppedConstraint) MarshalJSON() ([]byte, error) {
	type alias DroppedConstraint
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: d.Kind(), alias: alias(d)}, json.Deterministic(true))
}

// --- Transform variants (spec §3) ---

// RootObjectWrapper records P9 wrapping a non-object root in {result: <original>}.
type RootObjectWrapper struct {
	Path      string `json:"path"`
	Wrapper   string `json:"wrapper_key"`
}

func (RootObjectWrapper) Kind() string { return "RootObjectWrapper" }

func (t RootObjectWrapper) MarshalJSON() ([]byte, error) {
	type alias RootObjectWrapper
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// ConstToEnum records P7 rewriting `const` into a single-value `enum`.
type ConstToEnum struct {
	Path string `json:"path"`
}

func (ConstToEnum) Kind() string { return "ConstToEnum" }

func (t ConstToEnum) MarshalJSON() ([]byte, error) {
	type alias ConstToEnum
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// EnumReordered records P7 moving the default's value to index 0 of enum.
type EnumReordered struct {
	Path          string `json:"path"`
	OriginalOrder []any  `json:"original_order"`
}

func (EnumReordered) Kind() string { return "EnumReordered" }

func (t EnumReordered) MarshalJSON() ([]byte, error) {
	type alias EnumReordered
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// RefInlined records P1 splicing a $ref target in place and removing $ref.
type RefInlined struct {
	Path      string `json:"path"`
	RefSource string `json:"ref_source"`
}

func (RefInlined) Kind() string { return "RefInlined" }

func (t RefInlined) MarshalJSON() ([]byte, error) {
	type alias RefInlined
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// CompositionFlattened records P2 merging or flattening allOf/anyOf/oneOf.
// CompositionKind names which keyword was flattened ("allOf", "anyOf", or
// "oneOf"); it is a distinct JSON field from the entry's own "kind"
// discriminator, which always reads "CompositionFlattened".
type CompositionFlattened struct {
	Path           string `json:"path"`
	CompositionKind string `json:"composition_kind"`
}

func (CompositionFlattened) Kind() string { return "CompositionFlattened" }

func (t CompositionFlattened) MarshalJSON() ([]byte, error) {
	type alias CompositionFlattened
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// Normalized records a P0 shape coercion (boolean->object, type shorthand,
// definitions->$defs, exclusiveMinimum/Maximum bool-shape rewrite).
// NormalizeKind names which coercion happened; distinct from the entry's
// own "kind" discriminator, which always reads "Normalized".
type Normalized struct {
	Path         string `json:"path"`
	NormalizeKind string `json:"normalize_kind"`
}

func (Normalized) Kind() string { return "Normalized" }

func (t Normalized) MarshalJSON() ([]byte, error) {
	type alias Normalized
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// --- Advisory ProviderCompatError variants (spec §3, §7) ---
// These never abort the pipeline; P9 appends them to the codec alongside a
// successful schema.

// RootTypeIncompatible accompanies a RootObjectWrapper transform.
type RootTypeIncompatible struct {
	Path string `json:"path"`
}

func (RootTypeIncompatible) Kind() string { return "RootTypeIncompatible" }

func (t RootTypeIncompatible) MarshalJSON() ([]byte, error) {
	type alias RootTypeIncompatible
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// DepthBudgetExceeded is emitted once per Convert call when the deepest
// observed node under (OpenaiStrict, Strict) exceeds OPENAI_MAX_DEPTH.
type DepthBudgetExceeded struct {
	ActualDepth int `json:"actual_depth"`
	MaxDepth    int `json:"max_depth"`
}

func (DepthBudgetExceeded) Kind() string { return "DepthBudgetExceeded" }

func (t DepthBudgetExceeded) MarshalJSON() ([]byte, error) {
	type alias DepthBudgetExceeded
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// MixedEnumTypes is emitted per enum array whose values span more than one
// JSON type.
type MixedEnumTypes struct {
	Path       string   `json:"path"`
	TypesFound []string `json:"types_found"`
}

func (MixedEnumTypes) Kind() string { return "MixedEnumTypes" }

func (t MixedEnumTypes) MarshalJSON() ([]byte, error) {
	type alias MixedEnumTypes
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}

// UnconstrainedSchema is emitted per non-root object schema with no content keywords.
type UnconstrainedSchema struct {
	Path string `json:"path"`
}

func (UnconstrainedSchema) Kind() string { return "UnconstrainedSchema" }

func (t UnconstrainedSchema) MarshalJSON() ([]byte, error) {
	type alias UnconstrainedSchema
	return json.Marshal(struct {
		KindField string `json:"kind"`
		alias
	}{KindField: t.Kind(), alias: alias(t)}, json.Deterministic(true))
}
