package llmschema

// p5Defaults removes default entirely, since no LLM provider honors it, but
// first uses its value to reorder a sibling enum so the default's value
// becomes index 0 (spec §4.7, §4.9 tie-break: "pruning precedes enum
// reordering" refers to P7's other keyword pruning, not this step — the
// default-driven reorder itself is the "enum-ordering hook" P5 exists to
// perform, and the value is gone by the time P7's capability-table pass
// would otherwise have to drop it). Per this module's Open Question
// resolution (DESIGN.md), a default nested inside a composition branch does
// not propagate upward into an enclosing anyOf/oneOf/allOf — only a default
// directly sibling to the enum it reorders is honored.
func p5Defaults(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p5DefaultsNode(node, path, opts)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func p5DefaultsNode(node *Schema, path Path, opts ConvertOptions) Codec {
	var codec Codec
	if node.Default == nil {
		return codec
	}

	defaultValue := node.Default.Value

	if opts.EnumDefaultFirst && len(node.Enum) > 0 {
		if reordered, original, moved := moveToFront(node.Enum, defaultValue); moved {
			node.Enum = reordered
			codec = append(codec, EnumReordered{Path: path.String(), OriginalOrder: original})
		}
	}

	codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "default", Value: defaultValue, Reason: "no structured-output provider honors default"})
	node.Default = nil

	return codec
}

// moveToFront returns enum with value relocated to index 0, the original
// order (for the codec entry), and whether any reordering actually happened.
func moveToFront(enum []any, value any) (reordered []any, original []any, moved bool) {
	original = append([]any(nil), enum...)

	idx := -1
	for i, v := range enum {
		if deepEqualJSON(v, value) {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return enum, original, false
	}

	out := make([]any, 0, len(enum))
	out = append(out, enum[idx])
	out = append(out, enum[:idx]...)
	out = append(out, enum[idx+1:]...)
	return out, original, true
}

// deepEqualJSON compares two values decoded from JSON (so numbers are
// float64, strings are string, etc.) for equality without pulling in
// reflect.DeepEqual's broader semantics than this narrow comparison needs.
func deepEqualJSON(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}
