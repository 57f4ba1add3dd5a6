package llmschema

// p7Constraints is the canonical pass (spec §4.9): rewrite const to a
// single-value enum where the target doesn't support const natively, then
// prune every remaining keyword the capability matrix marks Drop for this
// target. Enum-vs-default reordering itself already happened in P5 (see its
// doc comment); by the time this pass runs, `default` is already absent, so
// the capability table's "default: Drop" row for this pass is a no-op in
// practice and exists only so the table stays the single source of truth
// for every keyword's per-target disposition. Structurally grounded on the
// original Rust source's p7_constraints.rs doc comment, which names exactly
// this sequence, with the numeric-precision *Rat plumbing from the teacher's
// rat.go underneath it.
func p7Constraints(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p7ConstraintsNode(node, path, target)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func p7ConstraintsNode(node *Schema, path Path, target Target) Codec {
	var codec Codec

	if node.Const != nil && node.Const.IsSet && capability(target, "const") == Rewrite {
		node.Enum = []any{node.Const.Value}
		node.Const = nil
		codec = append(codec, ConstToEnum{Path: path.String()})
	}

	if node.Pattern != nil && capability(target, "pattern") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "pattern", Value: *node.Pattern, Reason: "unsupported by target"})
		node.Pattern = nil
	}

	if node.Minimum != nil && capability(target, "minimum") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "minimum", Value: FormatRat(node.Minimum), Reason: "unsupported by target"})
		node.Minimum = nil
	}
	if node.Maximum != nil && capability(target, "maximum") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "maximum", Value: FormatRat(node.Maximum), Reason: "unsupported by target"})
		node.Maximum = nil
	}
	if node.ExclusiveMinimum != nil && capability(target, "exclusiveMinimum") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "exclusiveMinimum", Value: FormatRat(node.ExclusiveMinimum.Num), Reason: "unsupported by target"})
		node.ExclusiveMinimum = nil
	}
	if node.ExclusiveMaximum != nil && capability(target, "exclusiveMaximum") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "exclusiveMaximum", Value: FormatRat(node.ExclusiveMaximum.Num), Reason: "unsupported by target"})
		node.ExclusiveMaximum = nil
	}
	if node.MultipleOf != nil && capability(target, "multipleOf") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "multipleOf", Value: FormatRat(node.MultipleOf), Reason: "unsupported by target"})
		node.MultipleOf = nil
	}

	if node.MinLength != nil && capability(target, "minLength") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "minLength", Value: *node.MinLength, Reason: "unsupported by target"})
		node.MinLength = nil
	}
	if node.MaxLength != nil && capability(target, "maxLength") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "maxLength", Value: *node.MaxLength, Reason: "unsupported by target"})
		node.MaxLength = nil
	}

	if node.MinItems != nil && capability(target, "minItems") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "minItems", Value: *node.MinItems, Reason: "unsupported by target"})
		node.MinItems = nil
	}
	if node.MaxItems != nil && capability(target, "maxItems") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "maxItems", Value: *node.MaxItems, Reason: "unsupported by target"})
		node.MaxItems = nil
	}
	if node.UniqueItems != nil && capability(target, "uniqueItems") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "uniqueItems", Value: *node.UniqueItems, Reason: "unsupported by target"})
		node.UniqueItems = nil
	}

	if node.Format != nil && capability(target, "format") == Drop {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "format", Value: *node.Format, Reason: "unsupported by target"})
		node.Format = nil
	}

	return codec
}
