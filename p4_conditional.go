package llmschema

// p4Conditional drops if/then/else as a unit, and not, where the target
// does not support them (spec §4.6). The capability table marks all three
// conditional keywords, and not, Drop for every target this module knows —
// no provider's structured-output subset accepts conditional schemas — so
// although the pass consults the capability table rather than branching on
// the target, in practice it drops them for every target.
func p4Conditional(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p4ConditionalNode(node, path, target)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func p4ConditionalNode(node *Schema, path Path, target Target) Codec {
	var codec Codec

	if node.If != nil || node.Then != nil || node.Else != nil {
		if capability(target, "if") != Supported {
			if node.If != nil {
				codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "if", Value: node.If, Reason: "conditional schemas unsupported by target"})
			}
			if node.Then != nil {
				codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "then", Value: node.Then, Reason: "conditional schemas unsupported by target"})
			}
			if node.Else != nil {
				codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "else", Value: node.Else, Reason: "conditional schemas unsupported by target"})
			}
			node.If, node.Then, node.Else = nil, nil, nil
		}
	}

	if node.Not != nil && capability(target, "not") != Supported {
		codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "not", Value: node.Not, Reason: "negation unsupported by target"})
		node.Not = nil
	}

	return codec
}
