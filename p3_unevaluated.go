package llmschema

// p3Unevaluated translates unevaluatedProperties/unevaluatedItems into
// additionalProperties/additionalItems-equivalent keywords once composition
// no longer obscures which siblings already cover which children (spec
// §4.5). Translation is possible only when the node carries no composition
// keywords (allOf/anyOf/oneOf) by this point — P2 runs first, so by P3 those
// keywords remain only where the target accepts them natively (OpenAI,
// Claude) and P2 left them in place, in which case "which sibling evaluation
// covers which child" cannot be computed and the keyword is dropped instead.
// It is also dropped when the node already sets the keyword it would become.
func p3Unevaluated(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p3UnevaluatedNode(node, path)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func p3UnevaluatedNode(node *Schema, path Path) Codec {
	var codec Codec
	composed := len(node.AllOf) > 0 || len(node.AnyOf) > 0 || len(node.OneOf) > 0

	if node.UnevaluatedProperties != nil {
		if !composed && node.AdditionalProperties == nil {
			node.AdditionalProperties = node.UnevaluatedProperties
			node.UnevaluatedProperties = nil
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "unevaluatedProperties_to_additionalProperties"})
		} else {
			codec = append(codec, DroppedConstraint{
				Path: path.String(), Constraint: "unevaluatedProperties", Value: node.UnevaluatedProperties,
				Reason: "cannot be resolved against sibling evaluation in this shape",
			})
			node.UnevaluatedProperties = nil
		}
	}

	if node.UnevaluatedItems != nil {
		if !composed && node.Items == nil {
			node.Items = node.UnevaluatedItems
			node.UnevaluatedItems = nil
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "unevaluatedItems_to_items"})
		} else {
			codec = append(codec, DroppedConstraint{
				Path: path.String(), Constraint: "unevaluatedItems", Value: node.UnevaluatedItems,
				Reason: "cannot be resolved against sibling evaluation in this shape",
			})
			node.UnevaluatedItems = nil
		}
	}

	return codec
}
