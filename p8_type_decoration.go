package llmschema

// p8TypeDecoration canonicalizes the nullable-type carve-out P0 left alone,
// and enforces Gemini's format allow-list (spec §4.10). By this point every
// ordinary type union has already become an anyOf branch set in P0; the only
// type arrays still standing are the two-element ["X", "null"] shape P0
// deliberately left untouched, since only here is there a real per-target
// choice: Gemini renders it as a single type plus a `nullable` flag, while
// the other targets have no nullable keyword and need the anyOf form P0
// already produces for ordinary unions.
func p8TypeDecoration(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p8TypeDecorationNode(node, path, target)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func p8TypeDecorationNode(node *Schema, path Path, target Target) Codec {
	var codec Codec

	if isNullableTypePair(node.Type) {
		var base string
		for _, t := range node.Type {
			if t != "null" {
				base = t
			}
		}
		if target == Gemini {
			node.Type = SchemaType{base}
			if node.Extra == nil {
				node.Extra = map[string]any{}
			}
			node.Extra["nullable"] = true
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "nullable_type_to_flag"})
		} else {
			node.AnyOf = append(node.AnyOf, &Schema{Type: SchemaType{base}}, &Schema{Type: SchemaType{"null"}})
			node.Type = nil
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "nullable_type_to_anyOf"})
		}
	}

	if node.Format != nil && target == Gemini && capability(target, "format") == Rewrite {
		if !geminiFormatAllowed(*node.Format) {
			codec = append(codec, DroppedConstraint{Path: path.String(), Constraint: "format", Value: *node.Format, Reason: "not in target's format allow-list"})
			node.Format = nil
		}
	}

	return codec
}
