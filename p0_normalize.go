package llmschema

// p0Normalize coerces shapes later passes do not accept (spec §4.2). Two
// coercions already happen at parse time in schema.go's UnmarshalJSON,
// mirroring the teacher's own unification there, and emit no codec entry:
// `definitions` -> `$defs` renaming, and Draft-7 tuple `items` -> PrefixItems.
// What remains for this pass: boolean-schema normalization, type-array
// expansion into anyOf, and the Draft-4 exclusiveMinimum/Maximum bool shape.
func p0Normalize(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		codec = append(codec, p0NormalizeNode(node, path)...)
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	schema = p0NormalizeBoolean(schema, rootPath, &codec)
	return schema, codec, nil
}

// p0NormalizeBoolean replaces a root or nested boolean schema node. The
// walker above only visits *Schema values already known to be object-shaped
// (a boolean Schema has no children to descend into), so boolean
// replacement is handled as a pre-pass sweep rather than inside the visitor:
// a boolean node must become an object node before anything can examine its
// fields, which the generic post-order visitor has no hook for.
func p0NormalizeBoolean(node *Schema, path Path, codec *Codec) *Schema {
	if node == nil {
		return nil
	}
	if node.Boolean != nil {
		if *node.Boolean {
			*codec = append(*codec, Normalized{Path: path.String(), NormalizeKind: "true_to_empty_object"})
			return &Schema{}
		}
		*codec = append(*codec, Normalized{Path: path.String(), NormalizeKind: "false_to_reject_all"})
		return &Schema{Not: &Schema{}}
	}

	node.AdditionalProperties = p0NormalizeBoolean(node.AdditionalProperties, path.child("additionalProperties"), codec)
	node.Items = p0NormalizeBoolean(node.Items, path.child("items"), codec)
	node.Contains = p0NormalizeBoolean(node.Contains, path.child("contains"), codec)
	node.Not = p0NormalizeBoolean(node.Not, path.child("not"), codec)
	node.If = p0NormalizeBoolean(node.If, path.child("if"), codec)
	node.Then = p0NormalizeBoolean(node.Then, path.child("then"), codec)
	node.Else = p0NormalizeBoolean(node.Else, path.child("else"), codec)
	node.PropertyNames = p0NormalizeBoolean(node.PropertyNames, path.child("propertyNames"), codec)

	for i, child := range node.PrefixItems {
		node.PrefixItems[i] = p0NormalizeBoolean(child, path.child("prefixItems").child(indexString(i)), codec)
	}
	for i, child := range node.AnyOf {
		node.AnyOf[i] = p0NormalizeBoolean(child, path.child("anyOf").child(indexString(i)), codec)
	}
	for i, child := range node.OneOf {
		node.OneOf[i] = p0NormalizeBoolean(child, path.child("oneOf").child(indexString(i)), codec)
	}
	for i, child := range node.AllOf {
		node.AllOf[i] = p0NormalizeBoolean(child, path.child("allOf").child(indexString(i)), codec)
	}
	if node.Properties != nil {
		for k, v := range *node.Properties {
			(*node.Properties)[k] = p0NormalizeBoolean(v, path.child("properties").child(k), codec)
		}
	}
	if node.PatternProperties != nil {
		for k, v := range *node.PatternProperties {
			(*node.PatternProperties)[k] = p0NormalizeBoolean(v, path.child("patternProperties").child(k), codec)
		}
	}
	for k, v := range node.Defs {
		node.Defs[k] = p0NormalizeBoolean(v, path.child("$defs").child(k), codec)
	}
	for k, v := range node.DependentSchemas {
		node.DependentSchemas[k] = p0NormalizeBoolean(v, path.child("dependentSchemas").child(k), codec)
	}
	return node
}

// p0NormalizeNode applies the two remaining per-node coercions once a node is
// known to be object-shaped.
func p0NormalizeNode(node *Schema, path Path) Codec {
	var codec Codec

	if len(node.Type) > 1 && !isNullableTypePair(node.Type) {
		branches := make([]*Schema, len(node.Type))
		for i, t := range node.Type {
			branches[i] = &Schema{Type: SchemaType{t}}
		}
		node.AnyOf = append(node.AnyOf, branches...)
		node.Type = nil
		codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "type_array_to_anyOf"})
	}

	if node.ExclusiveMinimum != nil && node.ExclusiveMinimum.IsBool {
		if node.ExclusiveMinimum.Bool && node.Minimum != nil {
			node.ExclusiveMinimum = &NumOrBool{Num: CloneRat(node.Minimum)}
			node.Minimum = nil
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "exclusiveMinimum_bool_to_numeric"})
		} else {
			codec = append(codec, DroppedConstraint{
				Path: path.String(), Constraint: "exclusiveMinimum", Value: node.ExclusiveMinimum.Bool,
				Reason: "draft-4 boolean shape that is false or has no sibling minimum",
			})
			node.ExclusiveMinimum = nil
		}
	}
	if node.ExclusiveMaximum != nil && node.ExclusiveMaximum.IsBool {
		if node.ExclusiveMaximum.Bool && node.Maximum != nil {
			node.ExclusiveMaximum = &NumOrBool{Num: CloneRat(node.Maximum)}
			node.Maximum = nil
			codec = append(codec, Normalized{Path: path.String(), NormalizeKind: "exclusiveMaximum_bool_to_numeric"})
		} else {
			codec = append(codec, DroppedConstraint{
				Path: path.String(), Constraint: "exclusiveMaximum", Value: node.ExclusiveMaximum.Bool,
				Reason: "draft-4 boolean shape that is false or has no sibling maximum",
			})
			node.ExclusiveMaximum = nil
		}
	}

	return codec
}

// isNullableTypePair reports whether t is exactly a two-element type array
// containing "null" — left alone by this pass so P8 can decide per target
// whether to render it as a nullable flag or an anyOf pair.
func isNullableTypePair(t SchemaType) bool {
	return len(t) == 2 && t.Has("null")
}
