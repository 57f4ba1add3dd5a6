package llmschema

// p6StrictSeal seals every object schema for strict targets: adds
// `additionalProperties: false` if absent, and widens `required` to every
// declared property (spec §4.8). Active only when mode is Strict and the
// target requires sealing, which today means OpenaiStrict — Claude and
// Gemini accept additionalProperties either way per the capability matrix,
// so sealing them would be a gratuitous rewrite with no provider requirement
// behind it.
func p6StrictSeal(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	if opts.Mode != Strict || !requiresSealing(target) {
		return schema, nil, nil
	}

	var codec Codec
	w := newWalker(opts, target, false, func(node *Schema, path Path, depth int) error {
		if entry, sealed := p6SealNode(node, path); sealed {
			codec = append(codec, entry)
		}
		return nil
	})
	if err := w.walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

func requiresSealing(target Target) bool {
	return target == OpenaiStrict
}

func p6SealNode(node *Schema, path Path) (CodecEntry, bool) {
	if node.Properties == nil && !node.Type.Has("object") {
		return nil, false
	}

	changed := false
	if !isSealedFalse(node.AdditionalProperties) {
		f := false
		node.AdditionalProperties = &Schema{Boolean: &f}
		changed = true
	}

	if node.Properties != nil {
		allKeys := sortedKeys(schemaMapToMap(node.Properties))
		if !sameStringSet(node.Required, allKeys) {
			node.Required = allKeys
			changed = true
		}
	}

	if !changed {
		return nil, false
	}
	return Normalized{Path: path.String(), NormalizeKind: "strict_sealed"}, true
}

// isSealedFalse reports whether node is already exactly `additionalProperties:
// false`; any other value (absent, true, or a schema) is not sealed and must
// be overridden, since spec §8's "every object node has additionalProperties:
// false" invariant admits no other shape.
func isSealedFalse(node *Schema) bool {
	return node != nil && node.Boolean != nil && !*node.Boolean
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[string]struct{}{}
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			return false
		}
	}
	return true
}
