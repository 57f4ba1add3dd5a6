package llmschema

import "strings"

// p1RefResolve inlines local $ref targets (spec §4.3). It builds a fragment
// pointer -> subschema map by one scan of the root's $defs (each entry under
// both its "#/$defs/" and legacy "#/definitions/" pointer, since parsing
// folds `definitions` into Defs) plus "#" for the root, then traverses
// pre-order, splicing the referenced schema in place of every $ref node and
// detecting cycles with an active set of in-flight fragments — grounded on
// openbindings-go's schemaprofile.resolveRef/refStack, the closer model than
// the teacher's own ref.go (which resolves against an already-compiled graph
// and performs no cycle detection of its own).
func p1RefResolve(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	if !opts.InlineRefs {
		return schema, nil, nil
	}

	refMap := map[string]*Schema{"#": schema}
	for name, def := range schema.Defs {
		refMap["#/$defs/"+name] = def
		refMap["#/definitions/"+name] = def
	}

	originalCount := countNodes(schema)
	budget := originalCount * opts.MaxInlineExpansion
	if budget == 0 {
		budget = opts.MaxInlineExpansion
	}
	spliced := 0

	var codec Codec
	active := map[string]struct{}{}

	var resolve func(node *Schema, path Path, depth int) error
	resolve = func(node *Schema, path Path, depth int) error {
		if node == nil {
			return nil
		}
		if depth > opts.MaxDepth {
			return newConvertError(ErrDepthExceeded, path.String(), target, "traversal depth exceeded max_depth")
		}
		if depth > hardRecursionLimit {
			return newConvertError(ErrDepthExceeded, path.String(), target, "traversal depth exceeded hard recursion limit")
		}

		if node.Ref != "" {
			if strings.Contains(node.Ref, "://") || strings.HasPrefix(node.Ref, "http") {
				return newConvertError(ErrUnsupportedRef, path.String(), target, "external reference: "+node.Ref)
			}
			refSource := node.Ref
			if _, inFlight := active[refSource]; inFlight {
				return newConvertError(ErrReferenceCycle, path.String(), target, "cycle through "+refSource)
			}
			refTarget, ok := refMap[refSource]
			if !ok {
				return newConvertError(ErrUnsupportedRef, path.String(), target, "unresolved local reference: "+refSource)
			}

			spliced += countNodes(refTarget)
			if spliced > budget {
				return newConvertError(ErrRefExpansionTooLarge, path.String(), target, "inlining exceeded max_inline_expansion")
			}

			active[refSource] = struct{}{}
			defer delete(active, refSource)

			resolved := refTarget.Clone()
			*node = *resolved
			codec = append(codec, RefInlined{Path: path.String(), RefSource: refSource})

			// The spliced-in content may itself be a bare $ref (a $defs entry
			// that just aliases another fragment, including itself). Keep
			// resolving at this same node/depth rather than clearing Ref
			// unconditionally, so a self-alias re-enters this branch and
			// trips the active-set cycle check above instead of silently
			// splicing in an empty schema.
			if node.Ref != "" {
				return resolve(node, path, depth)
			}
		}

		return walkChildrenForRefResolve(node, path, depth+1, resolve)
	}

	if err := resolve(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}
	return schema, codec, nil
}

// countNodes counts object-shaped schema nodes reachable from n, used to
// bound P1's inline fan-out (spec §4.3: "inlining would multiply schema size
// beyond max_inline_expansion").
func countNodes(n *Schema) int {
	if n == nil {
		return 0
	}
	count := 1
	if n.Properties != nil {
		for _, v := range *n.Properties {
			count += countNodes(v)
		}
	}
	if n.PatternProperties != nil {
		for _, v := range *n.PatternProperties {
			count += countNodes(v)
		}
	}
	count += countNodes(n.AdditionalProperties)
	count += countNodes(n.Items)
	for _, v := range n.PrefixItems {
		count += countNodes(v)
	}
	count += countNodes(n.Contains)
	for _, v := range n.AnyOf {
		count += countNodes(v)
	}
	for _, v := range n.OneOf {
		count += countNodes(v)
	}
	for _, v := range n.AllOf {
		count += countNodes(v)
	}
	count += countNodes(n.Not)
	count += countNodes(n.If)
	count += countNodes(n.Then)
	count += countNodes(n.Else)
	for _, v := range n.Defs {
		count += countNodes(v)
	}
	for _, v := range n.DependentSchemas {
		count += countNodes(v)
	}
	count += countNodes(n.PropertyNames)
	return count
}

// walkChildrenForRefResolve recurses into every child position in the spec
// §4.1 order, calling resolve pre-order (the node itself is already handled
// by the caller before this runs, matching P1's documented pre-order ref
// substitution, the one exception to the traversal skeleton's default
// post-order rule).
func walkChildrenForRefResolve(node *Schema, path Path, depth int, resolve func(*Schema, Path, int) error) error {
	if node.Properties != nil {
		for _, name := range sortedKeys(schemaMapToMap(node.Properties)) {
			if err := resolve((*node.Properties)[name], path.child("properties").child(name), depth); err != nil {
				return err
			}
		}
	}
	if node.PatternProperties != nil {
		for _, name := range sortedKeys(schemaMapToMap(node.PatternProperties)) {
			if err := resolve((*node.PatternProperties)[name], path.child("patternProperties").child(name), depth); err != nil {
				return err
			}
		}
	}
	if err := resolve(node.AdditionalProperties, path.child("additionalProperties"), depth); err != nil {
		return err
	}
	if err := resolve(node.Items, path.child("items"), depth); err != nil {
		return err
	}
	for i, v := range node.PrefixItems {
		if err := resolve(v, path.child("prefixItems").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	if err := resolve(node.Contains, path.child("contains"), depth); err != nil {
		return err
	}
	for i, v := range node.AnyOf {
		if err := resolve(v, path.child("anyOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	for i, v := range node.OneOf {
		if err := resolve(v, path.child("oneOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	for i, v := range node.AllOf {
		if err := resolve(v, path.child("allOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	if err := resolve(node.Not, path.child("not"), depth); err != nil {
		return err
	}
	if err := resolve(node.If, path.child("if"), depth); err != nil {
		return err
	}
	if err := resolve(node.Then, path.child("then"), depth); err != nil {
		return err
	}
	if err := resolve(node.Else, path.child("else"), depth); err != nil {
		return err
	}
	for _, name := range sortedKeys(node.Defs) {
		if err := resolve(node.Defs[name], path.child("$defs").child(name), depth); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(node.DependentSchemas) {
		if err := resolve(node.DependentSchemas[name], path.child("dependentSchemas").child(name), depth); err != nil {
			return err
		}
	}
	return resolve(node.PropertyNames, path.child("propertyNames"), depth)
}
