package llmschema

// openaiMaxDepth is P9's depth budget constant (spec §4.11: "OPENAI_MAX_DEPTH (5)").
const openaiMaxDepth = 5

// contentKeywords names the keywords that make an object schema
// "constrained" for P9's unconstrained sub-schema check. Structural or
// metadata-only keys are deliberately excluded.
var contentKeywords = []string{
	"type", "properties", "items", "prefixItems", "enum", "const",
	"anyOf", "oneOf", "allOf", "$ref", "not", "if", "then", "else",
	"pattern", "minimum", "maximum", "minLength", "maxLength",
	"minItems", "maxItems", "format",
}

// p9ProviderCompat is the post-pipeline audit, active only for
// (OpenaiStrict, Strict); every other (target, mode) pair is a passthrough
// (spec §4.11). Grounded on spec §4.11 as the authoritative fuller
// description, with the four check names and their order (root type, depth
// budget, enum homogeneity, unconstrained sub-schema) confirmed by the
// original Rust source's p9_provider_compat.rs placeholder stub, which names
// them in that exact order even though it never implements them.
func p9ProviderCompat(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error) {
	if target != OpenaiStrict || opts.Mode != Strict {
		return schema, nil, nil
	}

	var codec Codec

	schema, wrapped := p9WrapRoot(schema)
	if wrapped {
		codec = append(codec, RootObjectWrapper{Path: rootPath.String(), Wrapper: "result"}, RootTypeIncompatible{Path: rootPath.String()})
	}

	maxObserved := 0
	var walk func(node *Schema, path Path, depth int) error
	walk = func(node *Schema, path Path, depth int) error {
		if node == nil {
			return nil
		}
		if depth > maxObserved {
			maxObserved = depth
		}
		if depth > opts.MaxDepth {
			return newConvertError(ErrDepthExceeded, path.String(), target, "traversal depth exceeded max_depth")
		}
		if depth > hardRecursionLimit {
			return newConvertError(ErrDepthExceeded, path.String(), target, "traversal depth exceeded hard recursion limit")
		}

		if len(node.Enum) > 0 {
			if types := enumTypeNames(node.Enum); len(types) > 1 {
				codec = append(codec, MixedEnumTypes{Path: path.String(), TypesFound: types})
			}
		}

		// Boolean nodes can reach this point (the `additionalProperties:
		// false` seals that P6 and p9WrapRoot install after P0 ran); they
		// are not keyword maps and are skipped. Every other node is a
		// keyword map, so "object schema" in spec §4.11 check #4 means any
		// such node, not specifically one whose `type` keyword reads "object".
		if depth > 0 && node.Boolean == nil && !hasContentKeyword(node) {
			codec = append(codec, UnconstrainedSchema{Path: path.String()})
		}

		return p9DescendChildren(node, path, depth+1, walk)
	}

	if err := walk(schema, rootPath, 0); err != nil {
		return nil, codec, err
	}

	if maxObserved > openaiMaxDepth {
		codec = append(codec, DepthBudgetExceeded{ActualDepth: maxObserved, MaxDepth: openaiMaxDepth})
	}

	return schema, codec, nil
}

// p9WrapRoot implements check #1: wrap a non-object root per spec §4.11.
func p9WrapRoot(schema *Schema) (*Schema, bool) {
	if schema.Type.Has("object") || (len(schema.Type) == 0 && schema.Properties != nil) {
		return schema, false
	}
	f := false
	wrapped := &Schema{
		Type:                 SchemaType{"object"},
		Properties:           &SchemaMap{"result": schema},
		Required:             []string{"result"},
		AdditionalProperties: &Schema{Boolean: &f},
	}
	return wrapped, true
}

// hasContentKeyword reports whether node carries any of P9's content
// keywords, per spec §4.11 check #4.
func hasContentKeyword(node *Schema) bool {
	if len(node.Type) > 0 {
		return true
	}
	if node.Properties != nil && len(*node.Properties) > 0 {
		return true
	}
	if node.Items != nil || len(node.PrefixItems) > 0 {
		return true
	}
	if len(node.Enum) > 0 {
		return true
	}
	if node.Const != nil && node.Const.IsSet {
		return true
	}
	if len(node.AnyOf) > 0 || len(node.OneOf) > 0 || len(node.AllOf) > 0 {
		return true
	}
	if node.Ref != "" {
		return true
	}
	if node.Not != nil || node.If != nil || node.Then != nil || node.Else != nil {
		return true
	}
	if node.Pattern != nil || node.Minimum != nil || node.Maximum != nil {
		return true
	}
	if node.MinLength != nil || node.MaxLength != nil {
		return true
	}
	if node.MinItems != nil || node.MaxItems != nil {
		return true
	}
	if node.Format != nil {
		return true
	}
	return false
}

// enumTypeNames classifies every enum value by JSON type name, returning the
// distinct set encountered — grounded on the teacher's utils.go getDataType
// classifier, adapted here to operate over already-decoded `any` values
// rather than the teacher's raw-JSON node type.
func enumTypeNames(values []any) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, v := range values {
		name := jsonTypeName(v)
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func p9DescendChildren(node *Schema, path Path, depth int, walk func(*Schema, Path, int) error) error {
	if node.Properties != nil {
		for _, name := range sortedKeys(schemaMapToMap(node.Properties)) {
			if err := walk((*node.Properties)[name], path.child("properties").child(name), depth); err != nil {
				return err
			}
		}
	}
	if node.PatternProperties != nil {
		for _, name := range sortedKeys(schemaMapToMap(node.PatternProperties)) {
			if err := walk((*node.PatternProperties)[name], path.child("patternProperties").child(name), depth); err != nil {
				return err
			}
		}
	}
	if err := walk(node.AdditionalProperties, path.child("additionalProperties"), depth); err != nil {
		return err
	}
	if err := walk(node.Items, path.child("items"), depth); err != nil {
		return err
	}
	for i, v := range node.PrefixItems {
		if err := walk(v, path.child("prefixItems").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	if err := walk(node.Contains, path.child("contains"), depth); err != nil {
		return err
	}
	for i, v := range node.AnyOf {
		if err := walk(v, path.child("anyOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	for i, v := range node.OneOf {
		if err := walk(v, path.child("oneOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	for i, v := range node.AllOf {
		if err := walk(v, path.child("allOf").child(indexString(i)), depth); err != nil {
			return err
		}
	}
	if err := walk(node.Not, path.child("not"), depth); err != nil {
		return err
	}
	if err := walk(node.If, path.child("if"), depth); err != nil {
		return err
	}
	if err := walk(node.Then, path.child("then"), depth); err != nil {
		return err
	}
	if err := walk(node.Else, path.child("else"), depth); err != nil {
		return err
	}
	for _, name := range sortedKeys(node.Defs) {
		if err := walk(node.Defs[name], path.child("$defs").child(name), depth); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(node.DependentSchemas) {
		if err := walk(node.DependentSchemas[name], path.child("dependentSchemas").child(name), depth); err != nil {
			return err
		}
	}
	return walk(node.PropertyNames, path.child("propertyNames"), depth)
}
