package llmschema

import (
	"sort"
	"strconv"
)

// visitFunc is applied to every node the traversal skeleton visits. It
// receives the node's path and current depth, and returns an error to abort
// the whole pass (used for ErrCompositionMerge, ErrMalformedSchema, and the
// like). Each pass supplies its own visitFunc; the skeleton owns depth
// bounding, recursion order, and path construction so no pass builds a path
// by hand (spec §4.1: "the skeleton is the only place paths are built").
type visitFunc func(node *Schema, path Path, depth int) error

// preOrder is false for a post-order walk (children visited, then the node
// itself — the default every pass except P1 uses) and true for pre-order
// (node first, matching P1's ref-inlining, which must replace a $ref node
// before descending into whatever gets spliced in).
type walker struct {
	visit     visitFunc
	preOrder  bool
	maxDepth  int
	target    Target
}

// newWalker builds a walker bound to opts.MaxDepth (already normalized) and
// carrying target for depth-exceeded error reporting.
func newWalker(opts ConvertOptions, target Target, preOrder bool, visit visitFunc) *walker {
	return &walker{visit: visit, preOrder: preOrder, maxDepth: opts.MaxDepth, target: target}
}

// walk descends into node at path/depth, applying w.visit per spec §4.1.
// depth is the depth of node itself (root is 0); it is compared against
// w.maxDepth *before* descending into children, and hardRecursionLimit backs
// it unconditionally regardless of what MaxDepth the caller configured.
func (w *walker) walk(node *Schema, path Path, depth int) error {
	if node == nil {
		return nil
	}
	if depth > w.maxDepth {
		return newConvertError(ErrDepthExceeded, path.String(), w.target, "traversal depth exceeded max_depth")
	}
	if depth > hardRecursionLimit {
		return newConvertError(ErrDepthExceeded, path.String(), w.target, "traversal depth exceeded hard recursion limit")
	}

	if w.preOrder {
		if err := w.visit(node, path, depth); err != nil {
			return err
		}
	}

	if err := w.descend(node, path, depth); err != nil {
		return err
	}

	if !w.preOrder {
		if err := w.visit(node, path, depth); err != nil {
			return err
		}
	}
	return nil
}

// descend recurses into exactly the child positions and order spec §4.1
// step 4 names; a Draft-7 `definitions` block is reached through $defs,
// into which parsing folds it. Map-valued positions (properties,
// patternProperties, $defs, dependentSchemas) are visited in sorted key order so that
// codec entry order is deterministic and reproducible across runs, a
// stronger guarantee than the spec's "visit order" requires but one no test
// can observe as wrong.
func (w *walker) descend(node *Schema, path Path, depth int) error {
	next := depth + 1

	if err := w.descendMap(schemaMapToMap(node.Properties), path, "properties", next); err != nil {
		return err
	}
	if err := w.descendMap(schemaMapToMap(node.PatternProperties), path, "patternProperties", next); err != nil {
		return err
	}
	if node.AdditionalProperties != nil {
		if err := w.walk(node.AdditionalProperties, path.child("additionalProperties"), next); err != nil {
			return err
		}
	}
	if node.Items != nil {
		if err := w.walk(node.Items, path.child("items"), next); err != nil {
			return err
		}
	}
	if err := w.descendSlice(node.PrefixItems, path, "prefixItems", next); err != nil {
		return err
	}
	if node.Contains != nil {
		if err := w.walk(node.Contains, path.child("contains"), next); err != nil {
			return err
		}
	}
	if err := w.descendSlice(node.AnyOf, path, "anyOf", next); err != nil {
		return err
	}
	if err := w.descendSlice(node.OneOf, path, "oneOf", next); err != nil {
		return err
	}
	if err := w.descendSlice(node.AllOf, path, "allOf", next); err != nil {
		return err
	}
	if node.Not != nil {
		if err := w.walk(node.Not, path.child("not"), next); err != nil {
			return err
		}
	}
	if node.If != nil {
		if err := w.walk(node.If, path.child("if"), next); err != nil {
			return err
		}
	}
	if node.Then != nil {
		if err := w.walk(node.Then, path.child("then"), next); err != nil {
			return err
		}
	}
	if node.Else != nil {
		if err := w.walk(node.Else, path.child("else"), next); err != nil {
			return err
		}
	}
	if err := w.descendMap(node.Defs, path, "$defs", next); err != nil {
		return err
	}
	if err := w.descendMap(node.DependentSchemas, path, "dependentSchemas", next); err != nil {
		return err
	}
	if node.PropertyNames != nil {
		if err := w.walk(node.PropertyNames, path.child("propertyNames"), next); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) descendMap(m map[string]*Schema, path Path, key string, depth int) error {
	for _, name := range sortedKeys(m) {
		child := m[name]
		if err := w.walk(child, path.child(key).child(name), depth); err != nil {
			return err
		}
	}
	return nil
}

// schemaMapToMap unwraps a *SchemaMap into the plain map type descendMap
// ranges over; a nil pointer becomes a nil map, which ranges zero times.
func schemaMapToMap(sm *SchemaMap) map[string]*Schema {
	if sm == nil {
		return nil
	}
	return map[string]*Schema(*sm)
}

func (w *walker) descendSlice(children []*Schema, path Path, key string, depth int) error {
	for i, child := range children {
		if err := w.walk(child, path.child(key).child(indexString(i)), depth); err != nil {
			return err
		}
	}
	return nil
}

// sortedKeys returns m's keys in ascending order, for deterministic traversal.
func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// indexString renders an array index as a decimal string (spec §4.1: "Numeric
// indices become decimal strings").
func indexString(i int) string {
	return strconv.Itoa(i)
}
