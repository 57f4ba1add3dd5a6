package llmschema

import "github.com/kaptinlin/jsonpointer"

// Path is a JSON-Pointer location inside the schema being transformed,
// represented as a token slice rather than a pre-joined string. Spec §4.1
// requires that "the skeleton is the only place paths are built" and that
// paths be "JSON-Pointer-shaped"; carrying tokens instead of a string lets
// every pass append one segment per descent without repeated string
// concatenation, the same tradeoff the teacher's collectRegexErrors makes
// ("avoiding string parsing overhead").
type Path []string

// rootPath is the empty path, rendered as "#".
var rootPath = Path(nil)

// child returns a new Path with segment appended. Path is never mutated in
// place so a single traversal frame can hand the same prefix to multiple
// children without aliasing bugs.
func (p Path) child(segment string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}

// String renders the path as a "#"-rooted JSON Pointer, e.g. "#/properties/x/items".
func (p Path) String() string {
	if len(p) == 0 {
		return "#"
	}
	return "#" + jsonpointer.Format([]string(p)...)
}
