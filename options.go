package llmschema

// Target identifies the structured-output provider a schema is compiled for.
type Target int

const (
	// OpenaiStrict targets OpenAI's Structured Outputs "strict" mode.
	OpenaiStrict Target = iota
	// Claude targets Anthropic's tool/structured-output schema subset.
	Claude
	// Gemini targets Google's Gemini structured-output schema subset.
	Gemini
)

// String implements fmt.Stringer for readable error hints and test output.
func (t Target) String() string {
	switch t {
	case OpenaiStrict:
		return "OpenaiStrict"
	case Claude:
		return "Claude"
	case Gemini:
		return "Gemini"
	default:
		return "Unknown"
	}
}

// Mode selects between lenient best-effort conversion and OpenAI's strict regime.
type Mode int

const (
	// Lenient performs every pass except strict-only ones (P6 sealing, P9 advisories).
	Lenient Mode = iota
	// Strict additionally seals object schemas (P6) and runs the P9 provider-compat audit.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "Strict"
	}
	return "Lenient"
}

// ConvertOptions configures a single Convert invocation. It is read-only after
// construction; a Pipeline never mutates the options it was given, and the
// same ConvertOptions value may be shared safely across concurrent Convert
// calls (spec §5: "capability matrix and option structs are read-only after
// construction").
type ConvertOptions struct {
	// Target is the provider whose schema subset the output must conform to. Required.
	Target Target

	// Mode selects Lenient (default) or Strict conversion.
	Mode Mode

	// MaxDepth bounds traversal depth; exceeding it fails the active pass with
	// ErrDepthExceeded. Default 64.
	MaxDepth int

	// MaxInlineExpansion bounds P1's $ref fan-out as a multiple of the input
	// schema's node count. Default 10.
	MaxInlineExpansion int

	// InlineRefs selects whether P1 inlines $ref (true, default) or leaves it
	// untouched for targets that accept $ref natively.
	InlineRefs bool

	// EnumDefaultFirst selects whether P7 reorders an enum so the sibling
	// default's value becomes index 0. Default true.
	EnumDefaultFirst bool
}

// hardRecursionLimit is an implementation-constant safety net independent of
// MaxDepth (spec §4.1 step 3, §5): malformed input cannot force unbounded
// recursion even if a caller sets a very large MaxDepth.
const hardRecursionLimit = 100

// DefaultOptions returns a ConvertOptions with every default from spec §6
// applied, for the given target. Mirrors the teacher's NewCompiler()
// convention of a constructor returning a ready-to-use zero-config value.
func DefaultOptions(target Target) ConvertOptions {
	return ConvertOptions{
		Target:             target,
		Mode:               Lenient,
		MaxDepth:           64,
		MaxInlineExpansion: 10,
		InlineRefs:         true,
		EnumDefaultFirst:   true,
	}
}

// normalized returns a copy of o with zero-valued numeric fields replaced by
// their documented defaults, so callers who build a ConvertOptions struct
// literal (common in tests and simple call sites) don't have to repeat
// DefaultOptions' constants.
func (o ConvertOptions) normalized() ConvertOptions {
	if o.MaxDepth == 0 {
		o.MaxDepth = 64
	}
	if o.MaxInlineExpansion == 0 {
		o.MaxInlineExpansion = 10
	}
	return o
}
