package llmschema

import "errors"

// === Fatal pipeline errors ===
//
// These sentinels classify a *ConvertError's Kind. A pass that fails returns
// a *ConvertError wrapping one of these; no downstream pass runs, but the
// codec accumulated so far is still returned to the caller for debugging.
var (
	// ErrDepthExceeded is returned when traversal depth exceeds ConvertOptions.MaxDepth.
	ErrDepthExceeded = errors.New("traversal depth exceeded")

	// ErrReferenceCycle is returned when a $ref graph cycle is detected (A -> B -> A).
	ErrReferenceCycle = errors.New("reference cycle detected")

	// ErrRefExpansionTooLarge is returned when inlining would multiply schema size
	// beyond ConvertOptions.MaxInlineExpansion.
	ErrRefExpansionTooLarge = errors.New("reference expansion too large")

	// ErrUnsupportedRef is returned for external (absolute URI, remote) $ref targets.
	ErrUnsupportedRef = errors.New("unsupported external reference")

	// ErrCompositionMerge is returned when allOf branches cannot be reconciled
	// (two branches, or two same-named properties, whose types do not intersect).
	ErrCompositionMerge = errors.New("composition merge failed")

	// ErrMalformedSchema is returned when a non-object value appears where an
	// object schema was required.
	ErrMalformedSchema = errors.New("malformed schema")

	// ErrInternalInvariantViolated guards pipeline invariants that should be
	// unreachable given well-formed input; seeing this is a pipeline bug.
	ErrInternalInvariantViolated = errors.New("internal invariant violated")
)

// === Rat conversion errors ===
var (
	// ErrUnsupportedRatType is returned when a value cannot be interpreted as a number.
	ErrUnsupportedRatType = errors.New("unsupported rat type")

	// ErrRatConversion is returned when a numeric string cannot be parsed as a big.Rat.
	ErrRatConversion = errors.New("rat conversion failed")
)

// ConvertError is the error type returned by Convert and by individual passes.
// It wraps one of the fatal sentinels above with the location and provider
// target the failure pertains to, per spec §7 ("every error carries a hint
// string… paths are JSON-Pointer-shaped… target is included").
type ConvertError struct {
	Kind   error  // one of the sentinels above; compare with errors.Is
	Path   string // JSON-Pointer path of the node that triggered the failure
	Target Target // provider target in effect when the failure occurred
	Hint   string // human-readable explanation
}

func (e *ConvertError) Error() string {
	if e.Path == "" {
		return e.Kind.Error() + ": " + e.Hint
	}
	return e.Kind.Error() + " at " + e.Path + ": " + e.Hint
}

func (e *ConvertError) Unwrap() error { return e.Kind }

// newConvertError builds a *ConvertError, used by every pass that fails fast.
func newConvertError(kind error, path string, target Target, hint string) *ConvertError {
	return &ConvertError{Kind: kind, Path: path, Target: target, Hint: hint}
}
