package llmschema

// Capability describes how a provider target treats a single schema keyword.
type Capability int

const (
	// Supported means the keyword passes through untouched.
	Supported Capability = iota
	// Drop means the keyword is removed (and recorded as a DroppedConstraint).
	Drop
	// Rewrite means the keyword survives only in a transformed shape (e.g.
	// const becoming a single-value enum, or a sealed required list).
	Rewrite
)

func (c Capability) String() string {
	switch c {
	case Supported:
		return "Supported"
	case Drop:
		return "Drop"
	case Rewrite:
		return "Rewrite"
	default:
		return "Unknown"
	}
}

// capabilityTable is the authoritative subset from spec §6, one row per
// keyword this pipeline ever drops or rewrites. A keyword absent from a
// target's row is implicitly Supported — most structural keywords (type,
// properties, required, items, prefixItems, $defs, anyOf, oneOf, allOf) never
// need an entry because every target passes them through. Adding a new
// target is a pure data change: one more map key, no code change to any pass.
var capabilityTable = map[Target]map[string]Capability{
	OpenaiStrict: {
		"const":                Rewrite, // -> single-value enum (P7)
		"minimum":              Drop,
		"maximum":              Drop,
		"exclusiveMinimum":     Drop,
		"exclusiveMaximum":     Drop,
		"multipleOf":           Drop,
		"minLength":            Drop,
		"maxLength":            Drop,
		"minItems":             Drop,
		"maxItems":             Drop,
		"uniqueItems":          Drop,
		"pattern":              Supported,
		"format":               Drop,
		"not":                  Drop,
		"if":                   Drop,
		"then":                 Drop,
		"else":                 Drop,
		"default":              Drop, // dropped after P5 propagates its value
		"additionalProperties": Rewrite, // P6 seals every object to false
	},
	Claude: {
		"const":                Rewrite,
		"minimum":              Drop,
		"maximum":              Drop,
		"exclusiveMinimum":     Drop,
		"exclusiveMaximum":     Drop,
		"multipleOf":           Drop,
		"minLength":            Drop,
		"maxLength":            Drop,
		"minItems":             Drop,
		"maxItems":             Drop,
		"uniqueItems":          Drop,
		"pattern":              Drop,
		"format":               Drop,
		"not":                  Drop,
		"if":                   Drop,
		"then":                 Drop,
		"else":                 Drop,
		"default":              Drop,
		"additionalProperties": Supported,
	},
	Gemini: {
		"$ref":                 Drop, // Gemini requires inline schemas, no $ref
		"allOf":                Rewrite, // P2 merges branches into one object schema
		"anyOf":                Rewrite, // P2 flattens enum-only branches into a single enum
		"oneOf":                Rewrite, // same flattening as anyOf
		"const":                Supported,
		"minimum":              Supported,
		"maximum":              Supported,
		"exclusiveMinimum":     Supported,
		"exclusiveMaximum":     Supported,
		"multipleOf":           Supported,
		"minLength":            Supported,
		"maxLength":            Supported,
		"minItems":             Supported,
		"maxItems":             Supported,
		"uniqueItems":          Supported,
		"pattern":              Drop,
		"format":               Rewrite, // allow-listed formats only, rest dropped
		"not":                  Drop,
		"if":                   Drop,
		"then":                 Drop,
		"else":                 Drop,
		"default":              Drop,
		"additionalProperties": Supported,
	},
}

// capability reports how target treats keyword. Keywords not present in the
// target's row are Supported: the common case of a structural keyword every
// provider accepts as-is.
func capability(target Target, keyword string) Capability {
	row, ok := capabilityTable[target]
	if !ok {
		return Supported
	}
	if c, ok := row[keyword]; ok {
		return c
	}
	return Supported
}

// geminiFormatAllowlist lists the "format" values Gemini's schema subset
// recognizes; every other value is dropped by P8 even though format itself
// is Rewrite-capable for this target.
var geminiFormatAllowlist = map[string]struct{}{
	"date-time": {},
	"date":      {},
	"enum":      {},
}

func geminiFormatAllowed(format string) bool {
	_, ok := geminiFormatAllowlist[format]
	return ok
}
