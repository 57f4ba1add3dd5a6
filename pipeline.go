package llmschema

// passFunc is the shape every numbered pass implements: consume the working
// schema plus the options and target in effect, and return a (possibly
// mutated in place) schema, the codec entries it appended, and an error that
// aborts the pipeline (spec §2: "state flows forward only; no pass reads a
// later pass's output").
type passFunc func(schema *Schema, opts ConvertOptions, target Target) (*Schema, Codec, error)

// pipelinePasses is the declared pass order. A tagged list dispatched by a
// driver, rather than dynamic registration, keeps ordering explicit and
// testable (spec §9 Design Notes).
var pipelinePasses = []passFunc{
	p0Normalize,
	p1RefResolve,
	p2Composition,
	p3Unevaluated,
	p4Conditional,
	p5Defaults,
	p6StrictSeal,
	p7Constraints,
	p8TypeDecoration,
	p9ProviderCompat,
}

// runPipeline threads schema and codec through every pass in order,
// stopping at the first fatal error. The codec accumulated up to that point
// is still returned (spec §5: "no partial schema is returned, but the codec
// up to that point is").
func runPipeline(schema *Schema, opts ConvertOptions) (*Schema, Codec, error) {
	working := schema.Clone()
	var codec Codec

	for _, pass := range pipelinePasses {
		next, entries, err := pass(working, opts, opts.Target)
		codec = append(codec, entries...)
		if err != nil {
			return nil, codec, err
		}
		working = next
	}

	return working, codec, nil
}
