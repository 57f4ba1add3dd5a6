package llmschema

// Convert transforms schema into the structural subset opts.Target accepts
// for LLM structured-output, returning the rewritten schema alongside the
// codec describing every drop and transform (spec §6's external contract).
// The input schema is never mutated; Convert clones it before the pipeline
// runs (spec §3 Lifecycles).
func Convert(schema *Schema, opts ConvertOptions) (*Schema, Codec, error) {
	opts = opts.normalized()
	if schema == nil {
		return nil, nil, newConvertError(ErrMalformedSchema, rootPath.String(), opts.Target, "schema is nil")
	}

	result, codec, err := runPipeline(schema, opts)
	if err != nil {
		return nil, codec, err
	}
	return result, codec, nil
}
