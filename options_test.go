package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(Claude)
	assert.Equal(t, Claude, opts.Target)
	assert.Equal(t, Lenient, opts.Mode)
	assert.Equal(t, 64, opts.MaxDepth)
	assert.Equal(t, 10, opts.MaxInlineExpansion)
	assert.True(t, opts.InlineRefs)
	assert.True(t, opts.EnumDefaultFirst)
}

func TestConvertOptions_NormalizedFillsZeroValues(t *testing.T) {
	opts := ConvertOptions{Target: OpenaiStrict}
	normalized := opts.normalized()
	assert.Equal(t, 64, normalized.MaxDepth)
	assert.Equal(t, 10, normalized.MaxInlineExpansion)
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "OpenaiStrict", OpenaiStrict.String())
	assert.Equal(t, "Claude", Claude.String())
	assert.Equal(t, "Gemini", Gemini.String())
}
