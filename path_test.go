package llmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", nil, "#"},
		{"one segment", Path{"properties"}, "#/properties"},
		{"nested", Path{"properties", "x", "items"}, "#/properties/x/items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := Path{"properties"}
	a := base.child("x")
	b := base.child("y")

	assert.Equal(t, "#/properties/x", a.String())
	assert.Equal(t, "#/properties/y", b.String())
	assert.Equal(t, "#/properties", base.String())
}
