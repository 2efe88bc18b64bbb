package highlight_test

import (
	"encoding/json"
	"testing"

	"bennypowers.dev/vhls/internal/highlight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindText(t *testing.T) {
	kinds := []highlight.Kind{
		highlight.StringLiteral,
		highlight.JSXStringLiteral,
		highlight.PropValueStringLiteral,
		highlight.PropValueTemplateLiteral,
		highlight.ComplexJSX,
	}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			data, err := json.Marshal(k)
			require.NoError(t, err)

			var got highlight.Kind
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, k, got)
		})
	}

	var k highlight.Kind
	assert.Error(t, k.UnmarshalText([]byte("paragraph")))
	assert.Equal(t, "Kind(42)", highlight.Kind(42).String())
}
