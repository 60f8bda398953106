package weight_test

import (
	"encoding/json"
	"testing"

	"freight/internal/core/domain/model/weight"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_String(t *testing.T) {
	cases := map[weight.Source]string{
		weight.Curated:            "curated",
		weight.Dimension:          "dimension",
		weight.Historical:         "historical",
		weight.CategoryHistorical: "category_historical",
		weight.CategoryDefault:    "category_default",
		weight.Fallback:           "fallback",
		weight.Unknown:            "unknown",
		weight.Source(42):         "unknown",
	}
	for source, expected := range cases {
		assert.Equal(t, expected, source.String())
	}
}

func TestSource_Validate(t *testing.T) {
	for _, s := range weight.AllSources() {
		require.NoError(t, s.Validate())
	}

	err := weight.Unknown.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, weight.Source(99).Validate())
}

func TestParseSource(t *testing.T) {
	t.Run("parses_every_tag", func(t *testing.T) {
		for _, s := range weight.AllSources() {
			parsed, err := weight.ParseSource(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects_unknown_tag", func(t *testing.T) {
		_, err := weight.ParseSource("unknown")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSource_MarshalsAsMapKey(t *testing.T) {
	payload, err := json.Marshal(map[weight.Source]int{weight.Curated: 2, weight.Fallback: 1})

	require.NoError(t, err)
	assert.JSONEq(t, `{"curated":2,"fallback":1}`, string(payload))
}
