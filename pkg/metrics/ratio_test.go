package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioJSON(t *testing.T) {
	data, err := json.Marshal(Ratio(Infinite))
	require.NoError(t, err)
	assert.Equal(t, `"Infinity"`, string(data))

	data, err = json.Marshal(Ratio(1.5))
	require.NoError(t, err)
	assert.Equal(t, `1.5`, string(data))

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &r))
	assert.True(t, r.IsInfinite())

	require.NoError(t, json.Unmarshal([]byte(`2.25`), &r))
	assert.Equal(t, Ratio(2.25), r)

	assert.Error(t, json.Unmarshal([]byte(`"NaN"`), &r))
}
