package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaksJSON_ValueScan(t *testing.T) {
	start := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	in := breaksJSON{
		{Start: start, End: &end, DurationMinutes: 25},
		{Start: end.Add(time.Hour)},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out breaksJSON
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 2)
	assert.True(t, out[0].End.Equal(end))
	assert.Equal(t, 25, out[0].DurationMinutes)
	assert.True(t, out[1].IsOpen())
}

func TestBreaksJSON_NilAndErrors(t *testing.T) {
	v, err := breaksJSON(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var out breaksJSON
	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	assert.Error(t, out.Scan(42))
	assert.Error(t, out.Scan([]byte("{not json")))
}
