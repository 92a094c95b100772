package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_SoloDiaYRFC3339(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	d, err = ParseDate("2024-03-15T10:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 15, 15, 30, 0, 0, time.UTC)))

	_, err = ParseDate("15/03/2024")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var in struct {
		Start Date  `json:"start"`
		End   *Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-01-02","end":null}`), &in))
	assert.Equal(t, 2024, in.Start.Year())
	assert.Nil(t, in.End)
	assert.Nil(t, in.End.TimePtr())

	assert.Error(t, json.Unmarshal([]byte(`{"start":20240102}`), &in))
}
