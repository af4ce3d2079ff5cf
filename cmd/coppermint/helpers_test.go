package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "100", want: "100"},
		{name: "fractional", input: "25.50", want: "25.5"},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, amount.String())
		})
	}
}

func TestParseBudgetLimit(t *testing.T) {
	limit, err := parseBudgetLimit("")
	require.NoError(t, err)
	assert.Nil(t, limit, "empty string means no limit")

	limit, err = parseBudgetLimit("500")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, "500", limit.String())

	// Zero is a valid ceiling; negative is not.
	limit, err = parseBudgetLimit("0")
	require.NoError(t, err)
	require.NotNil(t, limit)

	_, err = parseBudgetLimit("-1")
	assert.Error(t, err)
}

func TestParseDateBound(t *testing.T) {
	bound, err := parseDateBound("", false)
	require.NoError(t, err)
	assert.Nil(t, bound)

	// A calendar start date lands at midnight.
	bound, err = parseDateBound("2024-03-15", false)
	require.NoError(t, err)
	require.NotNil(t, bound)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *bound)

	// A calendar end date covers the whole day.
	bound, err = parseDateBound("2024-03-15", true)
	require.NoError(t, err)
	require.NotNil(t, bound)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), *bound)

	// Full timestamps pass through untouched.
	bound, err = parseDateBound("2024-03-15 08:30:00", true)
	require.NoError(t, err)
	require.NotNil(t, bound)
	assert.Equal(t, 8, bound.Hour())

	_, err = parseDateBound("15/03/2024", false)
	assert.Error(t, err)
}
