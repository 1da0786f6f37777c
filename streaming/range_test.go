package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange_NoHeader(t *testing.T) {
	rng, err := ParseRange("", 1000)
	require.NoError(t, err)
	assert.Nil(t, rng)
}

func TestParseRange_Valid(t *testing.T) {
	cases := []struct {
		name   string
		header string
		size   int64
		start  int64
		end    int64
	}{
		{"closed range", "bytes=0-499", 1000, 0, 499},
		{"interior range", "bytes=500-999", 1000, 500, 999},
		{"open ended covers rest of file", "bytes=200-", 1000, 200, 999},
		{"single byte", "bytes=42-42", 1000, 42, 42},
		{"last byte", "bytes=999-999", 1000, 999, 999},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ParseRange(tc.header, tc.size)
			require.NoError(t, err)
			require.NotNil(t, rng)
			assert.Equal(t, tc.start, rng.Start)
			assert.Equal(t, tc.end, rng.End)
			assert.Equal(t, tc.end-tc.start+1, rng.Length())
		})
	}
}

func TestParseRange_Unsatisfiable(t *testing.T) {
	cases := []struct {
		name   string
		header string
		size   int64
	}{
		{"start at size", "bytes=1000-", 1000},
		{"start beyond size", "bytes=5000-6000", 1000},
		{"end beyond size", "bytes=0-1000", 1000},
		{"inverted range", "bytes=500-100", 1000},
		{"multi-part spec", "bytes=0-10,20-30", 1000},
		{"suffix spec", "bytes=-500", 1000},
		{"missing unit", "0-499", 1000},
		{"wrong unit", "chunks=0-499", 1000},
		{"garbage start", "bytes=abc-499", 1000},
		{"garbage end", "bytes=0-def", 1000},
		{"no dash", "bytes=042", 1000},
		{"empty file", "bytes=0-0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ParseRange(tc.header, tc.size)
			assert.ErrorIs(t, err, ErrUnsatisfiable)
			assert.Nil(t, rng)
		})
	}
}
