package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	cases := []struct {
		name        string
		done, total int
		wantSuffix  string
	}{
		{"empty category", 0, 0, " 0/0"},
		{"none done", 0, 4, " 0/4"},
		{"half done", 2, 4, " 2/4"},
		{"all done", 4, 4, " 4/4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := progressBar(tc.done, tc.total, 20)
			assert.True(t, strings.HasSuffix(got, tc.wantSuffix), "got %q", got)
		})
	}
}

func TestProgressBar_FillNeverOverflows(t *testing.T) {
	got := progressBar(10, 4, 10)
	assert.Equal(t, 10, strings.Count(got, "█"))
	assert.Equal(t, 0, strings.Count(got, "░"))
}

func TestParseID(t *testing.T) {
	id, err := parseID("toggle", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("toggle", "banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toggle")
}
