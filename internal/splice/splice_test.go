package splice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzmerge/internal/splice"
)

const (
	startMarker = "<!-- CONFORMANCE_TABLE_START -->"
	endMarker   = "<!-- CONFORMANCE_TABLE_END -->"
)

func TestReplace_BetweenMarkers(t *testing.T) {
	t.Parallel()

	doc := []byte("before\n" + startMarker + "\nold table\n" + endMarker + "\nafter\n")
	out, err := splice.Replace(doc, startMarker, endMarker, []byte("\nnew table\n"))
	require.NoError(t, err)

	assert.Equal(t, "before\n"+startMarker+"\nnew table\n"+endMarker+"\nafter\n", string(out))
}

func TestReplace_EmptyRegion(t *testing.T) {
	t.Parallel()

	doc := []byte(startMarker + endMarker)
	out, err := splice.Replace(doc, startMarker, endMarker, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, startMarker+"x"+endMarker, string(out))
}

func TestReplace_MissingMarkersLeaveDocUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"no markers", "plain readme\n"},
		{"start only", "x\n" + startMarker + "\ny\n"},
		{"end only", "x\n" + endMarker + "\ny\n"},
		{"end before start", endMarker + "\n" + startMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := splice.Replace([]byte(tt.doc), startMarker, endMarker, []byte("table"))
			require.Error(t, err)
			assert.Equal(t, tt.doc, string(out))
		})
	}
}

func TestReplace_OutsideBytesVerbatim(t *testing.T) {
	t.Parallel()

	doc := []byte("# Title\n\nprose " + startMarker + "inner" + endMarker + " tail")
	out, err := splice.Replace(doc, startMarker, endMarker, nil)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nprose "+startMarker+endMarker+" tail", string(out))
}
