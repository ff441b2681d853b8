package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSpansCoverage(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{name: "shorter than one window", length: 5, size: 10, overlap: 3},
		{name: "exactly one window", length: 10, size: 10, overlap: 3},
		{name: "just over one window", length: 11, size: 10, overlap: 3},
		{name: "several windows", length: 100, size: 10, overlap: 3},
		{name: "window boundary lands on end", length: 24, size: 10, overlap: 3},
		{name: "no overlap", length: 95, size: 10, overlap: 0},
		{name: "large document defaults", length: 12345, size: DefaultChunkSize, overlap: DefaultChunkOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := chunkSpans(tt.length, tt.size, tt.overlap)
			require.NotEmpty(t, spans)

			// Full coverage: first window starts at 0, last ends at length.
			assert.Equal(t, 0, spans[0].Start)
			assert.Equal(t, tt.length, spans[len(spans)-1].End)

			for i, sp := range spans {
				assert.Less(t, sp.Start, sp.End, "window %d is empty", i)
				if i < len(spans)-1 {
					// Every window but the last is exactly size bytes and
					// overlaps the next by exactly overlap bytes.
					assert.Equal(t, tt.size, sp.End-sp.Start, "window %d", i)
					assert.Equal(t, tt.overlap, sp.End-spans[i+1].Start, "overlap after window %d", i)
				}
			}
		})
	}
}

func TestChunkSpansTerminates(t *testing.T) {
	// A window that reaches the end exactly must be the last one even
	// with a nonzero overlap.
	spans := chunkSpans(10, 10, 3)
	require.Len(t, spans, 1)

	spans = chunkSpans(17, 10, 3)
	require.Len(t, spans, 2)
	assert.Equal(t, 17, spans[1].End)
}

func TestChunkSpansEmpty(t *testing.T) {
	assert.Nil(t, chunkSpans(0, 10, 3))
}
