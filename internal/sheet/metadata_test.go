package sheet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitMetadataMirrorsLayout(t *testing.T) {
	layout, err := PlanLayout(10, 32, 24, LayoutOptions{Columns: 4})
	require.NoError(t, err)

	meta := EmitMetadata(layout)

	require.Len(t, meta.Frames, 10)
	for i, f := range meta.Frames {
		p := layout.Placements[i]
		assert.Equal(t, i, f.Index)
		assert.Equal(t, FrameRecord{Index: p.Index, X: p.X, Y: p.Y, W: p.W, H: p.H}, f)
	}

	assert.Equal(t, SizeRecord{W: 128, H: 72}, meta.Meta.Size)
	assert.Equal(t, SizeRecord{W: 32, H: 24}, meta.Meta.FrameSize)
	assert.Equal(t, 4, meta.Meta.Columns)
	assert.Equal(t, 3, meta.Meta.Rows)
}

func TestEmitMetadataCountsFramesNotCells(t *testing.T) {
	// 10 frames on a 4x3 grid leave two empty cells; totalFrames must
	// still be 10 and the frame list must not pad to 12.
	layout, err := PlanLayout(10, 32, 32, LayoutOptions{Columns: 4})
	require.NoError(t, err)

	meta := EmitMetadata(layout)
	assert.Equal(t, 10, meta.Meta.TotalFrames)
	assert.Len(t, meta.Frames, 10)
}

func TestMetadataJSONShape(t *testing.T) {
	layout, err := PlanLayout(2, 16, 16, LayoutOptions{})
	require.NoError(t, err)

	raw, err := json.Marshal(EmitMetadata(layout))
	require.NoError(t, err)

	// Consumers address the document by these exact key names, so the
	// wire shape is pinned down key by key.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.ElementsMatch(t, []string{"frames", "meta"}, keysOf(doc))

	var metaDoc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["meta"], &metaDoc))
	assert.ElementsMatch(t,
		[]string{"size", "frameSize", "columns", "rows", "totalFrames"},
		keysOf(metaDoc))

	var sizeDoc map[string]int
	require.NoError(t, json.Unmarshal(metaDoc["size"], &sizeDoc))
	assert.ElementsMatch(t, []string{"w", "h"}, keysOf(sizeDoc))

	var frameDocs []map[string]int
	require.NoError(t, json.Unmarshal(doc["frames"], &frameDocs))
	require.Len(t, frameDocs, 2)
	assert.ElementsMatch(t, []string{"index", "x", "y", "w", "h"}, keysOf(frameDocs[0]))
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
