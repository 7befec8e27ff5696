package sheet

// FrameRecord describes one frame's placement on the sheet.
type FrameRecord struct {
	Index int `json:"index"`
	X     int `json:"x"`
	Y     int `json:"y"`
	W     int `json:"w"`
	H     int `json:"h"`
}

// SizeRecord is a width/height pair in pixels.
type SizeRecord struct {
	W int `json:"w"`
	H int `json:"h"`
}

// MetaRecord summarizes the sheet geometry.
type MetaRecord struct {
	Size        SizeRecord `json:"size"`
	FrameSize   SizeRecord `json:"frameSize"`
	Columns     int        `json:"columns"`
	Rows        int        `json:"rows"`
	TotalFrames int        `json:"totalFrames"`
}

// Metadata is the sidecar document emitted next to a sheet. Its field
// names and nesting are a compatibility contract with the engines and
// tools that consume it; do not rename them.
type Metadata struct {
	Frames []FrameRecord `json:"frames"`
	Meta   MetaRecord    `json:"meta"`
}

// EmitMetadata derives the metadata document from a layout. Frames are
// listed in capture order, one record per frame actually placed:
// trailing empty cells never appear, and TotalFrames counts frames, not
// grid cells.
func EmitMetadata(layout *Layout) Metadata {
	frames := make([]FrameRecord, len(layout.Placements))
	for i, p := range layout.Placements {
		frames[i] = FrameRecord{Index: p.Index, X: p.X, Y: p.Y, W: p.W, H: p.H}
	}
	return Metadata{
		Frames: frames,
		Meta: MetaRecord{
			Size:        SizeRecord{W: layout.CanvasWidth, H: layout.CanvasHeight},
			FrameSize:   SizeRecord{W: layout.FrameWidth, H: layout.FrameHeight},
			Columns:     layout.Columns,
			Rows:        layout.Rows,
			TotalFrames: len(layout.Placements),
		},
	}
}
