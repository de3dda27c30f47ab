package rotator

import "github.com/archangelinux/portfolio/internal/morph"

// Frame is the output of one transition, handed to the rendering side.
type Frame struct {
	// Run identifies the rotation that produced the frame.
	Run string `json:"run"`

	// Tick counts transitions since start. The seeded frame is tick 0.
	Tick int64 `json:"tick"`

	// Step is the index of the active variant.
	Step int `json:"step"`

	// Count is the number of variants in the rotation.
	Count int `json:"count"`

	// Variant is the active variant string.
	Variant string `json:"variant"`

	// Letters is the identified sequence on display.
	Letters morph.Sequence `json:"letters"`

	// Stats summarizes the transition. Zero for the seeded frame.
	Stats morph.Stats `json:"stats"`
}

// IsFirst reports whether the active variant is the first of the rotation.
func (f Frame) IsFirst() bool {
	return f.Step == 0
}

// IsLast reports whether the active variant is the last of the rotation.
func (f Frame) IsLast() bool {
	return f.Count > 0 && f.Step == f.Count-1
}

func (f Frame) clone() Frame {
	f.Letters = f.Letters.Clone()
	return f
}
