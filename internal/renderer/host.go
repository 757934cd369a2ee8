package renderer

import (
	"errors"
	"fmt"

	"github.com/ivlev/teaserkit/internal/scene"
	"github.com/ivlev/teaserkit/internal/timeline"
)

// ErrFrameOutOfRange is returned for frames outside the timeline
var ErrFrameOutOfRange = errors.New("frame out of range")

// Layer is one segment visible in a frame
type Layer struct {
	SegmentID    string       `yaml:"segment"`
	LocalFrame   int          `yaml:"local_frame"`
	Weight       float64      `yaml:"weight"`
	Role         string       `yaml:"role"`
	Transition   string       `yaml:"transition,omitempty"`
	Presentation Presentation `yaml:"presentation"`
	Scene        scene.Frame  `yaml:"scene"`
}

// Frame is the full visual state of one timeline frame, layers bottom to top
type Frame struct {
	Index  int     `yaml:"frame"`
	Time   float64 `yaml:"time"` // seconds
	Layers []Layer `yaml:"layers"`
}

// Host answers frame queries for a timeline whose segments hold scene.Content.
// It keeps no state between calls and is safe for concurrent use.
type Host struct {
	Timeline      *timeline.Timeline
	Width, Height int
}

// FrameAt assembles the frame at an absolute frame index
func (h *Host) FrameAt(frame int) (Frame, error) {
	tl := h.Timeline
	if frame < 0 || frame >= tl.TotalFrames() {
		return Frame{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, frame, tl.TotalFrames())
	}

	active := tl.ActiveAt(frame)
	out := Frame{
		Index:  frame,
		Time:   tl.Range().Seconds(frame),
		Layers: make([]Layer, 0, len(active)),
	}

	for _, a := range active {
		content, ok := tl.Segment(a.Index).Content.(scene.Content)
		if !ok {
			return Frame{}, fmt.Errorf("segment %q holds %T, not scene content", a.SegmentID, tl.Segment(a.Index).Content)
		}

		layer := Layer{
			SegmentID:    a.SegmentID,
			LocalFrame:   a.LocalFrame,
			Weight:       a.Weight,
			Role:         a.Role.String(),
			Presentation: Solo,
			Scene:        content.Render(a.LocalFrame, tl.FPS(), a.DurationFrames),
		}
		if a.Transition != nil {
			layer.Transition = a.Transition.String()
			layer.Presentation = Present(*a.Transition, a.Role, a.Progress, h.Width, h.Height)
		}
		out.Layers = append(out.Layers, layer)
	}
	return out, nil
}
