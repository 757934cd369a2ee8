package timeline

import (
	"fmt"
	"sort"
)

// Segment is one span of the timeline. Content is opaque to the timeline.
type Segment struct {
	ID             string
	DurationFrames int
	Content        any
}

// FrameRange is the fixed frame rate and length of a timeline
type FrameRange struct {
	FPS         int
	TotalFrames int
}

// Seconds converts a frame count to seconds
func (r FrameRange) Seconds(frames int) float64 {
	return float64(frames) / float64(r.FPS)
}

// InvalidTimelineError reports a segment/transition arrangement that cannot
// be scheduled. Segment and Transition are -1 when not applicable.
type InvalidTimelineError struct {
	Segment    int
	Transition int
	Reason     string
}

func (e *InvalidTimelineError) Error() string {
	switch {
	case e.Segment >= 0:
		return fmt.Sprintf("invalid timeline: segment %d: %s", e.Segment, e.Reason)
	case e.Transition >= 0:
		return fmt.Sprintf("invalid timeline: transition %d: %s", e.Transition, e.Reason)
	default:
		return fmt.Sprintf("invalid timeline: %s", e.Reason)
	}
}

// Adjustment records a transition shortened at construction
type Adjustment struct {
	Transition int
	Requested  int
	Applied    int
}

// Window is the frame range [Start, End) in which a transition overlaps
// segments Transition and Transition+1
type Window struct {
	Transition int
	Start, End int
	Spec       TransitionSpec
}

// Timeline is an immutable schedule of segments. It is safe for concurrent use.
type Timeline struct {
	fps         int
	segments    []Segment
	transitions []TransitionSpec
	starts      []int
	total       int
	sequential  bool
	adjustments []Adjustment
}

// New builds a timeline with a transition between every pair of adjacent
// segments. Transitions longer than a neighbouring segment are clamped to it,
// and to what is left of the preceding segment after its own incoming
// transition, so no frame ever shows more than two segments.
func New(fps int, segments []Segment, transitions []TransitionSpec) (*Timeline, error) {
	if err := validateSegments(fps, segments); err != nil {
		return nil, err
	}

	boundaries := max(len(segments)-1, 0)
	if len(transitions) > boundaries {
		return nil, &InvalidTimelineError{Segment: -1, Transition: boundaries,
			Reason: fmt.Sprintf("no neighbouring segment (%d segments allow %d transitions)", len(segments), boundaries)}
	}
	if len(transitions) < boundaries {
		return nil, &InvalidTimelineError{Segment: -1, Transition: len(transitions),
			Reason: fmt.Sprintf("missing transition between segments %d and %d", len(transitions), len(transitions)+1)}
	}

	tl := &Timeline{
		fps:         fps,
		segments:    append([]Segment(nil), segments...),
		transitions: make([]TransitionSpec, len(transitions)),
	}

	incoming := 0
	for i, tr := range transitions {
		if tr.DurationFrames < 0 {
			return nil, &InvalidTimelineError{Segment: -1, Transition: i,
				Reason: fmt.Sprintf("duration must not be negative, got %d", tr.DurationFrames)}
		}
		if tr.Kind == None {
			tr.DurationFrames = 0
		}

		prev, next := segments[i].DurationFrames, segments[i+1].DurationFrames
		limit := min(prev, next, prev-incoming)
		if tr.DurationFrames > limit {
			tl.adjustments = append(tl.adjustments, Adjustment{Transition: i, Requested: tr.DurationFrames, Applied: limit})
			tr.DurationFrames = limit
		}

		tl.transitions[i] = tr
		incoming = tr.DurationFrames
	}

	tl.layout()
	return tl, nil
}

// NewSequential builds a timeline with segments back to back and no overlap
func NewSequential(fps int, segments []Segment) (*Timeline, error) {
	if err := validateSegments(fps, segments); err != nil {
		return nil, err
	}
	tl := &Timeline{
		fps:        fps,
		segments:   append([]Segment(nil), segments...),
		sequential: true,
	}
	tl.layout()
	return tl, nil
}

func validateSegments(fps int, segments []Segment) error {
	if fps <= 0 {
		return &InvalidTimelineError{Segment: -1, Transition: -1, Reason: fmt.Sprintf("fps must be positive, got %d", fps)}
	}
	seen := make(map[string]int, len(segments))
	for i, s := range segments {
		if s.ID == "" {
			return &InvalidTimelineError{Segment: i, Transition: -1, Reason: "empty id"}
		}
		if j, dup := seen[s.ID]; dup {
			return &InvalidTimelineError{Segment: i, Transition: -1, Reason: fmt.Sprintf("id %q already used by segment %d", s.ID, j)}
		}
		seen[s.ID] = i
		if s.DurationFrames <= 0 {
			return &InvalidTimelineError{Segment: i, Transition: -1,
				Reason: fmt.Sprintf("%q: duration must be positive, got %d", s.ID, s.DurationFrames)}
		}
	}
	return nil
}

// layout computes start offsets: each segment starts where the previous one
// ends, pulled back by the transition between them.
func (tl *Timeline) layout() {
	tl.starts = make([]int, len(tl.segments))
	cursor := 0
	for i, s := range tl.segments {
		tl.starts[i] = cursor
		cursor += s.DurationFrames
		if !tl.sequential && i < len(tl.transitions) {
			cursor -= tl.transitions[i].DurationFrames
		}
	}
	if n := len(tl.segments); n > 0 {
		tl.total = tl.starts[n-1] + tl.segments[n-1].DurationFrames
	}
}

// FPS returns the frame rate
func (tl *Timeline) FPS() int { return tl.fps }

// TotalFrames returns the timeline length; 0 for a timeline without segments
func (tl *Timeline) TotalFrames() int { return tl.total }

// Range returns the frame rate and length
func (tl *Timeline) Range() FrameRange {
	return FrameRange{FPS: tl.fps, TotalFrames: tl.total}
}

// Sequential reports whether the timeline was built without transitions
func (tl *Timeline) Sequential() bool { return tl.sequential }

// Len returns the number of segments
func (tl *Timeline) Len() int { return len(tl.segments) }

// Segment returns segment i
func (tl *Timeline) Segment(i int) Segment { return tl.segments[i] }

// Segments returns a copy of the segments
func (tl *Timeline) Segments() []Segment {
	return append([]Segment(nil), tl.segments...)
}

// Transitions returns a copy of the effective (clamped) transitions
func (tl *Timeline) Transitions() []TransitionSpec {
	return append([]TransitionSpec(nil), tl.transitions...)
}

// Adjustments lists transitions that were shortened to fit their neighbours
func (tl *Timeline) Adjustments() []Adjustment {
	return append([]Adjustment(nil), tl.adjustments...)
}

// StartOf returns the absolute start frame of segment i
func (tl *Timeline) StartOf(i int) int { return tl.starts[i] }

// Windows returns the non-empty transition windows in order
func (tl *Timeline) Windows() []Window {
	var out []Window
	for i, tr := range tl.transitions {
		if tr.DurationFrames == 0 {
			continue
		}
		start := tl.starts[i+1]
		out = append(out, Window{Transition: i, Start: start, End: start + tr.DurationFrames, Spec: tr})
	}
	return out
}

// Role tells how a segment takes part in a frame
type Role int

const (
	Solo Role = iota
	Exiting
	Entering
)

func (r Role) String() string {
	switch r {
	case Exiting:
		return "exiting"
	case Entering:
		return "entering"
	default:
		return "solo"
	}
}

// Active is one segment visible at a frame
type Active struct {
	SegmentID      string
	Index          int
	LocalFrame     int
	DurationFrames int
	Weight         float64 // blend weight; the entries of one frame sum to 1
	Progress       float64 // eased progress through the transition, 0 when solo
	Role           Role
	Transition     *TransitionSpec
}

// ActiveAt returns the segments visible at an absolute frame: one entry with
// weight 1 inside a segment, two entries inside a transition window (outgoing
// first). Frames outside [0, TotalFrames) have no active segments.
func (tl *Timeline) ActiveAt(frame int) []Active {
	if frame < 0 || frame >= tl.total {
		return nil
	}

	// last segment starting at or before frame
	j := sort.Search(len(tl.starts), func(k int) bool { return tl.starts[k] > frame }) - 1

	if !tl.sequential && j > 0 {
		tr := tl.transitions[j-1]
		windowStart := tl.starts[j]
		if tr.DurationFrames > 0 && frame < windowStart+tr.DurationFrames {
			p := tr.Timing.Apply(float64(frame-windowStart) / float64(tr.DurationFrames))
			spec := tr
			return []Active{
				tl.active(j-1, frame, 1-p, p, Exiting, &spec),
				tl.active(j, frame, p, p, Entering, &spec),
			}
		}
	}

	return []Active{tl.active(j, frame, 1, 0, Solo, nil)}
}

func (tl *Timeline) active(i, frame int, weight, progress float64, role Role, tr *TransitionSpec) Active {
	s := tl.segments[i]
	return Active{
		SegmentID:      s.ID,
		Index:          i,
		LocalFrame:     frame - tl.starts[i],
		DurationFrames: s.DurationFrames,
		Weight:         weight,
		Progress:       progress,
		Role:           role,
		Transition:     tr,
	}
}
