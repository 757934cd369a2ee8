package timeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segs(durations ...int) []Segment {
	ids := []string{"title", "clip-0", "clip-1", "clip-2", "end"}
	out := make([]Segment, len(durations))
	for i, d := range durations {
		out[i] = Segment{ID: ids[i], DurationFrames: d}
	}
	return out
}

func fades(n, duration int) []TransitionSpec {
	out := make([]TransitionSpec, n)
	for i := range out {
		out[i] = TransitionSpec{Kind: Fade, DurationFrames: duration}
	}
	return out
}

func weightSum(active []Active) float64 {
	var sum float64
	for _, a := range active {
		sum += a.Weight
	}
	return sum
}

// 90+120+120 with two 15-frame overlaps is 300 frames: starts 0/75/180,
// windows [75,90) and [180,195).
func TestNew_Layout(t *testing.T) {
	tl, err := New(30, segs(90, 120, 120), fades(2, 15))
	require.NoError(t, err)

	assert.Equal(t, 300, tl.TotalFrames())
	assert.Equal(t, FrameRange{FPS: 30, TotalFrames: 300}, tl.Range())
	assert.Equal(t, 0, tl.StartOf(0))
	assert.Equal(t, 75, tl.StartOf(1))
	assert.Equal(t, 180, tl.StartOf(2))
	assert.Empty(t, tl.Adjustments())

	windows := tl.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, 75, windows[0].Start)
	assert.Equal(t, 90, windows[0].End)
	assert.Equal(t, 180, windows[1].Start)
	assert.Equal(t, 195, windows[1].End)
}

func TestActiveAt_PureAndTransitionWindows(t *testing.T) {
	tl, err := New(30, segs(90, 120, 120), fades(2, 15))
	require.NoError(t, err)

	solo := tl.ActiveAt(74)
	require.Len(t, solo, 1)
	assert.Equal(t, "title", solo[0].SegmentID)
	assert.Equal(t, 74, solo[0].LocalFrame)
	assert.Equal(t, 1.0, solo[0].Weight)
	assert.Equal(t, Solo, solo[0].Role)
	assert.Nil(t, solo[0].Transition)

	mid := tl.ActiveAt(82)
	require.Len(t, mid, 2)
	assert.Equal(t, "title", mid[0].SegmentID)
	assert.Equal(t, Exiting, mid[0].Role)
	assert.Equal(t, 82, mid[0].LocalFrame)
	assert.Equal(t, "clip-0", mid[1].SegmentID)
	assert.Equal(t, Entering, mid[1].Role)
	assert.Equal(t, 7, mid[1].LocalFrame)
	assert.InDelta(t, 7.0/15, mid[1].Weight, 1e-12)
	assert.InDelta(t, 1.0, weightSum(mid), 1e-12)
	require.NotNil(t, mid[0].Transition)
	assert.Equal(t, Fade, mid[0].Transition.Kind)

	after := tl.ActiveAt(90)
	require.Len(t, after, 1)
	assert.Equal(t, "clip-0", after[0].SegmentID)
	assert.Equal(t, 15, after[0].LocalFrame)

	last := tl.ActiveAt(299)
	require.Len(t, last, 1)
	assert.Equal(t, "clip-1", last[0].SegmentID)
	assert.Equal(t, 119, last[0].LocalFrame)

	assert.Nil(t, tl.ActiveAt(300))
	assert.Nil(t, tl.ActiveAt(-1))
}

func TestActiveAt_WeightsAcrossWholeTimeline(t *testing.T) {
	tl, err := New(30, segs(90, 120, 120), fades(2, 15))
	require.NoError(t, err)

	var prevIncoming float64
	for frame := 0; frame < tl.TotalFrames(); frame++ {
		active := tl.ActiveAt(frame)
		require.NotEmpty(t, active, "frame %d", frame)
		require.LessOrEqual(t, len(active), 2, "frame %d", frame)
		assert.InDelta(t, 1.0, weightSum(active), 1e-12, "frame %d", frame)

		for _, a := range active {
			assert.GreaterOrEqual(t, a.LocalFrame, 0)
			assert.Less(t, a.LocalFrame, a.DurationFrames)
		}
		if len(active) == 2 {
			if active[1].LocalFrame > 0 {
				assert.Greater(t, active[1].Weight, prevIncoming, "frame %d", frame)
			}
			prevIncoming = active[1].Weight
		}
	}
}

func TestActiveAt_EaseInOutTiming(t *testing.T) {
	trs := fades(1, 10)
	trs[0].Timing = EaseInOut
	tl, err := New(30, segs(60, 60), trs)
	require.NoError(t, err)

	// window [50, 60); halfway is symmetric under the cubic ease
	active := tl.ActiveAt(55)
	require.Len(t, active, 2)
	assert.InDelta(t, 0.5, active[1].Weight, 1e-12)
	assert.InDelta(t, 0.5, active[1].Progress, 1e-12)

	early := tl.ActiveAt(51)
	assert.Less(t, early[1].Weight, 0.1)
}

func TestNewSequential(t *testing.T) {
	tl, err := NewSequential(30, segs(90, 120, 120))
	require.NoError(t, err)
	assert.True(t, tl.Sequential())
	assert.Equal(t, 330, tl.TotalFrames())
	assert.Empty(t, tl.Transitions())
	assert.Empty(t, tl.Windows())

	at90 := tl.ActiveAt(90)
	require.Len(t, at90, 1)
	assert.Equal(t, "clip-0", at90[0].SegmentID)
	assert.Equal(t, 0, at90[0].LocalFrame)
	assert.Equal(t, 1.0, at90[0].Weight)

	at89 := tl.ActiveAt(89)
	require.Len(t, at89, 1)
	assert.Equal(t, "title", at89[0].SegmentID)
}

func TestNew_ClampsOversizedTransitions(t *testing.T) {
	tl, err := New(30, segs(90, 120), []TransitionSpec{{Kind: Wipe, DurationFrames: 200}})
	require.NoError(t, err)

	assert.Equal(t, 90, tl.Transitions()[0].DurationFrames)
	assert.Equal(t, []Adjustment{{Transition: 0, Requested: 200, Applied: 90}}, tl.Adjustments())
	assert.Equal(t, 120, tl.TotalFrames())

	// the whole title is the transition window
	active := tl.ActiveAt(0)
	require.Len(t, active, 2)
	assert.Equal(t, 0.0, active[1].Weight)
}

func TestNew_ClampKeepsWindowsApart(t *testing.T) {
	// the middle segment cannot be both entering and exiting on one frame
	tl, err := New(30, segs(60, 40, 60), fades(2, 30))
	require.NoError(t, err)

	trs := tl.Transitions()
	assert.Equal(t, 30, trs[0].DurationFrames)
	assert.Equal(t, 10, trs[1].DurationFrames)
	require.Len(t, tl.Adjustments(), 1)

	for frame := 0; frame < tl.TotalFrames(); frame++ {
		active := tl.ActiveAt(frame)
		assert.LessOrEqual(t, len(active), 2, "frame %d", frame)
		assert.InDelta(t, 1.0, weightSum(active), 1e-12, "frame %d", frame)
	}
}

func TestNew_NoneTransitionIsACut(t *testing.T) {
	trs := fades(2, 15)
	trs[1] = TransitionSpec{Kind: None, DurationFrames: 15}
	tl, err := New(30, segs(90, 120, 120), trs)
	require.NoError(t, err)

	assert.Equal(t, 315, tl.TotalFrames())
	assert.Len(t, tl.Windows(), 1)

	at := tl.ActiveAt(tl.StartOf(2))
	require.Len(t, at, 1)
	assert.Equal(t, "clip-1", at[0].SegmentID)
}

func TestNew_Empty(t *testing.T) {
	tl, err := New(30, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tl.TotalFrames())
	assert.Nil(t, tl.ActiveAt(0))
	assert.Empty(t, tl.Windows())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		fps         int
		segments    []Segment
		transitions []TransitionSpec
		segment     int
		transition  int
	}{
		{"zero fps", 0, segs(90), nil, -1, -1},
		{"zero duration", 30, segs(90, 0), fades(1, 15), 1, -1},
		{"empty id", 30, []Segment{{DurationFrames: 10}}, nil, 0, -1},
		{"duplicate id", 30, []Segment{{ID: "a", DurationFrames: 10}, {ID: "a", DurationFrames: 10}}, fades(1, 5), 1, -1},
		{"dangling transition", 30, segs(90, 120), fades(2, 15), -1, 1},
		{"transition without segments", 30, nil, fades(1, 15), -1, 0},
		{"missing transition", 30, segs(90, 120, 120), fades(1, 15), -1, 1},
		{"negative transition", 30, segs(90, 120), fades(1, -1), -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fps, tt.segments, tt.transitions)
			require.Error(t, err)

			var ite *InvalidTimelineError
			require.True(t, errors.As(err, &ite))
			assert.Equal(t, tt.segment, ite.Segment)
			assert.Equal(t, tt.transition, ite.Transition)
		})
	}

	_, err := NewSequential(-5, segs(10))
	assert.Error(t, err)
}

func TestTimeline_AccessorsReturnCopies(t *testing.T) {
	tl, err := New(30, segs(90, 120), fades(1, 15))
	require.NoError(t, err)

	s := tl.Segments()
	s[0].ID = "changed"
	assert.Equal(t, "title", tl.Segment(0).ID)

	tr := tl.Transitions()
	tr[0].DurationFrames = 99
	assert.Equal(t, 15, tl.Transitions()[0].DurationFrames)
}

func TestParseTransition(t *testing.T) {
	tests := []struct {
		in   string
		want TransitionSpec
	}{
		{"fade", TransitionSpec{Kind: Fade, DurationFrames: 15}},
		{"", TransitionSpec{Kind: Fade, DurationFrames: 15}},
		{"slide", TransitionSpec{Kind: Slide, Direction: FromRight, DurationFrames: 15}},
		{"wipe", TransitionSpec{Kind: Wipe, Direction: FromLeft, DurationFrames: 15}},
		{"Wipe:from-top", TransitionSpec{Kind: Wipe, Direction: FromTop, DurationFrames: 15}},
		{"slide:bottom", TransitionSpec{Kind: Slide, Direction: FromBottom, DurationFrames: 15}},
		{"none", TransitionSpec{Kind: None}},
	}
	for _, tt := range tests {
		got, err := ParseTransition(tt.in, 15)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTransition("spin", 15)
	assert.Error(t, err)
	_, err = ParseTransition("slide:diagonal", 15)
	assert.Error(t, err)

	assert.Equal(t, "wipe(from-top, 15f)", TransitionSpec{Kind: Wipe, Direction: FromTop, DurationFrames: 15}.String())
}
