package renderer

import (
	"fmt"
	"strings"

	"github.com/ivlev/teaserkit/internal/timeline"
)

// XfadeName maps a transition to the matching ffmpeg xfade transition.
// Cuts have no xfade counterpart and return "".
func XfadeName(tr timeline.TransitionSpec) string {
	switch tr.Kind {
	case timeline.Fade:
		return "fade"
	case timeline.Slide:
		// ffmpeg names the direction of motion, not the entry side
		switch tr.Direction {
		case timeline.FromLeft:
			return "slideright"
		case timeline.FromTop:
			return "slidedown"
		case timeline.FromBottom:
			return "slideup"
		default:
			return "slideleft"
		}
	case timeline.Wipe:
		switch tr.Direction {
		case timeline.FromLeft:
			return "wiperight"
		case timeline.FromTop:
			return "wipedown"
		case timeline.FromBottom:
			return "wipeup"
		default:
			return "wipeleft"
		}
	}
	return ""
}

// XfadeGraph builds an ffmpeg filter_complex that joins per-segment
// renders (input i is segment i) with the timeline's transitions.
// Offsets come from the laid-out segment starts, so the encoded cut points
// match FrameAt. The output pad is [vout].
func XfadeGraph(tl *timeline.Timeline) string {
	n := tl.Len()
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "[0:v]null[vout]"
	case tl.Sequential():
		var b strings.Builder
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "[%d:v]", i)
		}
		fmt.Fprintf(&b, "concat=n=%d:v=1:a=0[vout]", n)
		return b.String()
	}

	fps := float64(tl.FPS())
	transitions := tl.Transitions()

	var b strings.Builder
	lastOut := "[0:v]"
	for i := 1; i < n; i++ {
		nextOut := fmt.Sprintf("[v%d]", i)
		if i == n-1 {
			nextOut = "[vout]"
		}

		tr := transitions[i-1]
		if tr.DurationFrames == 0 {
			fmt.Fprintf(&b, "%s[%d:v]concat=n=2:v=1:a=0%s;", lastOut, i, nextOut)
		} else {
			offset := float64(tl.StartOf(i)) / fps
			duration := float64(tr.DurationFrames) / fps
			fmt.Fprintf(&b, "%s[%d:v]xfade=transition=%s:duration=%f:offset=%f%s;",
				lastOut, i, XfadeName(tr), duration, offset, nextOut)
		}
		lastOut = nextOut
	}
	return strings.TrimSuffix(b.String(), ";")
}

// EncodeArgs assembles the ffmpeg command line that joins segment renders
// into one file using XfadeGraph.
func EncodeArgs(tl *timeline.Timeline, inputs []string, output, encoder string, quality int) ([]string, error) {
	if len(inputs) != tl.Len() {
		return nil, fmt.Errorf("got %d inputs for %d segments", len(inputs), tl.Len())
	}
	if tl.Len() == 0 {
		return nil, fmt.Errorf("nothing to encode")
	}

	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", XfadeGraph(tl),
		"-map", "[vout]",
		"-r", fmt.Sprintf("%d", tl.FPS()),
		"-pix_fmt", "yuv420p",
		"-c:v", encoder,
	)

	switch encoder {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	return append(args, output), nil
}
