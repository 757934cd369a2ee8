package effects

import "github.com/ivlev/teaserkit/internal/anim"

// Exit fade windows, in frames before the end of a scene
const (
	ExitWindowEndCard    = 15
	ExitWindowLowerThird = 20
)

// ExitFade returns the exit opacity multiplier: 1 until the last window
// frames of the scene, then linearly down to 0 at durationFrames.
func ExitFade(frame, durationFrames, window int) float64 {
	if window <= 0 {
		return 1
	}
	start := float64(durationFrames - window)
	return anim.MustInterpolate(float64(frame), []float64{start, float64(durationFrames)}, []float64{1, 0}, anim.Clamped())
}
