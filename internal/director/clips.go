package director

// DefaultClipDuration is the length of a clip without an explicit duration, 4s at 30fps
const DefaultClipDuration = 120

// NormalizeClips fills in missing durations; negative ones are left for the
// timeline to reject. Normalizing a normalized list returns an equal list.
func NormalizeClips(clips []Clip) []Clip {
	out := make([]Clip, len(clips))
	for i, c := range clips {
		if c.DurationFrames == 0 {
			c.DurationFrames = DefaultClipDuration
		}
		out[i] = c
	}
	return out
}

// ClipsFromSources turns bare source paths into normalized clips
func ClipsFromSources(sources []string) []Clip {
	clips := make([]Clip, len(sources))
	for i, src := range sources {
		clips[i] = Clip{Src: src}
	}
	return NormalizeClips(clips)
}
