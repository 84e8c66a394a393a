package animation

// Clip is a playable animation handle owned by a Mixer.
type Clip interface {
	Reset()
	Play()
	FadeIn(seconds float32)
	FadeOut(seconds float32)
}

// Mixer advances every clip it owns.
type Mixer interface {
	Advance(dt float32)
}

// ClipSet maps each state to its clip.
type ClipSet map[State]Clip

// Track is a looping clip driven by ClipMixer.
type Track struct {
	Name     string
	Duration float32 // loop length in seconds; 0 means untimed

	time     float32
	weight   float32
	target   float32
	fadeRate float32 // weight change per second, 0 when settled
	playing  bool
}

// Reset rewinds the track and restores full weight.
func (t *Track) Reset() {
	t.time = 0
	t.weight = 1
	t.target = 1
	t.fadeRate = 0
}

// Play starts the track.
func (t *Track) Play() {
	t.playing = true
}

// FadeIn ramps weight from 0 to 1.
func (t *Track) FadeIn(seconds float32) {
	t.weight = 0
	t.fadeTo(1, seconds)
}

// FadeOut ramps weight to 0 and stops the track when it gets there.
func (t *Track) FadeOut(seconds float32) {
	t.fadeTo(0, seconds)
}

func (t *Track) fadeTo(target, seconds float32) {
	t.target = target
	if seconds <= 0 {
		t.weight = target
		t.fadeRate = 0
		return
	}
	t.fadeRate = 1 / seconds
}

// Playing reports whether the track is running.
func (t *Track) Playing() bool {
	return t.playing
}

// Weight returns the blend weight, 0 when stopped.
func (t *Track) Weight() float32 {
	if !t.playing {
		return 0
	}
	return t.weight
}

// Time returns local playback time in seconds.
func (t *Track) Time() float32 {
	return t.time
}

// Fading reports whether a fade is in progress.
func (t *Track) Fading() bool {
	return t.fadeRate != 0
}

func (t *Track) advance(dt float32) {
	if !t.playing {
		return
	}

	t.time += dt
	if t.Duration > 0 {
		for t.time >= t.Duration {
			t.time -= t.Duration // Loop
		}
	}

	if t.fadeRate == 0 {
		return
	}
	step := t.fadeRate * dt
	if t.weight < t.target {
		t.weight += step
		if t.weight >= t.target {
			t.weight = t.target
			t.fadeRate = 0
		}
	} else {
		t.weight -= step
		if t.weight <= t.target {
			t.weight = t.target
			t.fadeRate = 0
		}
	}
	if t.fadeRate == 0 && t.weight == 0 {
		t.playing = false
	}
}

// ClipMixer is an in-process mixer that tracks weights and playback time.
type ClipMixer struct {
	tracks []*Track
}

// NewMixer creates an empty mixer.
func NewMixer() *ClipMixer {
	return &ClipMixer{}
}

// Add registers a new track. It starts stopped at full weight.
func (m *ClipMixer) Add(name string, duration float32) *Track {
	t := &Track{Name: name, Duration: duration}
	t.Reset()
	m.tracks = append(m.tracks, t)
	return t
}

// Advance moves every playing track forward by dt seconds.
func (m *ClipMixer) Advance(dt float32) {
	for _, t := range m.tracks {
		t.advance(dt)
	}
}

// Tracks returns the registered tracks.
func (m *ClipMixer) Tracks() []*Track {
	return m.tracks
}
