package pipeline

// RenderConfig is the frame's view of the render toggles. It is captured
// once per frame and passed by value to every pass so no pass observes a
// toggle changing mid-frame.
type RenderConfig struct {
	Gamma       bool
	Shadows     bool
	Parallax    bool
	HeightScale float32
	HDR         bool
	Bloom       bool
	Exposure    float32
	BlurPasses  int
}

// Toggles is the mutable state the driver edits in response to input.
type Toggles struct {
	Gamma       bool
	Shadows     bool
	Parallax    bool
	HeightScale float32
	HDR         bool
	Bloom       bool
	Exposure    float32
	BlurPasses  int
}

// NewToggles seeds the mutable state from an initial configuration.
func NewToggles(initial RenderConfig) *Toggles {
	t := Toggles(initial)
	return &t
}

// Snapshot freezes the current values.
func (t *Toggles) Snapshot() RenderConfig {
	return RenderConfig(*t)
}
