package platform

import (
	"pbr-viewer/internal/pipeline"
	"pbr-viewer/scene"
)

// DefaultBindings is the viewer's keyboard layout.
func DefaultBindings() pipeline.Bindings {
	return pipeline.Bindings{
		Quit:           KeyEscape,
		ToggleBloom:    KeyB,
		ToggleGamma:    KeySpace,
		ToggleShadows:  KeyO,
		ToggleParallax: KeyP,
		ToggleHDR:      KeyH,
		HeightDown:     KeyQ,
		HeightUp:       KeyE,
		ExposureDown:   KeyZ,
		ExposureUp:     KeyC,
	}
}

// DefaultMoveKeys is WASD.
func DefaultMoveKeys() scene.MoveKeys {
	return scene.MoveKeys{Forward: KeyW, Backward: KeyS, Left: KeyA, Right: KeyD}
}
