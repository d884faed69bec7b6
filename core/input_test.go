package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type heldKeys map[int]bool

func (h heldKeys) IsKeyPressed(key int) bool { return h[key] }

func TestLatchFiresOncePerPress(t *testing.T) {
	keys := heldKeys{}
	latch := NewLatch(66)

	var fired int
	for frame := 0; frame < 10; frame++ {
		keys[66] = frame >= 2 && frame < 8
		if latch.Pressed(keys) {
			fired++
			assert.Equal(t, 2, frame, "fires on the press transition")
		}
	}
	assert.Equal(t, 1, fired)
}

func TestLatchFiresAgainAfterRelease(t *testing.T) {
	keys := heldKeys{}
	latch := NewLatch(1)

	pattern := []bool{true, true, false, true, false, false, true}
	var got []bool
	for _, down := range pattern {
		keys[1] = down
		got = append(got, latch.Pressed(keys))
	}
	assert.Equal(t, []bool{true, false, false, true, false, false, true}, got)
}

func TestLatchIgnoresOtherKeys(t *testing.T) {
	latch := NewLatch(1)
	assert.False(t, latch.Pressed(heldKeys{2: true}))
}
