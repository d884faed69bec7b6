package core

// KeySource answers whether a key is held this frame.
type KeySource interface {
	IsKeyPressed(key int) bool
}

// Latch turns a held key into a single event on the press transition.
type Latch struct {
	Key     int
	wasDown bool
}

func NewLatch(key int) *Latch {
	return &Latch{Key: key}
}

// Pressed reports true only on the first frame the key is seen down.
func (l *Latch) Pressed(src KeySource) bool {
	down := src.IsKeyPressed(l.Key)
	fired := down && !l.wasDown
	l.wasDown = down
	return fired
}
