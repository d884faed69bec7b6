package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlurSchedule(t *testing.T) {
	steps := BlurSchedule(4)
	require.Len(t, steps, 4)

	assert.Equal(t, BlurStep{Target: 1, Horizontal: true, Source: BlurSource{Scene: true}}, steps[0])
	assert.Equal(t, BlurStep{Target: 0, Horizontal: false, Source: BlurSource{PingPong: 1}}, steps[1])
	assert.Equal(t, BlurStep{Target: 1, Horizontal: true, Source: BlurSource{PingPong: 0}}, steps[2])
	assert.Equal(t, BlurStep{Target: 0, Horizontal: false, Source: BlurSource{PingPong: 1}}, steps[3])

	for i := 1; i < len(steps); i++ {
		assert.Equal(t, steps[i-1].Target, steps[i].Source.PingPong, "step %d reads previous output", i)
		assert.NotEqual(t, steps[i].Source.PingPong, steps[i].Target, "never reads its own target")
	}
}

func TestFinalBlurSource(t *testing.T) {
	assert.Equal(t, BlurSource{Scene: true}, FinalBlurSource(0))
	assert.Equal(t, BlurSource{PingPong: 1}, FinalBlurSource(1))
	assert.Equal(t, BlurSource{PingPong: 0}, FinalBlurSource(10))
	assert.Nil(t, BlurSchedule(0))
	assert.Nil(t, BlurSchedule(-3))
}

func TestRunFrameOrderWithHDR(t *testing.T) {
	rec := &recorder{}
	f := &Frame{Config: RenderConfig{HDR: true, BlurPasses: 2}}
	RunFrame(rec, f)

	assert.Equal(t, []string{
		"shadow",
		"view",
		"lighting hdr",
		"blur 1",
		"blur 0",
		"composite {Scene:false PingPong:0}",
	}, rec.calls)
}

func TestRunFrameWithoutHDR(t *testing.T) {
	rec := &recorder{}
	f := &Frame{Config: RenderConfig{HDR: false, Bloom: true, BlurPasses: 10}}
	RunFrame(rec, f)

	assert.Equal(t, []string{"shadow", "view", "lighting screen"}, rec.calls)
	for _, c := range rec.calls {
		assert.NotContains(t, c, "blur")
		assert.NotContains(t, c, "composite")
	}
}

func TestRunFrameWithoutBlurPasses(t *testing.T) {
	rec := &recorder{}
	RunFrame(rec, &Frame{Config: RenderConfig{HDR: true}})
	assert.Equal(t, "composite {Scene:true PingPong:0}", rec.calls[len(rec.calls)-1])
}
