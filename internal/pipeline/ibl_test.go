package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefilterChainRoughness(t *testing.T) {
	chain := PrefilterChain(128, 5)
	require.Len(t, chain, 5)

	assert.Equal(t, MipLevel{Level: 0, Size: 128, Roughness: 0}, chain[0])
	assert.Equal(t, MipLevel{Level: 4, Size: 8, Roughness: 1}, chain[4])
	for m, level := range chain {
		assert.InDelta(t, float32(m)/4, level.Roughness, 1e-7)
		assert.Equal(t, 128>>m, level.Size)
	}
}

func TestPrefilterChainEdges(t *testing.T) {
	assert.Equal(t, []MipLevel{{Level: 0, Size: 64, Roughness: 0}}, PrefilterChain(64, 1))
	assert.Nil(t, PrefilterChain(64, 0))

	tiny := PrefilterChain(4, 5)
	assert.Equal(t, 1, tiny[3].Size)
	assert.Equal(t, 1, tiny[4].Size, "size never drops below one texel")
}

type stageLog struct {
	calls  []string
	failAt string
	skip   map[string]bool
}

func (s *stageLog) record(name string) error {
	s.calls = append(s.calls, name)
	if name == s.failAt {
		return errors.New("boom")
	}
	if s.skip[name] {
		return ErrStageSkipped
	}
	return nil
}

func (s *stageLog) CaptureEnvironment(size int) error {
	return s.record(fmt.Sprintf("environment %d", size))
}

func (s *stageLog) ConvolveIrradiance(size int) error {
	return s.record(fmt.Sprintf("irradiance %d", size))
}

func (s *stageLog) PrefilterLevel(l MipLevel) error {
	return s.record(fmt.Sprintf("prefilter %d %d %.2f", l.Level, l.Size, l.Roughness))
}

func (s *stageLog) IntegrateBRDF(size int) error {
	return s.record(fmt.Sprintf("brdf %d", size))
}

func TestPrecomputeIBLStageOrder(t *testing.T) {
	want := []string{
		"environment 512",
		"irradiance 32",
		"prefilter 0 128 0.00",
		"prefilter 1 64 0.25",
		"prefilter 2 32 0.50",
		"prefilter 3 16 0.75",
		"prefilter 4 8 1.00",
		"brdf 512",
	}
	for run := 0; run < 2; run++ {
		stages := &stageLog{}
		require.NoError(t, PrecomputeIBL(stages, DefaultIBLSettings(), zerolog.Nop()))
		assert.Equal(t, want, stages.calls)
	}
}

func TestPrecomputeIBLStopsAtFirstFailure(t *testing.T) {
	stages := &stageLog{failAt: "prefilter 1 64 0.25"}
	err := PrecomputeIBL(stages, DefaultIBLSettings(), zerolog.Nop())

	require.Error(t, err)
	assert.Equal(t, "ibl prefilter mip 1: boom", err.Error())
	assert.Equal(t, "prefilter 1 64 0.25", stages.calls[len(stages.calls)-1])
	assert.NotContains(t, stages.calls, "brdf 512")

	stages = &stageLog{failAt: "environment 512"}
	err = PrecomputeIBL(stages, DefaultIBLSettings(), zerolog.Nop())
	assert.EqualError(t, err, "ibl environment: boom")
	assert.Len(t, stages.calls, 1)
}

func TestPrecomputeIBLContinuesPastSkippedStages(t *testing.T) {
	var buf bytes.Buffer
	stages := &stageLog{skip: map[string]bool{
		"irradiance 32":        true,
		"prefilter 0 128 0.00": true,
		"prefilter 3 16 0.75":  true,
		"brdf 512":             true,
	}}

	require.NoError(t, PrecomputeIBL(stages, DefaultIBLSettings(), zerolog.New(&buf)))
	assert.Len(t, stages.calls, 8, "every stage still runs")
	assert.Equal(t, "brdf 512", stages.calls[7])

	out := buf.String()
	assert.Contains(t, out, `"stage":"irradiance"`)
	assert.Contains(t, out, `"stage":"prefilter mip 0"`)
	assert.Contains(t, out, `"stage":"prefilter mip 3"`)
	assert.Contains(t, out, `"stage":"brdf"`)
	assert.NotContains(t, out, `"stage":"environment"`)
}

func TestPrecomputeIBLFailureAfterSkipStillStops(t *testing.T) {
	stages := &stageLog{
		skip:   map[string]bool{"environment 512": true},
		failAt: "irradiance 32",
	}
	err := PrecomputeIBL(stages, DefaultIBLSettings(), zerolog.Nop())
	assert.EqualError(t, err, "ibl irradiance: boom")
	assert.Len(t, stages.calls, 2)
}
