package pipeline

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrStageSkipped is returned by a stage whose program is unavailable. Its
// output image is still allocated, so later stages and the lighting pass
// sample a black map instead of failing.
var ErrStageSkipped = errors.New("stage skipped")

// IBLSettings sizes the precomputed lighting images.
type IBLSettings struct {
	EnvironmentSize int
	IrradianceSize  int
	PrefilterSize   int
	PrefilterLevels int
	BRDFSize        int
}

func DefaultIBLSettings() IBLSettings {
	return IBLSettings{
		EnvironmentSize: 512,
		IrradianceSize:  32,
		PrefilterSize:   128,
		PrefilterLevels: 5,
		BRDFSize:        512,
	}
}

// MipLevel is one prefilter render: the face size and the roughness it
// encodes.
type MipLevel struct {
	Level     int
	Size      int
	Roughness float32
}

// PrefilterChain plans the prefiltered environment mip chain. Roughness is
// spread evenly from 0 at the base to 1 at the last level.
func PrefilterChain(base, levels int) []MipLevel {
	if levels <= 0 {
		return nil
	}
	chain := make([]MipLevel, levels)
	for m := range chain {
		size := base >> m
		if size < 1 {
			size = 1
		}
		var roughness float32
		if levels > 1 {
			roughness = float32(m) / float32(levels-1)
		}
		chain[m] = MipLevel{Level: m, Size: size, Roughness: roughness}
	}
	return chain
}

// IBLStages renders each precomputation step. Stages run once, in order,
// before the first frame.
type IBLStages interface {
	CaptureEnvironment(size int) error
	ConvolveIrradiance(size int) error
	PrefilterLevel(level MipLevel) error
	IntegrateBRDF(size int) error
}

// PrecomputeIBL runs the stages in dependency order: each stage samples the
// output of the one before it, so the first failure stops the chain. A
// skipped stage is logged and the chain continues.
func PrecomputeIBL(stages IBLStages, s IBLSettings, log zerolog.Logger) error {
	check := func(stage string, err error) error {
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrStageSkipped) {
			log.Warn().Str("stage", stage).Msg("ibl stage skipped, program unavailable")
			return nil
		}
		return fmt.Errorf("ibl %s: %w", stage, err)
	}

	if err := check("environment", stages.CaptureEnvironment(s.EnvironmentSize)); err != nil {
		return err
	}
	if err := check("irradiance", stages.ConvolveIrradiance(s.IrradianceSize)); err != nil {
		return err
	}
	for _, level := range PrefilterChain(s.PrefilterSize, s.PrefilterLevels) {
		if err := check(fmt.Sprintf("prefilter mip %d", level.Level), stages.PrefilterLevel(level)); err != nil {
			return err
		}
	}
	return check("brdf", stages.IntegrateBRDF(s.BRDFSize))
}
