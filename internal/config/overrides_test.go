package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesApplyOnlySetFields(t *testing.T) {
	cfg := DefaultConfig()
	model := "resources/helmet/DamagedHelmet.glb"
	reload := true

	require.NoError(t, Overrides{Model: &model, HotReload: &reload}.Apply(cfg))

	assert.Equal(t, model, cfg.Assets.Model)
	assert.True(t, cfg.Shaders.HotReload)
	assert.Equal(t, DefaultConfig().Assets.Environment, cfg.Assets.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestOverridesEmptyIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Overrides{}.Apply(cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestOverridesRevalidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	assert.Error(t, Overrides{}.Apply(cfg))
}
