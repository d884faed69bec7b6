package config

// Overrides are command-line values layered over a loaded Config. Nil
// fields leave the config untouched.
type Overrides struct {
	Model     *string
	HDR       *string
	LogLevel  *string
	ShaderDir *string
	HotReload *bool
}

// Apply writes the set overrides into c and re-validates it.
func (o Overrides) Apply(c *Config) error {
	if o.Model != nil {
		c.Assets.Model = *o.Model
	}
	if o.HDR != nil {
		c.Assets.Environment = *o.HDR
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.ShaderDir != nil {
		c.Shaders.Dir = *o.ShaderDir
	}
	if o.HotReload != nil {
		c.Shaders.HotReload = *o.HotReload
	}
	return c.Validate()
}
