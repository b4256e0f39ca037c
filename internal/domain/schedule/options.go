package schedule

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRematchRepair enables or disables swapping partners to avoid rematches.
func WithRematchRepair(enabled bool) Option {
	return func(g *Generator) {
		g.repair = enabled
	}
}
