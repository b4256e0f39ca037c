package scoring

// Option applies a configuration option to a Committee.
type Option func(*Committee)

// WithBandEdges sets the last place-gap of the near band and of the mid band.
// Opponents more than mid places worse fall in the far band.
func WithBandEdges(near, mid int) Option {
	return func(c *Committee) {
		c.edges = Edges{Near: near, Mid: mid}
	}
}
