package outcome

// Option applies a configuration option to the Logistic engine.
type Option func(*Logistic)

// WithScale sets the strength gap that moves the logit by one unit.
func WithScale(scale float64) Option {
	return func(l *Logistic) {
		l.scale = scale
	}
}

// WithFloor sets the smallest win probability any team can have.
func WithFloor(floor float64) Option {
	return func(l *Logistic) {
		l.floor = floor
	}
}
