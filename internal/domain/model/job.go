package model

// TrialJob asks a worker to run one trial of a run.
type TrialJob struct {
	RunID string
	// Index is the zero-based trial number; it is also the random stream.
	Index int
	Seed  uint64
}
