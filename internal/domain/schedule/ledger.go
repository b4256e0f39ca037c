package schedule

// Ledger records which pairings have already been played this season.
// Keys are order independent: (a, b) and (b, a) are the same pairing.
// A Ledger belongs to a single season and is not safe for concurrent use.
type Ledger struct {
	seen map[string]struct{}
}

// NewLedger creates an empty pairing ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Seen reports whether the pairing was already recorded.
func (l *Ledger) Seen(a, b string) bool {
	_, ok := l.seen[pairKey(a, b)]
	return ok
}

// SeenAndRecord checks if the pairing was seen and records it if not.
// Returns true if it was already seen, false if it was newly recorded.
func (l *Ledger) SeenAndRecord(a, b string) bool {
	k := pairKey(a, b)
	if _, ok := l.seen[k]; ok {
		return true
	}
	l.seen[k] = struct{}{}
	return false
}

// Size returns the number of distinct pairings recorded.
func (l *Ledger) Size() int {
	return len(l.seen)
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
