package scoring

import "fmt"

// Band classifies an opponent relative to the team being scored.
type Band int

// Opponent bands, best opponent first.
const (
	BandStronger Band = iota
	BandNear
	BandMid
	BandFar
)

func (b Band) String() string {
	switch b {
	case BandStronger:
		return "stronger"
	case BandNear:
		return "near"
	case BandMid:
		return "mid"
	case BandFar:
		return "far"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// Edges are the inclusive upper place-gaps of the near and mid bands.
type Edges struct {
	Near int
	Mid  int
}

// Default band edges.
const (
	DefaultNearEdge = 7
	DefaultMidEdge  = 24
)

// DefaultEdges returns 1..7 places worse as near and 8..24 as mid.
func DefaultEdges() Edges {
	return Edges{Near: DefaultNearEdge, Mid: DefaultMidEdge}
}

// Validate requires 1 <= Near < Mid.
func (e Edges) Validate() error {
	if e.Near < 1 || e.Mid <= e.Near {
		return fmt.Errorf("%w: near=%d mid=%d", ErrInvalidBands, e.Near, e.Mid)
	}
	return nil
}

// Classify maps the place gap (opponent rank minus team rank) to a band.
func (e Edges) Classify(gap int) Band {
	switch {
	case gap < 0:
		return BandStronger
	case gap <= e.Near:
		return BandNear
	case gap <= e.Mid:
		return BandMid
	default:
		return BandFar
	}
}

// Points awarded for a single game.
type Points struct {
	Win  float64
	Loss float64
}

// Table holds the award for each opponent band.
type Table struct {
	Stronger Points
	Near     Points
	Mid      Points
	Far      Points
}

// For returns the award for band b.
func (t Table) For(b Band) Points {
	switch b {
	case BandStronger:
		return t.Stronger
	case BandNear:
		return t.Near
	case BandMid:
		return t.Mid
	default:
		return t.Far
	}
}

func (t Table) bands() [4]Points {
	return [4]Points{t.Stronger, t.Near, t.Mid, t.Far}
}

// Validate requires win and loss awards to be non-increasing from stronger to far.
func (t Table) Validate() error {
	b := t.bands()
	for i := 1; i < len(b); i++ {
		if b[i].Win > b[i-1].Win {
			return fmt.Errorf("%w: win vs %s (%v) exceeds win vs %s (%v)", ErrInvalidTable, Band(i), b[i].Win, Band(i-1), b[i-1].Win)
		}
		if b[i].Loss > b[i-1].Loss {
			return fmt.Errorf("%w: loss vs %s (%v) exceeds loss vs %s (%v)", ErrInvalidTable, Band(i), b[i].Loss, Band(i-1), b[i-1].Loss)
		}
	}
	return nil
}

// Tables pairs the two committee philosophies.
type Tables struct {
	Standard Table
	Harsher  Table
}

// StandardTable follows the CFP points used by the committee today.
func StandardTable() Table {
	return Table{
		Stronger: Points{Win: 5, Loss: 3},
		Near:     Points{Win: 5, Loss: 2},
		Mid:      Points{Win: 4, Loss: 1},
		Far:      Points{Win: 3, Loss: 0},
	}
}

// HarsherTable rewards quality wins more and punishes bad losses.
func HarsherTable() Table {
	return Table{
		Stronger: Points{Win: 7, Loss: 2},
		Near:     Points{Win: 6, Loss: 0},
		Mid:      Points{Win: 4, Loss: -2},
		Far:      Points{Win: 3, Loss: -4},
	}
}

// DefaultTables returns the standard and harsher defaults.
func DefaultTables() Tables {
	return Tables{Standard: StandardTable(), Harsher: HarsherTable()}
}

// Validate checks each table and that Harsher dominates Standard band by band:
// never a smaller win award, never a larger loss award.
func (ts Tables) Validate() error {
	if err := ts.Standard.Validate(); err != nil {
		return fmt.Errorf("standard: %w", err)
	}
	if err := ts.Harsher.Validate(); err != nil {
		return fmt.Errorf("harsher: %w", err)
	}
	std, hr := ts.Standard.bands(), ts.Harsher.bands()
	for i := range std {
		if hr[i].Win < std[i].Win || hr[i].Loss > std[i].Loss {
			return fmt.Errorf("%w: harsher %s award %+v is softer than standard %+v", ErrInvalidTable, Band(i), hr[i], std[i])
		}
	}
	return nil
}
