package season

import (
	"fmt"

	"github.com/okian/rankdrift/internal/domain/model"
)

// Preseason poll modes.
const (
	PreseasonNone     = "none"
	PreseasonInverted = "inverted"
	PreseasonTiered   = "tiered"
)

// preseasonTiers are the sizes of the leading tiers of a tiered poll; the
// remaining teams form the last tier.
var preseasonTiers = []int{34, 50}

// ValidatePreseason accepts "", none, inverted and tiered.
func ValidatePreseason(mode string) error {
	switch mode {
	case "", PreseasonNone, PreseasonInverted, PreseasonTiered:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreseason, mode)
	}
}

// Preseason builds the week-0 poll for mode, or nil for none.
func Preseason(mode string, truth model.Ranking, rng model.Source) (*model.Ranking, error) {
	ids := truth.IDs()
	switch mode {
	case "", PreseasonNone:
		return nil, nil
	case PreseasonInverted:
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	case PreseasonTiered:
		if rng == nil {
			return nil, fmt.Errorf("preseason: %w", model.ErrRandomSource)
		}
		start := 0
		for _, size := range preseasonTiers {
			end := min(start+size, len(ids))
			shuffle(ids[start:end], rng)
			start = end
		}
		shuffle(ids[start:], rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreseason, mode)
	}
	r, err := model.NewRanking(ids)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func shuffle(ids []string, rng model.Source) {
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}
