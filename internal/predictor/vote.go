package predictor

import (
	"fmt"

	"github.com/valyala/fastrand"
)

type TieBreak string

const (
	// TieBreakRandom picks uniformly among the tied labels.
	TieBreakRandom TieBreak = "RANDOM"
	// TieBreakLowest picks the smallest tied label.
	TieBreakLowest TieBreak = "LOWEST"
)

func (t TieBreak) Valid() bool {
	return t == TieBreakRandom || t == TieBreakLowest
}

// MajorityVote returns the most frequent label among neighbors. When several
// labels share the highest count the result is one of them, chosen by tb.
func MajorityVote(neighbors []Neighbor, tb TieBreak) (int, error) {
	if len(neighbors) == 0 {
		return 0, fmt.Errorf("%w: no neighbors to vote", ErrConfiguration)
	}

	counts := make(map[int]int, len(neighbors))
	labels := make([]int, 0, len(neighbors))
	var max int
	for _, n := range neighbors {
		label := n.Label()
		if counts[label] == 0 {
			labels = append(labels, label)
		}
		counts[label]++
		if counts[label] > max {
			max = counts[label]
		}
	}

	tied := labels[:0]
	for _, label := range labels {
		if counts[label] == max {
			tied = append(tied, label)
		}
	}

	if len(tied) == 1 {
		return tied[0], nil
	}

	switch tb {
	case TieBreakLowest:
		lowest := tied[0]
		for _, label := range tied[1:] {
			if label < lowest {
				lowest = label
			}
		}
		return lowest, nil
	case TieBreakRandom:
		return tied[fastrand.Uint32n(uint32(len(tied)))], nil
	default:
		return 0, fmt.Errorf("%w: unknown tie break policy %q", ErrConfiguration, tb)
	}
}
