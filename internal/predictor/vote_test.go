package predictor

import (
	"errors"
	"testing"
)

func TestMajorityVote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		labels    []int
		tieBreak  TieBreak
		oneOf     []int
		expectErr error
	}{
		{name: "single", labels: []int{1}, tieBreak: TieBreakRandom, oneOf: []int{1}},
		{name: "clear_majority", labels: []int{0, 1, 1, 2, 1}, tieBreak: TieBreakRandom, oneOf: []int{1}},
		{name: "tie_random", labels: []int{0, 1, 1, 0, 2}, tieBreak: TieBreakRandom, oneOf: []int{0, 1}},
		{name: "tie_lowest", labels: []int{3, 1, 1, 3, 2}, tieBreak: TieBreakLowest, oneOf: []int{1}},
		{name: "all_distinct_lowest", labels: []int{4, 2, 9}, tieBreak: TieBreakLowest, oneOf: []int{2}},
		{name: "empty", labels: nil, tieBreak: TieBreakRandom, expectErr: ErrConfiguration},
		{name: "unknown_policy", labels: []int{0, 1}, tieBreak: "FIRST", expectErr: ErrConfiguration},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			// repeat so a random tie break has a chance to pick every member
			for i := 0; i < 50; i++ {
				got, err := MajorityVote(neighborsWithLabels(test.labels...), test.tieBreak)
				if test.expectErr != nil {
					if !errors.Is(err, test.expectErr) {
						t.Fatalf("MajorityVote error got: %v, expected: %v", err, test.expectErr)
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !contains(test.oneOf, got) {
					t.Fatalf("MajorityVote got: %d, expected one of: %v", got, test.oneOf)
				}
			}
		})
	}
}

func TestMajorityVote_RandomCoversTiedLabels(t *testing.T) {
	t.Parallel()
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		got, err := MajorityVote(neighborsWithLabels(0, 1), TieBreakRandom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[got] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("random tie break should pick every tied label, seen: %v", seen)
	}
}

func TestMajorityVote_NeverNonMaximal(t *testing.T) {
	t.Parallel()
	labels := []int{2, 2, 2, 5, 5, 5, 7, 7, 1}
	for i := 0; i < 200; i++ {
		got, err := MajorityVote(neighborsWithLabels(labels...), TieBreakRandom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 2 && got != 5 {
			t.Fatalf("MajorityVote returned a non-maximal label %d", got)
		}
	}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
