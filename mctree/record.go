// Package mctree rebuilds the Monte-Carlo decay tree of an event from flat
// parent-index arrays and classifies its particles as prompt and
// long-lived.
package mctree

import (
	"fmt"
	"math"
	"strings"
)

// Flag is the per-particle status bitmask of the MC record.
type Flag uint8

const (
	FinalState      Flag = 1 << 0
	TrackAssociated Flag = 1 << 2
	LongLived       Flag = 1 << 3
	Prompt          Flag = 1 << 4
)

func (f Flag) String() string {
	var sb strings.Builder
	if f&FinalState != 0 {
		sb.WriteString("[final]")
	}
	if f&TrackAssociated != 0 {
		sb.WriteString("[associated]")
	}
	if f&Prompt != 0 {
		sb.WriteString("[prompt]")
	}
	return sb.String()
}

// Record holds the flat MC arrays of one event. Mother[i] is the index of
// the parent of particle i, or -1 for particles without a parent.
type Record struct {
	PX, PY, PZ, M []float64
	PID           []int
	Mother        []int
	Flag          []Flag

	NPrimaryVertices int
}

// Len returns the number of particles.
func (r *Record) Len() int { return len(r.PID) }

// Energy returns sqrt(p^2 + m^2).
func Energy(px, py, pz, m float64) float64 {
	return math.Sqrt(px*px + py*py + pz*pz + m*m)
}

// Energy returns the energy of particle i.
func (r *Record) Energy(i int) float64 {
	return Energy(r.PX[i], r.PY[i], r.PZ[i], r.M[i])
}

// Validate checks that all arrays have the same length, that parent
// indices are in range and that every parent walk ends at a root.
func Validate(r *Record) error {
	n := r.Len()
	for name, l := range map[string]int{
		"px": len(r.PX), "py": len(r.PY), "pz": len(r.PZ), "m": len(r.M),
		"mother": len(r.Mother), "flag": len(r.Flag),
	} {
		if l != n {
			return fmt.Errorf("%s has %d entries, pid has %d: %w", name, l, n, ErrLength)
		}
	}

	for i, mother := range r.Mother {
		if mother < -1 || mother >= n {
			return fmt.Errorf("particle %d has parent %d of %d: %w", i, mother, n, ErrParentIndex)
		}
	}

	// seen[k] is 0 for unvisited nodes, start+1 while node k is on the
	// walk started at start, and -1 once k is known to reach a root.
	seen := make([]int, n)
	for start := 0; start < n; start++ {
		k := start
		for k != -1 && seen[k] == 0 {
			seen[k] = start + 1
			k = r.Mother[k]
		}
		if k != -1 && seen[k] == start+1 {
			return fmt.Errorf("particle %d: %w", start, ErrCycle)
		}
		for k = start; k != -1 && seen[k] == start+1; k = r.Mother[k] {
			seen[k] = -1
		}
	}
	return nil
}

// Chain returns k followed by all its ancestors, ending at a root.
func Chain(k int, mother []int) ([]int, error) {
	n := len(mother)
	if k < 0 || k >= n {
		return nil, fmt.Errorf("particle %d of %d: %w", k, n, ErrParentIndex)
	}

	chain := []int{k}
	for {
		k = mother[k]
		if k == -1 {
			return chain, nil
		}
		if k < 0 || k >= n {
			return nil, fmt.Errorf("particle %d has parent %d of %d: %w", chain[len(chain)-1], k, n, ErrParentIndex)
		}
		if len(chain) == n {
			return nil, fmt.Errorf("particle %d: %w", chain[0], ErrCycle)
		}
		chain = append(chain, k)
	}
}

// PromptAncestor returns the most distant long-lived ancestor of particle
// k. If no ancestor is long-lived, k is its own prompt ancestor. The type
// of k itself is not considered.
func PromptAncestor(k int, pid, mother []int) (int, error) {
	chain, err := Chain(k, mother)
	if err != nil {
		return -1, err
	}

	result := k
	for _, i := range chain[1:] {
		if IsLongLived(pid[i]) {
			result = i
		}
	}
	return result, nil
}

// Classify returns a copy of the record flags with LongLived set on
// long-lived particles and Prompt set on the prompt ancestor of every
// final-state particle.
func Classify(r *Record) ([]Flag, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}

	flags := make([]Flag, r.Len())
	copy(flags, r.Flag)
	for i, pid := range r.PID {
		if IsLongLived(pid) {
			flags[i] |= LongLived
		}
		if flags[i]&FinalState == 0 {
			continue
		}
		k, err := PromptAncestor(i, r.PID, r.Mother)
		if err != nil {
			return nil, err
		}
		flags[k] |= Prompt
	}
	return flags, nil
}
