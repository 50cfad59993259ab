package mctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// B0 -> D- pi+, D- -> K+ pi- pi-, with a photon radiated off the pi+.
// Indices: 0 B0, 1 D-, 2 pi+, 3 K+, 4 pi-, 5 pi-, 6 gamma.
func decayRecord() *Record {
	return &Record{
		PX:     []float64{0, 100, -100, 50, 30, 20, -10},
		PY:     []float64{0, 0, 0, 10, -5, -5, 1},
		PZ:     []float64{50000, 30000, 20000, 10000, 12000, 8000, 500},
		M:      []float64{5279.6, 1869.7, 139.6, 493.7, 139.6, 139.6, 0},
		PID:    []int{511, -411, 211, 321, -211, -211, 22},
		Mother: []int{-1, 0, 0, 1, 1, 1, 2},
		Flag:   []Flag{0, 0, FinalState, FinalState, FinalState, FinalState | TrackAssociated, FinalState},

		NPrimaryVertices: 1,
	}
}

func TestLongLivedPIDsArePositive(t *testing.T) {
	pids := LongLivedPIDs()
	require.Len(t, pids, 17)
	for _, pid := range pids {
		assert.Positive(t, pid)
		assert.True(t, IsLongLived(pid))
		assert.True(t, IsLongLived(-pid))
	}
	assert.False(t, IsLongLived(21))
	assert.False(t, IsLongLived(511))
	assert.False(t, IsLongLived(0))
}

func TestPromptAncestor(t *testing.T) {
	tests := []struct {
		name   string
		k      int
		pid    []int
		mother []int
		want   int
	}{
		{
			name:   "root is its own prompt ancestor",
			k:      0,
			pid:    []int{211},
			mother: []int{-1},
			want:   0,
		},
		{
			name:   "no long-lived ancestor",
			k:      2,
			pid:    []int{511, 421, 211},
			mother: []int{-1, 0, 1},
			want:   2,
		},
		{
			name:   "long-lived parent",
			k:      1,
			pid:    []int{310, 211},
			mother: []int{-1, 0},
			want:   0,
		},
		{
			name: "most distant long-lived ancestor wins",
			k:    3,
			// Lambda -> p pi-, with the pi- decaying to mu.
			pid:    []int{3122, 2212, -211, 13},
			mother: []int{-1, 0, 0, 2},
			want:   0,
		},
		{
			name:   "short-lived ancestors above a long-lived one are skipped",
			k:      3,
			pid:    []int{511, 310, 211, 11},
			mother: []int{-1, 0, 1, 2},
			want:   1,
		},
		{
			name:   "own type is not considered",
			k:      1,
			pid:    []int{511, 211},
			mother: []int{-1, 0},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PromptAncestor(tt.k, tt.pid, tt.mother)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChainTerminates(t *testing.T) {
	chain, err := Chain(3, []int{-1, 0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1, 0}, chain)

	_, err = Chain(0, []int{1, 0})
	assert.ErrorIs(t, err, ErrCycle)

	_, err = Chain(0, []int{0})
	assert.ErrorIs(t, err, ErrCycle)

	_, err = Chain(0, []int{5})
	assert.ErrorIs(t, err, ErrParentIndex)

	_, err = Chain(2, []int{-1})
	assert.ErrorIs(t, err, ErrParentIndex)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(decayRecord()))
	require.NoError(t, Validate(&Record{}))

	r := decayRecord()
	r.M = r.M[:3]
	assert.ErrorIs(t, Validate(r), ErrLength)

	r = decayRecord()
	r.Mother[4] = 7
	assert.ErrorIs(t, Validate(r), ErrParentIndex)

	r = decayRecord()
	r.Mother[4] = -2
	assert.ErrorIs(t, Validate(r), ErrParentIndex)

	// 1 -> 3 -> 1 loop hanging below a valid root.
	r = decayRecord()
	r.Mother[1] = 3
	assert.ErrorIs(t, Validate(r), ErrCycle)
}

func TestClassify(t *testing.T) {
	flags, err := Classify(decayRecord())
	require.NoError(t, err)

	// The D- has no long-lived ancestor, so its final-state daughters are
	// prompt. The photon belongs to the long-lived pi+.
	want := []Flag{
		0,
		0,
		FinalState | LongLived | Prompt,
		FinalState | LongLived | Prompt,
		FinalState | LongLived | Prompt,
		FinalState | TrackAssociated | LongLived | Prompt,
		FinalState | LongLived,
	}
	assert.Equal(t, want, flags)
}

func TestClassifyKeepsInputFlags(t *testing.T) {
	r := decayRecord()
	in := append([]Flag(nil), r.Flag...)
	_, err := Classify(r)
	require.NoError(t, err)
	assert.Equal(t, in, r.Flag)
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "", Flag(0).String())
	assert.Equal(t, "[final]", FinalState.String())
	assert.Equal(t, "[final][associated][prompt]", (FinalState | TrackAssociated | Prompt | LongLived).String())
}

func TestName(t *testing.T) {
	assert.Equal(t, "Nucleus(26,56)", Name(1000260560))
	assert.Equal(t, "Nucleus(82,208)", Name(1000822080))
	assert.Equal(t, "Unknown(99999999)", Name(99999999))
	assert.NotEmpty(t, Name(211))
	assert.NotContains(t, Name(211), "Unknown")
}
