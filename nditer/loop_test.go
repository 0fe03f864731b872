package nditer

import (
	"errors"
	"testing"

	"github.com/itohio/ndload/ndindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopSum(t *testing.T) {
	sum := Loop(0, 0, Lt(5), Asc, func(acc, cur int) int { return acc + cur })
	assert.Equal(t, 10, sum)
}

func TestLoopMStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	seen := 0
	_, err := LoopM(0, 0, Lt(10), Asc, func(acc, cur int) (int, error) {
		seen++
		if cur == 3 {
			return acc, boom
		}
		return acc + cur, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 4, seen)
}

func TestLoopM_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var visited []int
	err := LoopM_(0, Lt(5), Asc, func(cur int) error {
		visited = append(visited, cur)
		if cur == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0, 1, 2}, visited)
}

func TestIterVisitsEveryIndexExactlyOnce(t *testing.T) {
	start := ndindex.Ix2(0, 0)
	end := ndindex.Ix2(3, 4)
	step := ndindex.Ix2(1, 1)

	seen := map[[2]int]int{}
	Iter(start, end, step, func(ix ndindex.Ix) bool {
		seen[[2]int{ix[0], ix[1]}]++
		return true
	})

	assert.Len(t, seen, 12)
	for k, v := range seen {
		assert.Equal(t, 1, v, "index %v visited %d times", k, v)
	}
}

func TestIterOutermostIsOuterLoop(t *testing.T) {
	start := ndindex.Ix2(0, 0)
	end := ndindex.Ix2(2, 2)
	step := ndindex.Ix2(1, 1)

	var order []ndindex.Ix
	Iter(start, end, step, func(ix ndindex.Ix) bool {
		order = append(order, ix.Clone())
		return true
	})

	want := []ndindex.Ix{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	require.Len(t, order, len(want))
	for i := range want {
		assert.Equal(t, want[i], order[i])
	}
}

func TestIterEarlyStop(t *testing.T) {
	start := ndindex.Ix1(0)
	end := ndindex.Ix1(10)
	step := ndindex.Ix1(1)

	count := 0
	Iter(start, end, step, func(ix ndindex.Ix) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}

func TestIterMPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	start := ndindex.Ix1(0)
	end := ndindex.Ix1(10)
	step := ndindex.Ix1(1)

	err := IterM(start, end, step, func(ix ndindex.Ix) error {
		if ix[0] == 4 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestIterRankZero(t *testing.T) {
	calls := 0
	Iter(ndindex.Ix{}, ndindex.Ix{}, ndindex.Ix{}, func(ix ndindex.Ix) bool {
		calls++
		assert.Equal(t, 0, ix.Rank())
		return true
	})
	assert.Equal(t, 1, calls)
}

func TestIterEmptyRangeVisitsNothing(t *testing.T) {
	calls := 0
	Iter(ndindex.Ix2(2, 2), ndindex.Ix2(2, 2), ndindex.Ix2(1, 1), func(ix ndindex.Ix) bool {
		calls++
		return true
	})
	assert.Equal(t, 0, calls)
}

func TestIterMEmptyRangeVisitsNothing(t *testing.T) {
	calls := 0
	err := IterM(ndindex.Ix1(5), ndindex.Ix1(5), ndindex.Ix1(1), func(ix ndindex.Ix) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}
