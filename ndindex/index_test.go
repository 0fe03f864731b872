package ndindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalElem(t *testing.T) {
	tests := []struct {
		name     string
		shape    Ix
		expected int
	}{
		{name: "rank0", shape: Ix{}, expected: 1},
		{name: "rank1", shape: Ix1(5), expected: 5},
		{name: "rank2", shape: Ix2(2, 3), expected: 6},
		{name: "rank3", shape: Ix3(2, 3, 4), expected: 24},
		{name: "zero extent", shape: Ix2(0, 3), expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalElem(tt.shape))
		})
	}
}

func TestLinearIndexRoundTrip(t *testing.T) {
	shapes := []Ix{
		Ix1(10),
		Ix2(4, 4),
		Ix3(3, 3, 3),
		Ix4(2, 3, 2, 4),
		Ix5(2, 2, 2, 2, 2),
	}
	for _, shape := range shapes {
		n := TotalElem(shape)
		for k := 0; k < n; k++ {
			ix := FromLinearIndex(shape, k)
			require.True(t, IsSafeIndex(shape, ix), "shape=%v k=%d ix=%v", shape, k, ix)
			got := ToLinearIndex(shape, ix)
			require.Equal(t, k, got, "shape=%v k=%d ix=%v", shape, k, ix)
		}
	}
}

func TestFromLinearIndexIntoReusesBuffer(t *testing.T) {
	shape := Ix3(3, 3, 3)
	var scratch Ix
	var lastArr *int
	for k := 0; k < TotalElem(shape); k++ {
		scratch = FromLinearIndexInto(scratch, shape, k)
		require.True(t, IsSafeIndex(shape, scratch), "k=%d ix=%v", k, scratch)
		require.Equal(t, k, ToLinearIndex(shape, scratch))
		if lastArr == nil {
			lastArr = &scratch[0]
		} else {
			require.Same(t, lastArr, &scratch[0], "expected FromLinearIndexInto to reuse scratch's backing array")
		}
	}
}

func TestFromLinearIndexIntoAboveMaxRankStillCorrect(t *testing.T) {
	shape := PureIndex(MaxRank+2, 2)
	n := TotalElem(shape)
	var scratch Ix
	for k := 0; k < n; k++ {
		scratch = FromLinearIndexInto(scratch, shape, k)
		require.Equal(t, k, ToLinearIndex(shape, scratch), "k=%d", k)
	}
}

func TestConsUnconsInverse(t *testing.T) {
	for rank := 2; rank <= 5; rank++ {
		tail := make(Ix, rank-1)
		for i := range tail {
			tail[i] = i + 1
		}
		ix := ConsDim(99, tail)
		require.Equal(t, rank, ix.Rank())
		outer, gotTail := UnconsDim(ix)
		assert.Equal(t, 99, outer)
		assert.Equal(t, tail, gotTail)
	}
}

func TestSnocUnsnocInverse(t *testing.T) {
	for rank := 2; rank <= 5; rank++ {
		head := make(Ix, rank-1)
		for i := range head {
			head[i] = i + 1
		}
		ix := SnocDim(head, 77)
		require.Equal(t, rank, ix.Rank())
		gotHead, inner := UnsnocDim(ix)
		assert.Equal(t, head, gotHead)
		assert.Equal(t, 77, inner)
	}
}

func TestGetSetDropInsertPullOutOutOfRange(t *testing.T) {
	ix := Ix3(1, 2, 3)

	_, ok := GetDim(ix, 0)
	assert.False(t, ok)
	_, ok = GetDim(ix, 4)
	assert.False(t, ok)
	v, ok := GetDim(ix, 2)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = SetDim(ix, 0, 9)
	assert.False(t, ok)
	out, ok := SetDim(ix, 1, 42)
	require.True(t, ok)
	assert.Equal(t, Ix{42, 2, 3}, out)
	// original untouched
	assert.Equal(t, Ix{1, 2, 3}, ix)

	_, ok = DropDim(ix, 5)
	assert.False(t, ok)
	out, ok = DropDim(ix, 2)
	require.True(t, ok)
	assert.Equal(t, Ix{1, 3}, out)

	_, ok = InsertDim(ix, 5, 0)
	assert.False(t, ok)
	out, ok = InsertDim(ix, 1, 0)
	require.True(t, ok)
	assert.Equal(t, Ix{0, 1, 2, 3}, out)
	out, ok = InsertDim(ix, 4, 100)
	require.True(t, ok)
	assert.Equal(t, Ix{1, 2, 3, 100}, out)

	_, _, ok = PullOutDim(ix, 0)
	assert.False(t, ok)
	val, rest, ok := PullOutDim(ix, 3)
	require.True(t, ok)
	assert.Equal(t, 3, val)
	assert.Equal(t, Ix{1, 2}, rest)
}

func TestIsSafeIndex(t *testing.T) {
	shape := Ix2(4, 4)
	assert.True(t, IsSafeIndex(shape, Ix2(0, 0)))
	assert.True(t, IsSafeIndex(shape, Ix2(3, 3)))
	assert.False(t, IsSafeIndex(shape, Ix2(4, 0)))
	assert.False(t, IsSafeIndex(shape, Ix2(-1, 0)))
	assert.False(t, IsSafeIndex(shape, Ix1(0)))
}

func TestLiftIndex2(t *testing.T) {
	a := Ix2(1, 2)
	b := Ix2(10, 20)
	out := LiftIndex2(func(x, y int) int { return x + y }, a, b)
	assert.Equal(t, Ix2(11, 22), out)
}

func TestLiftIndex2RankMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		LiftIndex2(func(x, y int) int { return x + y }, Ix1(1), Ix2(1, 2))
	})
}

func TestPureIndex(t *testing.T) {
	assert.Equal(t, Ix{7, 7, 7}, PureIndex(3, 7))
}
