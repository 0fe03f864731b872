// Package ndindex implements the index algebra: multi-dimensional indices
// and shapes, and the row-major linear<->multi-dimensional conversions the
// load engine is built on.
package ndindex

import "fmt"

// MaxRank bounds the rank for which FromLinearIndexInto, when dst is too
// small, backs its result with a MaxRank-sized array. Ranks above MaxRank
// get an exact-size allocation instead; either result can be passed back
// as dst and reused by later calls.
const MaxRank = 16

// Dim selects a dimension slot in an index of a given rank. Dim is 1-based:
// Dim 1 is the innermost (fastest-varying, contiguous) axis, Dim rank is the
// outermost.
type Dim int

// Ix is a rank-generic multi-dimensional index or shape, stored as an
// ordered tuple of components with component 0 outermost (slowest-varying)
// and component len-1 innermost (fastest-varying), with the last element
// carrying stride 1.
//
// Ix1 through Ix5 below are constructors for the common ranks; there is
// deliberately no distinct Go type per rank (see DESIGN.md: Go has no
// ergonomic dependent-rank tuple without code generation, so this package
// keeps a single backing representation and layers rank-named constructors
// over it instead).
type Ix []int

// Ix1 builds a rank-1 index/shape.
func Ix1(i0 int) Ix { return Ix{i0} }

// Ix2 builds a rank-2 index/shape, outermost first: Ix2(rows, cols).
func Ix2(i0, i1 int) Ix { return Ix{i0, i1} }

// Ix3 builds a rank-3 index/shape, outermost first.
func Ix3(i0, i1, i2 int) Ix { return Ix{i0, i1, i2} }

// Ix4 builds a rank-4 index/shape, outermost first.
func Ix4(i0, i1, i2, i3 int) Ix { return Ix{i0, i1, i2, i3} }

// Ix5 builds a rank-5 index/shape, outermost first.
func Ix5(i0, i1, i2, i3, i4 int) Ix { return Ix{i0, i1, i2, i3, i4} }

// IxN builds a rank-generic index/shape from an arbitrary number of
// components, outermost first. The result is a copy; components is not
// retained.
func IxN(components ...int) Ix {
	out := make(Ix, len(components))
	copy(out, components)
	return out
}

// Rank returns the number of axes.
func (ix Ix) Rank() int { return len(ix) }

// Clone returns an independent copy of ix.
func (ix Ix) Clone() Ix {
	if ix == nil {
		return nil
	}
	out := make(Ix, len(ix))
	copy(out, ix)
	return out
}

// Equal reports whether ix and other have the same rank and components.
func (ix Ix) Equal(other Ix) bool {
	if len(ix) != len(other) {
		return false
	}
	for i := range ix {
		if ix[i] != other[i] {
			return false
		}
	}
	return true
}

// TotalElem returns the product of ix's components, the element count of a
// shape. A rank-0 shape (the scalar) has exactly one element.
func TotalElem(shape Ix) int {
	if len(shape) == 0 {
		return 1
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0
		}
		n *= d
	}
	return n
}

// PureIndex returns a rank-r index with every component set to k.
func PureIndex(r int, k int) Ix {
	out := make(Ix, r)
	for i := range out {
		out[i] = k
	}
	return out
}

// LiftIndex2 applies f componentwise to a and b. Panics if ranks differ —
// this is a programmer-facing combinator, not a boundary API (see
// DESIGN.md on the fatal-misuse vs propagated-failure split).
func LiftIndex2(f func(a, b int) int, a, b Ix) Ix {
	if len(a) != len(b) {
		panic(fmt.Sprintf("ndindex: LiftIndex2 rank mismatch: %d vs %d", len(a), len(b)))
	}
	out := make(Ix, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return out
}

// ConsDim prepends an outer axis h to tail, producing a rank-(r+1) index.
func ConsDim(h int, tail Ix) Ix {
	out := make(Ix, len(tail)+1)
	out[0] = h
	copy(out[1:], tail)
	return out
}

// UnconsDim splits ix into its outermost component and the remaining tail.
// Panics on a rank-0 index; callers only invoke this once rank>=1 has been
// established by the load engine's dispatch on shape length.
func UnconsDim(ix Ix) (outer int, tail Ix) {
	if len(ix) == 0 {
		panic("ndindex: UnconsDim of rank-0 index")
	}
	return ix[0], ix[1:].Clone()
}

// SnocDim appends an inner axis h to head, producing a rank-(r+1) index.
func SnocDim(head Ix, h int) Ix {
	out := make(Ix, len(head)+1)
	copy(out, head)
	out[len(head)] = h
	return out
}

// UnsnocDim splits ix into its leading head and innermost component.
func UnsnocDim(ix Ix) (head Ix, inner int) {
	if len(ix) == 0 {
		panic("ndindex: UnsnocDim of rank-0 index")
	}
	n := len(ix)
	return ix[:n-1].Clone(), ix[n-1]
}

// Inner returns the fastest-varying (last) component, or 0 for a rank-0
// index.
func (ix Ix) Inner() int {
	if len(ix) == 0 {
		return 0
	}
	return ix[len(ix)-1]
}

// Outer returns the slowest-varying (first) component, used by the rank-N
// recursive loader to read the window's outer axis extent.
func (ix Ix) Outer() int {
	if len(ix) == 0 {
		return 0
	}
	return ix[0]
}

func inRange(d Dim, rank int) bool {
	return d >= 1 && int(d) <= rank
}

// GetDim returns the component at dimension d (1-based). ok is false when d
// is out of range for ix's rank; GetDim never panics.
func GetDim(ix Ix, d Dim) (value int, ok bool) {
	if !inRange(d, len(ix)) {
		return 0, false
	}
	return ix[d-1], true
}

// SetDim returns a copy of ix with dimension d set to value. ok is false
// (and the returned Ix is nil) when d is out of range.
func SetDim(ix Ix, d Dim, value int) (out Ix, ok bool) {
	if !inRange(d, len(ix)) {
		return nil, false
	}
	out = ix.Clone()
	out[d-1] = value
	return out, true
}

// DropDim returns ix with dimension d removed, reducing rank by one. ok is
// false when d is out of range.
func DropDim(ix Ix, d Dim) (out Ix, ok bool) {
	if !inRange(d, len(ix)) {
		return nil, false
	}
	out = make(Ix, 0, len(ix)-1)
	for i, v := range ix {
		if Dim(i+1) == d {
			continue
		}
		out = append(out, v)
	}
	return out, true
}

// InsertDim returns ix with value inserted as a new dimension d, increasing
// rank by one; existing dimensions at or after d shift outward. ok is false
// when d is out of the valid insertion range 1..rank+1.
func InsertDim(ix Ix, d Dim, value int) (out Ix, ok bool) {
	if d < 1 || int(d) > len(ix)+1 {
		return nil, false
	}
	out = make(Ix, 0, len(ix)+1)
	out = append(out, ix[:d-1]...)
	out = append(out, value)
	out = append(out, ix[d-1:]...)
	return out, true
}

// PullOutDim returns the component at dimension d together with the
// remaining rank-(r-1) index with d removed. ok is false when d is out of
// range. This is DropDim plus the removed value, useful when a caller needs
// both (e.g. to relocate an axis).
func PullOutDim(ix Ix, d Dim) (value int, rest Ix, ok bool) {
	v, ok := GetDim(ix, d)
	if !ok {
		return 0, nil, false
	}
	rest, _ = DropDim(ix, d)
	return v, rest, true
}

// IsSafeIndex reports whether ix is a valid index into a shape of the given
// extents: same rank, and every component within [0, shape_d).
func IsSafeIndex(shape, ix Ix) bool {
	if len(shape) != len(ix) {
		return false
	}
	for i := range shape {
		if ix[i] < 0 || ix[i] >= shape[i] {
			return false
		}
	}
	return true
}

// ToLinearIndex computes the row-major linear offset of ix within shape,
// using the recurrence linear(shape, ix) = linear(tail(shape), tail(ix)) *
// inner(shape) + inner(ix), bottoming out at linear(n, i) = i for rank 1.
// Undefined (and not bounds-checked) when ix is not safe for shape — callers
// needing a checked variant should test IsSafeIndex first.
func ToLinearIndex(shape, ix Ix) int {
	linear := 0
	for i := 0; i < len(shape); i++ {
		linear = linear*shape[i] + ix[i]
	}
	return linear
}

// FromLinearIndex inverts ToLinearIndex: it reconstructs the multi-axis
// index whose linear offset within shape is k.
func FromLinearIndex(shape Ix, k int) Ix {
	return FromLinearIndexInto(nil, shape, k)
}

// FromLinearIndexInto is FromLinearIndex but reuses dst's backing array
// when it has enough capacity, instead of allocating on every call. This
// is the fast path a tight linear-index loop (e.g. the rank-N border-slab
// writer) should use: pass the previous call's result back in as dst.
// When dst has no spare capacity and shape's rank is within MaxRank, a
// fresh MaxRank-sized array backs the result so the next call in the same
// loop can reuse it; above MaxRank a plain heap allocation is used instead.
func FromLinearIndexInto(dst Ix, shape Ix, k int) Ix {
	r := len(shape)
	var out Ix
	switch {
	case cap(dst) >= r:
		out = dst[:r]
	case r <= MaxRank:
		var static [MaxRank]int
		out = static[:r]
	default:
		out = make(Ix, r)
	}
	for i := r - 1; i >= 0; i-- {
		d := shape[i]
		if d <= 0 {
			out[i] = 0
			continue
		}
		out[i] = k % d
		k /= d
	}
	return out
}
