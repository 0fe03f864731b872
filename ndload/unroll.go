package ndload

// MaxUnroll is the upper bound on the unroll-and-jam row-block height,
// capped at 7 because beyond that register pressure harms the target ISAs
// more than the extra instruction-level parallelism helps.
const MaxUnroll = 7

// clampUnroll restricts h to [1, MaxUnroll]; the zero value (no stencil
// hint) maps to the scalar case, h=1.
func clampUnroll(h int) int {
	if h < 1 {
		return 1
	}
	if h > MaxUnroll {
		return MaxUnroll
	}
	return h
}

// UnrollAndJam walks the rectangle rows [it, ib) x cols [jt, jb) in
// row-blocks of height hEff = clamp(h, 1, MaxUnroll): for each block, the
// column loop invokes body once per row in the block as a straight-line
// sequence before advancing the column, exposing instruction-level
// parallelism and row-to-row cache reuse the way stencil access patterns
// want. The remaining rows — (ib-it) mod hEff of them — run through a
// plain scalar loop.
func UnrollAndJam(h int, it, ib, jt, jb int, body func(i, j int)) {
	if ib <= it || jb <= jt {
		return
	}
	hEff := clampUnroll(h)

	blockEnd := it
	for i := it; i+hEff <= ib; i += hEff {
		unrollBlock(hEff, i, jt, jb, body)
		blockEnd = i + hEff
	}
	for i := blockEnd; i < ib; i++ {
		for j := jt; j < jb; j++ {
			body(i, j)
		}
	}
}

// unrollBlock dispatches to a specialization per hEff in 1..MaxUnroll, each
// a straight-line sequence of body calls per column: a compile-time-fixed
// unroll realized in Go as a fixed case table rather than true
// monomorphized code generation.
func unrollBlock(hEff, i, jt, jb int, body func(i, j int)) {
	switch hEff {
	case 1:
		for j := jt; j < jb; j++ {
			body(i, j)
		}
	case 2:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
		}
	case 3:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
			body(i+2, j)
		}
	case 4:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
			body(i+2, j)
			body(i+3, j)
		}
	case 5:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
			body(i+2, j)
			body(i+3, j)
			body(i+4, j)
		}
	case 6:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
			body(i+2, j)
			body(i+3, j)
			body(i+4, j)
			body(i+5, j)
		}
	case 7:
		for j := jt; j < jb; j++ {
			body(i, j)
			body(i+1, j)
			body(i+2, j)
			body(i+3, j)
			body(i+4, j)
			body(i+5, j)
			body(i+6, j)
		}
	default:
		// Unreachable: clampUnroll restricts hEff to [1, MaxUnroll].
		for dr := 0; dr < hEff; dr++ {
			for j := jt; j < jb; j++ {
				body(i+dr, j)
			}
		}
	}
}
