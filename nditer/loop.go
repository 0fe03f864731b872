// Package nditer provides the bounded integer loop and rank-generic index
// walk that the load engine's element and task loops are built on:
// range-over-func element walkers generalized to an explicit
// start/stop/step rather than always walking a shape from zero.
package nditer

import "github.com/itohio/ndload/ndindex"

// Loop runs a pure accumulator loop: acc starts at init, continues while
// cont(cur) holds, and advances cur via step(cur) after each call to
// body(acc, cur). Returns the final accumulator.
func Loop[A any](init A, cur int, cont func(cur int) bool, step func(cur int) int, body func(acc A, cur int) A) A {
	acc := init
	for cont(cur) {
		acc = body(acc, cur)
		cur = step(cur)
	}
	return acc
}

// LoopM runs an effectful accumulator loop; body may fail, in which case
// LoopM stops immediately and returns the error alongside the last
// successfully produced accumulator.
func LoopM[A any](init A, cur int, cont func(cur int) bool, step func(cur int) int, body func(acc A, cur int) (A, error)) (A, error) {
	acc := init
	for cont(cur) {
		next, err := body(acc, cur)
		if err != nil {
			return acc, err
		}
		acc = next
		cur = step(cur)
	}
	return acc, nil
}

// LoopM_ runs an effectful loop purely for side effects, stopping at the
// first error returned by body.
func LoopM_(cur int, cont func(cur int) bool, step func(cur int) int, body func(cur int) error) error {
	for cont(cur) {
		if err := body(cur); err != nil {
			return err
		}
		cur = step(cur)
	}
	return nil
}

// Asc is the usual ascending-by-one step, i.e. step(i) = i+1.
func Asc(i int) int { return i + 1 }

// Lt is the usual "less than end" continuation predicate.
func Lt(end int) func(int) bool {
	return func(cur int) bool { return cur < end }
}

// Iter walks every index in the rank-generic box [start, end) with the
// given per-axis step, outermost axis as the outer loop, invoking body(ix)
// for each. The index slice passed to body is reused across calls — body
// must not retain it.
func Iter(start, end, step ndindex.Ix, body func(ix ndindex.Ix) bool) {
	rank := len(start)
	if rank == 0 {
		body(ndindex.Ix{})
		return
	}
	if isEmptyRange(start, end) {
		return
	}
	cur := start.Clone()
	for {
		if !body(cur) {
			return
		}
		if !advance(cur, start, end, step) {
			return
		}
	}
}

// IterM is the effectful counterpart of Iter: body may fail, which stops
// the walk and propagates the error.
func IterM(start, end, step ndindex.Ix, body func(ix ndindex.Ix) error) error {
	rank := len(start)
	if rank == 0 {
		return body(ndindex.Ix{})
	}
	if isEmptyRange(start, end) {
		return nil
	}
	cur := start.Clone()
	for {
		if err := body(cur); err != nil {
			return err
		}
		if !advance(cur, start, end, step) {
			return nil
		}
	}
}

// isEmptyRange reports whether [start, end) is empty along any axis.
func isEmptyRange(start, end ndindex.Ix) bool {
	for d := range start {
		if start[d] >= end[d] {
			return true
		}
	}
	return false
}

// advance mutates cur in place to the next index in row-major order within
// [start, end) with the given per-axis step, returning false once the walk
// is exhausted. The outermost axis (index 0) varies slowest.
func advance(cur, start, end, step ndindex.Ix) bool {
	for d := len(cur) - 1; d >= 0; d-- {
		cur[d] += step[d]
		if cur[d] < end[d] {
			return true
		}
		cur[d] = start[d]
		if d == 0 {
			return false
		}
	}
	return false
}
