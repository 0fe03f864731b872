// Package ndbench is an external-collaborator stub: the kind of benchmark
// caller (element-wise combinators, folds, matrix multiplication, Sobel,
// integral-image) this module exists to support without implementing
// itself. It demonstrates the public surface of ndindex/ndarray/ndload
// from a consumer's point of view; it is not part of the core's test
// matrix and implements no combinator beyond the one illustrative example
// below.
package ndbench

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/itohio/ndload/ndload"
	"github.com/itohio/ndload/ndscheduler"
)

// Stencil3x3Sum materializes, via the load engine, a 2-D array that is the
// 3x3-footprint sum of src read through fn around every interior cell,
// with a fixed border value for cells too close to the edge to hold a full
// footprint. This is the shape of a real stencil evaluation built on top of
// the windowed delayed array model: the caller supplies the cheap
// interior-only indexing function, constructs a WD with
// ndarray.MakeArrayWindowed, and materializes it with ndload.LoadPar.
func Stencil3x3Sum(fn func(i, j int) float64, rows, cols int, border float64, workers []ndscheduler.WorkerID) ([]float64, error) {
	shape := ndindex.Ix2(rows, cols)
	base := ndarray.NewDelayed(shape, func(ix ndindex.Ix) float64 { return border })

	winStart := ndindex.Ix2(1, 1)
	winSize := ndindex.Ix2(0, 0)
	if rows > 2 && cols > 2 {
		winSize = ndindex.Ix2(rows-2, cols-2)
	}

	wd, err := ndarray.MakeArrayWindowed(base, winStart, winSize, func(ix ndindex.Ix) float64 {
		i, j := ix[0], ix[1]
		sum := 0.0
		for di := -1; di <= 1; di++ {
			for dj := -1; dj <= 1; dj++ {
				sum += fn(i+di, j+dj)
			}
		}
		return sum
	})
	if err != nil {
		return nil, err
	}
	wd = wd.WithStencilSize(ndindex.Ix2(3, 3))

	buf := ndload.NewSliceBuffer[float64](rows * cols)
	if err := ndload.LoadPar(workers, wd, buf); err != nil {
		return nil, err
	}
	return buf.Data, nil
}
