package ndload

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AxisRange is a half-open [Lo, Hi) extent along one axis.
type AxisRange struct {
	Lo int `yaml:"lo"`
	Hi int `yaml:"hi"`
}

// Region describes one piece of a load's decomposition: a rectangle (one
// AxisRange per axis) and which function (base/window) fills it.
type Region struct {
	Source string      `yaml:"source"` // "base" or "window"
	Axes   []AxisRange `yaml:"axes"`
}

// LoadPlan is a pure, read-only description of the regions and recursion a
// real LoadSeq/LoadPar call over the same WD would produce, without ever
// touching a buffer or calling Base.At/WinAt. It is a diagnostic: operators
// and tests read it to confirm a load's decomposition without materializing
// anything, and it marshals to YAML for golden-file comparisons. It does not
// record how LoadPar splits a window into per-worker chunks.
type LoadPlan struct {
	Shape        []int     `yaml:"shape"`
	UnrollFactor int       `yaml:"unroll_factor,omitempty"`
	Regions      []Region  `yaml:"regions"`
	Inner        *LoadPlan `yaml:"inner,omitempty"`
	InnerCount   int       `yaml:"inner_count,omitempty"`
}

// YAML renders the plan for logging or golden-file comparison.
func (p LoadPlan) YAML() (string, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "ndload: marshal load plan")
	}
	return string(b), nil
}

// Explain computes the LoadPlan for wd, following the same border/interior
// decomposition LoadSeq and LoadPar use at each rank.
func Explain[E any](wd ndarray.WindowedDelayedArray[E]) LoadPlan {
	shape := wd.Base.Shape
	switch shape.Rank() {
	case 0:
		source := "base"
		if ndindex.TotalElem(wd.WinSize) > 0 {
			source = "window"
		}
		return LoadPlan{Shape: []int{}, Regions: []Region{{Source: source, Axes: []AxisRange{}}}}
	case 1:
		return explainRank1(wd)
	case 2:
		return explainRank2(wd)
	default:
		return explainRankN(wd)
	}
}

func explainRank1[E any](wd ndarray.WindowedDelayedArray[E]) LoadPlan {
	shape := wd.Base.Shape[0]
	winStart := wd.WinStart[0]
	winEnd := winStart + wd.WinSize[0]

	var regions []Region
	if winStart > 0 {
		regions = append(regions, Region{Source: "base", Axes: []AxisRange{{0, winStart}}})
	}
	if winEnd > winStart {
		regions = append(regions, Region{Source: "window", Axes: []AxisRange{{winStart, winEnd}}})
	}
	if winEnd < shape {
		regions = append(regions, Region{Source: "base", Axes: []AxisRange{{winEnd, shape}}})
	}
	return LoadPlan{Shape: []int{shape}, Regions: regions}
}

func explainRank2[E any](wd ndarray.WindowedDelayedArray[E]) LoadPlan {
	m, n := wd.Base.Shape[0], wd.Base.Shape[1]
	it, jt := wd.WinStart[0], wd.WinStart[1]
	wm, wn := wd.WinSize[0], wd.WinSize[1]
	ib, jb := it+wm, jt+wn

	var regions []Region
	addBorder := func(rowLo, rowHi, colLo, colHi int) {
		if rowHi > rowLo && colHi > colLo {
			regions = append(regions, Region{Source: "base", Axes: []AxisRange{{rowLo, rowHi}, {colLo, colHi}}})
		}
	}
	addBorder(0, it, 0, n)
	addBorder(ib, m, 0, n)
	addBorder(it, ib, 0, jt)
	addBorder(it, ib, jb, n)
	if wm > 0 && wn > 0 {
		regions = append(regions, Region{Source: "window", Axes: []AxisRange{{it, ib}, {jt, jb}}})
	}

	return LoadPlan{
		Shape:        []int{m, n},
		UnrollFactor: stencilRowHeight(wd.StencilSize),
		Regions:      regions,
	}
}

func explainRankN[E any](wd ndarray.WindowedDelayedArray[E]) LoadPlan {
	shape := wd.Base.Shape
	M := shape.Outer()
	t := wd.WinStart.Outer()
	W := wd.WinSize.Outer()

	var regions []Region
	if t > 0 {
		regions = append(regions, Region{Source: "base", Axes: []AxisRange{{0, t}}})
	}
	if t+W < M {
		regions = append(regions, Region{Source: "base", Axes: []AxisRange{{t + W, M}}})
	}

	plan := LoadPlan{
		Shape:      append([]int{}, shape...),
		Regions:    regions,
		InnerCount: W,
	}
	if W > 0 {
		inner := Explain(sliceAt(wd, t))
		plan.Inner = &inner
	}
	return plan
}
