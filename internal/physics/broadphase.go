package physics

import (
	"fmt"
	"math"
	"sort"
)

// Pair is a candidate for narrow-phase testing
type Pair struct {
	A, B *Body
}

// Broadphase filters body pairs whose bounds may overlap
type Broadphase interface {
	Name() string
	Pairs(bodies []*Body, dst []Pair) []Pair
}

// NewBroadphase returns the strategy registered under name ("sap" or "grid")
func NewBroadphase(name string) (Broadphase, error) {
	switch name {
	case "sap", "":
		return NewSAPBroadphase(), nil
	case "grid":
		return NewGridBroadphase(DefaultCellSize), nil
	}
	return nil, fmt.Errorf("unknown broadphase %q", name)
}

// NeedsTest reports whether a pair can produce a contact worth solving;
// pairs where neither body can move are skipped.
func NeedsTest(a, b *Body) bool {
	aIdle := a.IsStatic() || a.IsSleeping()
	bIdle := b.IsStatic() || b.IsSleeping()
	return !(aIdle && bIdle)
}

// SplitUnbounded separates infinite shapes (planes), which pair with everything.
// Results are appended to bounded and unbounded.
func SplitUnbounded(bodies []*Body, bounded, unbounded []*Body) ([]*Body, []*Body) {
	for _, b := range bodies {
		if b.Shape.Kind == ShapePlane {
			unbounded = append(unbounded, b)
		} else {
			bounded = append(bounded, b)
		}
	}
	return bounded, unbounded
}

// AppendUnboundedPairs pairs every plane with every bounded body that needs a test
func AppendUnboundedPairs(bounded, unbounded []*Body, dst []Pair) []Pair {
	for _, u := range unbounded {
		for _, b := range bounded {
			if NeedsTest(u, b) {
				dst = append(dst, Pair{A: b, B: u})
			}
		}
	}
	return dst
}

// SAPBroadphase sorts bodies along one axis and sweeps for overlapping intervals
type SAPBroadphase struct {
	Axis           int // 0=X, 1=Y, 2=Z
	AutoDetectAxis bool

	bounded   []*Body
	unbounded []*Body
	bounds    []AABB
}

func NewSAPBroadphase() *SAPBroadphase {
	return &SAPBroadphase{AutoDetectAxis: true}
}

func (s *SAPBroadphase) Name() string {
	return "sap"
}

func (s *SAPBroadphase) Pairs(bodies []*Body, dst []Pair) []Pair {
	s.bounded, s.unbounded = SplitUnbounded(bodies, s.bounded[:0], s.unbounded[:0])
	dst = AppendUnboundedPairs(s.bounded, s.unbounded, dst)

	if s.AutoDetectAxis {
		s.Axis = widestAxis(s.bounded)
	}

	s.bounds = s.bounds[:0]
	for _, b := range s.bounded {
		s.bounds = append(s.bounds, b.AABB())
	}
	sort.Sort(byAxisMin{s})

	for i := range s.bounded {
		_, maxI := s.bounds[i].axis(s.Axis)
		for j := i + 1; j < len(s.bounded); j++ {
			minJ, _ := s.bounds[j].axis(s.Axis)
			if minJ > maxI {
				break
			}
			if NeedsTest(s.bounded[i], s.bounded[j]) && s.bounds[i].Intersects(s.bounds[j]) {
				dst = append(dst, Pair{A: s.bounded[i], B: s.bounded[j]})
			}
		}
	}
	return dst
}

type byAxisMin struct {
	s *SAPBroadphase
}

func (o byAxisMin) Len() int { return len(o.s.bounded) }
func (o byAxisMin) Less(i, j int) bool {
	mi, _ := o.s.bounds[i].axis(o.s.Axis)
	mj, _ := o.s.bounds[j].axis(o.s.Axis)
	return mi < mj
}
func (o byAxisMin) Swap(i, j int) {
	o.s.bounded[i], o.s.bounded[j] = o.s.bounded[j], o.s.bounded[i]
	o.s.bounds[i], o.s.bounds[j] = o.s.bounds[j], o.s.bounds[i]
}

// widestAxis picks the axis with the largest variance of body positions
func widestAxis(bodies []*Body) int {
	if len(bodies) < 2 {
		return 0
	}
	var sum, sumSq [3]float64
	for _, b := range bodies {
		p := [3]float64{float64(b.Position.X), float64(b.Position.Y), float64(b.Position.Z)}
		for i := range p {
			sum[i] += p[i]
			sumSq[i] += p[i] * p[i]
		}
	}
	n := float64(len(bodies))
	best, bestVar := 0, -1.0
	for i := 0; i < 3; i++ {
		v := sumSq[i]/n - (sum[i]/n)*(sum[i]/n)
		if v > bestVar {
			best, bestVar = i, v
		}
	}
	return best
}

// DefaultCellSize is the spatial grid cell edge length
const DefaultCellSize = 5.0

type cellKey struct {
	X, Y, Z int
}

// GridBroadphase hashes bodies into every grid cell their bounds overlap
type GridBroadphase struct {
	CellSize float32

	grid      map[cellKey][]int
	bounded   []*Body
	unbounded []*Body
	bounds    []AABB
	checked   map[pairKey]bool
}

func NewGridBroadphase(cellSize float32) *GridBroadphase {
	return &GridBroadphase{
		CellSize: cellSize,
		grid:     make(map[cellKey][]int),
		checked:  make(map[pairKey]bool),
	}
}

func (g *GridBroadphase) Name() string {
	return "grid"
}

func (g *GridBroadphase) cell(v float32) int {
	return int(math.Floor(float64(v / g.CellSize)))
}

func (g *GridBroadphase) Pairs(bodies []*Body, dst []Pair) []Pair {
	g.bounded, g.unbounded = SplitUnbounded(bodies, g.bounded[:0], g.unbounded[:0])
	dst = AppendUnboundedPairs(g.bounded, g.unbounded, dst)

	// Clear grid
	for k := range g.grid {
		delete(g.grid, k)
	}
	for k := range g.checked {
		delete(g.checked, k)
	}

	g.bounds = g.bounds[:0]
	for i, b := range g.bounded {
		box := b.AABB()
		g.bounds = append(g.bounds, box)
		for x := g.cell(box.Min.X); x <= g.cell(box.Max.X); x++ {
			for y := g.cell(box.Min.Y); y <= g.cell(box.Max.Y); y++ {
				for z := g.cell(box.Min.Z); z <= g.cell(box.Max.Z); z++ {
					key := cellKey{x, y, z}
					g.grid[key] = append(g.grid[key], i)
				}
			}
		}
	}

	for _, members := range g.grid {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := g.bounded[members[i]], g.bounded[members[j]]
				key := makePairKey(a, b)
				if g.checked[key] {
					continue
				}
				g.checked[key] = true
				if NeedsTest(a, b) && g.bounds[members[i]].Intersects(g.bounds[members[j]]) {
					dst = append(dst, Pair{A: a, B: b})
				}
			}
		}
	}
	return dst
}
