// Package scene owns the hand-authored walkable geometry of one room:
// polygon walkable and obstacle regions, the derived navigation grid, the
// depth-scale band, and the YAML files that describe them.
package scene

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/pointclick/common"
	"github.com/milk9111/pointclick/nav"
)

const (
	RegionWalkable = "walkable"
	RegionObstacle = "obstacle"
)

// discSamples is the number of rim points checked, in addition to the
// center, when testing whether an actor disc fits inside walkable space.
const discSamples = 8

// RegionSpec is one polygon region in a scene file.
type RegionSpec struct {
	Name   string       `yaml:"name"`
	Kind   string       `yaml:"kind"` // walkable or obstacle
	Points [][2]float64 `yaml:"points"`
}

// Spec is the on-disk description of a scene.
type Spec struct {
	Name        string       `yaml:"name"`
	Width       float64      `yaml:"width"`
	Height      float64      `yaml:"height"`
	CellSize    float64      `yaml:"cell_size"`
	ActorRadius float64      `yaml:"actor_radius"`
	RadiusScale float64      `yaml:"radius_scale"` // 0 means nav.DefaultRadiusScale
	ScaleTop    float64      `yaml:"scale_top"`    // actor scale at y=0
	ScaleBottom float64      `yaml:"scale_bottom"` // actor scale at y=height
	Spawn       [2]float64   `yaml:"spawn"`
	Regions     []RegionSpec `yaml:"regions"`
}

// Scene is a loaded room: immutable region geometry plus the navigation
// grid built from it. It implements the walkable-area, grid-area, and
// depth-scale queries the nav and motion packages consume.
type Scene struct {
	spec      Spec
	walkables []Polygon
	obstacles []Polygon
	grid      *nav.Grid
}

// Load reads a scene file by name (embedded, with disk override) and builds
// it.
func Load(name string) (*Scene, error) {
	spec, err := LoadSpec[Spec](name)
	if err != nil {
		return nil, err
	}
	return New(spec)
}

// New validates the spec, assembles the region polygons, and builds the
// navigation grid. Grid construction failures abort the scene: the engine
// must not run against an unusable grid.
func New(spec Spec) (*Scene, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("scene %q: size must be positive, got %vx%v", spec.Name, spec.Width, spec.Height)
	}
	if spec.CellSize <= 0 {
		return nil, fmt.Errorf("scene %q: cell_size must be positive, got %v", spec.Name, spec.CellSize)
	}
	if spec.ScaleTop < 0 || spec.ScaleBottom < 0 {
		return nil, fmt.Errorf("scene %q: depth scales must not be negative", spec.Name)
	}
	if spec.ScaleTop == 0 {
		spec.ScaleTop = 1
	}
	if spec.ScaleBottom == 0 {
		spec.ScaleBottom = 1
	}

	s := &Scene{spec: spec}
	for i, r := range spec.Regions {
		verts := make([]cp.Vector, len(r.Points))
		for j, p := range r.Points {
			verts[j] = cp.Vector{X: p[0], Y: p[1]}
		}
		poly, err := NewPolygon(verts)
		if err != nil {
			return nil, fmt.Errorf("scene %q: region %d (%s): %w", spec.Name, i, r.Name, err)
		}
		switch r.Kind {
		case RegionWalkable:
			s.walkables = append(s.walkables, poly)
		case RegionObstacle:
			s.obstacles = append(s.obstacles, poly)
		default:
			return nil, fmt.Errorf("scene %q: region %d (%s): unknown kind %q", spec.Name, i, r.Name, r.Kind)
		}
	}

	grid, err := nav.BuildGrid(s, nav.GridConfig{
		Width:       spec.Width,
		Height:      spec.Height,
		CellSize:    spec.CellSize,
		ActorRadius: spec.ActorRadius,
		RadiusScale: spec.RadiusScale,
	})
	if err != nil {
		return nil, fmt.Errorf("scene %q: build grid: %w", spec.Name, err)
	}
	s.grid = grid
	return s, nil
}

func (s *Scene) Spec() Spec      { return s.spec }
func (s *Scene) Grid() *nav.Grid { return s.grid }

func (s *Scene) Spawn() cp.Vector {
	return cp.Vector{X: s.spec.Spawn[0], Y: s.spec.Spawn[1]}
}

// IsWalkable reports whether a world point lies inside a walkable region
// and outside every obstacle region.
func (s *Scene) IsWalkable(p cp.Vector) bool {
	if s == nil {
		return false
	}
	if p.X < 0 || p.Y < 0 || p.X > s.spec.Width || p.Y > s.spec.Height {
		return false
	}
	inside := false
	for _, poly := range s.walkables {
		if poly.Contains(p) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	for _, poly := range s.obstacles {
		if poly.Contains(p) {
			return false
		}
	}
	return true
}

// DiscWalkable reports whether a disc fits entirely inside walkable space,
// sampling the center and points around the rim. Implements nav.Area for
// grid construction.
func (s *Scene) DiscWalkable(center cp.Vector, radius float64) bool {
	if !s.IsWalkable(center) {
		return false
	}
	if radius <= 0 {
		return true
	}
	for i := 0; i < discSamples; i++ {
		angle := 2 * math.Pi * float64(i) / discSamples
		rim := center.Add(cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}.Mult(radius))
		if !s.IsWalkable(rim) {
			return false
		}
	}
	return true
}

// NearestWalkable returns p when it is already walkable, otherwise the
// closest point on any walkable region's outline. With no walkable regions
// it returns p unchanged.
func (s *Scene) NearestWalkable(p cp.Vector) cp.Vector {
	if s.IsWalkable(p) {
		return p
	}
	best := p
	bestDist := math.Inf(1)
	for _, poly := range s.walkables {
		candidate := poly.ClosestBoundaryPoint(p)
		if d := p.DistanceSq(candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}

// ScaleAt returns the visual actor scale at a world depth, interpolating
// the authored top/bottom band. Callers apply it to sprite size; the
// movement core never reads it.
func (s *Scene) ScaleAt(y float64) float64 {
	t := common.Clamp(y/s.spec.Height, 0, 1)
	return common.Lerp(s.spec.ScaleTop, s.spec.ScaleBottom, t)
}
