// Package motion drives per-actor movement: walking straight at a target or
// following a waypoint list produced by the nav package, one Update call per
// frame from the main loop.
package motion

import "github.com/jakecoffman/cp"

// Actor is the accessor the controller uses to read and move the actor it
// owns. The scene layer applies depth scaling to the actor's sprite
// separately; the controller only touches position.
type Actor interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Size() cp.Vector
}

// WalkableArea clamps direct movement to the scene's walkable regions.
// Injected at construction so controllers can be tested without a scene.
type WalkableArea interface {
	IsWalkable(p cp.Vector) bool
	NearestWalkable(p cp.Vector) cp.Vector
}

// PathFinder produces a ready-to-follow waypoint list, or nil when the goal
// is unreachable.
type PathFinder interface {
	FindPath(start, goal cp.Vector) []cp.Vector
}

// State is the controller's movement state.
type State int

const (
	StateIdle State = iota
	StateDirectMoving
	StatePathFollowing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDirectMoving:
		return "direct"
	case StatePathFollowing:
		return "path"
	}
	return "unknown"
}

const (
	// DefaultArriveThreshold is the final-arrival distance. Game-feel
	// tuning, not a correctness constant; override via Config.
	DefaultArriveThreshold = 5.0
	// DefaultWaypointThreshold is the interior waypoint-reached distance.
	// Larger than the arrival threshold so actors do not oscillate at
	// path corners.
	DefaultWaypointThreshold = 10.0
	// DefaultFacingHysteresis is the horizontal per-frame movement band
	// inside which facing changes are suppressed, preventing flicker on
	// near-vertical motion.
	DefaultFacingHysteresis = 0.1

	defaultSpeed = 120.0 // pixels per second
)

// Config holds the movement tuning for one controller. Zero fields take
// the package defaults.
type Config struct {
	Speed             float64 // walking speed in pixels per second
	ArriveThreshold   float64
	WaypointThreshold float64
	FacingHysteresis  float64
}

func (c Config) withDefaults() Config {
	if c.Speed <= 0 {
		c.Speed = defaultSpeed
	}
	if c.ArriveThreshold <= 0 {
		c.ArriveThreshold = DefaultArriveThreshold
	}
	if c.WaypointThreshold <= 0 {
		c.WaypointThreshold = DefaultWaypointThreshold
	}
	if c.FacingHysteresis <= 0 {
		c.FacingHysteresis = DefaultFacingHysteresis
	}
	return c
}

// Controller is the per-actor movement state machine. It is created with
// the actor it drives, reset on every new move command, and must only be
// updated from the main loop; it is not safe for concurrent use.
type Controller struct {
	actor  Actor
	finder PathFinder   // optional; nil disables pathfinding
	area   WalkableArea // optional; nil disables walkable clamping
	cfg    Config

	state    State
	target   cp.Vector
	path     []cp.Vector
	waypoint int

	onComplete func()
	onFacing   func(dir int)
	facing     int
}

// NewController creates a controller for actor. finder and area may be nil.
func NewController(actor Actor, finder PathFinder, area WalkableArea, cfg Config) *Controller {
	return &Controller{
		actor:  actor,
		finder: finder,
		area:   area,
		cfg:    cfg.withDefaults(),
	}
}

// OnMovementComplete registers the callback invoked when the actor arrives
// at its target. Cancelling via StopMovement never invokes it.
func (c *Controller) OnMovementComplete(fn func()) {
	c.onComplete = fn
}

// OnFacingChanged registers the orientation hook, called with -1 or 1 when
// the sign of horizontal movement flips beyond the hysteresis band.
func (c *Controller) OnFacingChanged(fn func(dir int)) {
	c.onFacing = fn
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Moving() bool { return c.state != StateIdle }

// Target returns the current movement target, if any.
func (c *Controller) Target() (cp.Vector, bool) {
	return c.target, c.state != StateIdle
}

// Path returns a copy of the active waypoint list for debug overlays.
func (c *Controller) Path() []cp.Vector {
	if c.state != StatePathFollowing {
		return nil
	}
	out := make([]cp.Vector, len(c.path))
	copy(out, c.path)
	return out
}

// MoveTo discards any movement in progress and walks the actor to target.
// With usePathfinding set and a reachable target the controller follows the
// computed waypoint list; otherwise it walks straight at the target, which
// is also the fallback when no path exists.
func (c *Controller) MoveTo(target cp.Vector, usePathfinding bool) {
	if c == nil || c.actor == nil {
		return
	}
	c.clear()

	cur := c.actor.Position()
	if cur == target {
		// Already there; report arrival without entering a moving state.
		c.complete()
		return
	}

	if usePathfinding && c.finder != nil {
		if path := c.finder.FindPath(cur, target); len(path) > 1 {
			// The path's final waypoint is the effective target: when the
			// requested goal was substituted with its nearest walkable
			// cell, arriving must not snap the actor back into blocked
			// space.
			c.target = path[len(path)-1]
			c.path = path
			c.waypoint = 0
			c.state = StatePathFollowing
			return
		}
	}

	c.target = target
	c.state = StateDirectMoving
}

// WalkAlongPath discards any movement in progress and follows the given
// waypoint list. Lists of length zero are ignored; a single waypoint is
// treated as direct movement to that point.
func (c *Controller) WalkAlongPath(path []cp.Vector) {
	if c == nil || c.actor == nil {
		return
	}
	c.clear()
	switch len(path) {
	case 0:
		return
	case 1:
		c.MoveTo(path[0], false)
		return
	}
	c.target = path[len(path)-1]
	c.path = path
	c.waypoint = 0
	c.state = StatePathFollowing
}

// StopMovement cancels any movement in progress and returns to idle. The
// completion callback is not invoked: stopping is a cancellation, not an
// arrival. Scene transitions call this to drop paths computed against a
// stale grid.
func (c *Controller) StopMovement() {
	if c == nil {
		return
	}
	c.clear()
}

func (c *Controller) clear() {
	c.state = StateIdle
	c.target = cp.Vector{}
	c.path = nil
	c.waypoint = 0
}

// Update advances the actor by one frame of dt seconds. Distances are
// recomputed fresh from the actor's current position every call: walkable
// clamping can move the actor off the nominal route between frames, and a
// cached distance would then report arrival at the wrong spot.
func (c *Controller) Update(dt float64) {
	if c == nil || c.actor == nil || dt <= 0 {
		return
	}
	switch c.state {
	case StateDirectMoving:
		c.updateDirect(dt)
	case StatePathFollowing:
		c.updatePath(dt)
	}
}

func (c *Controller) updateDirect(dt float64) {
	cur := c.actor.Position()
	if cur.Distance(c.target) <= c.cfg.ArriveThreshold {
		c.arrive()
		return
	}
	c.advance(c.target, dt)
}

func (c *Controller) updatePath(dt float64) {
	cur := c.actor.Position()

	// Consume every waypoint already within reach so a corner never costs
	// a stalled frame, then move toward the first one that is not.
	for c.waypoint < len(c.path) {
		threshold := c.cfg.WaypointThreshold
		if c.waypoint == len(c.path)-1 {
			threshold = c.cfg.ArriveThreshold
		}
		if cur.Distance(c.path[c.waypoint]) > threshold {
			break
		}
		c.waypoint++
	}
	if c.waypoint >= len(c.path) {
		c.arrive()
		return
	}
	c.advance(c.path[c.waypoint], dt)
}

// advance moves the actor toward to by at most one frame of travel,
// clamped to the walkable area when one is injected. If the step would
// leave walkable space the controller slides along the boundary on the
// free axis instead of stopping outright.
func (c *Controller) advance(to cp.Vector, dt float64) {
	cur := c.actor.Position()
	delta := to.Sub(cur)
	dist := delta.Length()
	if dist == 0 {
		return
	}
	step := c.cfg.Speed * dt
	if step > dist {
		step = dist
	}
	next := cur.Add(delta.Mult(step / dist))

	if c.area != nil && !c.area.IsWalkable(next) {
		horizontal := cp.Vector{X: next.X, Y: cur.Y}
		vertical := cp.Vector{X: cur.X, Y: next.Y}
		switch {
		case c.area.IsWalkable(horizontal):
			next = horizontal
		case c.area.IsWalkable(vertical):
			next = vertical
		default:
			next = c.area.NearestWalkable(next)
		}
	}

	c.notifyFacing(next.X - cur.X)
	c.actor.SetPosition(next)
}

// arrive snaps the actor onto the target exactly and reports completion.
// State is cleared before the callback fires so the callback may issue a
// new move command immediately.
func (c *Controller) arrive() {
	target := c.target
	c.clear()
	c.actor.SetPosition(target)
	c.complete()
}

func (c *Controller) complete() {
	if c.onComplete != nil {
		c.onComplete()
	}
}

func (c *Controller) notifyFacing(dx float64) {
	dir := 0
	switch {
	case dx > c.cfg.FacingHysteresis:
		dir = 1
	case dx < -c.cfg.FacingHysteresis:
		dir = -1
	default:
		return
	}
	if dir == c.facing {
		return
	}
	c.facing = dir
	if c.onFacing != nil {
		c.onFacing(dir)
	}
}
