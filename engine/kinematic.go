package engine

import (
	"github.com/lixenwraith/termsprite/vmath"
	"github.com/zyedidia/generic/mapset"
)

// Kinematic is a sprite with an integer velocity in cells per tick
type Kinematic struct {
	*Sprite
	VX, VY int
}

// NewKinematic creates an abstract sprite with velocity (vx, vy)
func NewKinematic(vx, vy int, opts ...Option) *Kinematic {
	return &Kinematic{Sprite: NewSprite(opts...), VX: vx, VY: vy}
}

// steps splits the velocity into n probe steps of exact per-step delta
func (k *Kinematic) steps() (n int, delta vmath.Coord, err error) {
	n = max(vmath.AbsInt(k.VX), vmath.AbsInt(k.VY))
	if n == 0 {
		return 0, vmath.Origin, ErrZeroVelocity
	}
	return n, vmath.PtF(vmath.I(k.VX).DivInt(n), vmath.I(k.VY).DivInt(n)), nil
}

// hitsAt returns targets overlapping the sprite if it stood at c
func (k *Kinematic) hitsAt(c vmath.Coord, targets []Targets) []Collidable {
	return Overlapping(k.QueryAt(c), targets...)
}

// MoveUntilCollision advances one tick of velocity in unit probe steps and
// stops on the last free position before the first step that collides.
// Returns everything hit on that step, or nil when the full move was free
func (k *Kinematic) MoveUntilCollision(targets ...Targets) ([]Collidable, error) {
	k.mustLive("MoveUntilCollision")
	n, delta, err := k.steps()
	if err != nil {
		return nil, err
	}

	var hits []Collidable
	k.Probe(func() {
		for i := 0; i < n; i++ {
			next := k.pos.Add(delta)
			if h := k.hitsAt(next, targets); len(h) > 0 {
				hits = h
				return
			}
			k.pos = next
		}
	})
	return hits, nil
}

// signs is the (dx, dy) direction state of a bounce step
type signs [2]int

// Bounce advances one tick of velocity, reflecting off targets. Each step
// probes one cell along every axis the velocity points to (and the diagonal
// corner when neither axis is blocked), flipping blocked components. A flip
// back into a direction already tried this step is a 2-cycle: that axis is
// held in place for the step instead. Returns everything hit, in order
func (k *Kinematic) Bounce(targets ...Targets) ([]Collidable, error) {
	k.mustLive("Bounce")
	n, delta, err := k.steps()
	if err != nil {
		return nil, err
	}

	hits := newHitSet()
	k.Probe(func() {
		for i := 0; i < n; i++ {
			holdX, holdY := k.resolveStep(&delta, targets, hits)
			step := delta
			if holdX {
				step.X = vmath.Frac{}
			}
			if holdY {
				step.Y = vmath.Frac{}
			}
			k.pos = k.pos.Add(step)
		}
	})
	return hits.list(), nil
}

// resolveStep flips delta and velocity until no probe reports a fresh
// collision. Returns the axes to hold for this step when a cycle was found
func (k *Kinematic) resolveStep(delta *vmath.Coord, targets []Targets, hits *hitSet) (holdX, holdY bool) {
	seen := mapset.New[signs]()
	seen.Put(signs{delta.X.Sign(), delta.Y.Sign()})

	for {
		sx, sy := delta.X.Sign(), delta.Y.Sign()
		var flipX, flipY bool

		if sx != 0 {
			if h := k.hitsAt(k.pos.DX(vmath.I(sx)), targets); len(h) > 0 {
				flipX = true
				hits.add(h...)
			}
		}
		if sy != 0 {
			if h := k.hitsAt(k.pos.DY(vmath.I(sy)), targets); len(h) > 0 {
				flipY = true
				hits.add(h...)
			}
		}
		// Corner: both axes free but the diagonal cell is taken
		if !flipX && !flipY && sx != 0 && sy != 0 {
			if h := k.hitsAt(k.pos.Add(vmath.Pt(sx, sy)), targets); len(h) > 0 {
				flipX, flipY = true, true
				hits.add(h...)
			}
		}
		if !flipX && !flipY {
			return false, false
		}

		next := signs{sx, sy}
		if flipX {
			next[0] = -sx
		}
		if flipY {
			next[1] = -sy
		}
		if seen.Has(next) {
			return flipX, flipY
		}
		seen.Put(next)

		if flipX {
			delta.X = delta.X.Neg()
			k.VX = -k.VX
		}
		if flipY {
			delta.Y = delta.Y.Neg()
			k.VY = -k.VY
		}
	}
}
