package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/harborsweep/internal/domain/vmath"
)

// ObstacleAvoidance steers its heading away from nearby obstacles. Each
// obstacle within InfluenceRadius pushes with weight Weight/distance.
type ObstacleAvoidance struct {
	Obstacles       []Positionable
	Speed           float32 // falls back to the movable's speed when <= 0
	InfluenceRadius float32
	Weight          float32
	Heading         mgl32.Vec2 // used while the movable has no velocity
}

// Repulsion returns the summed push away from obstacles at pos.
func (a *ObstacleAvoidance) Repulsion(pos, heading mgl32.Vec2) mgl32.Vec2 {
	var push mgl32.Vec2
	for _, obs := range a.Obstacles {
		if obs == nil {
			continue
		}
		away := pos.Sub(obs.Position())
		dist := away.Len()
		if dist >= a.InfluenceRadius {
			continue
		}
		if dist < vmath.Epsilon {
			// sitting on the obstacle: sidestep
			push = push.Add(vmath.Perp(heading).Mul(a.Weight / vmath.Epsilon))
			continue
		}
		push = push.Add(away.Mul(1 / dist).Mul(a.Weight / dist))
	}
	return push
}

func (a *ObstacleAvoidance) Move(m Movable, dt float32) error {
	if ok, err := checkDelta(dt); !ok {
		return err
	}

	heading := vmath.SafeNormalize(m.Velocity())
	if vmath.NearZero(heading) {
		heading = vmath.SafeNormalize(a.Heading)
	}

	dir := vmath.SafeNormalize(heading.Add(a.Repulsion(m.Position(), heading)))
	if vmath.NearZero(dir) {
		return nil
	}

	vel := dir.Mul(speedOr(a.Speed, m))
	m.SetVelocity(vel)
	m.SetPosition(m.Position().Add(vel.Mul(dt)))
	return nil
}
