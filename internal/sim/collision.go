package sim

import "github.com/vovakirdan/orbital-drift/internal/core"

// Collision records one satellite-debris contact resolved in a tick.
type Collision struct {
	DebrisID  uint64
	Variant   string
	Point     core.Vec2 // Debris position at contact
	Damage    int
	Accepted  bool      // Health accepted the damage
	Knockback core.Vec2 // Velocity added to the satellite, zero if none
	Destroyed bool
	Fatal     bool
}

// CollisionResolver applies damage, knockback and destruction for every
// debris overlapping the satellite.
type CollisionResolver struct {
	sat    *Satellite
	health *HealthState

	collisionObservers observers[func(Collision)]
}

// NewCollisionResolver wires a resolver to the satellite and its health.
func NewCollisionResolver(sat *Satellite, health *HealthState) *CollisionResolver {
	return &CollisionResolver{sat: sat, health: health}
}

// Resolve tests every live debris against the satellite, in the given order.
// A debris whose damage is rejected has no further effect this tick.
func (r *CollisionResolver) Resolve(active []*Debris) []Collision {
	var hits []Collision

	for _, deb := range active {
		if !deb.Alive() {
			continue
		}
		if !core.CirclesOverlap(r.sat.Position(), r.sat.Radius(), deb.Position(), deb.Radius()) {
			continue
		}

		hit := Collision{
			DebrisID: deb.ID(),
			Variant:  deb.Name(),
			Point:    deb.Position(),
			Damage:   deb.Damage(),
		}

		if r.health.TakeDamage(deb.Damage()) {
			hit.Accepted = true
			hit.Fatal = r.health.IsDead()

			if k := deb.Variant().KnockbackForce; k > 0 {
				push := r.sat.Position().Sub(deb.Position()).Normalize().Scale(k)
				r.sat.SetVelocity(r.sat.Velocity().Add(push))
				hit.Knockback = push
			}
			if deb.Variant().DestroyOnHit {
				deb.Destroy()
				hit.Destroyed = true
			}
		}

		hits = append(hits, hit)
		r.collisionObservers.each(func(fn func(Collision)) { fn(hit) })
	}

	return hits
}

// OnCollision subscribes to resolved contacts, accepted or not. Returns an
// unsubscribe function.
func (r *CollisionResolver) OnCollision(fn func(Collision)) func() {
	return r.collisionObservers.add(fn)
}

func (r *CollisionResolver) clearObservers() { r.collisionObservers.clear() }
