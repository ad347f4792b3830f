package sim

import (
	"testing"

	"github.com/vovakirdan/orbital-drift/internal/core"
)

func newCollisionRig(t *testing.T, startGrace float64) (*Satellite, *HealthState, *CollisionResolver) {
	t.Helper()
	sat := newTestSatellite(t, func(c *SatelliteConfig) {
		c.MaxSpeed = 3
		c.Radius = 0.6
	})
	health := newTestHealth(t, 3, 1.5, startGrace)
	return sat, health, NewCollisionResolver(sat, health)
}

func knockVariant(force float64) DebrisVariant {
	return DebrisVariant{Name: "rock", Damage: 1, KnockbackForce: force, DestroyOnHit: true, Radius: 0.5}
}

func TestCollisionKnockbackAddsToVelocity(t *testing.T) {
	tests := []struct {
		name     string
		force    float64
		expected core.Vec2
	}{
		{"within cap", 2, core.V(-1.5, 0)},
		{"clamped to max speed", 5, core.V(-3, 0)},
		{"no knockback configured", 0, core.V(0.5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sat, health, resolver := newCollisionRig(t, 0)
			sat.SetVelocity(core.V(0.5, 0))

			// Debris to the right pushes the satellite left.
			deb := placeDebris(1, knockVariant(tc.force), core.V(1, 0))
			hits := resolver.Resolve([]*Debris{deb})

			if len(hits) != 1 || !hits[0].Accepted {
				t.Fatalf("expected one accepted hit, got %+v", hits)
			}
			if health.HP() != 2 {
				t.Errorf("HP() = %d, expected 2", health.HP())
			}
			if !nearVec(sat.Velocity(), tc.expected) {
				t.Errorf("Velocity() = %v, expected %v", sat.Velocity(), tc.expected)
			}
			if deb.Alive() {
				t.Error("destroy-on-hit debris should be destroyed")
			}
		})
	}
}

func TestCollisionRejectedDamageHasNoEffect(t *testing.T) {
	sat, health, resolver := newCollisionRig(t, 5.0)
	deb := placeDebris(1, knockVariant(2), core.V(0.5, 0))

	hits := resolver.Resolve([]*Debris{deb})

	if len(hits) != 1 || hits[0].Accepted {
		t.Fatalf("expected one rejected contact, got %+v", hits)
	}
	if health.HP() != 3 {
		t.Errorf("HP changed during invincibility: %d", health.HP())
	}
	if !sat.Velocity().IsZero() {
		t.Errorf("rejected hit should not knock back, velocity=%v", sat.Velocity())
	}
	if !deb.Alive() {
		t.Error("rejected hit should not destroy the debris")
	}
}

func TestCollisionOnlyFirstOverlapLands(t *testing.T) {
	_, health, resolver := newCollisionRig(t, 0)
	first := placeDebris(1, knockVariant(0), core.V(0.5, 0))
	second := placeDebris(2, knockVariant(0), core.V(-0.5, 0))

	hits := resolver.Resolve([]*Debris{first, second})

	if len(hits) != 2 {
		t.Fatalf("expected two contacts, got %d", len(hits))
	}
	if !hits[0].Accepted || hits[1].Accepted {
		t.Errorf("only the first contact should land: %+v", hits)
	}
	if health.HP() != 2 {
		t.Errorf("HP() = %d, expected 2", health.HP())
	}
	if first.Alive() || !second.Alive() {
		t.Error("only the landing debris should be destroyed")
	}
}

func TestCollisionSkipsDistantAndDeadDebris(t *testing.T) {
	_, health, resolver := newCollisionRig(t, 0)

	far := placeDebris(1, knockVariant(0), core.V(1.5, 0))
	dead := placeDebris(2, knockVariant(0), core.V(0, 0))
	dead.Destroy()

	var notified int
	resolver.OnCollision(func(Collision) { notified++ })

	if hits := resolver.Resolve([]*Debris{far, dead}); len(hits) != 0 {
		t.Errorf("expected no contacts, got %+v", hits)
	}
	if health.HP() != 3 || notified != 0 {
		t.Errorf("hp=%d notified=%d", health.HP(), notified)
	}
}

func TestCollisionFatalHit(t *testing.T) {
	_, health, resolver := newCollisionRig(t, 0)
	heavy := knockVariant(0)
	heavy.Damage = 5

	hits := resolver.Resolve([]*Debris{placeDebris(1, heavy, core.V(0, 0.3))})
	if len(hits) != 1 || !hits[0].Fatal {
		t.Errorf("expected a fatal hit, got %+v", hits)
	}
	if !health.IsDead() {
		t.Error("health should be dead")
	}
}
