package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/event"
	"github.com/cory-johannsen/arena/internal/game/geo"
)

// arcEpsilonDeg absorbs acos rounding so a target exactly on the arc
// boundary misses deterministically.
const arcEpsilonDeg = 1e-9

// Resolver applies attack damage through a single spatial query: gather
// opposing combatants in range, keep those strictly inside the frontal
// arc, drop the dead, and damage the survivors. Both the player and
// agents resolve through the same code path.
type Resolver struct {
	space  SpatialQuery
	events *event.Queue
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: space must not be nil; events and logger may be nil.
func NewResolver(space SpatialQuery, events *event.Queue, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{space: space, events: events, logger: logger}
}

// Sweep resolves one attack from attacker using spec's arc, with the
// given effective radius and damage (callers pass spec.Range/spec.Damage
// or the special-attack multiples). Targets exactly on the arc boundary
// are missed: the arc check is strictly less-than, unlike the
// closed-interval range check. Dead targets never take damage.
//
// Postcondition: Returns the IDs of all targets damaged, in query order.
func (r *Resolver) Sweep(attacker Combatant, spec AttackSpec, radius float64, damage int) []string {
	origin := attacker.Position()
	facing := attacker.Facing()
	candidates := r.space.Nearby(origin, radius, attacker.Team().Opposing())

	var hit []string
	for _, target := range candidates {
		if !target.Alive() {
			continue
		}
		toTarget := target.Position().Sub(origin)
		if geo.AngleBetweenDeg(facing, toTarget) >= spec.ArcHalfAngleDeg-arcEpsilonDeg {
			continue
		}
		target.TakeDamage(damage)
		hit = append(hit, target.ID())
	}

	r.logger.Debug("attack swept",
		zap.String("attacker", attacker.ID()),
		zap.Int("candidates", len(candidates)),
		zap.Int("hits", len(hit)),
		zap.Float64("radius", radius),
		zap.Int("damage", damage),
	)

	if r.events != nil {
		r.events.Publish(event.Event{
			Kind:    event.KindAttackResolved,
			Actor:   attacker.ID(),
			Targets: hit,
		})
	}
	return hit
}
