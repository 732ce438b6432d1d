package engine

import (
	"log"
	"math"
	"math/rand"
	"time"

	"teraglest/internal/audio"
)

// ActorController issues motion commands to the actor a Context drives.
type ActorController interface {
	MoveTo(target Vector3)
	StopMoving()
	IsMoving() bool
}

// ActorView reads an actor's pose and liveness. ActorUID is the packed
// generational handle bit-packed (index:16, salt:16); zero is INVALID.
type ActorView interface {
	Position(actor ActorUID) (Vector3, bool)
	EyePosition(actor ActorUID) (Vector3, bool)
	Forward(actor ActorUID) (Vector3, bool)
	IsDead(actor ActorUID) bool
}

// RayResult is the outcome of a WorldQuery raycast.
type RayResult struct {
	HitBlock bool
	Impact   Vector3
}

// WorldQuery answers navigation and line-of-sight questions about the world
// a Context's owner inhabits.
type WorldQuery interface {
	RaycastVsTiles(from, to Vector3) RayResult
	AISenseMakeNoise(pos Vector3, volume float64)
	NavAccessible(tile Vector2i, flying bool) bool
}

// HealthSink applies damage to an actor's health component.
type HealthSink interface {
	Damage(actor ActorUID, amount float64)
}

// AudioSink plays a positioned sound effect.
type AudioSink interface {
	PlayAt(name string, pos Vector3, volume, speed float32)
}

// EventSink dispatches a fired command line to the host's event/scripting
// layer.
type EventSink interface {
	Fire(commandLine string)
}

// Clock supplies elapsed simulation time, underpinning task stopwatches.
type Clock interface {
	Now() float64
}

// Rng supplies uniform randomness in [0,1) for sampling tasks.
type Rng interface {
	Float32() float32
}

// Adapters bundles the external façades a Context's tasks and decorators
// consult. All are optional and a nil façade never causes a panic: a nil
// Clock reads as time 0, a nil Rng as 0.5, the other calls are skipped, and
// only tasks and decorators that cannot resolve a position they need fail.
type Adapters struct {
	Controller ActorController
	View       ActorView
	World      WorldQuery
	Health     HealthSink
	Audio      AudioSink
	Events     EventSink
	Clock      Clock
	Rng        Rng
}

// --- teraglest-backed concrete adapters -----------------------------------

// unitController drives a GameUnit through the existing command pipeline,
// an issue-once/poll-state pattern built on commandProcessor.IssueCommand.
type unitController struct {
	world *World
	unit  *GameUnit
}

// NewUnitController wraps unit in the standard ActorController adapter.
func NewUnitController(world *World, unit *GameUnit) ActorController {
	return &unitController{world: world, unit: unit}
}

func (c *unitController) MoveTo(target Vector3) {
	_ = c.world.commandProcessor.IssueCommand(c.unit.ID, CreateMoveCommand(target, false))
}

func (c *unitController) StopMoving() {
	_ = c.world.commandProcessor.IssueCommand(c.unit.ID, CreateStopCommand())
}

func (c *unitController) IsMoving() bool {
	return c.unit.CurrentCommand != nil && c.unit.CurrentCommand.Type == CommandMove
}

// unitView resolves ActorUID handles against the world's ObjectManager.
type unitView struct {
	world *World
}

// NewUnitView wraps world in the standard ActorView adapter.
func NewUnitView(world *World) ActorView {
	return &unitView{world: world}
}

func (v *unitView) resolve(actor ActorUID) *GameUnit {
	if !actor.IsValid() {
		return nil
	}
	return v.world.ObjectManager.GetUnit(int(actor.Index()))
}

func (v *unitView) Position(actor ActorUID) (Vector3, bool) {
	u := v.resolve(actor)
	if u == nil {
		return Vector3{}, false
	}
	return u.Position, true
}

func (v *unitView) EyePosition(actor ActorUID) (Vector3, bool) {
	pos, ok := v.Position(actor)
	if !ok {
		return Vector3{}, false
	}
	pos.Y += 1.0
	return pos, true
}

func (v *unitView) Forward(actor ActorUID) (Vector3, bool) {
	u := v.resolve(actor)
	if u == nil {
		return Vector3{}, false
	}
	rad := float64(u.Rotation) * math.Pi / 180.0
	return Vector3{X: math.Sin(rad), Y: 0, Z: math.Cos(rad)}, true
}

func (v *unitView) IsDead(actor ActorUID) bool {
	u := v.resolve(actor)
	return u == nil || !u.IsAlive()
}

// worldQueryAdapter answers navigation/sensing questions against World,
// grounded on World.IsPositionWalkable's bounds-then-grid lookup pattern.
type worldQueryAdapter struct {
	world *World
}

// NewWorldQueryAdapter wraps world in the standard WorldQuery adapter.
func NewWorldQueryAdapter(world *World) WorldQuery {
	return &worldQueryAdapter{world: world}
}

func (q *worldQueryAdapter) NavAccessible(tile Vector2i, flying bool) bool {
	if flying {
		return true
	}
	return q.world.IsPositionWalkable(tile)
}

func (q *worldQueryAdapter) AISenseMakeNoise(pos Vector3, volume float64) {
	// World has no AI-sense bus for other actors to subscribe to yet; log the
	// event so it is at least observable pending a real game.eventQueue wiring.
	log.Printf("ai sense: noise at (%.2f, %.2f, %.2f) volume %.2f", pos.X, pos.Y, pos.Z, volume)
}

// RaycastVsTiles walks the line from..to one tile step at a time and reports
// the first non-walkable tile it crosses: a grid DDA walk built from the
// same WorldToGrid/IsPositionWalkable primitives World already exposes.
func (q *worldQueryAdapter) RaycastVsTiles(from, to Vector3) RayResult {
	delta := Vector3{X: to.X - from.X, Y: to.Y - from.Y, Z: to.Z - from.Z}
	dist := math.Sqrt(delta.X*delta.X + delta.Y*delta.Y + delta.Z*delta.Z)
	if dist < 1e-6 {
		return RayResult{}
	}
	tileSize := float64(q.world.GetTileSize())
	steps := int(dist/tileSize) + 1
	step := Vector3{X: delta.X / float64(steps), Y: delta.Y / float64(steps), Z: delta.Z / float64(steps)}
	cur := from
	for i := 0; i <= steps; i++ {
		grid := q.world.WorldToGrid(cur)
		if !q.world.IsPositionWalkable(grid.Grid) {
			return RayResult{HitBlock: true, Impact: cur}
		}
		cur.X += step.X
		cur.Y += step.Y
		cur.Z += step.Z
	}
	return RayResult{HitBlock: false, Impact: to}
}

// healthSinkAdapter applies damage through the existing combat system,
// grounded on CombatSystem.ApplyDamage.
type healthSinkAdapter struct {
	world  *World
	combat *CombatSystem
}

// NewHealthSinkAdapter wraps world in the standard HealthSink adapter.
func NewHealthSinkAdapter(world *World) HealthSink {
	return &healthSinkAdapter{world: world, combat: NewCombatSystem(world)}
}

func (h *healthSinkAdapter) Damage(actor ActorUID, amount float64) {
	if !actor.IsValid() {
		return
	}
	target := h.world.ObjectManager.GetUnit(int(actor.Index()))
	if target == nil {
		return
	}
	h.combat.ApplyDamage(target, int(amount))
}

// audioSinkAdapter plays 3-D sound effects through the existing audio
// manager's combat-sound path.
type audioSinkAdapter struct {
	manager *audio.AudioManager
}

// NewAudioSinkAdapter wraps manager in the standard AudioSink adapter. A nil
// manager yields a no-op sink.
func NewAudioSinkAdapter(manager *audio.AudioManager) AudioSink {
	return &audioSinkAdapter{manager: manager}
}

func (a *audioSinkAdapter) PlayAt(name string, pos Vector3, volume, speed float32) {
	if a.manager == nil {
		return
	}
	_ = speed // the audio backend's 3-D playback has no independent pitch knob at this call site
	_ = a.manager.PlayCombatSound(name, audio.Vector3{X: float32(pos.X), Y: float32(pos.Y), Z: float32(pos.Z)}, volume)
}

// eventSinkAdapter logs each fired command line; it does not forward it to
// the world.
type eventSinkAdapter struct {
	world *World
}

// NewEventSinkAdapter wraps world in the standard EventSink adapter.
func NewEventSinkAdapter(world *World) EventSink {
	return &eventSinkAdapter{world: world}
}

func (e *eventSinkAdapter) Fire(commandLine string) {
	log.Printf("fire event: %s", commandLine)
}

// simClock reads elapsed time off the World's accumulated game time.
type simClock struct {
	world *World
}

// NewSimClock wraps world in the standard Clock adapter.
func NewSimClock(world *World) Clock { return &simClock{world: world} }

func (c *simClock) Now() float64 { return c.world.GetGameTime().Seconds() }

// mathRandAdapter wraps a math/rand source seeded the same way strategic
// decision-making seeds its own: wall-clock nanoseconds folded with a
// per-owner seed, so sibling contexts don't share a stream.
type mathRandAdapter struct {
	source *rand.Rand
}

// NewMathRandAdapter builds an Rng seeded from the current time and seed
// (typically the owning unit's ID, mirroring playerID-seeded strategic AI).
func NewMathRandAdapter(seed int64) Rng {
	return &mathRandAdapter{source: rand.New(rand.NewSource(time.Now().UnixNano() + seed))}
}

func (r *mathRandAdapter) Float32() float32 { return r.source.Float32() }
