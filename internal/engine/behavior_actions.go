package engine

import "math"

// now reads the Context's Clock adapter, defaulting to 0 (a stopped clock)
// when none is wired — the same "optional collaborator" stance the rest of
// the adapter surface takes.
func now(ctx *Context) float64 {
	if ctx.Adapters.Clock != nil {
		return ctx.Adapters.Clock.Now()
	}
	return 0
}

// resolveTarget reads key from the bound table and interprets it as a
// world-space point: a VECTOR entry is used directly, an ACTOR entry is
// resolved through the ActorView. Any other tag, or a missing actor, fails.
func resolveTarget(ctx *Context, key string) (Vector3, bool) {
	v, ok := ctx.Table().FindByName(key)
	if !ok {
		return Vector3{}, false
	}
	switch v.Tag() {
	case BTTypeVector:
		return v.AsVector(), true
	case BTTypeActor:
		if ctx.Adapters.View == nil {
			return Vector3{}, false
		}
		return ctx.Adapters.View.Position(v.AsActor())
	default:
		return Vector3{}, false
	}
}

func distance(a, b Vector3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func ownerPosition(ctx *Context) (Vector3, bool) {
	if ctx.Adapters.View == nil {
		return Vector3{}, false
	}
	return ctx.Adapters.View.Position(ctx.Self)
}

// --- Dummy -----------------------------------------------------------------

// DummyExpect selects which terminal result a DummyTask reports.
type DummyExpect int

const (
	DummyExpectAborted DummyExpect = iota
	DummyExpectFailed
	DummyExpectSuccess
)

// DummyTask dispatches to a fixed finish variant on its first tick. Used for
// tests and as a placeholder leaf while a tree is under construction.
type DummyTask struct {
	Expect DummyExpect
}

func (t *DummyTask) Name() string                         { return "Dummy" }
func (t *DummyTask) OnBeginExecute(ctx *Context, n *Node)  {}
func (t *DummyTask) OnAbortExecute(ctx *Context, n *Node)  {}
func (t *DummyTask) Reset()                                {}

func (t *DummyTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	switch t.Expect {
	case DummyExpectSuccess:
		return true, true
	case DummyExpectFailed:
		return true, false
	case DummyExpectAborted:
		ctx.AbortNode(n.Self)
		return false, false
	default:
		return true, false
	}
}

// --- Wait --------------------------------------------------------------

// WaitTask succeeds once Time seconds of Clock time have elapsed since it
// began running.
type WaitTask struct {
	Time float32

	startTime float64
	started   bool
}

func (t *WaitTask) Name() string { return "Wait" }

func (t *WaitTask) OnBeginExecute(ctx *Context, n *Node) {
	t.startTime = now(ctx)
	t.started = true
}

func (t *WaitTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	if now(ctx)-t.startTime >= float64(t.Time) {
		t.started = false
		return true, true
	}
	return false, false
}

func (t *WaitTask) OnAbortExecute(ctx *Context, n *Node) { t.started = false }
func (t *WaitTask) Reset()                               { t.started = false }

// --- PlaySound -----------------------------------------------------------

// PlaySoundTask plays a 3-D sound at the owner's position and finishes
// immediately.
type PlaySoundTask struct {
	Sound  string
	Volume float32
	Speed  float32
}

func (t *PlaySoundTask) Name() string                        { return "PlaySound" }
func (t *PlaySoundTask) OnBeginExecute(ctx *Context, n *Node) {}
func (t *PlaySoundTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *PlaySoundTask) Reset()                               {}

func (t *PlaySoundTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	pos, ok := ownerPosition(ctx)
	if ok && ctx.Adapters.Audio != nil {
		ctx.Adapters.Audio.PlayAt(t.Sound, pos, t.Volume, t.Speed)
	}
	return true, true
}

// --- FireEvent -----------------------------------------------------------

// FireEventTask dispatches "name args" to the EventSink and succeeds.
type FireEventTask struct {
	EventName string
	Args      string
}

func (t *FireEventTask) Name() string                        { return "FireEvent" }
func (t *FireEventTask) OnBeginExecute(ctx *Context, n *Node) {}
func (t *FireEventTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *FireEventTask) Reset()                               {}

func (t *FireEventTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	if ctx.Adapters.Events != nil {
		ctx.Adapters.Events.Fire(t.EventName + " " + t.Args)
	}
	return true, true
}

// --- MoveTo ----------------------------------------------------------------

// MoveToTask resolves Key to a world position and drives the owner there via
// the ActorController. Per the documented Open Question, both the
// within-radius and the "controller stopped elsewhere" paths report
// SUCCESS.
type MoveToTask struct {
	Key    string
	Radius float32

	target    Vector3
	resolved  bool
	requested bool
	moving    bool
}

func (t *MoveToTask) Name() string { return "MoveTo" }

func (t *MoveToTask) OnBeginExecute(ctx *Context, n *Node) {
	t.target, t.resolved = resolveTarget(ctx, t.Key)
	t.requested = false
	t.moving = false
}

func (t *MoveToTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	if !t.resolved {
		return true, false
	}
	if !t.requested {
		if ctx.Adapters.Controller != nil {
			ctx.Adapters.Controller.MoveTo(t.target)
		}
		t.requested = true
		t.moving = true
		return false, false
	}
	if ctx.Adapters.Controller != nil && ctx.Adapters.Controller.IsMoving() {
		return false, false
	}
	t.moving = false
	return true, true
}

func (t *MoveToTask) OnAbortExecute(ctx *Context, n *Node) {
	if t.moving && ctx.Adapters.Controller != nil {
		ctx.Adapters.Controller.StopMoving()
	}
	t.moving = false
}

func (t *MoveToTask) Reset() {
	t.requested = false
	t.moving = false
	t.resolved = false
}

// --- Attack ----------------------------------------------------------------

// AttackTask resolves Key to an actor and applies Damage through HealthSink.
type AttackTask struct {
	Key    string
	Damage float32

	actor    ActorUID
	resolved bool
}

func (t *AttackTask) Name() string { return "Attack" }

func (t *AttackTask) OnBeginExecute(ctx *Context, n *Node) {
	v, ok := ctx.Table().FindByName(t.Key)
	if !ok || v.Tag() != BTTypeActor {
		t.resolved = false
		return
	}
	t.actor = v.AsActor()
	t.resolved = t.actor.IsValid()
}

func (t *AttackTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	if !t.resolved {
		return true, false
	}
	if ctx.Adapters.Health != nil {
		ctx.Adapters.Health.Damage(t.actor, float64(t.Damage))
	}
	return true, true
}

func (t *AttackTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *AttackTask) Reset()                               { t.resolved = false }

// --- RandomPoint -----------------------------------------------------------

const randomPointMaxRejections = 100

// RandomPointTask samples a point uniformly in a disc of Range around the
// owner, rejecting candidates that land on a non-navigable tile, and writes
// the accepted point into TargetKey as a VECTOR.
type RandomPointTask struct {
	TargetKey string
	Range     float32
}

func (t *RandomPointTask) Name() string                        { return "RandomPoint" }
func (t *RandomPointTask) OnBeginExecute(ctx *Context, n *Node) {}
func (t *RandomPointTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *RandomPointTask) Reset()                               {}

func (t *RandomPointTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	origin, ok := ownerPosition(ctx)
	if !ok {
		return true, false
	}
	for attempt := 0; attempt < randomPointMaxRejections; attempt++ {
		r, theta := t.sample(ctx)
		candidate := Vector3{
			X: origin.X + r*math.Cos(theta),
			Y: origin.Y,
			Z: origin.Z + r*math.Sin(theta),
		}
		if ctx.Adapters.World == nil {
			ctx.Table().SetByName(t.TargetKey, VectorValue(candidate))
			return true, true
		}
		tile := Vector2i{X: int(math.Floor(candidate.X)), Y: int(math.Floor(candidate.Z))}
		if ctx.Adapters.World.NavAccessible(tile, false) {
			ctx.Table().SetByName(t.TargetKey, VectorValue(candidate))
			return true, true
		}
	}
	return true, false
}

func (t *RandomPointTask) sample(ctx *Context) (r, theta float64) {
	r = float64(t.Range) * math.Sqrt(float64(randFloat(ctx)))
	theta = float64(randFloat(ctx)) * 2 * math.Pi
	return
}

func randFloat(ctx *Context) float32 {
	if ctx.Adapters.Rng != nil {
		return ctx.Adapters.Rng.Float32()
	}
	return 0.5
}

// --- KeepDistance ------------------------------------------------------

// keepDistanceSweepDegrees are the angle offsets tried around the initial
// facing direction while looking for an unobstructed retreat ray.
var keepDistanceSweepDegrees = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80}

// KeepDistanceTask backs the owner away from TargetKey's actor/point until
// Range separation, sweeping candidate angles for one with a clear ray. The
// angle sweep carries forward the source's positive-angle bug: both the
// "+k" and "-k" branches evaluate the positive-angle candidate (documented
// Open Question, not fixed here).
type KeepDistanceTask struct {
	TargetKey string
	Range     float32

	moving bool
}

func (t *KeepDistanceTask) Name() string { return "KeepDistance" }

func (t *KeepDistanceTask) OnBeginExecute(ctx *Context, n *Node) {
	t.moving = false
}

func (t *KeepDistanceTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	if t.moving {
		if ctx.Adapters.Controller != nil && ctx.Adapters.Controller.IsMoving() {
			return false, false
		}
		t.moving = false
		return true, true
	}

	origin, ok := ownerPosition(ctx)
	if !ok {
		return true, false
	}
	target, ok := resolveTarget(ctx, t.TargetKey)
	if !ok {
		return true, false
	}

	away := Vector3{X: origin.X - target.X, Y: 0, Z: origin.Z - target.Z}
	d := math.Sqrt(away.X*away.X + away.Z*away.Z)
	if d < 1e-6 {
		away = Vector3{X: 1, Z: 0}
		d = 1
	}
	baseAngle := math.Atan2(away.Z, away.X)

	dest := Vector3{
		X: target.X + away.X/d*float64(t.Range),
		Y: origin.Y,
		Z: target.Z + away.Z/d*float64(t.Range),
	}
sweep:
	for _, deg := range keepDistanceSweepDegrees {
		// Both the "+deg" and "-deg" branches read the positive-angle
		// candidate (carried forward, see type doc) — the sweep never
		// actually tries the negative side.
		positive := baseAngle + deg*math.Pi/180
		for branch := 0; branch < 2; branch++ {
			candidate := Vector3{
				X: target.X + math.Cos(positive)*float64(t.Range),
				Y: origin.Y,
				Z: target.Z + math.Sin(positive)*float64(t.Range),
			}
			if ctx.Adapters.World == nil {
				dest = candidate
				break sweep
			}
			ray := ctx.Adapters.World.RaycastVsTiles(origin, candidate)
			if !ray.HitBlock {
				dest = candidate
				break sweep
			}
		}
	}

	if ctx.Adapters.Controller != nil {
		ctx.Adapters.Controller.MoveTo(dest)
	}
	t.moving = true
	return false, false
}

func (t *KeepDistanceTask) OnAbortExecute(ctx *Context, n *Node) {
	if t.moving && ctx.Adapters.Controller != nil {
		ctx.Adapters.Controller.StopMoving()
	}
	t.moving = false
}

func (t *KeepDistanceTask) Reset() { t.moving = false }

// --- SetValue ----------------------------------------------------------

// SetValueTask copies FromKey's value into Key, unsetting Key if FromKey is
// unresolved.
type SetValueTask struct {
	Key     string
	FromKey string
}

func (t *SetValueTask) Name() string                        { return "SetValue" }
func (t *SetValueTask) OnBeginExecute(ctx *Context, n *Node) {}
func (t *SetValueTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *SetValueTask) Reset()                               {}

func (t *SetValueTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	v, ok := ctx.Table().FindByName(t.FromKey)
	if !ok {
		ctx.Table().UnsetByName(t.Key)
		return true, true
	}
	ctx.Table().SetByName(t.Key, v)
	return true, true
}

// --- MakeNoise -----------------------------------------------------------

// MakeNoiseTask emits an AI-sense noise event at the owner's position.
type MakeNoiseTask struct {
	Volume float32
}

func (t *MakeNoiseTask) Name() string                        { return "MakeNoise" }
func (t *MakeNoiseTask) OnBeginExecute(ctx *Context, n *Node) {}
func (t *MakeNoiseTask) OnAbortExecute(ctx *Context, n *Node) {}
func (t *MakeNoiseTask) Reset()                               {}

func (t *MakeNoiseTask) DoExecute(ctx *Context, n *Node) (bool, bool) {
	pos, ok := ownerPosition(ctx)
	if ok && ctx.Adapters.World != nil {
		ctx.Adapters.World.AISenseMakeNoise(pos, float64(t.Volume))
	}
	return true, true
}
