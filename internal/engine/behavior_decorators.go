package engine

import "math"

// newDecorator wraps behavior in a Decorator with the given abort flags. The
// owner/order fields are filled in by Context.AddDecorator.
func newDecorator(abortSelf, abortLower bool, behavior DecoratorBehavior) *Decorator {
	return &Decorator{
		AbortSelf:  abortSelf,
		AbortLower: abortLower,
		Behavior:   behavior,
	}
}

// --- Dummy -------------------------------------------------------------

// DummyDecorator always reports a fixed condition. Used for tests.
type DummyDecorator struct {
	ShouldPass bool
}

func (d *DummyDecorator) Name() string { return "Dummy" }

func (d *DummyDecorator) CheckCondition(ctx *Context, self *Decorator) bool {
	return d.ShouldPass
}

func (d *DummyDecorator) OnExecuteFinished(ctx *Context, self *Decorator, result NodeResult) {}

// NewDummyDecorator builds a Dummy decorator with the given abort flags.
func NewDummyDecorator(shouldPass, abortSelf, abortLower bool) *Decorator {
	return newDecorator(abortSelf, abortLower, &DummyDecorator{ShouldPass: shouldPass})
}

// --- Cooldown ------------------------------------------------------------

// CooldownDecorator is true once its owner's last success is more than
// Duration seconds in the past (or it has never succeeded).
type CooldownDecorator struct {
	Duration float32

	running   bool
	startTime float64
}

func (d *CooldownDecorator) Name() string { return "Cooldown" }

func (d *CooldownDecorator) CheckCondition(ctx *Context, self *Decorator) bool {
	if !d.running {
		return true
	}
	return now(ctx)-d.startTime >= float64(d.Duration)
}

func (d *CooldownDecorator) OnExecuteFinished(ctx *Context, self *Decorator, result NodeResult) {
	if result == ResultSuccess {
		d.running = true
		d.startTime = now(ctx)
	}
}

// NewCooldownDecorator builds a Cooldown decorator with the given abort
// flags.
func NewCooldownDecorator(duration float32, abortSelf, abortLower bool) *Decorator {
	return newDecorator(abortSelf, abortLower, &CooldownDecorator{Duration: duration})
}

// --- WatchValue ------------------------------------------------------------

// WatchValueDecorator watches whether a key is set, or whether its text
// matches a fixed value, optionally inverted.
type WatchValueDecorator struct {
	Key      string
	Value    string
	CheckSet bool
	Reverse  bool
}

func (d *WatchValueDecorator) Name() string { return "WatchValue" }

func (d *WatchValueDecorator) CheckCondition(ctx *Context, self *Decorator) bool {
	entry, ok := ctx.Table().FindByName(d.Key)
	if d.CheckSet {
		return ok != d.Reverse
	}
	text := ""
	if ok {
		text = entry.AsText()
	}
	return (text == d.Value) != d.Reverse
}

func (d *WatchValueDecorator) OnExecuteFinished(ctx *Context, self *Decorator, result NodeResult) {}

// NewWatchValueDecorator builds a WatchValue decorator with the given abort
// flags.
func NewWatchValueDecorator(key, value string, checkSet, reverse, abortSelf, abortLower bool) *Decorator {
	return newDecorator(abortSelf, abortLower, &WatchValueDecorator{
		Key: key, Value: value, CheckSet: checkSet, Reverse: reverse,
	})
}

// --- CanSee ----------------------------------------------------------------

// CanSeeDecorator reads Key as an actor reference and reports whether the
// owner can see it: within Range, inside the view cone described by Angle,
// and (if Raycast is set) with a clear line of sight.
type CanSeeDecorator struct {
	Key     string
	Angle   float32
	Range   float32
	Raycast bool
	Reverse bool
}

func (d *CanSeeDecorator) Name() string { return "CanSee" }

func (d *CanSeeDecorator) CheckCondition(ctx *Context, self *Decorator) bool {
	v, ok := ctx.Table().FindByName(d.Key)
	if !ok || v.Tag() != BTTypeActor {
		return false
	}
	actor := v.AsActor()
	if !actor.IsValid() || ctx.Adapters.View == nil {
		return false
	}

	ownerPos, ok := ctx.Adapters.View.Position(ctx.ownerOf(self))
	if !ok {
		return false
	}
	targetEye, ok := ctx.Adapters.View.EyePosition(actor)
	if !ok {
		return false
	}
	ownerEye, _ := ctx.Adapters.View.EyePosition(ctx.ownerOf(self))
	forward, _ := ctx.Adapters.View.Forward(ctx.ownerOf(self))

	dx, dy, dz := ownerPos.X-targetEye.X, ownerPos.Y-targetEye.Y, ownerPos.Z-targetEye.Z
	if dx*dx+dy*dy+dz*dz > float64(d.Range)*float64(d.Range) {
		return d.Reverse
	}

	toTarget := Vector3{X: targetEye.X - ownerEye.X, Y: targetEye.Y - ownerEye.Y, Z: targetEye.Z - ownerEye.Z}
	toTargetNorm := normalize(toTarget)
	cosAngle := forward.X*toTargetNorm.X + forward.Y*toTargetNorm.Y + forward.Z*toTargetNorm.Z
	cosAngle = math.Max(-1, math.Min(1, cosAngle))
	angleDeg := math.Acos(cosAngle) * 180 / math.Pi
	if angleDeg >= float64(d.Angle) {
		return d.Reverse
	}

	if d.Raycast && ctx.Adapters.World != nil {
		if ctx.Adapters.World.RaycastVsTiles(ownerEye, targetEye).HitBlock {
			return d.Reverse
		}
	}
	return !d.Reverse
}

func (d *CanSeeDecorator) OnExecuteFinished(ctx *Context, self *Decorator, result NodeResult) {}

// NewCanSeeDecorator builds a CanSee decorator with the given abort flags.
func NewCanSeeDecorator(key string, angle, rng float32, raycast, reverse, abortSelf, abortLower bool) *Decorator {
	return newDecorator(abortSelf, abortLower, &CanSeeDecorator{
		Key: key, Angle: angle, Range: rng, Raycast: raycast, Reverse: reverse,
	})
}

func normalize(v Vector3) Vector3 {
	length := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if length < 1e-9 {
		return Vector3{}
	}
	return Vector3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// ownerOf resolves the actor a decorator's owner node drives. In this
// module every Context belongs to exactly one actor (ctx.Self); decorators
// that need "the owner's position" read through it.
func (ctx *Context) ownerOf(d *Decorator) ActorUID {
	return ctx.Self
}

// --- IsInRange ---------------------------------------------------------

// IsInRangeDecorator reports whether the owner is within Range of Key,
// which may hold either an ACTOR or a VECTOR.
type IsInRangeDecorator struct {
	Key     string
	Range   float32
	Reverse bool
}

func (d *IsInRangeDecorator) Name() string { return "IsInRange" }

func (d *IsInRangeDecorator) CheckCondition(ctx *Context, self *Decorator) bool {
	if ctx.Adapters.View == nil {
		return false
	}
	ownerPos, ok := ctx.Adapters.View.Position(ctx.ownerOf(self))
	if !ok {
		return false
	}
	target, ok := resolveTarget(ctx, d.Key)
	if !ok {
		return false
	}
	dx, dy, dz := ownerPos.X-target.X, ownerPos.Y-target.Y, ownerPos.Z-target.Z
	inRange := dx*dx+dy*dy+dz*dz <= float64(d.Range)*float64(d.Range)
	return inRange != d.Reverse
}

func (d *IsInRangeDecorator) OnExecuteFinished(ctx *Context, self *Decorator, result NodeResult) {}

// NewIsInRangeDecorator builds an IsInRange decorator with the given abort
// flags.
func NewIsInRangeDecorator(key string, rng float32, reverse, abortSelf, abortLower bool) *Decorator {
	return newDecorator(abortSelf, abortLower, &IsInRangeDecorator{Key: key, Range: rng, Reverse: reverse})
}
