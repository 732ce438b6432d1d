package engine

import "testing"

func newTestDecoratorContext() *Context {
	return NewContext(NewDataRegistry())
}

func checkCondition(ctx *Context, d *Decorator) bool {
	return d.Behavior.CheckCondition(ctx, d)
}

// --- Dummy -------------------------------------------------------------------

func TestDummyDecoratorReportsFixedCondition(t *testing.T) {
	ctx := newTestDecoratorContext()
	pass := NewDummyDecorator(true, false, false)
	fail := NewDummyDecorator(false, false, false)
	if !checkCondition(ctx, pass) {
		t.Error("should_pass=true decorator should report true")
	}
	if checkCondition(ctx, fail) {
		t.Error("should_pass=false decorator should report false")
	}
}

// --- Cooldown ------------------------------------------------------------

func TestCooldownDecoratorStartsOnSuccessAndClearsAfterDuration(t *testing.T) {
	clock := &fakeClock{}
	ctx := newTestDecoratorContext()
	ctx.Adapters.Clock = clock
	d := NewCooldownDecorator(2.0, false, false)

	if !checkCondition(ctx, d) {
		t.Fatal("a cooldown that has never fired should condition true")
	}

	d.Behavior.OnExecuteFinished(ctx, d, ResultSuccess)
	if checkCondition(ctx, d) {
		t.Fatal("immediately after success, the cooldown should condition false")
	}

	clock.t = 1.0
	if checkCondition(ctx, d) {
		t.Fatal("at 1.0s of a 2.0s cooldown, condition should still be false")
	}

	clock.t = 2.1
	if !checkCondition(ctx, d) {
		t.Fatal("past the duration, the cooldown should condition true again")
	}
}

// --- WatchValue ----------------------------------------------------------

func TestWatchValueCheckSetModeXORsReverse(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("K", BTTypeBoolean)
	ctx := NewContext(reg)

	notReversed := NewWatchValueDecorator("K", "", true, false, false, false)
	if checkCondition(ctx, notReversed) {
		t.Error("check_set with no entry present should be false")
	}
	ctx.Table().SetByName("K", BooleanValue(true))
	if !checkCondition(ctx, notReversed) {
		t.Error("check_set with the entry now present should be true")
	}

	reversed := NewWatchValueDecorator("K", "", true, true, false, false)
	if checkCondition(ctx, reversed) {
		t.Error("reverse=true with the entry present should invert to false")
	}
}

func TestWatchValueTextCompareModeTreatsMissingAsEmptyString(t *testing.T) {
	ctx := newTestDecoratorContext()
	d := NewWatchValueDecorator("missing", "", false, false, false, false)
	if !checkCondition(ctx, d) {
		t.Error("missing entry should compare equal to the empty-string default target")
	}
}

// --- CanSee ----------------------------------------------------------------

func TestCanSeeRequiresRangeAngleAndOptionalRaycast(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("enemy", BTTypeActor)
	ctx := NewContext(reg)
	ctx.Self = NewActorUID(1, 1)
	enemy := NewActorUID(2, 1)
	ctx.Table().SetByName("enemy", ActorValue(enemy))

	view := &fakeView{positions: map[ActorUID]Vector3{
		ctx.Self: {X: 0, Y: 0, Z: 0},
		enemy:    {X: 0, Y: 0, Z: 5},
	}}
	ctx.Adapters.View = view

	inRange := NewCanSeeDecorator("enemy", 90, 10, false, false, false, false)
	if !checkCondition(ctx, inRange) {
		t.Error("enemy within range and view cone should be visible")
	}

	outOfRange := NewCanSeeDecorator("enemy", 90, 1, false, false, false, false)
	if checkCondition(ctx, outOfRange) {
		t.Error("enemy beyond range should not be visible")
	}

	ctx.Adapters.World = &fakeWorldQuery{hitBlock: true}
	blocked := NewCanSeeDecorator("enemy", 90, 10, true, false, false, false)
	if checkCondition(ctx, blocked) {
		t.Error("a blocked raycast should make the enemy invisible when raycast=true")
	}
}

func TestCanSeeFalseWhenKeyMissing(t *testing.T) {
	ctx := newTestDecoratorContext()
	d := NewCanSeeDecorator("nope", 90, 10, false, false, false, false)
	if checkCondition(ctx, d) {
		t.Error("CanSee with no resolvable actor entry should be false")
	}
}

// --- IsInRange -------------------------------------------------------------

func TestIsInRangeAcceptsActorOrVectorTarget(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("actorTarget", BTTypeActor)
	reg.Register("pointTarget", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Self = NewActorUID(1, 1)
	other := NewActorUID(2, 1)
	ctx.Table().SetByName("actorTarget", ActorValue(other))
	ctx.Table().SetByName("pointTarget", VectorValue(Vector3{X: 3, Y: 0, Z: 0}))

	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{
		ctx.Self: {X: 0, Y: 0, Z: 0},
		other:    {X: 2, Y: 0, Z: 0},
	}}

	nearActor := NewIsInRangeDecorator("actorTarget", 5, false, false, false)
	if !checkCondition(ctx, nearActor) {
		t.Error("actor 2 units away should be within a 5-unit range")
	}

	nearPoint := NewIsInRangeDecorator("pointTarget", 5, false, false, false)
	if !checkCondition(ctx, nearPoint) {
		t.Error("point 3 units away should be within a 5-unit range")
	}

	reversed := NewIsInRangeDecorator("pointTarget", 1, true, false, false)
	if !checkCondition(ctx, reversed) {
		t.Error("reverse=true with the point outside a 1-unit range should condition true")
	}
}

func TestIsInRangeFalseWithNoViewAdapterRatherThanPanicking(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("pointTarget", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Table().SetByName("pointTarget", VectorValue(Vector3{X: 1, Y: 0, Z: 0}))

	d := NewIsInRangeDecorator("pointTarget", 5, false, false, false)
	if checkCondition(ctx, d) {
		t.Error("IsInRange with no View adapter wired should condition false, not panic")
	}
}
