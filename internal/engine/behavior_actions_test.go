package engine

import "testing"

// --- fakes for the external adapter surface ---------------------------------

type fakeController struct {
	moveCalls int
	stopCalls int
	moving    bool
}

func (c *fakeController) MoveTo(target Vector3) { c.moveCalls++; c.moving = true }
func (c *fakeController) StopMoving()           { c.stopCalls++; c.moving = false }
func (c *fakeController) IsMoving() bool        { return c.moving }

type fakeView struct {
	positions map[ActorUID]Vector3
	selfPos   Vector3
}

func (v *fakeView) Position(actor ActorUID) (Vector3, bool) {
	p, ok := v.positions[actor]
	return p, ok
}
func (v *fakeView) EyePosition(actor ActorUID) (Vector3, bool) {
	p, ok := v.Position(actor)
	p.Y += 1
	return p, ok
}
func (v *fakeView) Forward(actor ActorUID) (Vector3, bool) { return Vector3{X: 0, Y: 0, Z: 1}, true }
func (v *fakeView) IsDead(actor ActorUID) bool              { return false }

type fakeWorldQuery struct {
	navAccessible bool
	hitBlock      bool
	noiseCalls    int
}

func (w *fakeWorldQuery) RaycastVsTiles(from, to Vector3) RayResult {
	return RayResult{HitBlock: w.hitBlock}
}
func (w *fakeWorldQuery) AISenseMakeNoise(pos Vector3, volume float64) { w.noiseCalls++ }
func (w *fakeWorldQuery) NavAccessible(tile Vector2i, flying bool) bool {
	return w.navAccessible
}

type fakeHealth struct {
	damaged map[ActorUID]float64
}

func (h *fakeHealth) Damage(actor ActorUID, amount float64) {
	if h.damaged == nil {
		h.damaged = make(map[ActorUID]float64)
	}
	h.damaged[actor] += amount
}

type fakeAudio struct{ plays int }

func (a *fakeAudio) PlayAt(name string, pos Vector3, volume, speed float32) { a.plays++ }

type fakeEvents struct{ fired []string }

func (e *fakeEvents) Fire(commandLine string) { e.fired = append(e.fired, commandLine) }

type fakeRng struct{ value float32 }

func (r *fakeRng) Float32() float32 { return r.value }

func runOnce(ctx *Context, task Task) *Node {
	idx := ctx.NewTask("t", task)
	ctx.AddChild(ctx.Root(), idx)
	ctx.Execute(0)
	return ctx.Node(idx)
}

// --- Dummy -------------------------------------------------------------------

func TestDummyTaskDispatchesToExpectedResult(t *testing.T) {
	cases := []struct {
		expect DummyExpect
		want   NodeResult
	}{
		{DummyExpectSuccess, ResultSuccess},
		{DummyExpectFailed, ResultFailed},
		{DummyExpectAborted, ResultAborted},
	}
	for _, tc := range cases {
		ctx := NewContext(NewDataRegistry())
		n := runOnce(ctx, &DummyTask{Expect: tc.expect})
		if n.Result != tc.want {
			t.Errorf("expect=%v: result = %s, want %s", tc.expect, n.Result, tc.want)
		}
	}
}

// --- Wait ----------------------------------------------------------------

func TestWaitTaskStopsStopwatchOnAbort(t *testing.T) {
	clock := &fakeClock{}
	ctx := NewContext(NewDataRegistry())
	ctx.Adapters.Clock = clock
	wt := &WaitTask{Time: 5}
	idx := ctx.NewTask("wait", wt)
	ctx.AddChild(ctx.Root(), idx)

	ctx.Execute(0)
	if !wt.started {
		t.Fatal("stopwatch should be started after first tick")
	}
	ctx.AbortNode(idx)
	if wt.started {
		t.Error("OnAbortExecute should stop the stopwatch")
	}
}

// --- MoveTo ----------------------------------------------------------------

func TestMoveToResolvesVectorAndSucceedsWhenControllerStops(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("dest", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Table().SetByName("dest", VectorValue(Vector3{X: 1, Y: 0, Z: 1}))
	ctrl := &fakeController{}
	ctx.Adapters.Controller = ctrl

	idx := ctx.NewTask("move", &MoveToTask{Key: "dest", Radius: 1})
	ctx.AddChild(ctx.Root(), idx)

	ctx.Execute(0)
	if ctx.Node(idx).Result != ResultUnknown || !ctx.Node(idx).Executing {
		t.Fatalf("first tick should issue the move and stay Running")
	}
	if ctrl.moveCalls != 1 {
		t.Fatalf("MoveTo should have been requested once, got %d", ctrl.moveCalls)
	}

	ctrl.moving = false
	ctx.Execute(0)
	if ctx.Node(idx).Result != ResultSuccess {
		t.Fatalf("once the controller stops, MoveTo must report SUCCESS (documented open question), got %s", ctx.Node(idx).Result)
	}
}

func TestMoveToFailsOnUnresolvedKey(t *testing.T) {
	ctx := NewContext(NewDataRegistry())
	n := runOnce(ctx, &MoveToTask{Key: "missing", Radius: 1})
	if n.Result != ResultFailed {
		t.Errorf("MoveTo with an unresolved key should fail, got %s", n.Result)
	}
}

// --- Attack ------------------------------------------------------------------

func TestAttackAppliesDamageToResolvedActor(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("target", BTTypeActor)
	ctx := NewContext(reg)
	target := NewActorUID(7, 1)
	ctx.Table().SetByName("target", ActorValue(target))
	health := &fakeHealth{}
	ctx.Adapters.Health = health

	n := runOnce(ctx, &AttackTask{Key: "target", Damage: 15})
	if n.Result != ResultSuccess {
		t.Fatalf("Attack result = %s, want SUCCESS", n.Result)
	}
	if health.damaged[target] != 15 {
		t.Errorf("damage applied = %v, want 15", health.damaged[target])
	}
}

func TestAttackFailsWhenKeyUnresolved(t *testing.T) {
	ctx := NewContext(NewDataRegistry())
	n := runOnce(ctx, &AttackTask{Key: "missing", Damage: 10})
	if n.Result != ResultFailed {
		t.Errorf("Attack with no resolvable actor should fail, got %s", n.Result)
	}
}

// --- RandomPoint ---------------------------------------------------------

func TestRandomPointWritesAcceptedSampleAndSucceeds(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("spot", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{}}
	ctx.Self = NewActorUID(1, 1)
	ctx.Adapters.View.(*fakeView).positions[ctx.Self] = Vector3{}
	ctx.Adapters.World = &fakeWorldQuery{navAccessible: true}
	ctx.Adapters.Rng = &fakeRng{value: 0.5}

	n := runOnce(ctx, &RandomPointTask{TargetKey: "spot", Range: 5})
	if n.Result != ResultSuccess {
		t.Fatalf("RandomPoint result = %s, want SUCCESS", n.Result)
	}
	if _, ok := ctx.Table().FindByName("spot"); !ok {
		t.Error("RandomPoint should have written a VECTOR into spot")
	}
}

func TestRandomPointFailsAfterMaxRejections(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("spot", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Self = NewActorUID(1, 1)
	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{ctx.Self: {}}}
	ctx.Adapters.World = &fakeWorldQuery{navAccessible: false}
	ctx.Adapters.Rng = &fakeRng{value: 0.5}

	n := runOnce(ctx, &RandomPointTask{TargetKey: "spot", Range: 5})
	if n.Result != ResultFailed {
		t.Fatalf("RandomPoint with every candidate rejected should fail, got %s", n.Result)
	}
}

// --- KeepDistance ----------------------------------------------------------

func TestKeepDistanceRequestsMoveThenSucceedsOnStop(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("target", BTTypeVector)
	ctx := NewContext(reg)
	ctx.Table().SetByName("target", VectorValue(Vector3{X: 0, Y: 0, Z: 0}))
	ctx.Self = NewActorUID(1, 1)
	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{ctx.Self: {X: 5, Y: 0, Z: 0}}}
	ctrl := &fakeController{}
	ctx.Adapters.Controller = ctrl
	ctx.Adapters.World = &fakeWorldQuery{hitBlock: false}

	idx := ctx.NewTask("keep", &KeepDistanceTask{TargetKey: "target", Range: 8})
	ctx.AddChild(ctx.Root(), idx)

	ctx.Execute(0)
	if !ctx.Node(idx).Executing {
		t.Fatal("KeepDistance should stay Running after requesting the move")
	}
	if ctrl.moveCalls != 1 {
		t.Fatalf("expected one MoveTo request, got %d", ctrl.moveCalls)
	}

	ctrl.moving = false
	ctx.Execute(0)
	if ctx.Node(idx).Result != ResultSuccess {
		t.Fatalf("KeepDistance result = %s, want SUCCESS once the controller stops", ctx.Node(idx).Result)
	}
}

// --- SetValue ------------------------------------------------------------

func TestSetValueUnsetsKeyWhenFromKeyUnresolved(t *testing.T) {
	reg := NewDataRegistry()
	reg.Register("dst", BTTypeNumber)
	ctx := NewContext(reg)
	ctx.Table().SetByName("dst", NumberValue(9))

	n := runOnce(ctx, &SetValueTask{Key: "dst", FromKey: "absent"})
	if n.Result != ResultSuccess {
		t.Fatalf("SetValue result = %s, want SUCCESS", n.Result)
	}
	if _, ok := ctx.Table().FindByName("dst"); ok {
		t.Error("dst should be unset when from_key does not resolve")
	}
}

// --- MakeNoise / PlaySound / FireEvent ---------------------------------------

func TestMakeNoiseEmitsThroughWorldQuery(t *testing.T) {
	ctx := NewContext(NewDataRegistry())
	ctx.Self = NewActorUID(1, 1)
	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{ctx.Self: {}}}
	wq := &fakeWorldQuery{}
	ctx.Adapters.World = wq

	n := runOnce(ctx, &MakeNoiseTask{Volume: 3})
	if n.Result != ResultSuccess {
		t.Fatalf("MakeNoise result = %s, want SUCCESS", n.Result)
	}
	if wq.noiseCalls != 1 {
		t.Errorf("expected one AISenseMakeNoise call, got %d", wq.noiseCalls)
	}
}

func TestPlaySoundPlaysAtOwnerPositionAndFinishesImmediately(t *testing.T) {
	ctx := NewContext(NewDataRegistry())
	ctx.Self = NewActorUID(1, 1)
	ctx.Adapters.View = &fakeView{positions: map[ActorUID]Vector3{ctx.Self: {}}}
	audio := &fakeAudio{}
	ctx.Adapters.Audio = audio

	n := runOnce(ctx, &PlaySoundTask{Sound: "alert", Volume: 1, Speed: 1})
	if n.Result != ResultSuccess {
		t.Fatalf("PlaySound result = %s, want SUCCESS", n.Result)
	}
	if audio.plays != 1 {
		t.Errorf("expected one PlayAt call, got %d", audio.plays)
	}
}

func TestFireEventDispatchesNameAndArgs(t *testing.T) {
	ctx := NewContext(NewDataRegistry())
	events := &fakeEvents{}
	ctx.Adapters.Events = events

	n := runOnce(ctx, &FireEventTask{EventName: "build", Args: "barracks"})
	if n.Result != ResultSuccess {
		t.Fatalf("FireEvent result = %s, want SUCCESS", n.Result)
	}
	if len(events.fired) != 1 || events.fired[0] != "build barracks" {
		t.Errorf("fired = %v, want [\"build barracks\"]", events.fired)
	}
}
