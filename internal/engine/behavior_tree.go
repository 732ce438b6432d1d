package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// NodeKind tags which of the four tree entities a Node represents.
type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeSequence
	NodeSelector
	NodeTask
)

func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "Root"
	case NodeSequence:
		return "Sequence"
	case NodeSelector:
		return "Selector"
	case NodeTask:
		return "Task"
	default:
		return "Unknown"
	}
}

// NodeIndex addresses a Node within a Context's arena. InvalidNodeIndex
// stands in for the unset/root sentinel used throughout the tree model.
type NodeIndex int32

// InvalidNodeIndex marks "no node" (e.g. an empty Root entry).
const InvalidNodeIndex NodeIndex = -1

// NodeResult is the terminal outcome of a node's most recent run.
type NodeResult int

const (
	ResultUnknown NodeResult = iota
	ResultSuccess
	ResultFailed
	ResultAborted
)

func (r NodeResult) String() string {
	switch r {
	case ResultUnknown:
		return "Unknown"
	case ResultSuccess:
		return "Success"
	case ResultFailed:
		return "Failed"
	case ResultAborted:
		return "Aborted"
	default:
		return "Invalid"
	}
}

// Task is the behavior attached to a Task-kind node. DoExecute is called
// every tick while the node is Running; it reports whether the task has
// finished this tick and, if so, whether it succeeded.
type Task interface {
	Name() string
	OnBeginExecute(ctx *Context, n *Node)
	DoExecute(ctx *Context, n *Node) (finished, ok bool)
	OnAbortExecute(ctx *Context, n *Node)
	Reset()
}

// DecoratorBehavior is the condition/side-effect attached to a Decorator.
type DecoratorBehavior interface {
	Name() string
	CheckCondition(ctx *Context, d *Decorator) bool
	OnExecuteFinished(ctx *Context, d *Decorator, result NodeResult)
}

// Decorator is a conditional gate or side-effect attached to exactly one
// owning node.
type Decorator struct {
	UUID            uuid.UUID
	Owner           NodeIndex
	Order           int
	AbortSelf       bool
	AbortLower      bool
	CachedCondition bool
	Behavior        DecoratorBehavior
}

// Node is one entry in a Context's node arena.
type Node struct {
	Kind   NodeKind
	UUID   uuid.UUID
	Order  int
	Name   string
	Parent NodeIndex
	Self   NodeIndex

	// Composite/Root topology.
	Children        []NodeIndex
	DecoratorScoped bool

	Decorators []*Decorator

	// Execution state (§3.5).
	Executing        bool
	Result           NodeResult
	ActiveChildIndex int

	// Task payload; nil for non-Task kinds.
	Task Task

	// Editor hints, opaque to the engine but round-tripped by the codec.
	CanvasUV [2]float32
}

// isChild reports whether childIdx is a direct child of n.
func (n *Node) isChild(childIdx NodeIndex) bool {
	for _, c := range n.Children {
		if c == childIdx {
			return true
		}
	}
	return false
}

// DiagnosticSink receives non-fatal structural corruption reports.
type DiagnosticSink func(format string, args ...interface{})

// Context owns a tree's node arena, the bound blackboard table, and the
// cooperative execution stack. The cyclic node/context/table relationship
// described by the source is broken here by passing *Context explicitly into
// every node operation rather than storing a back-pointer on each node.
type Context struct {
	registry *DataRegistry
	table    *DataTable

	nodes []*Node
	root  NodeIndex

	stack    []NodeIndex
	aborting bool

	// Persisted, not interpreted by the engine (§3.5, §9).
	LOD    int32
	Canvas [4]float32

	Adapters Adapters
	Self     ActorUID

	diagnostics DiagnosticSink
}

// NewContext creates a Context bound to registry, with a single Root node
// already allocated.
func NewContext(registry *DataRegistry) *Context {
	ctx := &Context{
		registry:    registry,
		table:       NewDataTable(registry),
		diagnostics: func(format string, args ...interface{}) { log.Printf("behavior_tree: "+format, args...) },
	}
	ctx.root = ctx.allocNode(NodeRoot, "Root")
	return ctx
}

// SetDiagnosticSink overrides the callback used to report CorruptExecStack
// conditions. Passing nil restores the default log.Printf sink.
func (ctx *Context) SetDiagnosticSink(sink DiagnosticSink) {
	if sink == nil {
		sink = func(format string, args ...interface{}) { log.Printf("behavior_tree: "+format, args...) }
	}
	ctx.diagnostics = sink
}

// Registry returns the bound schema.
func (ctx *Context) Registry() *DataRegistry { return ctx.registry }

// Table returns the bound blackboard instance.
func (ctx *Context) Table() *DataTable { return ctx.table }

// Root returns the index of the (always present) Root node.
func (ctx *Context) Root() NodeIndex { return ctx.root }

// Stack returns a defensive copy of the current execution stack, bottom
// (Root) first.
func (ctx *Context) Stack() []NodeIndex {
	out := make([]NodeIndex, len(ctx.stack))
	copy(out, ctx.stack)
	return out
}

// Node returns the node at idx, or nil if idx is out of range.
func (ctx *Context) Node(idx NodeIndex) *Node {
	if idx < 0 || int(idx) >= len(ctx.nodes) {
		return nil
	}
	return ctx.nodes[idx]
}

// NodeCount returns the number of allocated nodes, including Root.
func (ctx *Context) NodeCount() int { return len(ctx.nodes) }

func (ctx *Context) node(idx NodeIndex) *Node { return ctx.Node(idx) }

func (ctx *Context) allocNode(kind NodeKind, name string) NodeIndex {
	n := &Node{
		Kind:   kind,
		UUID:   uuid.New(),
		Name:   name,
		Parent: InvalidNodeIndex,
	}
	ctx.nodes = append(ctx.nodes, n)
	idx := NodeIndex(len(ctx.nodes) - 1)
	n.Self = idx
	ctx.RefreshOrder()
	return idx
}

// NewSequence allocates an unattached Sequence composite.
func (ctx *Context) NewSequence(name string) NodeIndex { return ctx.allocNode(NodeSequence, name) }

// NewSelector allocates an unattached Selector composite.
func (ctx *Context) NewSelector(name string) NodeIndex { return ctx.allocNode(NodeSelector, name) }

// NewTask allocates an unattached Task node wrapping t.
func (ctx *Context) NewTask(name string, t Task) NodeIndex {
	idx := ctx.allocNode(NodeTask, name)
	ctx.nodes[idx].Task = t
	return idx
}

// AddChild attaches child under parent. parent must be the Root (at most one
// child) or a composite (Sequence/Selector, unbounded children). Any
// in-progress run on parent is aborted first per the tree-mutation rule.
func (ctx *Context) AddChild(parent, child NodeIndex) error {
	p := ctx.node(parent)
	if p == nil {
		return fmt.Errorf("add child: unknown parent %d", parent)
	}
	if p.Kind != NodeRoot && p.Kind != NodeSequence && p.Kind != NodeSelector {
		return fmt.Errorf("add child: %s cannot own children", p.Kind)
	}
	if p.Kind == NodeRoot && len(p.Children) >= 1 {
		return fmt.Errorf("add child: root already has an entry child")
	}
	ctx.aboutToMutate(parent)
	c := ctx.node(child)
	if c == nil {
		return fmt.Errorf("add child: unknown child %d", child)
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	ctx.RefreshOrder()
	return nil
}

// AddDecorator attaches d to owner, computing its order in the same pass.
func (ctx *Context) AddDecorator(owner NodeIndex, d *Decorator) error {
	o := ctx.node(owner)
	if o == nil {
		return fmt.Errorf("add decorator: unknown owner %d", owner)
	}
	ctx.aboutToMutate(owner)
	if d.UUID == uuid.Nil {
		d.UUID = uuid.New()
	}
	d.Owner = owner
	o.Decorators = append(o.Decorators, d)
	ctx.RefreshOrder()
	return nil
}

// RemoveNode detaches idx from its parent and releases its subtree. Any
// Running node in the removed subtree is finish_abort'd first.
func (ctx *Context) RemoveNode(idx NodeIndex) error {
	n := ctx.node(idx)
	if n == nil {
		return fmt.Errorf("remove node: unknown node %d", idx)
	}
	if n.Kind == NodeRoot {
		return fmt.Errorf("remove node: cannot remove root")
	}
	var release func(NodeIndex)
	release = func(i NodeIndex) {
		ctx.aboutToMutate(i)
		cur := ctx.node(i)
		for _, c := range cur.Children {
			release(c)
		}
	}
	release(idx)
	if p := ctx.node(n.Parent); p != nil {
		for i, c := range p.Children {
			if c == idx {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	ctx.RefreshOrder()
	return nil
}

// aboutToMutate enforces §4.1.5: a structural edit to a Running node must
// finish_abort it first so the execution stack stays coherent.
func (ctx *Context) aboutToMutate(idx NodeIndex) {
	n := ctx.node(idx)
	if n != nil && n.Executing {
		ctx.finishAbort(idx)
	}
}

// RefreshOrder recomputes every node and decorator's pre-order rank. Each
// node's decorators are ranked immediately before the node itself.
func (ctx *Context) RefreshOrder() {
	counter := 0
	var walk func(idx NodeIndex)
	walk = func(idx NodeIndex) {
		n := ctx.node(idx)
		if n == nil {
			return
		}
		for _, d := range n.Decorators {
			d.Order = counter
			counter++
		}
		n.Order = counter
		counter++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(ctx.root)
}

func (ctx *Context) stackContains(idx NodeIndex) bool {
	for _, s := range ctx.stack {
		if s == idx {
			return true
		}
	}
	return false
}

func (ctx *Context) reportCorruption(format string, args ...interface{}) {
	ctx.diagnostics(format, args...)
}

// beginExecute transitions a node Idle → Running: pushes it onto the
// execution stack and clears its result. The stack-coherence invariant is
// checked but never fatal — corruption is surfaced to diagnostics and the
// push still occurs ("forgiving mode", §7 CorruptExecStack).
func (ctx *Context) beginExecute(idx NodeIndex) {
	n := ctx.node(idx)
	if n == nil {
		return
	}
	if n.Kind != NodeRoot {
		if len(ctx.stack) == 0 {
			ctx.reportCorruption("corrupt exec stack: pushing %s (%s) with empty stack", n.Name, n.Kind)
		} else {
			top := ctx.node(ctx.stack[len(ctx.stack)-1])
			if top == nil || !top.isChild(idx) {
				ctx.reportCorruption("corrupt exec stack: pushing %s (%s) onto non-parent", n.Name, n.Kind)
			}
		}
	}
	ctx.stack = append(ctx.stack, idx)
	n.Executing = true
	n.Result = ResultUnknown
	if n.Kind == NodeSequence || n.Kind == NodeSelector {
		n.ActiveChildIndex = 0
	}
}

// finishExecute transitions Running → Done(ok), popping idx from the stack
// and propagating on_execute_finished to its decorators.
func (ctx *Context) finishExecute(idx NodeIndex, ok bool) {
	n := ctx.node(idx)
	if n == nil {
		return
	}
	ctx.popStackTop(idx)
	n.Executing = false
	if ok {
		n.Result = ResultSuccess
	} else {
		n.Result = ResultFailed
	}
	if n.Kind == NodeSequence || n.Kind == NodeSelector {
		n.ActiveChildIndex = 0
	}
	for _, d := range n.Decorators {
		d.Behavior.OnExecuteFinished(ctx, d, n.Result)
	}
}

// finishAbort transitions Running → Done(ABORTED): task-specific cleanup via
// OnAbortExecute, then the same pop-and-notify contract as finishExecute.
func (ctx *Context) finishAbort(idx NodeIndex) {
	n := ctx.node(idx)
	if n == nil {
		return
	}
	ctx.popStackTop(idx)
	n.Executing = false
	n.Result = ResultAborted
	if n.Kind == NodeSequence || n.Kind == NodeSelector {
		n.ActiveChildIndex = 0
	}
	if n.Kind == NodeTask && n.Task != nil {
		n.Task.OnAbortExecute(ctx, n)
	}
	for _, d := range n.Decorators {
		d.Behavior.OnExecuteFinished(ctx, d, ResultAborted)
	}
}

func (ctx *Context) popStackTop(idx NodeIndex) {
	if len(ctx.stack) == 0 || ctx.stack[len(ctx.stack)-1] != idx {
		ctx.reportCorruption("corrupt exec stack: finishing %d which is not top-of-stack", idx)
		for i, s := range ctx.stack {
			if s == idx {
				ctx.stack = append(ctx.stack[:i], ctx.stack[i+1:]...)
				return
			}
		}
		return
	}
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
}

// resetNode transitions Done → Idle, recursing into children so composites
// can re-enter a fully fresh subtree.
func (ctx *Context) resetNode(idx NodeIndex) {
	n := ctx.node(idx)
	if n == nil {
		return
	}
	n.Result = ResultUnknown
	n.Executing = false
	n.ActiveChildIndex = 0
	if n.Kind == NodeTask && n.Task != nil {
		n.Task.Reset()
	}
	for _, c := range n.Children {
		ctx.resetNode(c)
	}
}

// evaluate runs the entry gate: every decorator on idx must currently
// condition true, else the caller reports failure without running its body.
// Unlike tick, evaluate never mutates cached_condition.
func (ctx *Context) evaluate(idx NodeIndex) bool {
	n := ctx.node(idx)
	if n == nil {
		return true
	}
	for _, d := range n.Decorators {
		if !d.Behavior.CheckCondition(ctx, d) {
			return false
		}
	}
	return true
}

// tickDecorator runs one decorator's continuous-monitoring check and raises
// ctx.aborting per §4.1 step 1.
func (ctx *Context) tickDecorator(d *Decorator) {
	cond := d.Behavior.CheckCondition(ctx, d)
	prev := d.CachedCondition
	owner := ctx.node(d.Owner)
	if !prev && cond && d.AbortLower && owner != nil && len(ctx.stack) > 0 {
		top := ctx.node(ctx.stack[len(ctx.stack)-1])
		if top != nil && top.Order > owner.Order {
			ctx.aborting = true
		}
	}
	if prev && !cond && d.AbortSelf && ctx.stackContains(d.Owner) {
		ctx.aborting = true
	}
	d.CachedCondition = cond
}

// Execute runs one tick of the tree: decorator ticks, abort unwind, then
// root re-entry (§4.1).
func (ctx *Context) Execute(dt float64) {
	ctx.aborting = false
	ctx.walkPreOrder(func(n *Node) {
		for _, d := range n.Decorators {
			ctx.tickDecorator(d)
		}
	})
	if ctx.aborting {
		for len(ctx.stack) > 0 {
			top := ctx.stack[len(ctx.stack)-1]
			ctx.finishAbort(top)
		}
		ctx.aborting = false
	}
	ctx.executeNode(ctx.root, dt)
}

func (ctx *Context) walkPreOrder(visit func(n *Node)) {
	var walk func(idx NodeIndex)
	walk = func(idx NodeIndex) {
		n := ctx.node(idx)
		if n == nil {
			return
		}
		visit(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(ctx.root)
}

func (ctx *Context) executeNode(idx NodeIndex, dt float64) {
	n := ctx.node(idx)
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeRoot:
		ctx.rootExecute(idx, dt)
	case NodeSequence:
		ctx.sequenceExecute(idx, dt)
	case NodeSelector:
		ctx.selectorExecute(idx, dt)
	case NodeTask:
		ctx.taskExecute(idx, dt)
	}
}

// rootExecute implements §4.1.1.
func (ctx *Context) rootExecute(idx NodeIndex, dt float64) {
	n := ctx.node(idx)
	if len(n.Children) == 0 {
		return
	}
	if !n.Executing {
		ctx.beginExecute(idx)
	}
	child := n.Children[0]
	ctx.executeNode(child, dt)
	childNode := ctx.node(child)
	if !childNode.Executing {
		ctx.finishExecute(idx, childNode.Result == ResultSuccess)
	}
}

// sequenceExecute implements §4.1.2.
func (ctx *Context) sequenceExecute(idx NodeIndex, dt float64) {
	n := ctx.node(idx)
	if !n.Executing {
		ctx.beginExecute(idx)
		if !ctx.evaluate(idx) {
			ctx.finishExecute(idx, false)
			return
		}
		if len(n.Children) == 0 {
			ctx.finishExecute(idx, true)
			return
		}
		for _, c := range n.Children {
			ctx.resetNode(c)
		}
		n.ActiveChildIndex = 0
	}
	active := n.Children[n.ActiveChildIndex]
	activeNode := ctx.node(active)
	if activeNode.Executing || activeNode.Result == ResultUnknown {
		ctx.executeNode(active, dt)
		if activeNode.Executing {
			return
		}
	}
	if activeNode.Result != ResultSuccess {
		ctx.finishExecute(idx, false)
		return
	}
	n.ActiveChildIndex++
	if n.ActiveChildIndex >= len(n.Children) {
		ctx.finishExecute(idx, true)
		return
	}
	ctx.sequenceExecute(idx, dt)
}

// selectorExecute implements §4.1.3: the mirror image of sequenceExecute.
func (ctx *Context) selectorExecute(idx NodeIndex, dt float64) {
	n := ctx.node(idx)
	if !n.Executing {
		ctx.beginExecute(idx)
		if !ctx.evaluate(idx) {
			ctx.finishExecute(idx, false)
			return
		}
		if len(n.Children) == 0 {
			ctx.finishExecute(idx, false)
			return
		}
		for _, c := range n.Children {
			ctx.resetNode(c)
		}
		n.ActiveChildIndex = 0
	}
	active := n.Children[n.ActiveChildIndex]
	activeNode := ctx.node(active)
	if activeNode.Executing || activeNode.Result == ResultUnknown {
		ctx.executeNode(active, dt)
		if activeNode.Executing {
			return
		}
	}
	if activeNode.Result == ResultSuccess {
		ctx.finishExecute(idx, true)
		return
	}
	n.ActiveChildIndex++
	if n.ActiveChildIndex >= len(n.Children) {
		ctx.finishExecute(idx, false)
		return
	}
	ctx.selectorExecute(idx, dt)
}

// taskExecute implements §4.1.4.
func (ctx *Context) taskExecute(idx NodeIndex, dt float64) {
	n := ctx.node(idx)
	if !n.Executing {
		ctx.beginExecute(idx)
		if !ctx.evaluate(idx) {
			ctx.finishExecute(idx, false)
			return
		}
		if n.Task != nil {
			n.Task.OnBeginExecute(ctx, n)
		}
	}
	if n.Task == nil {
		ctx.finishExecute(idx, false)
		return
	}
	finished, ok := n.Task.DoExecute(ctx, n)
	if finished {
		ctx.finishExecute(idx, ok)
	}
}

// NotifyAbort is the host-driven cancel entry point (§5): it requests that
// the root's active subtree unwind on the next Execute call.
func (ctx *Context) NotifyAbort() {
	ctx.aborting = true
}

// AbortNode immediately finish_aborts idx, for the rare task (Dummy's
// ABORTED expectation) that needs to report its own abortion rather than
// wait for a decorator-driven unwind.
func (ctx *Context) AbortNode(idx NodeIndex) {
	ctx.finishAbort(idx)
}

// --- BehaviorTreeManager: per-actor Context registry, one per world unit ---

// BehaviorTreeManager owns one Context per unit, ticking every active one
// each world update: a per-actor context table keyed by unit ID, the Go
// equivalent of a process-wide context map keyed by actor handle.
type BehaviorTreeManager struct {
	contexts map[int]*Context
	world    *World
}

// NewBehaviorTreeManager creates a manager bound to world.
func NewBehaviorTreeManager(world *World) *BehaviorTreeManager {
	return &BehaviorTreeManager{
		contexts: make(map[int]*Context),
		world:    world,
	}
}

// SetContext installs ctx as unitID's behavior tree, replacing any existing
// one. The Self actor entry is seeded before the first tick.
func (btm *BehaviorTreeManager) SetContext(unitID int, ctx *Context) error {
	unit := btm.world.ObjectManager.GetUnit(unitID)
	if unit == nil {
		return fmt.Errorf("set context: unit %d not found", unitID)
	}
	ctx.Self = NewActorUID(uint16(unitID), 1)
	btm.contexts[unitID] = ctx
	return nil
}

// RemoveContext removes unitID's behavior tree, if any.
func (btm *BehaviorTreeManager) RemoveContext(unitID int) {
	delete(btm.contexts, unitID)
}

// Update ticks every active context once, dropping contexts for units that
// no longer exist or are dead.
func (btm *BehaviorTreeManager) Update(deltaTime time.Duration) {
	dt := deltaTime.Seconds()
	for unitID, ctx := range btm.contexts {
		unit := btm.world.ObjectManager.GetUnit(unitID)
		if unit == nil || !unit.IsAlive() {
			delete(btm.contexts, unitID)
			continue
		}
		ctx.Execute(dt)
	}
}

// GetContext returns unitID's behavior tree context, if any.
func (btm *BehaviorTreeManager) GetContext(unitID int) (*Context, bool) {
	ctx, ok := btm.contexts[unitID]
	return ctx, ok
}

// ActiveContexts returns the number of units with an installed context.
func (btm *BehaviorTreeManager) ActiveContexts() int {
	return len(btm.contexts)
}

// HasContext reports whether unitID has an installed context.
func (btm *BehaviorTreeManager) HasContext(unitID int) bool {
	_, ok := btm.contexts[unitID]
	return ok
}
