package engine

import (
	"fmt"
	"log"

	"teraglest/internal/audio"
)

// BehaviorTreeTemplate describes a prebuilt tree shape that can be attached
// to a unit. Builder receives the Context the tree will live in so it can
// allocate nodes and register the blackboard keys it reads.
type BehaviorTreeTemplate struct {
	Name        string
	Description string
	UnitTypes   []string
	Builder     func(ctx *Context) NodeIndex
}

// BehaviorTreeLibrary is a named registry of BehaviorTreeTemplate values.
type BehaviorTreeLibrary struct {
	templates map[string]*BehaviorTreeTemplate
}

// NewBehaviorTreeLibrary builds a library pre-populated with the built-in
// unit templates.
func NewBehaviorTreeLibrary() *BehaviorTreeLibrary {
	lib := &BehaviorTreeLibrary{templates: make(map[string]*BehaviorTreeTemplate)}
	lib.registerDefaultTemplates()
	return lib
}

// RegisterTemplate adds or replaces a template.
func (lib *BehaviorTreeLibrary) RegisterTemplate(t *BehaviorTreeTemplate) {
	lib.templates[t.Name] = t
}

// GetTemplate looks up a template by name.
func (lib *BehaviorTreeLibrary) GetTemplate(name string) (*BehaviorTreeTemplate, bool) {
	t, ok := lib.templates[name]
	return t, ok
}

// GetTemplatesForUnitType returns every template applicable to unitType,
// including wildcard ("*") templates.
func (lib *BehaviorTreeLibrary) GetTemplatesForUnitType(unitType string) []*BehaviorTreeTemplate {
	var matches []*BehaviorTreeTemplate
	for _, t := range lib.templates {
		for _, applicable := range t.UnitTypes {
			if applicable == unitType || applicable == "*" {
				matches = append(matches, t)
				break
			}
		}
	}
	return matches
}

// GetAllTemplateNames returns the names of every registered template.
func (lib *BehaviorTreeLibrary) GetAllTemplateNames() []string {
	names := make([]string, 0, len(lib.templates))
	for name := range lib.templates {
		names = append(names, name)
	}
	return names
}

// standardRegistry builds the blackboard schema shared by the built-in
// templates: one VECTOR key per named place, one ACTOR key per named target.
func standardRegistry() *DataRegistry {
	reg := NewDataRegistry()
	reg.SetBoardName("standard_unit")
	vectorKeys := []string{
		"home_position", "patrol_point", "guard_post", "safe_position",
		"explore_target", "retreat_position", "build_position",
	}
	actorKeys := []string{"target_enemy", "detected_enemy", "intruder", "combat_target"}
	for _, name := range vectorKeys {
		_, _ = reg.Register(name, BTTypeVector)
	}
	for _, name := range actorKeys {
		_, _ = reg.Register(name, BTTypeActor)
	}
	return reg
}

// buildCombatBranch is shared by the templates that fight back when a
// tracked actor key is within range: gate on IsInRange, then Attack.
func buildCombatBranch(ctx *Context, key string, radius float32, damage float32) NodeIndex {
	seq := ctx.NewSequence(key + "_combat")
	attack := ctx.NewTask(key+"_attack", &AttackTask{Key: key, Damage: damage})
	_ = ctx.AddChild(seq, attack)
	_ = ctx.AddDecorator(seq, NewIsInRangeDecorator(key, radius, false, false, false))
	return seq
}

func (lib *BehaviorTreeLibrary) registerDefaultTemplates() {
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "worker_ai",
		Description: "returns to base when idle, otherwise waits for orders",
		UnitTypes:   []string{"worker", "villager", "peasant"},
		Builder:     buildWorkerAI,
	})
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "soldier_ai",
		Description: "attacks a tracked enemy in range, else patrols",
		UnitTypes:   []string{"soldier", "warrior", "knight", "archer"},
		Builder:     buildSoldierAI,
	})
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "scout_ai",
		Description: "retreats from a sighted enemy, else explores",
		UnitTypes:   []string{"scout", "explorer"},
		Builder:     buildScoutAI,
	})
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "builder_ai",
		Description: "moves to a pending build site, else idles",
		UnitTypes:   []string{"builder", "engineer"},
		Builder:     buildBuilderAI,
	})
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "guard_ai",
		Description: "defends a post against an intruder, else holds position",
		UnitTypes:   []string{"guard", "sentry"},
		Builder:     buildGuardAI,
	})
	lib.RegisterTemplate(&BehaviorTreeTemplate{
		Name:        "general_ai",
		Description: "fallback template: fight, then hold position",
		UnitTypes:   []string{"*"},
		Builder:     buildGeneralAI,
	})
}

func buildWorkerAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("WorkerMainSelector")

	returnHome := ctx.NewSequence("ReturnHomeSequence")
	moveHome := ctx.NewTask("ReturnToBase", &MoveToTask{Key: "home_position", Radius: 2.0})
	_ = ctx.AddChild(returnHome, moveHome)
	_ = ctx.AddDecorator(returnHome, NewWatchValueDecorator("home_position", "", true, false, false, false))
	_ = ctx.AddChild(root, returnHome)

	idleWait := ctx.NewTask("WorkerIdleWait", &WaitTask{Time: 2.0})
	_ = ctx.AddChild(root, idleWait)

	return root
}

func buildSoldierAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("SoldierMainSelector")
	_ = ctx.AddChild(root, buildCombatBranch(ctx, "target_enemy", 10.0, 15))

	patrol := ctx.NewSequence("PatrolSequence")
	moveToPatrol := ctx.NewTask("MoveToPatrol", &MoveToTask{Key: "patrol_point", Radius: 2.0})
	patrolWait := ctx.NewTask("PatrolWait", &WaitTask{Time: 3.0})
	_ = ctx.AddChild(patrol, moveToPatrol)
	_ = ctx.AddChild(patrol, patrolWait)
	_ = ctx.AddChild(root, patrol)

	return root
}

func buildScoutAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("ScoutMainSelector")

	report := ctx.NewSequence("ReportEnemySequence")
	retreat := ctx.NewTask("Retreat", &MoveToTask{Key: "retreat_position", Radius: 3.0})
	_ = ctx.AddChild(report, retreat)
	_ = ctx.AddDecorator(report, NewCanSeeDecorator("detected_enemy", 120, 12.0, true, false, false, false))
	_ = ctx.AddChild(root, report)

	explore := ctx.NewSequence("ExploreSequence")
	moveToExplore := ctx.NewTask("MoveToExplore", &MoveToTask{Key: "explore_target", Radius: 2.0})
	exploreWait := ctx.NewTask("ExploreWait", &WaitTask{Time: 1.0})
	_ = ctx.AddChild(explore, moveToExplore)
	_ = ctx.AddChild(explore, exploreWait)
	_ = ctx.AddChild(root, explore)

	return root
}

func buildBuilderAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("BuilderMainSelector")

	build := ctx.NewSequence("BuildSequence")
	moveToSite := ctx.NewTask("MoveToBuildSite", &MoveToTask{Key: "build_position", Radius: 1.0})
	fireBuild := ctx.NewTask("BuildStructure", &FireEventTask{EventName: "build", Args: "barracks"})
	_ = ctx.AddChild(build, moveToSite)
	_ = ctx.AddChild(build, fireBuild)
	_ = ctx.AddDecorator(build, NewWatchValueDecorator("build_position", "", true, false, false, false))
	_ = ctx.AddChild(root, build)

	idleWait := ctx.NewTask("BuilderIdle", &WaitTask{Time: 5.0})
	_ = ctx.AddChild(root, idleWait)

	return root
}

func buildGuardAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("GuardMainSelector")
	_ = ctx.AddChild(root, buildCombatBranch(ctx, "intruder", 8.0, 10))

	patrol := ctx.NewSequence("GuardPatrolSequence")
	returnToPost := ctx.NewTask("ReturnToPost", &MoveToTask{Key: "guard_post", Radius: 1.0})
	guardWait := ctx.NewTask("GuardWait", &WaitTask{Time: 4.0})
	_ = ctx.AddChild(patrol, returnToPost)
	_ = ctx.AddChild(patrol, guardWait)
	_ = ctx.AddChild(root, patrol)

	return root
}

func buildGeneralAI(ctx *Context) NodeIndex {
	root := ctx.NewSelector("GeneralMainSelector")
	_ = ctx.AddChild(root, buildCombatBranch(ctx, "combat_target", 8.0, 8))

	idleWait := ctx.NewTask("GeneralIdle", &WaitTask{Time: 3.0})
	_ = ctx.AddChild(root, idleWait)

	return root
}

// BehaviorTreeFactory builds and installs a Context for a unit from the
// template registered for its unit type, falling back to "general_ai".
type BehaviorTreeFactory struct {
	library  *BehaviorTreeLibrary
	world    *World
	audioMgr *audio.AudioManager
}

// NewBehaviorTreeFactory builds a factory bound to world, with the built-in
// template library. It also brings up the audio manager every context's
// AudioSink plays combat sounds through; a construction failure is logged
// and leaves contexts audio-silent rather than failing unit setup.
func NewBehaviorTreeFactory(world *World) *BehaviorTreeFactory {
	audioMgr, err := audio.NewAudioManager(audio.NewMockAudioBackend())
	if err != nil {
		log.Printf("behavior tree factory: audio manager unavailable, contexts will be audio-silent: %v", err)
		audioMgr = nil
	}
	return &BehaviorTreeFactory{library: NewBehaviorTreeLibrary(), world: world, audioMgr: audioMgr}
}

// CreateContextForUnit builds a fresh Context wired to unit's adapters and
// populated with the tree for its unit type.
func (f *BehaviorTreeFactory) CreateContextForUnit(unit *GameUnit) (*Context, error) {
	unitType := "general"
	if unit.UnitType != "" {
		unitType = unit.UnitType
	}

	templates := f.library.GetTemplatesForUnitType(unitType)
	if len(templates) == 0 {
		templates = f.library.GetTemplatesForUnitType("*")
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no behavior tree template for unit type %q", unitType)
	}

	chosen := templates[0]
	for _, t := range templates {
		for _, applicable := range t.UnitTypes {
			if applicable == unitType {
				chosen = t
			}
		}
	}
	return f.createContext(chosen, unit)
}

// CreateContextByName builds a Context from a specific named template.
func (f *BehaviorTreeFactory) CreateContextByName(templateName string, unit *GameUnit) (*Context, error) {
	t, ok := f.library.GetTemplate(templateName)
	if !ok {
		return nil, fmt.Errorf("template %q not found", templateName)
	}
	return f.createContext(t, unit)
}

func (f *BehaviorTreeFactory) createContext(t *BehaviorTreeTemplate, unit *GameUnit) (*Context, error) {
	ctx := NewContext(standardRegistry())
	ctx.Adapters = Adapters{
		Controller: NewUnitController(f.world, unit),
		View:       NewUnitView(f.world),
		World:      NewWorldQueryAdapter(f.world),
		Health:     NewHealthSinkAdapter(f.world),
		Audio:      NewAudioSinkAdapter(f.audioMgr),
		Events:     NewEventSinkAdapter(f.world),
		Clock:      NewSimClock(f.world),
		Rng:        NewMathRandAdapter(int64(unit.ID)),
	}

	root := t.Builder(ctx)
	if err := ctx.AddChild(ctx.Root(), root); err != nil {
		return nil, fmt.Errorf("attach template %q: %w", t.Name, err)
	}
	return ctx, nil
}

// GetAvailableTemplates lists every registered template name.
func (f *BehaviorTreeFactory) GetAvailableTemplates() []string {
	return f.library.GetAllTemplateNames()
}

// GetLibrary returns the factory's underlying template library.
func (f *BehaviorTreeFactory) GetLibrary() *BehaviorTreeLibrary {
	return f.library
}

// SetupUnitBehavior builds the template tree for unit's type and installs it
// in btManager.
func (f *BehaviorTreeFactory) SetupUnitBehavior(unit *GameUnit, btManager *BehaviorTreeManager) error {
	ctx, err := f.CreateContextForUnit(unit)
	if err != nil {
		return fmt.Errorf("build behavior tree for unit %d: %w", unit.ID, err)
	}
	return btManager.SetContext(unit.ID, ctx)
}

// SetupUnitBehaviorByTemplate installs a specific named template on unit.
func (f *BehaviorTreeFactory) SetupUnitBehaviorByTemplate(unit *GameUnit, templateName string, btManager *BehaviorTreeManager) error {
	ctx, err := f.CreateContextByName(templateName, unit)
	if err != nil {
		return fmt.Errorf("build behavior tree %q for unit %d: %w", templateName, unit.ID, err)
	}
	return btManager.SetContext(unit.ID, ctx)
}
