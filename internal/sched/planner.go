package sched

import (
	"encoding/csv"
	"os"
)

// ScheduleEntry records one placement decision: task T was placed on node
// N. The full schedule is the append-only sequence of such entries in
// the order the planner made them.
type ScheduleEntry struct {
	Task *Task
	Node *Node
}

// Planner owns the validated view of a task set and compute pool and
// drives the best-fit scheduling simulation over them. Tasks and nodes
// are owned by the caller's slices for the planner's lifetime; Planner
// itself holds only non-owning references, resolved by pointer rather
// than by name or id lookup, per the redesign adopted in SPEC_FULL §3/§9
// (no package-global task registry).
type Planner struct {
	nodes  []*Node
	tasks  []*Task
	byName map[string]*Task

	cfg Config

	validated   bool
	jobSequence []*Task
	lastTask    *Task

	schedule []ScheduleEntry

	requiredTicks uint64
	depWait       uint64
	computeWait   uint64
	allCoresBusy  uint64

	onEvent   func(Event)
	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewPlanner builds a planner over the given nodes and tasks. Task names
// must be unique; a duplicate name is an input-construction error (not
// one of the Status outcomes) and panics immediately, since it violates
// the Task invariant that names are unique across the task set.
func NewPlanner(nodes []*Node, tasks []*Task, cfg Config) *Planner {
	byName := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		if _, dup := byName[t.name]; dup {
			panic("sched: duplicate task name " + t.name)
		}
		byName[t.name] = t
	}
	return &Planner{
		nodes:  nodes,
		tasks:  tasks,
		byName: byName,
		cfg:    cfg,
	}
}

func (p *Planner) lookup(name string) (*Task, bool) {
	t, ok := p.byName[name]
	return t, ok
}

func (p *Planner) Config() Config              { return p.cfg }
func (p *Planner) LastTask() *Task             { return p.lastTask }
func (p *Planner) RequiredTicks() uint64       { return p.requiredTicks }
func (p *Planner) DependencyWaitCount() uint64 { return p.depWait }
func (p *Planner) ComputeWaitCount() uint64    { return p.computeWait }
func (p *Planner) AllCoresBusyCount() uint64   { return p.allCoresBusy }
func (p *Planner) JobSequence() []*Task        { return p.jobSequence }
