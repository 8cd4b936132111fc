// Package sched implements the planner core: the task and compute-node
// models, dependency validation, and the tick-driven best-fit scheduler.
package sched

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a Task. The reachable set is
// {NotStarted, Running, Complete}; a fourth tag exists in the source this
// was distilled from ("no resources") but is never entered there, so it
// is omitted here.
type State int

const (
	NotStarted State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// TickStat reports how a Task spent one RunFor call.
type TickStat struct {
	Remaining uint64
	Busy      uint64
	Idle      uint64
}

// Task models one schedulable unit of work: a name, a resource demand, a
// remaining runtime, and its dependency/waiter wiring.
type Task struct {
	name           string
	id             int
	coresRequired  uint64
	ticksRequired  uint64
	ticksRemaining uint64
	state          State
	depSpec        string
	dependencies   []*Task
	waiters        []*Task
	mappedDeps     bool
}

// TaskSpec is the declarative description of a task, as it arrives from
// the input layer, before ids are assigned and dependencies are resolved.
type TaskSpec struct {
	Name          string
	CoresRequired uint64
	TicksRequired uint64
	DepSpec       string
}

// NewTask constructs a task in state NotStarted with ticksRemaining equal
// to ticksRequired. id must be dense and stable for the planner's
// lifetime; callers that hold a batch of tasks should prefer NewTasks,
// which assigns ids from construction order.
func NewTask(id int, name string, coresRequired, ticksRequired uint64) *Task {
	return &Task{
		name:           name,
		id:             id,
		coresRequired:  coresRequired,
		ticksRequired:  ticksRequired,
		ticksRemaining: ticksRequired,
		state:          NotStarted,
	}
}

// NewTasks builds a dense, id-ordered task list from specs in input order.
// The index of each spec becomes its task's id, which is what the
// validator uses as a stable, deterministic tie-break (construction
// order) when resolving ties in the topological sort and the
// disconnected-component anchor.
func NewTasks(specs []TaskSpec) []*Task {
	tasks := make([]*Task, len(specs))
	for i, s := range specs {
		t := NewTask(i, s.Name, s.CoresRequired, s.TicksRequired)
		t.SetDepSpec(s.DepSpec)
		tasks[i] = t
	}
	return tasks
}

func (t *Task) ID() int                { return t.id }
func (t *Task) Name() string           { return t.name }
func (t *Task) CoresRequired() uint64  { return t.coresRequired }
func (t *Task) TicksRequired() uint64  { return t.ticksRequired }
func (t *Task) TicksRemaining() uint64 { return t.ticksRemaining }
func (t *Task) State() State           { return t.state }
func (t *Task) DepSpec() string        { return t.depSpec }
func (t *Task) Dependencies() []*Task  { return t.dependencies }
func (t *Task) Waiters() []*Task       { return t.waiters }
func (t *Task) WaiterCount() int       { return len(t.waiters) }

// SetDepSpec stores the raw, comma-separated parent-task list exactly as
// supplied by the input layer.
func (t *Task) SetDepSpec(s string) { t.depSpec = s }

// RunFor simulates running the task for k ticks and returns how that time
// was spent. Busy is always k. If the task finishes before k ticks
// elapse, Idle reports the surplus (k minus the ticks that were
// remaining); Node.Tick does not add that figure and bills the task's
// cores as busy for the whole interval.
func (t *Task) RunFor(k uint64) TickStat {
	switch {
	case t.ticksRemaining == k:
		t.state = Complete
		t.ticksRemaining = 0
		return TickStat{Remaining: 0, Busy: k, Idle: 0}
	case t.ticksRemaining < k:
		idle := k - t.ticksRemaining
		t.state = Complete
		t.ticksRemaining = 0
		return TickStat{Remaining: 0, Busy: k, Idle: idle}
	default:
		t.ticksRemaining -= k
		t.state = Running
		return TickStat{Remaining: t.ticksRemaining, Busy: k, Idle: 0}
	}
}

// parseDepNames splits the raw comma-separated dependency spec, trimming
// surrounding whitespace around each entry. Duplicate names are preserved
// verbatim; the caller decides what to do with repeats.
func parseDepNames(spec string) []string {
	if spec == "" {
		return nil
	}
	parts := strings.Split(spec, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

// MapDependencies resolves this task's dep spec into task handles via
// lookup, registers this task as a waiter on each resolved parent, and
// reports whether every name resolved. mappedDeps is set regardless of
// outcome, per the partial-mapping semantics of the source.
func (t *Task) MapDependencies(lookup func(name string) (*Task, bool)) bool {
	foundAll := true
	for _, name := range parseDepNames(t.depSpec) {
		parent, ok := lookup(name)
		if !ok {
			foundAll = false
			continue
		}
		parent.waiters = append(parent.waiters, t)
		t.dependencies = append(t.dependencies, parent)
	}
	t.mappedDeps = true
	return foundAll
}

// DependenciesMet is true iff every resolved dependency is Complete.
func (t *Task) DependenciesMet() bool {
	for _, d := range t.dependencies {
		if d.state != Complete {
			return false
		}
	}
	return true
}

// DependencyCount returns -1 (unknown) before dependencies are mapped,
// and the resolved dependency count afterward.
func (t *Task) DependencyCount() int64 {
	if !t.mappedDeps {
		return -1
	}
	return int64(len(t.dependencies))
}

func (t *Task) markRunning() { t.state = Running }

// String renders a one-line diagnostic summary, echoing the source's
// operator<<.
func (t *Task) String() string {
	s := fmt.Sprintf("name: %s; cores_required: %d; exec_time: %d/%d; id: %d; state: %s; dependency count: %d; waiters: %d",
		t.name, t.coresRequired, t.ticksRemaining, t.ticksRequired, t.id, t.state, len(t.dependencies), len(t.waiters))
	if t.depSpec != "" {
		s += "; parent tasks: " + t.depSpec
	}
	return s
}
