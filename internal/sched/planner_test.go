package sched_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tickpack/internal/sched"
)

func newTasks(specs ...sched.TaskSpec) []*sched.Task {
	return sched.NewTasks(specs)
}

func TestValidateComputeExceeded(t *testing.T) {
	chk := require.New(t)

	nodes := []*sched.Node{sched.NewNode("n1", 2)}
	tasks := newTasks(sched.TaskSpec{Name: "Big", CoresRequired: 4, TicksRequired: 1})

	p := sched.NewPlanner(nodes, tasks, sched.DefaultConfig())
	chk.Equal(sched.StatusComputeExceeded, p.Validate())
}

func TestValidateMissingDependency(t *testing.T) {
	chk := require.New(t)

	nodes := []*sched.Node{sched.NewNode("n1", 2)}
	tasks := newTasks(sched.TaskSpec{Name: "A", CoresRequired: 1, TicksRequired: 1, DepSpec: "Z"})

	p := sched.NewPlanner(nodes, tasks, sched.DefaultConfig())
	chk.Equal(sched.StatusMissingDependency, p.Validate())
	chk.Equal("A", p.LastTask().Name())
}

func TestValidateCircularDependency(t *testing.T) {
	chk := require.New(t)

	nodes := []*sched.Node{sched.NewNode("n1", 2)}
	tasks := newTasks(
		sched.TaskSpec{Name: "A", CoresRequired: 1, TicksRequired: 1, DepSpec: "B"},
		sched.TaskSpec{Name: "B", CoresRequired: 1, TicksRequired: 1, DepSpec: "A"},
	)

	p := sched.NewPlanner(nodes, tasks, sched.DefaultConfig())
	chk.Equal(sched.StatusCircularDependency, p.Validate())
}

func TestValidateTopologicalOrder(t *testing.T) {
	chk := require.New(t)

	nodes := []*sched.Node{sched.NewNode("n1", 4)}
	tasks := newTasks(
		sched.TaskSpec{Name: "A", CoresRequired: 1, TicksRequired: 1},
		sched.TaskSpec{Name: "B", CoresRequired: 1, TicksRequired: 1, DepSpec: "A"},
		sched.TaskSpec{Name: "C", CoresRequired: 1, TicksRequired: 1, DepSpec: "B"},
	)

	p := sched.NewPlanner(nodes, tasks, sched.DefaultConfig())
	chk.Equal(sched.StatusOk, p.Validate())

	pos := make(map[string]int)
	for i, t := range p.JobSequence() {
		pos[t.Name()] = i
	}
	chk.Less(pos["A"], pos["B"])
	chk.Less(pos["B"], pos["C"])
}

func TestValidateDisconnectedComponentsConnectToAnchor(t *testing.T) {
	chk := require.New(t)

	nodes := []*sched.Node{sched.NewNode("n1", 2)}
	tasks := newTasks(
		sched.TaskSpec{Name: "A", CoresRequired: 1, TicksRequired: 1},
		sched.TaskSpec{Name: "B", CoresRequired: 1, TicksRequired: 1},
		sched.TaskSpec{Name: "C", CoresRequired: 1, TicksRequired: 1, DepSpec: "A"},
	)

	p := sched.NewPlanner(nodes, tasks, sched.DefaultConfig())
	chk.Equal(sched.StatusOk, p.Validate())
	chk.Len(p.JobSequence(), 3)

	// the artificial anchor edge must not leak into real dependency
	// tracking: B has no real dependencies even though it is ordered
	// after the anchor task A.
	chk.Empty(tasks[1].Dependencies())
	chk.True(tasks[1].DependenciesMet())
}
