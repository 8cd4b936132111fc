package sched_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tickpack/internal/sched"
)

func TestTaskRunForExact(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 5)
	stat := tsk.RunFor(5)

	chk.Equal(uint64(0), stat.Remaining)
	chk.Equal(uint64(5), stat.Busy)
	chk.Equal(uint64(0), stat.Idle)
	chk.Equal(sched.Complete, tsk.State())
	chk.Equal(uint64(0), tsk.TicksRemaining())
}

func TestTaskRunForOvershoot(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 3)
	stat := tsk.RunFor(5)

	chk.Equal(uint64(0), stat.Remaining)
	chk.Equal(uint64(5), stat.Busy)
	chk.Equal(uint64(2), stat.Idle)
	chk.Equal(sched.Complete, tsk.State())
}

func TestTaskRunForPartial(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 10)
	stat := tsk.RunFor(4)

	chk.Equal(uint64(6), stat.Remaining)
	chk.Equal(uint64(4), stat.Busy)
	chk.Equal(uint64(0), stat.Idle)
	chk.Equal(sched.Running, tsk.State())
	chk.Equal(uint64(6), tsk.TicksRemaining())
}

func TestTaskMapDependenciesEmptySpec(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 1)
	ok := tsk.MapDependencies(func(string) (*sched.Task, bool) { return nil, false })

	chk.True(ok)
	chk.Empty(tsk.Dependencies())
	chk.Equal(int64(0), tsk.DependencyCount())
}

func TestTaskMapDependenciesMissing(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 1)
	tsk.SetDepSpec("Z")
	ok := tsk.MapDependencies(func(string) (*sched.Task, bool) { return nil, false })

	chk.False(ok)
}

func TestTaskDependencyCountSentinelBeforeMapping(t *testing.T) {
	chk := require.New(t)

	tsk := sched.NewTask(0, "A", 1, 1)
	chk.Equal(int64(-1), tsk.DependencyCount())
}

func TestTaskMapDependenciesTrimsWhitespaceAndRegistersWaiter(t *testing.T) {
	chk := require.New(t)

	parent := sched.NewTask(0, "P", 1, 1)
	child := sched.NewTask(1, "C", 1, 1)
	child.SetDepSpec(" P ,  P")

	lookup := func(name string) (*sched.Task, bool) {
		if name == "P" {
			return parent, true
		}
		return nil, false
	}
	ok := child.MapDependencies(lookup)

	chk.True(ok)
	// duplicate names in dep_spec are not deduplicated
	chk.Len(child.Dependencies(), 2)
	chk.Equal(2, parent.WaiterCount())
}

func TestTaskDependenciesMet(t *testing.T) {
	chk := require.New(t)

	parent := sched.NewTask(0, "P", 1, 1)
	child := sched.NewTask(1, "C", 1, 1)
	child.SetDepSpec("P")
	child.MapDependencies(func(string) (*sched.Task, bool) { return parent, true })

	chk.False(child.DependenciesMet())

	parent.RunFor(1)
	chk.True(child.DependenciesMet())
}
