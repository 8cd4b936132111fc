// Package report renders the human-readable utilization and dependency
// analysis printed by "--analyze" (SPEC_FULL §6). It is a thin
// collaborator around the planner core: everything it prints is read
// from already-computed sched.Node/sched.Task/sched.Planner state.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"

	"tickpack/internal/sched"
)

// Format renders the full analysis report for the given nodes, tasks,
// and a validated, scheduled planner, showing up to topN entries per
// ranking — the same top-N idiom the source built with
// std::priority_queue, here built with gods' binaryheap.
func Format(nodes []*sched.Node, tasks []*sched.Task, p *sched.Planner, topN int) string {
	var b strings.Builder

	fmt.Fprintln(&b, "== Compute Analyzer ==")

	var totalCores, totalBusy, totalIdle uint64
	hotNodes := binaryheap.NewWith(nodeByAssignCountDesc)
	for _, n := range nodes {
		totalCores += n.CoresTotal()
		totalBusy += n.BusyTicks()
		totalIdle += n.IdleTicks()
		hotNodes.Push(n)
	}
	totalTicks := totalBusy + totalIdle

	fmt.Fprintf(&b, "Total core count: %d\n", totalCores)
	fmt.Fprintf(&b, "Total ticks needed (across all cores): %d\n", totalTicks)
	fmt.Fprintf(&b, "    busy ticks: %d\n", totalBusy)
	fmt.Fprintf(&b, "    idle ticks: %d\n", totalIdle)

	var avgCores float64
	if len(nodes) > 0 {
		avgCores = float64(totalCores) / float64(len(nodes))
	}
	fmt.Fprintf(&b, "Avg. cores per node: %s\n", fourSigFigs(avgCores))

	fmt.Fprintln(&b, "Hot compute nodes:")
	for i := 0; i < topN && hotNodes.Size() > 0; i++ {
		v, _ := hotNodes.Pop()
		n := v.(*sched.Node)
		if n.AssignCount() == 0 {
			break
		}
		fmt.Fprintf(&b, "    node: %s (%d cores) ran %d tasks\n", n.Name(), n.CoresTotal(), n.AssignCount())
	}

	fmt.Fprintf(&b, "Planner ticks: %d\n", p.RequiredTicks())
	fmt.Fprintln(&b, "Task delays")
	fmt.Fprintf(&b, "    not runnable, unmet dependencies: %d\n", p.DependencyWaitCount())
	fmt.Fprintf(&b, "    runnable, but waited for compute: %d\n", p.ComputeWaitCount())
	fmt.Fprintf(&b, "Schedulings when all cores were busy: %d\n", p.AllCoresBusyCount())

	fmt.Fprintln(&b, "== Task analysis ==")

	mostWaited := binaryheap.NewWith(taskByWaiterCountDesc)
	mostDependent := binaryheap.NewWith(taskByDependencyCountDesc)
	for _, t := range tasks {
		mostWaited.Push(t)
		mostDependent.Push(t)
	}

	waitedHeader := false
	for i := 0; i < topN && mostWaited.Size() > 0; i++ {
		v, _ := mostWaited.Pop()
		t := v.(*sched.Task)
		if t.WaiterCount() == 0 {
			break
		}
		if !waitedHeader {
			fmt.Fprintln(&b, "Most waited on tasks:")
			waitedHeader = true
		}
		fmt.Fprintf(&b, "    %s: %d waiters (%s)\n", t.Name(), t.WaiterCount(), joinNames(t.Waiters()))
	}

	dependentHeader := false
	for i := 0; i < topN && mostDependent.Size() > 0; i++ {
		v, _ := mostDependent.Pop()
		t := v.(*sched.Task)
		deps := t.Dependencies()
		if len(deps) == 0 {
			break
		}
		if !dependentHeader {
			fmt.Fprintln(&b, "Tasks with the most dependencies:")
			dependentHeader = true
		}
		fmt.Fprintf(&b, "    %s: %d dependencies (%s)\n", t.Name(), len(deps), joinNames(deps))
	}

	return b.String()
}

func joinNames(tasks []*sched.Task) string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

// fourSigFigs mirrors std::cout.precision(4) on a float: four
// significant digits, not four decimal places.
func fourSigFigs(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}

func nodeByAssignCountDesc(a, b interface{}) int {
	na, nb := a.(*sched.Node), b.(*sched.Node)
	switch {
	case na.AssignCount() > nb.AssignCount():
		return -1
	case na.AssignCount() < nb.AssignCount():
		return 1
	default:
		return strings.Compare(na.Name(), nb.Name())
	}
}

func taskByWaiterCountDesc(a, b interface{}) int {
	ta, tb := a.(*sched.Task), b.(*sched.Task)
	switch {
	case ta.WaiterCount() > tb.WaiterCount():
		return -1
	case ta.WaiterCount() < tb.WaiterCount():
		return 1
	default:
		return strings.Compare(ta.Name(), tb.Name())
	}
}

func taskByDependencyCountDesc(a, b interface{}) int {
	ta, tb := a.(*sched.Task), b.(*sched.Task)
	la, lb := len(ta.Dependencies()), len(tb.Dependencies())
	switch {
	case la > lb:
		return -1
	case la < lb:
		return 1
	default:
		return strings.Compare(ta.Name(), tb.Name())
	}
}
