package sched

import "sort"

// Schedule runs the best-fit bin-packing simulation to completion and
// returns the ordered placement list. Validate must have already
// returned StatusOk.
//
// Each outer iteration (SPEC_FULL §4.4):
//
//	A. collect nodes with at least one free core, sorted ascending by
//	   cores available.
//	B. walk the job sequence; a NotStarted task with its dependencies met
//	   is runnable, otherwise it counts against the dependency-wait
//	   counter.
//	C. sort runnable tasks ascending by (cores required, waiter count);
//	   placement below visits them in reverse, i.e. largest and
//	   most-depended-upon first.
//	D. best-fit: for each candidate, walk the full sorted node list and
//	   place on the first node with enough free cores; every node that's
//	   considered and found too small counts against the compute-wait
//	   counter; once every node has zero cores free, stop placing for
//	   this iteration.
//	E. advance simulated time by the smallest remaining-ticks value among
//	   running tasks.
//	F. tick every node by that amount, and fold completions into the
//	   remaining-task count.
//	G. drop completed tasks from the running set.
func (p *Planner) Schedule() []ScheduleEntry {
	if !p.validated {
		panic("sched: Schedule called before a successful Validate")
	}

	remaining := len(p.tasks)
	var running []*Task

	for remaining > 0 {
		avail := p.availableNodes()
		runnable := p.runnableTasks()
		p.placeRunnable(runnable, avail, &running)

		if len(running) == 0 {
			panic("sched: no running tasks but work remains; validation should have prevented this")
		}

		skip := running[0].ticksRemaining
		for _, t := range running[1:] {
			if t.ticksRemaining < skip {
				skip = t.ticksRemaining
			}
		}

		p.requiredTicks += skip
		for _, n := range p.nodes {
			result := n.Tick(skip)
			remaining -= result.Completed
			for _, t := range result.CompletedTasks {
				p.emit(Event{Kind: EventComplete, Tick: p.requiredTicks, TaskName: t.name, NodeName: n.name})
			}
		}

		kept := running[:0]
		for _, t := range running {
			if t.state != Complete {
				kept = append(kept, t)
			}
		}
		running = kept
	}

	p.emit(Event{Kind: EventScheduleDone, Tick: p.requiredTicks})
	return p.schedule
}

// availableNodes returns the nodes with free cores, sorted ascending by
// cores available. sort.SliceStable is used deliberately: the spec's
// best-fit and determinism invariants require a guaranteed stable
// tie-break on list order, which third-party ordered containers in the
// retrieved pack don't contractually provide for equal keys (see
// DESIGN.md).
func (p *Planner) availableNodes() []*Node {
	avail := make([]*Node, 0, len(p.nodes))
	for _, n := range p.nodes {
		if n.coresAvailable > 0 {
			avail = append(avail, n)
		}
	}
	sort.SliceStable(avail, func(i, j int) bool {
		return avail[i].coresAvailable < avail[j].coresAvailable
	})
	return avail
}

// runnableTasks walks the job sequence once, classifying each
// not-yet-started task as runnable or dependency-blocked. Blocked tasks
// increment depWait once per call, which measures blocking churn across
// iterations rather than distinct blocked tasks (SPEC_FULL §4.4 / spec
// §9).
func (p *Planner) runnableTasks() []*Task {
	runnable := make([]*Task, 0, len(p.jobSequence))
	for _, t := range p.jobSequence {
		if t.state != NotStarted {
			continue
		}
		if t.DependenciesMet() {
			runnable = append(runnable, t)
		} else {
			p.depWait++
		}
	}
	sort.SliceStable(runnable, func(i, j int) bool {
		if runnable[i].coresRequired != runnable[j].coresRequired {
			return runnable[i].coresRequired < runnable[j].coresRequired
		}
		return len(runnable[i].waiters) < len(runnable[j].waiters)
	})
	return runnable
}

// placeRunnable assigns runnable tasks to nodes, largest (and
// most-depended-upon) first, using best fit: the first node in ascending
// order with enough free cores wins.
func (p *Planner) placeRunnable(runnable []*Task, avail []*Node, running *[]*Task) {
	availCount := len(avail)
	for i := len(runnable) - 1; i >= 0; i-- {
		t := runnable[i]
		if t.state != NotStarted {
			continue
		}

		for _, n := range avail {
			if int64(t.coresRequired) > n.coresAvailable {
				p.computeWait++
				continue
			}
			n.Assign(t)
			p.schedule = append(p.schedule, ScheduleEntry{Task: t, Node: n})
			*running = append(*running, t)
			p.emit(Event{Kind: EventPlace, Tick: p.requiredTicks, TaskName: t.name, NodeName: n.name})
			if n.coresAvailable == 0 {
				availCount--
			}
			break
		}

		if availCount == 0 {
			p.allCoresBusy++
			break
		}
	}
}
