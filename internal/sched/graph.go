package sched

import "sort"

// Validate resolves dependency names to task handles, builds a directed
// graph of task -> parent edges for ordering purposes, rejects infeasible
// core demands and cycles, and computes the topological job sequence used
// by Schedule. It must be called exactly once, before Schedule.
//
// Procedure (SPEC_FULL §4.3):
//  1. find the largest node core count.
//  2. for each task, in construction order: reject if its core demand
//     exceeds that max; map its dependencies; record an ordering edge to
//     each resolved parent; note whether it is disconnected (no
//     dependencies and no waiters at this point in the pass).
//  3. connect every disconnected task (other than the first task seen,
//     the "anchor") to the anchor with an artificial ordering edge, so
//     that disjoint input components still produce one coherent
//     sequence. This edge affects topological order only — it is kept in
//     a separate ordering graph and never added to a task's own
//     Dependencies/Waiters, so it has no effect on DependenciesMet.
//  4. topologically sort (Kahn's algorithm); a residual tasks set after
//     the sort means a cycle.
func (p *Planner) Validate() Status {
	if len(p.nodes) == 0 {
		panic("sched: validate called with no compute nodes")
	}

	var maxCores uint64
	for _, n := range p.nodes {
		if n.coresTotal > maxCores {
			maxCores = n.coresTotal
		}
	}

	orderParents := make(map[*Task][]*Task, len(p.tasks))
	orderChildren := make(map[*Task][]*Task, len(p.tasks))

	var disconnected []*Task
	var anchor *Task

	for i, t := range p.tasks {
		if i == 0 {
			anchor = t
		}

		if t.coresRequired > maxCores {
			return StatusComputeExceeded
		}

		if ok := t.MapDependencies(p.lookup); !ok {
			p.lastTask = t
			return StatusMissingDependency
		}

		for _, parent := range t.dependencies {
			orderParents[t] = append(orderParents[t], parent)
			orderChildren[parent] = append(orderChildren[parent], t)
		}

		if len(t.dependencies) == 0 && len(t.waiters) == 0 {
			disconnected = append(disconnected, t)
		}
	}

	for _, d := range disconnected {
		if d == anchor {
			continue
		}
		orderParents[d] = append(orderParents[d], anchor)
		orderChildren[anchor] = append(orderChildren[anchor], d)
	}

	order, ok := topologicalSort(p.tasks, orderParents, orderChildren)
	if !ok {
		return StatusCircularDependency
	}

	p.jobSequence = order
	p.validated = true
	return StatusOk
}

// topologicalSort runs Kahn's algorithm over the ordering graph. Ties in
// the ready queue are broken by task id (construction order), and each
// newly-ready batch is sorted and appended to the tail of the queue
// rather than re-sorting the whole queue, which keeps the result
// deterministic without imposing a total order beyond what the graph
// requires.
func topologicalSort(tasks []*Task, parents, children map[*Task][]*Task) ([]*Task, bool) {
	inDegree := make(map[*Task]int, len(tasks))
	for _, t := range tasks {
		inDegree[t] = len(parents[t])
	}

	queue := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if inDegree[t] == 0 {
			queue = append(queue, t)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i].id < queue[j].id })

	order := make([]*Task, 0, len(tasks))
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		order = append(order, t)

		var ready []*Task
		for _, c := range children[t] {
			inDegree[c]--
			if inDegree[c] == 0 {
				ready = append(ready, c)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i].id < ready[j].id })
		queue = append(queue, ready...)
	}

	return order, len(order) == len(tasks)
}
