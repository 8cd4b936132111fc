package sched

import "fmt"

// NodeState is derived from CoresAvailable/CoresTotal, not stored as the
// source of truth.
type NodeState int

const (
	Free NodeState = iota
	PartiallyAvailable
	Busy
)

func (s NodeState) String() string {
	switch s {
	case Free:
		return "free"
	case PartiallyAvailable:
		return "partially available"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// Node models one multi-core compute resource: its core inventory, the
// tasks currently assigned to it, and its cumulative busy/idle tick
// counters.
type Node struct {
	name           string
	coresTotal     uint64
	coresAvailable int64
	currentTasks   []*Task
	assignCount    uint64
	busyTicks      uint64
	idleTicks      uint64
}

// NewNode constructs a node with all of its cores free.
func NewNode(name string, coresTotal uint64) *Node {
	return &Node{
		name:           name,
		coresTotal:     coresTotal,
		coresAvailable: int64(coresTotal),
	}
}

func (n *Node) Name() string          { return n.name }
func (n *Node) CoresTotal() uint64    { return n.coresTotal }
func (n *Node) CoresAvailable() int64 { return n.coresAvailable }
func (n *Node) AssignCount() uint64   { return n.assignCount }
func (n *Node) BusyTicks() uint64     { return n.busyTicks }
func (n *Node) IdleTicks() uint64     { return n.idleTicks }
func (n *Node) CurrentTasks() []*Task { return n.currentTasks }

// State derives the node's occupancy bucket from its core counts.
func (n *Node) State() NodeState {
	switch {
	case n.coresAvailable == int64(n.coresTotal):
		return Free
	case n.coresAvailable == 0:
		return Busy
	default:
		return PartiallyAvailable
	}
}

// Assign places a NotStarted task onto this node. The caller (the
// scheduler) is responsible for only calling Assign when the node has
// enough free cores; a violation is an internal logic bug, not a
// user-facing error, so it panics rather than returning one.
func (n *Node) Assign(t *Task) {
	if t.state != NotStarted {
		panic(fmt.Sprintf("sched: cannot assign task %q already in state %s", t.name, t.state))
	}
	if int64(t.coresRequired) > n.coresAvailable {
		panic(fmt.Sprintf("sched: node %q has %d cores available, task %q requires %d", n.name, n.coresAvailable, t.name, t.coresRequired))
	}
	t.markRunning()
	n.currentTasks = append(n.currentTasks, t)
	n.coresAvailable -= int64(t.coresRequired)
	n.assignCount++
}

// TickResult reports what happened on a node during one Tick call.
type TickResult struct {
	Completed      int
	CompletedTasks []*Task
}

// Tick advances simulated time by k on this node.
//
// For each currently assigned task, RunFor(k) is called and its busy
// contribution is weighted by the task's core count; a task that finishes
// before k ticks elapse is billed busy on its cores for the whole
// interval, and the Idle figure RunFor reports for it is not added. Completed tasks
// return their cores to the pool and are removed from the current set.
// Cores that sat completely unused for the whole interval (no task
// assigned to them at the start of the call) are billed as idle for the
// full k ticks. The method panics if the tick accounting doesn't add up
// to cores_total*k — that indicates a logic bug, not a user error.
func (n *Node) Tick(k uint64) TickResult {
	if k == 0 {
		panic("sched: Tick called with k == 0")
	}

	var coresUsedAtStart uint64
	var busy, idle uint64
	var result TickResult

	remaining := n.currentTasks[:0]
	for _, t := range n.currentTasks {
		coresUsedAtStart += t.coresRequired
		stat := t.RunFor(k)
		busy += stat.Busy * t.coresRequired

		if stat.Remaining == 0 {
			n.coresAvailable += int64(t.coresRequired)
			result.Completed++
			result.CompletedTasks = append(result.CompletedTasks, t)
			continue
		}
		remaining = append(remaining, t)
	}
	n.currentTasks = remaining

	if coresUsedAtStart > n.coresTotal {
		panic(fmt.Sprintf("sched: node %q over-committed: %d cores used of %d", n.name, coresUsedAtStart, n.coresTotal))
	}
	unusedCores := n.coresTotal - coresUsedAtStart
	idle += unusedCores * k

	if n.coresTotal*k != busy+idle {
		panic(fmt.Sprintf("sched: node %q tick accounting mismatch: total=%d busy=%d idle=%d", n.name, n.coresTotal*k, busy, idle))
	}

	n.busyTicks += busy
	n.idleTicks += idle
	return result
}

// String renders a one-line diagnostic summary, echoing the source's
// operator<<.
func (n *Node) String() string {
	return fmt.Sprintf("name: %s; cores: %d/%d; state: %s", n.name, n.coresAvailable, n.coresTotal, n.State())
}
