package sched

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// EventKind identifies the kind of planner event being reported.
type EventKind int

const (
	EventPlace EventKind = iota
	EventComplete
	EventScheduleDone
)

func (k EventKind) String() string {
	switch k {
	case EventPlace:
		return "Place"
	case EventComplete:
		return "Complete"
	case EventScheduleDone:
		return "ScheduleDone"
	default:
		return "Unknown"
	}
}

// Event is emitted synchronously by the scheduler loop as it places and
// completes tasks. Unlike the live, goroutine-driven clock this was
// adapted from, the planner is single-threaded (see SPEC_FULL §5), so
// events are delivered by direct callback rather than over a channel.
type Event struct {
	Kind     EventKind
	Tick     uint64
	TaskName string
	NodeName string
}

// emit forwards ev to the registered callback, if any, and appends a row
// to the CSV log, if logging is enabled.
func (p *Planner) emit(ev Event) {
	if p.onEvent != nil {
		p.onEvent(ev)
	}
	if p.csvWriter == nil {
		return
	}
	_ = p.csvWriter.Write([]string{
		strconv.FormatUint(ev.Tick, 10),
		ev.Kind.String(),
		ev.TaskName,
		ev.NodeName,
	})
	p.csvWriter.Flush()
}

// OnEvent registers a callback invoked for every placement/completion
// event during Schedule. It must be called before Schedule.
func (p *Planner) OnEvent(f func(Event)) {
	p.onEvent = f
}

// EnableCSVLogging opens path and writes a header row, mirroring the
// tick-scheduler's CSV event log. Must be called before Schedule.
func (p *Planner) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("enable csv logging: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "event", "task", "node"}); err != nil {
		f.Close()
		return fmt.Errorf("enable csv logging: %w", err)
	}
	w.Flush()
	p.csvFile = f
	p.csvWriter = w
	return nil
}

// CloseCSVLogging flushes and closes the CSV log, if one is open.
func (p *Planner) CloseCSVLogging() error {
	if p.csvFile == nil {
		return nil
	}
	p.csvWriter.Flush()
	err := p.csvFile.Close()
	p.csvFile = nil
	p.csvWriter = nil
	return err
}
