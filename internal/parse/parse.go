// Package parse reads the two planner input files — compute.yaml and
// tasks.yaml — into the sched package's domain types. It is a thin
// collaborator around the planner core (SPEC_FULL §1/§6): no validation
// beyond "does this parse" happens here.
package parse

import (
	"fmt"
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"tickpack/internal/sched"
)

const (
	executionTimeKey = "execution_time"
	coresRequiredKey = "cores_required"
	parentTasksKey   = "parent_tasks"
)

// LoadCompute reads a compute.yaml mapping of node_name -> cores into a
// list of nodes, in file order (node order is not semantically load-
// bearing for correctness, but it is the stable tie-break input to the
// scheduler's best-fit sort, so declaration order is preserved rather
// than normalized to map iteration order).
func LoadCompute(path string) ([]*sched.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compute file %s: %w", path, err)
	}

	var raw yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parse compute file %s: %w", path, err)
	}

	nodes := make([]*sched.Node, 0, len(raw))
	for _, item := range raw {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("parse compute file %s: node name %v is not a string", path, item.Key)
		}
		cores, err := toUint64(item.Value)
		if err != nil {
			return nil, fmt.Errorf("parse compute file %s: node %q: %w", path, name, err)
		}
		nodes = append(nodes, sched.NewNode(name, cores))
	}
	return nodes, nil
}

// LoadTasks reads a tasks.yaml mapping of task_name -> {execution_time,
// cores_required, parent_tasks} into a list of tasks, in file order (this
// order is the fallback the validator uses to pick the disconnected-
// component anchor, so it must be preserved — see
// sched.Planner.Validate).
func LoadTasks(path string) ([]*sched.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file %s: %w", path, err)
	}

	var raw yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parse tasks file %s: %w", path, err)
	}

	specs := make([]sched.TaskSpec, 0, len(raw))
	for _, item := range raw {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("parse tasks file %s: task name %v is not a string", path, item.Key)
		}

		detail, ok := item.Value.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("parse tasks file %s: task %q has no detail mapping", path, name)
		}

		var cores, ticks uint64
		var depSpec string
		for _, kv := range detail {
			key, _ := kv.Key.(string)
			switch key {
			case executionTimeKey:
				ticks, err = toUint64(kv.Value)
			case coresRequiredKey:
				cores, err = toUint64(kv.Value)
			case parentTasksKey:
				depSpec, _ = kv.Value.(string)
			}
			if err != nil {
				return nil, fmt.Errorf("parse tasks file %s: task %q: %w", path, name, err)
			}
		}

		specs = append(specs, sched.TaskSpec{
			Name:          name,
			CoresRequired: cores,
			TicksRequired: ticks,
			DepSpec:       strings.TrimSpace(depSpec),
		})
	}

	return sched.NewTasks(specs), nil
}

// toUint64 accepts the handful of scalar shapes a YAML decoder hands
// back for an integer node (int, int64, uint64, float64) and coerces
// them to uint64.
func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("expected a non-negative integer, got %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("expected a non-negative integer, got %d", n)
		}
		return uint64(n), nil
	case uint:
		return uint64(n), nil
	case float64:
		if n < 0 {
			return 0, fmt.Errorf("expected a non-negative integer, got %v", n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
