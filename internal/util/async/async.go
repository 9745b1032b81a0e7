// Package async provides helpers for fanning work out across cluster
// hosts. Hosts share no mutable state with each other, so per-host
// operations may run concurrently; within-host ordering is the caller's
// responsibility.
package async

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Task is a named unit of work, typically one host's slice of a phase.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Run executes tasks and collects every failure rather than stopping at
// the first one: a failed host must not silently abort processing of the
// others. When parallel is false the tasks run strictly in order.
// The returned error joins all per-task failures, each prefixed with the
// task name, in name order for stable output.
func Run(ctx context.Context, tasks []Task, parallel bool) error {
	if len(tasks) == 0 {
		return nil
	}

	if !parallel {
		var errs []error
		for _, task := range tasks {
			if err := task.Func(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", task.Name, err))
			}
		}
		return errors.Join(errs...)
	}

	type result struct {
		name string
		err  error
	}

	results := make(chan result, len(tasks))
	for _, task := range tasks {
		go func() {
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	failures := make(map[string]error, len(tasks))
	for range len(tasks) {
		res := <-results
		if res.err != nil {
			failures[res.name] = res.err
		}
	}

	if len(failures) == 0 {
		return nil
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(failures))
	for _, name := range names {
		errs = append(errs, fmt.Errorf("%s: %w", name, failures[name]))
	}
	return errors.Join(errs...)
}
