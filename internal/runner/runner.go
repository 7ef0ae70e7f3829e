// Package runner fans a build matrix out over a fixed-size worker pool and
// collects the results. Workers share nothing but the task and result
// channels; completion order is not defined and callers must not rely on it.
package runner

import (
	"context"
	"sync"

	"gd32test/internal/builder"
	"gd32test/internal/discovery"
	"gd32test/pkg/logging"
)

// Task is one board/test combination to build.
type Task struct {
	Board string
	Case  discovery.Case
}

// BuildMatrix expands discovered cases into the full list of build tasks,
// case order outer and board order inner, mirroring the deterministic order
// the plan generator guarantees.
func BuildMatrix(cases []discovery.Case, allBoards, platformFilter []string) []Task {
	var tasks []Task
	for _, c := range cases {
		for _, board := range discovery.BoardsForCase(c, allBoards, platformFilter) {
			tasks = append(tasks, Task{Board: board, Case: c})
		}
	}
	return tasks
}

// BuildFunc executes a single task. The runner treats it as opaque; every
// call must return a Result (failures included) rather than panicking or
// blocking forever.
type BuildFunc func(ctx context.Context, task Task) builder.Result

// Run executes all tasks with at most workers concurrent builds and returns
// the collected results. With workers <= 1 the tasks run sequentially in
// order; otherwise results arrive in completion order. Failed builds do not
// stop the run.
func Run(ctx context.Context, tasks []Task, workers int, build BuildFunc) []builder.Result {
	if len(tasks) == 0 {
		return nil
	}

	if workers <= 1 {
		results := make([]builder.Result, 0, len(tasks))
		for _, task := range tasks {
			results = append(results, build(ctx, task))
		}
		return results
	}

	if workers > len(tasks) {
		workers = len(tasks)
	}

	taskChan := make(chan Task, len(tasks))
	resultChan := make(chan builder.Result, len(tasks))

	for _, task := range tasks {
		taskChan <- task
	}
	close(taskChan)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for task := range taskChan {
				logging.Debug("runner", "worker %d building %s :: %s", workerID, task.Board, task.Case.Name)
				resultChan <- build(ctx, task)
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]builder.Result, 0, len(tasks))
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}
