package aggregator

import (
	"sync"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

// Aggregator collects per-URL results from concurrent validators. Workers
// append under a mutex; Results reorders by the original input index so the
// report is deterministic no matter the completion order.
type Aggregator struct {
	mu      sync.Mutex
	tasks   []entity.URLTask
	results []*entity.CheckedResult
	done    int
}

func New(tasks []entity.URLTask) *Aggregator {
	return &Aggregator{
		tasks:   tasks,
		results: make([]*entity.CheckedResult, len(tasks)),
	}
}

func (a *Aggregator) Add(res entity.CheckedResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := res.Task.Index
	if idx < 0 || idx >= len(a.results) || a.results[idx] != nil {
		return
	}
	r := res
	a.results[idx] = &r
	a.done++
}

// Completed is the number of tasks with a recorded verdict.
func (a *Aggregator) Completed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

// Results returns one record per input URL in input order. Tasks that never
// completed (cancelled run) get an explicit cancelled verdict so every input
// line is accounted for.
func (a *Aggregator) Results() []entity.CheckedResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]entity.CheckedResult, len(a.tasks))
	for i, task := range a.tasks {
		if r := a.results[i]; r != nil {
			out[i] = *r
			continue
		}
		out[i] = entity.CheckedResult{
			Task: task,
			Verdict: entity.Verdict{
				Kind:   enum.VerdictCancelled,
				Detail: "not started",
			},
		}
	}
	return out
}
