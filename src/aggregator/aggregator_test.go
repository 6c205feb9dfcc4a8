package aggregator

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

func makeTasks(n int) []entity.URLTask {
	tasks := make([]entity.URLTask, n)
	for i := range tasks {
		tasks[i] = entity.URLTask{Index: i, Raw: fmt.Sprintf("https://example.com/%d.js", i)}
	}
	return tasks
}

func TestAggregator(t *testing.T) {
	t.Run("reorders concurrent completions by input index", func(t *testing.T) {
		tasks := makeTasks(64)
		agg := New(tasks)

		var wg sync.WaitGroup
		for i := len(tasks) - 1; i >= 0; i-- {
			wg.Add(1)
			go func(task entity.URLTask) {
				defer wg.Done()
				agg.Add(entity.CheckedResult{Task: task, Verdict: entity.Verdict{Kind: enum.VerdictLive}})
			}(tasks[i])
		}
		wg.Wait()

		results := agg.Results()
		require.Len(t, results, 64)
		assert.Equal(t, 64, agg.Completed())
		for i, r := range results {
			assert.Equal(t, i, r.Task.Index)
			assert.Equal(t, enum.VerdictLive, r.Verdict.Kind)
		}
	})

	t.Run("partial completion backfills cancelled verdicts", func(t *testing.T) {
		tasks := makeTasks(5)
		agg := New(tasks)
		agg.Add(entity.CheckedResult{Task: tasks[1], Verdict: entity.Verdict{Kind: enum.VerdictDead}})
		agg.Add(entity.CheckedResult{Task: tasks[3], Verdict: entity.Verdict{Kind: enum.VerdictLive}})

		results := agg.Results()
		require.Len(t, results, 5)
		assert.Equal(t, 2, agg.Completed())
		assert.Equal(t, enum.VerdictCancelled, results[0].Verdict.Kind)
		assert.Equal(t, enum.VerdictDead, results[1].Verdict.Kind)
		assert.Equal(t, enum.VerdictCancelled, results[2].Verdict.Kind)
		assert.Equal(t, enum.VerdictLive, results[3].Verdict.Kind)
		assert.Equal(t, "https://example.com/4.js", results[4].Task.Raw)
	})

	t.Run("duplicate adds are ignored", func(t *testing.T) {
		tasks := makeTasks(1)
		agg := New(tasks)
		agg.Add(entity.CheckedResult{Task: tasks[0], Verdict: entity.Verdict{Kind: enum.VerdictLive}})
		agg.Add(entity.CheckedResult{Task: tasks[0], Verdict: entity.Verdict{Kind: enum.VerdictDead}})

		assert.Equal(t, 1, agg.Completed())
		assert.Equal(t, enum.VerdictLive, agg.Results()[0].Verdict.Kind)
	})
}
