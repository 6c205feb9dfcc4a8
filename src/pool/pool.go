package pool

import (
	"context"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// Pool runs work over a task list with bounded concurrency. Run blocks
// until every dispatched task finished or the context was cancelled, and
// returns the context error on a cancelled or timed-out run.
type Pool interface {
	Run(ctx context.Context, tasks []entity.URLTask) error
}
