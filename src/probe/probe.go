package probe

import (
	"context"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// Prober performs exactly one HTTP attempt against a URL. Retrying is the
// caller's job.
type Prober interface {
	Probe(ctx context.Context, rawURL string, method string) entity.ProbeAttempt
}
