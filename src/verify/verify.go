package verify

import (
	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

// Result is the verifier's reading of one probe attempt. NeedsBody marks a
// HEAD response that cannot be classified without fetching the body.
type Result struct {
	Kind       enum.VerdictKind
	Confidence enum.Confidence
	Detail     string
	NeedsBody  bool
}

// Verifier decides whether a response is genuine JavaScript, a masked
// error page, or indeterminate. Must be deterministic for a given attempt.
type Verifier interface {
	Verify(attempt entity.ProbeAttempt) Result
}
