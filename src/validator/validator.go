package validator

import (
	"context"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// Validator drives one URL through probing, verification and retries to a
// terminal verdict. The returned body is the capped GET payload when the
// run requested downloads, nil otherwise.
type Validator interface {
	Validate(ctx context.Context, task entity.URLTask) (entity.Verdict, []byte)
}
