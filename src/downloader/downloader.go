package downloader

import (
	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// Downloader persists verified JavaScript bodies. It must never write for a
// verdict it does not trust and must never fail the overall run.
type Downloader interface {
	Download(task entity.URLTask, verdict entity.Verdict, body []byte) entity.DownloadOutcome
}
