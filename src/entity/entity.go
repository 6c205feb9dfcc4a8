package entity

import (
	"net/http"
	"time"

	"github.com/Iborrareddy/js-url-checker/src/enum"
)

// URLTask is one input URL, immutable once dispatched.
// Index preserves the position in the input file so the report can be
// rendered in input order regardless of completion order.
type URLTask struct {
	Index int
	Raw   string
}

// ProbeAttempt is the outcome of a single HTTP attempt.
type ProbeAttempt struct {
	Method     string
	StatusCode int // 0 when no response was received
	Header     http.Header
	FinalURL   string // resolved URL after redirects, equals the request URL otherwise
	Size       int64  // Content-Length when advertised, else bytes read
	BodyPrefix []byte // sniff window, GET only
	Body       []byte // capped full body, retained only for download runs
	Elapsed    time.Duration
	ErrorKind  enum.ErrorKind
	Err        error
}

// Failed reports whether the attempt produced no response at all.
func (a ProbeAttempt) Failed() bool {
	return a.Err != nil
}

func (a ProbeAttempt) ContentType() string {
	if a.Header == nil {
		return ""
	}
	return a.Header.Get("Content-Type")
}

// Verdict is the final classification for one URL.
type Verdict struct {
	Kind        enum.VerdictKind
	StatusCode  int
	ContentType string
	Size        int64
	Attempts    int
	Elapsed     time.Duration
	FinalURL    string
	Confidence  enum.Confidence
	Detail      string // human-readable reason, e.g. an error-page title
}

// DownloadOutcome records whether a verified body reached disk.
type DownloadOutcome struct {
	Path    string
	Size    int64
	Refusal enum.Refusal
	Detail  string
}

func (o DownloadOutcome) Written() bool {
	return o.Refusal == enum.RefusalNone && o.Path != ""
}

// CheckedResult is the unit handed to reporting: task, verdict and the
// optional download outcome when the run requested downloads.
type CheckedResult struct {
	Task     URLTask
	Verdict  Verdict
	Download *DownloadOutcome
}
