package enum

// VerdictKind is the final classification of one checked URL.
type VerdictKind int

const (
	VerdictLive VerdictKind = iota
	VerdictDead
	VerdictRedirected
	VerdictBlocked
	VerdictAmbiguous
	VerdictCancelled
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictLive:
		return "live"
	case VerdictDead:
		return "dead"
	case VerdictRedirected:
		return "redirected"
	case VerdictBlocked:
		return "blocked"
	case VerdictAmbiguous:
		return "ambiguous"
	case VerdictCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Active reports whether the URL should be listed as usable.
func (k VerdictKind) Active() bool {
	return k == VerdictLive || k == VerdictRedirected
}

// ErrorKind classifies a probe attempt that produced no usable response.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorTimeout
	ErrorConnectionRefused
	ErrorDNSFailure
	ErrorTLS
	ErrorTooManyRedirects
	ErrorCancelled
	ErrorOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return ""
	case ErrorTimeout:
		return "timeout"
	case ErrorConnectionRefused:
		return "connection refused"
	case ErrorDNSFailure:
		return "dns failure"
	case ErrorTLS:
		return "tls error"
	case ErrorTooManyRedirects:
		return "too many redirects"
	case ErrorCancelled:
		return "cancelled"
	}
	return "error"
}

// Retryable reports whether another attempt may succeed.
// Protocol-level failures (redirect loops, malformed requests) never do.
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrorTimeout, ErrorConnectionRefused, ErrorDNSFailure, ErrorTLS:
		return true
	}
	return false
}

// Confidence records how a verdict was reached, so reporting can tell
// a header-only guess from a body-inspected classification.
type Confidence int

const (
	ConfidenceHeuristic Confidence = iota
	ConfidenceHeader
	ConfidenceBody
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHeader:
		return "header"
	case ConfidenceBody:
		return "body"
	}
	return "heuristic"
}

// Refusal is the reason the downloader declined to write a file.
type Refusal int

const (
	RefusalNone Refusal = iota
	RefusalNotVerifiedJS
	RefusalTooLarge
	RefusalWriteError
)

func (r Refusal) String() string {
	switch r {
	case RefusalNotVerifiedJS:
		return "not verified js"
	case RefusalTooLarge:
		return "too large"
	case RefusalWriteError:
		return "write error"
	}
	return ""
}
