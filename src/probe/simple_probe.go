package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

var errRedirectLimit = errors.New("redirect hop limit reached")

type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	SniffBytes   int   // body prefix retained for content sniffing
	BodyCap      int64 // max bytes read from a GET body
	KeepBody     bool  // retain the capped body for download runs
	UserAgent    string
}

// SimpleProber issues single HEAD/GET attempts over a shared http.Client.
// A 4xx/5xx response is a successful transport, not an error; ErrorKind is
// set only when no response arrived at all.
type SimpleProber struct {
	opts   Options
	client *http.Client
}

func NewSimpleProber(opts Options) Prober {
	return &SimpleProber{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= opts.MaxRedirects {
					return errRedirectLimit
				}
				return nil
			},
		},
	}
}

func (p *SimpleProber) Probe(ctx context.Context, rawURL string, method string) entity.ProbeAttempt {
	attempt := entity.ProbeAttempt{Method: method, FinalURL: rawURL}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		attempt.ErrorKind = enum.ErrorOther
		attempt.Err = err
		return attempt
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := p.client.Do(req)
	attempt.Elapsed = time.Since(start)
	if err != nil {
		attempt.ErrorKind = classifyError(err)
		attempt.Err = err
		return attempt
	}
	defer resp.Body.Close()

	attempt.StatusCode = resp.StatusCode
	attempt.Header = resp.Header
	if resp.Request != nil && resp.Request.URL != nil {
		attempt.FinalURL = resp.Request.URL.String()
	}
	if resp.ContentLength >= 0 {
		attempt.Size = resp.ContentLength
	}

	if method != http.MethodGet {
		return attempt
	}

	limit := int64(p.opts.SniffBytes)
	if p.opts.KeepBody && p.opts.BodyCap > limit {
		limit = p.opts.BodyCap
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	attempt.Elapsed = time.Since(start)
	if err != nil {
		attempt.ErrorKind = classifyError(err)
		attempt.Err = err
		return attempt
	}
	if attempt.Size < int64(len(body)) {
		attempt.Size = int64(len(body))
	}
	if p.opts.KeepBody {
		attempt.Body = body
	}
	n := p.opts.SniffBytes
	if n > len(body) {
		n = len(body)
	}
	attempt.BodyPrefix = body[:n]
	return attempt
}

func classifyError(err error) enum.ErrorKind {
	if errors.Is(err, errRedirectLimit) {
		return enum.ErrorTooManyRedirects
	}
	if errors.Is(err, context.Canceled) {
		return enum.ErrorCancelled
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return enum.ErrorTimeout
		}
		return enum.ErrorDNSFailure
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return enum.ErrorConnectionRefused
	}
	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &recErr) || errors.As(err, &hostErr) {
		return enum.ErrorTLS
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return enum.ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return enum.ErrorTimeout
	}
	return enum.ErrorOther
}
