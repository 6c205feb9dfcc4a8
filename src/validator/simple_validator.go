package validator

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Iborrareddy/js-url-checker/src/backoff"
	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
	"github.com/Iborrareddy/js-url-checker/src/probe"
	"github.com/Iborrareddy/js-url-checker/src/verify"
)

// Sleeper pauses between retries. Injected so tests can drive the state
// machine without real time passing.
type Sleeper func(ctx context.Context, d time.Duration) error

func DefaultSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Options struct {
	MaxRetries int
	MaxJitter  time.Duration
	WantBody   bool // download requested: live HEAD verdicts still need a GET
}

// SimpleValidator runs the per-URL protocol: HEAD first, GET when HEAD is
// inconclusive or a body is required, then verification. Transport errors
// restart the whole sequence after a backoff delay; protocol errors and
// verified responses are terminal.
type SimpleValidator struct {
	prober   probe.Prober
	verifier verify.Verifier
	policy   backoff.Policy
	opts     Options
	sleep    Sleeper
	logger   *log.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimpleValidator(prober probe.Prober, verifier verify.Verifier, policy backoff.Policy, opts Options, sleep Sleeper, logger *log.Logger) Validator {
	if sleep == nil {
		sleep = DefaultSleeper
	}
	return &SimpleValidator{
		prober:   prober,
		verifier: verifier,
		policy:   policy,
		opts:     opts,
		sleep:    sleep,
		logger:   logger,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (v *SimpleValidator) Validate(ctx context.Context, task entity.URLTask) (entity.Verdict, []byte) {
	start := time.Now()
	attempts := 0

	for {
		attempts++

		verdict, body, failure := v.runOnce(ctx, task.Raw)
		if failure == enum.ErrorNone {
			verdict.Attempts = attempts
			verdict.Elapsed = time.Since(start)
			return verdict, body
		}

		if failure == enum.ErrorCancelled || ctx.Err() != nil {
			return v.terminal(enum.VerdictCancelled, "run cancelled", attempts, start), nil
		}
		if !failure.Retryable() || attempts > v.opts.MaxRetries {
			return v.terminal(enum.VerdictDead, failure.String(), attempts, start), nil
		}

		delay := v.jitteredDelay(attempts)
		v.logger.WithField("url", task.Raw).WithField("attempt", attempts).
			WithField("delay", delay).Debug("transient failure, backing off")
		if err := v.sleep(ctx, delay); err != nil {
			return v.terminal(enum.VerdictCancelled, "run cancelled", attempts, start), nil
		}
	}
}

// runOnce is one full pass of the probe sequence. The returned ErrorKind is
// ErrorNone when the verdict is terminal, otherwise the transient failure
// that should be retried.
func (v *SimpleValidator) runOnce(ctx context.Context, rawURL string) (entity.Verdict, []byte, enum.ErrorKind) {
	head := v.prober.Probe(ctx, rawURL, http.MethodHead)
	if head.Failed() {
		if verdict, terminal := v.protocolVerdict(head, rawURL); terminal {
			return verdict, nil, enum.ErrorNone
		}
		return entity.Verdict{}, nil, head.ErrorKind
	}

	res := v.verifier.Verify(head)
	final := head
	if res.NeedsBody || (v.opts.WantBody && res.Kind == enum.VerdictLive) {
		get := v.prober.Probe(ctx, rawURL, http.MethodGet)
		if get.Failed() {
			if verdict, terminal := v.protocolVerdict(get, rawURL); terminal {
				return verdict, nil, enum.ErrorNone
			}
			return entity.Verdict{}, nil, get.ErrorKind
		}
		final = get
		res = v.verifier.Verify(get)
	}

	return buildVerdict(res, final, rawURL), final.Body, enum.ErrorNone
}

// protocolVerdict turns non-retryable probe failures into terminal verdicts.
func (v *SimpleValidator) protocolVerdict(a entity.ProbeAttempt, rawURL string) (entity.Verdict, bool) {
	switch a.ErrorKind {
	case enum.ErrorTooManyRedirects:
		return entity.Verdict{
			Kind:     enum.VerdictDead,
			FinalURL: rawURL,
			Detail:   a.ErrorKind.String(),
		}, true
	case enum.ErrorOther:
		return entity.Verdict{
			Kind:     enum.VerdictAmbiguous,
			FinalURL: rawURL,
			Detail:   a.Err.Error(),
		}, true
	}
	return entity.Verdict{}, false
}

func (v *SimpleValidator) terminal(kind enum.VerdictKind, detail string, attempts int, start time.Time) entity.Verdict {
	return entity.Verdict{
		Kind:     kind,
		Detail:   detail,
		Attempts: attempts,
		Elapsed:  time.Since(start),
	}
}

func (v *SimpleValidator) jitteredDelay(attempt int) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.policy.Jittered(attempt, v.opts.MaxJitter, v.rnd)
}

func buildVerdict(res verify.Result, final entity.ProbeAttempt, rawURL string) entity.Verdict {
	verdict := entity.Verdict{
		Kind:        res.Kind,
		StatusCode:  final.StatusCode,
		ContentType: final.ContentType(),
		Size:        final.Size,
		FinalURL:    final.FinalURL,
		Confidence:  res.Confidence,
		Detail:      res.Detail,
	}
	// A live resource reached through redirects counts as redirected, with
	// the resolved target kept for the report.
	if verdict.Kind == enum.VerdictLive && final.FinalURL != "" && final.FinalURL != rawURL {
		verdict.Kind = enum.VerdictRedirected
		verdict.Detail = final.FinalURL
	}
	return verdict
}
