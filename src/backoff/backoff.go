package backoff

import (
	"math/rand"
	"time"
)

// Policy computes the pause before the next attempt: Base doubled per
// attempt, capped at Cap. Delay is pure so tests and callers can rely on
// repeated calls returning the same value.
type Policy struct {
	Base time.Duration
	Cap  time.Duration
}

// Delay returns the pause after attempt n (1-indexed). Non-decreasing in n
// until Cap is reached.
func (p Policy) Delay(attempt int) time.Duration {
	if p.Base <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}
	d := p.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.Cap > 0 && d >= p.Cap {
			return p.Cap
		}
	}
	if p.Cap > 0 && d > p.Cap {
		return p.Cap
	}
	return d
}

// Jittered adds a bounded random offset on top of Delay so a pool of
// workers retrying the same host does not wake up in lockstep.
func (p Policy) Jittered(attempt int, maxJitter time.Duration, rnd *rand.Rand) time.Duration {
	d := p.Delay(attempt)
	if maxJitter <= 0 || rnd == nil {
		return d
	}
	return d + time.Duration(rnd.Int63n(int64(maxJitter)))
}
