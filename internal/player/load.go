package player

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoadConfig describes a load run.
type LoadConfig struct {
	Users  int
	Rounds int
	// InvalidRate is the share of answers outside the options, to exercise the re-prompt path.
	InvalidRate float64
	// Pause between rounds of one user.
	Pause time.Duration
	Seed  int64
}

// Report summarises a load run.
type Report struct {
	Rounds   int64
	Failures int64
	Duration time.Duration
}

func (r Report) String() string {
	rps := 0.0
	if r.Duration > 0 {
		rps = float64(r.Rounds) / r.Duration.Seconds()
	}
	return fmt.Sprintf("rounds=%d failures=%d duration=%s rounds/s=%.1f", r.Rounds, r.Failures, r.Duration.Round(time.Millisecond), rps)
}

// Load runs cfg.Users concurrent players for cfg.Rounds rounds each.
// Failed rounds are counted, only a cancelled context stops the run early.
func Load(ctx context.Context, inv Invoker, cfg LoadConfig) (Report, error) {
	if cfg.Users <= 0 || cfg.Rounds <= 0 {
		return Report{}, fmt.Errorf("users and rounds must be positive")
	}

	var rounds, failures atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for u := 0; u < cfg.Users; u++ {
		rnd := rand.New(rand.NewSource(cfg.Seed + int64(u)))
		sender := fmt.Sprintf("load-%d", u)

		g.Go(func() error {
			for i := 0; i < cfg.Rounds; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := Play(ctx, inv, sender, randomAnswers(rnd, cfg.InvalidRate)); err != nil {
					failures.Add(1)
				}
				rounds.Add(1)

				if cfg.Pause > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(cfg.Pause):
					}
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return Report{
		Rounds:   rounds.Load(),
		Failures: failures.Load(),
		Duration: time.Since(start),
	}, err
}

func randomAnswers(rnd *rand.Rand, invalidRate float64) []string {
	answers := make([]string, len(steps))
	for i := range answers {
		if rnd.Float64() < invalidRate {
			answers[i] = "4"
			continue
		}
		answers[i] = fmt.Sprint(rnd.Intn(3) + 1)
	}
	return answers
}
