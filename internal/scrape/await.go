package scrape

import (
	"context"
	"time"
)

const (
	// PollInterval is the gap between status polls.
	PollInterval = 5 * time.Second
	// MaxPolls bounds the total wait at 5 minutes.
	MaxPolls = 60
)

// Awaiter runs the bounded poll loop for a started import job.
type Awaiter struct {
	Client   Client
	Interval time.Duration
	MaxPolls int

	// OnTick, if set, is called after each non-terminal poll with the
	// elapsed seconds, for progress events.
	OnTick func(elapsedSeconds int)
}

// NewAwaiter returns an Awaiter with production polling bounds.
func NewAwaiter(client Client) *Awaiter {
	return &Awaiter{Client: client, Interval: PollInterval, MaxPolls: MaxPolls}
}

// Await polls the job until it reaches a terminal status or the bound is
// exhausted. Exhaustion yields a synthesized failure rather than an error;
// only transport problems and context cancellation return err.
func (a *Awaiter) Await(ctx context.Context, jobID string) (JobStatus, error) {
	for i := 0; i < a.MaxPolls; i++ {
		status, err := a.Client.PollImport(ctx, jobID)
		if err != nil {
			return JobStatus{}, err
		}
		if status.Status == StatusCompleted || status.Status == StatusFailed {
			return status, nil
		}

		if a.OnTick != nil {
			a.OnTick(int((time.Duration(i+1) * a.Interval).Seconds()))
		}

		select {
		case <-ctx.Done():
			return JobStatus{}, ctx.Err()
		case <-time.After(a.Interval):
		}
	}

	return JobStatus{Status: StatusFailed, Error: "Scraping timed out"}, nil
}
