package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Scheduler runs periodic background jobs. A job never overlaps with its own
// previous run.
type Scheduler struct {
	s      gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{s: s, ctx: ctx, cancel: cancel}, nil
}

// Every registers fn to run each interval. Errors are logged.
func (sc *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	_, err := sc.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			logger := log.With().Str("component", "jobs").Str("job", name).Logger()
			ctx := logger.WithContext(sc.ctx)
			if err := fn(ctx); err != nil {
				logger.Error().Err(err).Msg("job failed")
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}
	return nil
}

func (sc *Scheduler) Start() {
	sc.s.Start()
}

// Shutdown cancels running jobs and waits for them to return.
func (sc *Scheduler) Shutdown() error {
	sc.cancel()
	return sc.s.Shutdown()
}
