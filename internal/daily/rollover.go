// Package daily fires a callback when the planner's day rolls over.
package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Rollover runs fn on a standard five-field cron schedule.
type Rollover struct {
	cron     *cron.Cron
	schedule cron.Schedule
	logger   *zap.Logger
}

func New(spec string, logger *zap.Logger, fn func(time.Time)) (*Rollover, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse rollover schedule %q: %w", spec, err)
	}
	c := cron.New(cron.WithLocation(time.Local))
	c.Schedule(schedule, cron.FuncJob(func() {
		now := time.Now()
		logger.Info("day_rollover", zap.Time("at", now))
		fn(now)
	}))
	return &Rollover{cron: c, schedule: schedule, logger: logger}, nil
}

// Next reports when the rollover fires after t.
func (r *Rollover) Next(t time.Time) time.Time {
	return r.schedule.Next(t)
}

// Run blocks until ctx is done, then waits for a running callback to return.
func (r *Rollover) Run(ctx context.Context) error {
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
	return nil
}
