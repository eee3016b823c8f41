package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"shorts_pipeline/internal/config"
	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/service"
)

// BatchRunner runs one batch of pipeline iterations.
type BatchRunner interface {
	RunBatch(ctx context.Context, platform string, count int, isAffiliate bool) (*domain.BatchResult, error)
}

// Sourcer refreshes the opportunity store.
type Sourcer interface {
	Run(ctx context.Context) ([]service.SourceReport, error)
}

type Config struct {
	Registrations []config.Registration
	Timezone      string
	BatchTimeout  time.Duration
	SourcingCron  string
}

type entry struct {
	reg      config.Registration
	schedule cron.Schedule
}

// Scheduler fires one batch per (platform, variant) registration on its cron
// schedule and optionally runs sourcing on its own schedule.
type Scheduler struct {
	runner       BatchRunner
	sourcer      Sourcer
	entries      []entry
	sourcing     cron.Schedule
	sourcingCron string
	location     *time.Location
	batchTimeout time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	running bool
}

// New parses every registration up front so a bad cron expression fails at
// startup rather than at fire time. sourcer may be nil.
func New(runner BatchRunner, sourcer Sourcer, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone: %w", err)
		}
	}

	s := &Scheduler{
		runner:       runner,
		sourcer:      sourcer,
		location:     loc,
		batchTimeout: cfg.BatchTimeout,
		logger:       logger.With("component", "scheduler"),
	}

	for _, reg := range cfg.Registrations {
		schedule, err := cron.ParseStandard(reg.Cron)
		if err != nil {
			return nil, fmt.Errorf("parse cron for %s/%s: %w", reg.Platform, reg.Variant, err)
		}
		s.entries = append(s.entries, entry{reg: reg, schedule: schedule})
	}

	if sourcer != nil && cfg.SourcingCron != "" {
		schedule, err := cron.ParseStandard(cfg.SourcingCron)
		if err != nil {
			return nil, fmt.Errorf("parse sourcing cron: %w", err)
		}
		s.sourcing = schedule
		s.sourcingCron = cfg.SourcingCron
	}

	return s, nil
}

// Registrations returns the resolved cron entries.
func (s *Scheduler) Registrations() []config.Registration {
	regs := make([]config.Registration, len(s.entries))
	for i, e := range s.entries {
		regs[i] = e.reg
	}
	return regs
}

// Start runs the cron loop until ctx is cancelled and waits for in-flight
// jobs to finish before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.mu.Unlock()

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	for _, e := range s.entries {
		reg := e.reg
		c.Schedule(e.schedule, cron.FuncJob(func() {
			s.fire(ctx, reg)
		}))
	}
	if s.sourcing != nil {
		c.Schedule(s.sourcing, cron.FuncJob(func() {
			s.runSourcing(ctx)
		}))
	}

	c.Start()
	s.logger.Info("scheduler started",
		"registrations", len(s.entries),
		"sourcing", s.sourcingCron,
		"timezone", s.location.String(),
	)

	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) fire(ctx context.Context, reg config.Registration) {
	s.logger.Info("scheduled batch firing",
		"platform", reg.Platform,
		"variant", reg.Variant,
		"count", reg.Count,
	)

	if _, err := s.Trigger(ctx, reg.Platform, reg.Count, reg.IsAffiliate()); err != nil {
		s.logger.Error("scheduled batch failed",
			"platform", reg.Platform,
			"variant", reg.Variant,
			"error", err,
		)
	}
}

// Trigger runs one batch synchronously with the configured batch timeout.
func (s *Scheduler) Trigger(ctx context.Context, platform string, count int, isAffiliate bool) (*domain.BatchResult, error) {
	if s.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.batchTimeout)
		defer cancel()
	}
	return s.runner.RunBatch(ctx, platform, count, isAffiliate)
}

func (s *Scheduler) runSourcing(ctx context.Context) {
	if _, err := s.sourcer.Run(ctx); err != nil {
		s.logger.Error("scheduled sourcing failed", "error", err)
	}
}

// Description is the human-readable view of one registration.
type Description struct {
	Platform  string    `json:"platform"`
	Variant   string    `json:"variant"`
	Cron      string    `json:"cron"`
	Count     int       `json:"count"`
	Times     []string  `json:"times"`
	Frequency string    `json:"frequency"`
	NextRun   time.Time `json:"next_run"`
}

// Describe lists every registration with its firing times over one day and
// the next run after now.
func (s *Scheduler) Describe(now time.Time) []Description {
	now = now.In(s.location)
	out := make([]Description, 0, len(s.entries))
	for _, e := range s.entries {
		times := dailyTimes(e.schedule, now)
		out = append(out, Description{
			Platform:  e.reg.Platform,
			Variant:   e.reg.Variant,
			Cron:      e.reg.Cron,
			Count:     e.reg.Count,
			Times:     times,
			Frequency: fmt.Sprintf("%dx daily", len(times)),
			NextRun:   e.schedule.Next(now),
		})
	}
	return out
}

// dailyTimes lists the HH:MM firings of schedule during the day containing now.
func dailyTimes(schedule cron.Schedule, now time.Time) []string {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var times []string
	for t := schedule.Next(dayStart.Add(-time.Second)); t.Before(dayEnd); t = schedule.Next(t) {
		times = append(times, t.Format("15:04"))
	}
	return times
}
