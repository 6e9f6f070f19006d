package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryService periodically closes job posts past their expiry date.
type ExpiryService struct {
	Jobs *JobService
	Log  *zap.Logger

	cron    *cron.Cron
	now     func() time.Time
	startup sync.WaitGroup
}

func NewExpiryService(jobs *JobService, log *zap.Logger) *ExpiryService {
	return &ExpiryService{
		Jobs: jobs,
		Log:  log.Named("expiry"),
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		now:  time.Now,
	}
}

// Start runs one sweep immediately and then on every tick of schedule
// (standard cron syntax or descriptors such as "@hourly").
func (s *ExpiryService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return fmt.Errorf("schedule expiry sweep %q: %w", schedule, err)
	}
	s.startup.Add(1)
	go func() {
		defer s.startup.Done()
		s.Sweep(context.Background())
	}()
	s.cron.Start()
	s.Log.Info("expiry watcher started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for the startup sweep and any scheduled sweep to finish.
func (s *ExpiryService) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		<-s.cron.Stop().Done()
		s.startup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Sweep closes expired posts once.
func (s *ExpiryService) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	n, err := s.Jobs.ExpirePosts(ctx, s.now())
	if err != nil {
		s.Log.Error("expiry sweep failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.Log.Info("closed expired job posts", zap.Int64("count", n))
	}
	return n
}
