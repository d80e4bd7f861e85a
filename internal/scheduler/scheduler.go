// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"crm-service/internal/domain/employee"

	"go.uber.org/zap"
)

// Scheduler runs the midnight attendance reset. At every local midnight it
// flips all Active employees to Inactive so stale check-ins do not leak
// into the next day; per-employee fields reset lazily on first touch.
type Scheduler struct {
	employees employee.Repository
	logger    *zap.Logger
	loc       *time.Location

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func New(employees employee.Repository, logger *zap.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		employees: employees,
		logger:    logger,
		loc:       loc,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the reset loop in its own goroutine.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Info("attendance scheduler started",
		zap.String("timezone", s.loc.String()),
		zap.Time("next_reset", s.nextMidnight(time.Now().In(s.loc))),
	)
}

// Stop terminates the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	for {
		now := time.Now().In(s.loc)
		timer := time.NewTimer(s.nextMidnight(now).Sub(now))

		select {
		case <-timer.C:
			s.reset()
		case <-s.stopCh:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) reset() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.employees.SetAllInactive(ctx)
	if err != nil {
		s.logger.Error("midnight attendance reset failed", zap.Error(err))
		return
	}
	s.logger.Info("midnight attendance reset complete", zap.Int64("employees_reset", n))
}

func (s *Scheduler) nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
}
