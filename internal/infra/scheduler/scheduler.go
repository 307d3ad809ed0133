package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper drops expired pending steps from the session cache.
type Sweeper interface {
	Sweep() int
}

// SessionSweeper runs Sweep on a cron schedule.
type SessionSweeper struct {
	cronEngine *cron.Cron
	sessions   Sweeper
	logger     *logrus.Entry
	spec       string
}

func NewSessionSweeper(sessions Sweeper, logger *logrus.Entry, spec string) *SessionSweeper {
	return &SessionSweeper{
		cronEngine: cron.New(),
		sessions:   sessions,
		logger:     logger,
		spec:       spec,
	}
}

// Start registers the sweep job and starts the cron engine. An invalid spec
// is returned as an error and nothing is started.
func (s *SessionSweeper) Start() error {
	s.logger.WithField("spec", s.spec).Info("Starting session sweeper")

	if _, err := s.cronEngine.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("could not add session sweep job %q: %w", s.spec, err)
	}

	s.cronEngine.Start()
	return nil
}

func (s *SessionSweeper) run() {
	if n := s.sessions.Sweep(); n > 0 {
		s.logger.WithField("expired", n).Info("Expired pending session steps")
	} else {
		s.logger.Debug("Session sweep found nothing to expire")
	}
}

// Stop waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	s.logger.Info("Stopping session sweeper...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Session sweeper stopped")
}
