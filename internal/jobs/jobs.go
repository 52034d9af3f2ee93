package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderJobs é o que os jobs de lembrete precisam do caso de uso.
type ReminderJobs interface {
	GenerateBirthdayReminders(ctx context.Context) (int, error)
	DueDigest(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
}

func New(loc *time.Location, log *zap.Logger) *Scheduler {
	log = log.Named("jobs")

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(
				cron.Recover(cronLogger{log.Sugar()}),
				cron.SkipIfStillRunning(cronLogger{log.Sugar()}),
			),
		),
		log:     log,
		timeout: 5 * time.Minute,
	}
}

// Register agenda fn na expressão cron de 5 campos. Cada execução recebe um
// contexto com timeout próprio.
func (s *Scheduler) Register(name, expr string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.log.Debug("job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("register job %s (%q): %w", name, expr, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop espera os jobs em execução ou o ctx expirar.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("jobs still running at shutdown")
	}
}

func RegisterReminderJobs(s *Scheduler, uc ReminderJobs, birthdayExpr, digestExpr string) error {
	if err := s.Register("birthday_reminders", birthdayExpr, func(ctx context.Context) error {
		_, err := uc.GenerateBirthdayReminders(ctx)
		return err
	}); err != nil {
		return err
	}

	return s.Register("due_digest", digestExpr, func(ctx context.Context) error {
		_, err := uc.DueDigest(ctx)
		return err
	})
}

// cronLogger adapta o zap ao logger do cron.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
