package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

var (
	ErrEmptyJobName  = errors.New("jobs: job name is required")
	ErrEmptyCronExpr = errors.New("jobs: cron expression is required")
	ErrRegisterJob   = errors.New("jobs: failed to register job")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Task фоновая задача. ctx отменяется по таймауту задачи
type Task func(ctx context.Context) error

// Scheduler обертка над gocron для периодических задач сервиса
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    Logger

	mu   sync.Mutex
	jobs map[string]gocron.Job

	stopOnce sync.Once
	stopErr  error
}

// New создает планировщик. Паника внутри задачи логируется и не роняет сервис
func New(logger Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("Job %s (id=%s) panicked: %v", jobName, jobID, recoverData)
				}),
				gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
					logger.Error("Job %s (id=%s) failed: %v", jobName, jobID, err)
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("jobs: failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: sched,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// AddJob регистрирует задачу по cron-выражению (5 полей, без секунд)
func (s *Scheduler) AddJob(name, cronExpr string, timeout time.Duration, task Task) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return ErrEmptyCronExpr
	}

	run := func() error {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		started := time.Now()
		if err := task(ctx); err != nil {
			return err
		}
		s.logger.Info("Job %s completed in %s", name, time.Since(started).Round(time.Millisecond))
		return nil
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(run),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("%w: %s (%s): %v", ErrRegisterJob, name, cronExpr, err)
	}

	s.mu.Lock()
	s.jobs[name] = job
	s.mu.Unlock()

	s.logger.Info("Job %s registered (cron=%q, id=%s)", name, cronExpr, job.ID())
	return nil
}

// RunNow запускает зарегистрированную задачу вне расписания
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("jobs: unknown job %s", name)
	}
	return job.RunNow()
}

// Start запускает выполнение задач по расписанию
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler starting with %d jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Stop останавливает планировщик и ждет завершения текущих задач
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}
