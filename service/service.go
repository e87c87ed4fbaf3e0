package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/homeworkbot/homework"
	"github.com/homeworkbot/middleware"
	"github.com/homeworkbot/models"
	"github.com/homeworkbot/practicum"
	"go.uber.org/zap"
)

const failureMessage = "Сбой в работе программы: %v"

// MessageSender delivers text to the chat and reports whether it got there.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) bool
}

type Options struct {
	RetryPeriod time.Duration
	// ReportErrors sends a failure report to the chat once per distinct error.
	ReportErrors bool
	// StartTimestamp is the first from_date; zero means now.
	StartTimestamp int64
}

type Service struct {
	api       practicum.HomeworkAPI
	notifier  MessageSender
	opts      Options
	logger    *zap.SugaredLogger
	iteration middleware.Iteration
	wait      func(ctx context.Context, d time.Duration) error

	mu         sync.RWMutex
	state      models.Snapshot
	lastReport string
}

func NewService(api practicum.HomeworkAPI, notifier MessageSender, opts Options, logger *zap.SugaredLogger) *Service {
	if opts.StartTimestamp == 0 {
		opts.StartTimestamp = time.Now().Unix()
	}
	log := logger.Named("poller")

	s := &Service{
		api:      api,
		notifier: notifier,
		opts:     opts,
		logger:   log,
		wait:     sleep,
		state:    models.Snapshot{Timestamp: opts.StartTimestamp},
	}
	s.iteration = middleware.Chain(s.Poll,
		middleware.LoggingMiddleware(log),
		middleware.RecoveryMiddleware(log),
	)
	return s
}

// Run polls until ctx is cancelled. Every iteration, failed or not, is
// followed by the same RetryPeriod pause.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Infof("polling homework statuses every %v from %v", s.opts.RetryPeriod, s.Snapshot().Timestamp)

	for {
		if err := s.iteration(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.handleFailure(ctx, err)
		}

		if err := s.wait(ctx, s.opts.RetryPeriod); err != nil {
			s.logger.Info("poll loop stopped")
			return err
		}
	}
}

// Poll runs one iteration: fetch, advance the timestamp, validate, format and
// notify when the message changed.
func (s *Service) Poll(ctx context.Context) error {
	timestamp := s.beginPoll()

	answer, err := s.api.GetAPIAnswer(ctx, timestamp)
	if err != nil {
		return fmt.Errorf("get api answer: %w", err)
	}

	if date, ok := homework.CurrentDate(answer); ok {
		s.update(func(st *models.Snapshot) { st.Timestamp = date })
	}

	homeworks, err := homework.CheckResponse(answer)
	if err != nil {
		return fmt.Errorf("check response: %w", err)
	}

	status := homework.NoNewStatuses
	if len(homeworks) > 0 {
		status, err = homework.ParseStatus(homeworks[0])
		if err != nil {
			return fmt.Errorf("parse status: %w", err)
		}
	}

	s.update(func(st *models.Snapshot) {
		st.LastStatus = status
		st.LastError = ""
	})
	s.lastReport = ""

	s.deliver(ctx, status)
	return nil
}

func (s *Service) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) deliver(ctx context.Context, text string) {
	if text == s.Snapshot().LastMessage {
		s.logger.Debug("status unchanged")
		return
	}
	if s.notifier.SendMessage(ctx, text) {
		s.update(func(st *models.Snapshot) {
			st.LastMessage = text
			st.Sent++
		})
	}
}

func (s *Service) handleFailure(ctx context.Context, err error) {
	s.logger.Errorf("program failure: %v", err)
	s.update(func(st *models.Snapshot) {
		st.LastError = err.Error()
		st.Failures++
	})

	// A status computed earlier but never delivered gets another attempt.
	if status := s.Snapshot().LastStatus; status != "" {
		s.deliver(ctx, status)
	}

	if !s.opts.ReportErrors {
		return
	}
	report := fmt.Sprintf(failureMessage, err)
	if report == s.lastReport {
		return
	}
	if s.notifier.SendMessage(ctx, report) {
		s.lastReport = report
	}
}

func (s *Service) beginPoll() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Polls++
	s.state.LastPollAt = time.Now()
	return s.state.Timestamp
}

func (s *Service) update(fn func(st *models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
