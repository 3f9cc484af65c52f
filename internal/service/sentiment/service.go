package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"

	analysis "github.com/zhouzirui/campushelp/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/campushelp/backend/internal/metrics"
)

// Probe classifies a text span. Implementations never return errors;
// every failure is reported through the Outcome.
type Probe interface {
	Classify(ctx context.Context, text string) analysis.Outcome
	Configured() bool
}

// Backend is a concrete classification service. Analyze returns the raw
// label reported by the service; the probe validates it.
type Backend interface {
	Name() string
	Analyze(ctx context.Context, text string) (string, error)
}

// Options tune a Service.
type Options struct {
	Timeout         time.Duration
	BreakerEnabled  bool
	BreakerFailures int
	BreakerCooldown time.Duration
}

// Service is the Probe implementation used by the bot. A Service without
// a backend reports every call as unavailable.
type Service struct {
	backend Backend
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewService wraps backend. backend may be nil.
func NewService(backend Backend, opts Options) *Service {
	svc := &Service{backend: backend, timeout: opts.Timeout}
	if backend == nil || !opts.BreakerEnabled {
		return svc
	}

	failures := opts.BreakerFailures
	if failures < 1 {
		failures = 1
	}
	component := "sentiment_" + backend.Name()
	svc.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        component,
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[sentiment] circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(component).Set(float64(to))
		},
	})
	return svc
}

// Configured reports whether a backend is attached.
func (s *Service) Configured() bool {
	return s != nil && s.backend != nil
}

// Classify performs a single classification attempt.
func (s *Service) Classify(ctx context.Context, text string) analysis.Outcome {
	if !s.Configured() {
		return analysis.Unavailable()
	}

	name := s.backend.Name()
	outcome := s.classify(ctx, text)
	metrics.SentimentOutcomes.WithLabelValues(name, string(outcome.Status)).Inc()
	if outcome.Status == analysis.StatusFailed {
		log.Printf("[sentiment] %s classification failed: %s", name, outcome.Reason)
	}
	return outcome
}

func (s *Service) classify(ctx context.Context, text string) analysis.Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.call(ctx, text)
	metrics.SentimentDuration.WithLabelValues(s.backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return analysis.Failed("timeout")
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return analysis.Failed("circuit open")
		default:
			return analysis.Failed(err.Error())
		}
	}

	label, ok := analysis.ParseLabel(raw)
	if !ok {
		return analysis.Failed(fmt.Sprintf("unexpected label %q", raw))
	}
	return analysis.OK(label)
}

func (s *Service) call(ctx context.Context, text string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()

	if s.breaker == nil {
		return s.backend.Analyze(ctx, text)
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.backend.Analyze(ctx, text)
	})
	if err != nil {
		return "", err
	}
	label, _ := out.(string)
	return label, nil
}
