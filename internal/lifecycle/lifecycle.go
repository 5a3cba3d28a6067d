// Package lifecycle runs the application's long-running components and stops
// them in reverse order on a termination signal, a failure, or completion.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a component that can be started and stopped.
type Service interface {
	// Start runs the service and blocks until it finishes or is stopped.
	// Returning nil means the service completed normally.
	Start() error
	// Stop asks a running service to finish. It must be safe to call after
	// Start has returned.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
// A nil StopFn is a no-op.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
	signals  []os.Signal
	drain    time.Duration
}

// DefaultDrainTimeout bounds how long Run waits for services to return after Stop.
const DefaultDrainTimeout = 5 * time.Second

// ErrDrainTimeout is returned by Run when a stopped service did not return in time.
var ErrDrainTimeout = errors.New("lifecycle: services did not return after stop")

type namedService struct {
	name    string
	service Service
}

// New creates a Lifecycle that reacts to SIGINT and SIGTERM.
//
// Precondition: logger must be non-nil.
func New(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		drain:   DefaultDrainTimeout,
	}
}

// SetDrainTimeout changes how long Run waits for services after stopping them.
//
// Precondition: d > 0.
func (l *Lifecycle) SetDrainTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.drain = d
}

// Add registers a named service. Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until every service has returned, a
// service fails, a termination signal arrives, or ctx is cancelled. Services
// are then stopped in reverse order.
//
// Postcondition: Stop has been called on every service and every Start has
// returned, unless the drain timeout expired first. Returns the first service
// error, ErrDrainTimeout, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	began := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	drain := l.drain
	l.mu.Unlock()

	failures := make(chan error, len(services))
	var running sync.WaitGroup
	for _, ns := range services {
		running.Add(1)
		go func() {
			defer running.Done()
			if err := l.launch(ns); err != nil {
				failures <- err
			}
		}()
	}
	allDone := make(chan struct{})
	go func() {
		running.Wait()
		close(allDone)
	}()
	l.logger.Info("services launched", zap.Int("count", len(services)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	reason, runErr := "", error(nil)
	select {
	case sig := <-sigCh:
		reason = "signal " + sig.String()
	case runErr = <-failures:
		reason = "service failure"
	case <-allDone:
		reason = "all services finished"
	case <-ctx.Done():
		reason = "context cancelled"
	}
	l.logger.Info("shutting down", zap.String("reason", reason), zap.Error(runErr))

	shutdown(l.logger, services)

	select {
	case <-allDone:
	case <-time.After(drain):
		l.logger.Error("services still running after stop", zap.Duration("drain", drain))
		if runErr == nil {
			runErr = ErrDrainTimeout
		}
	}

	if runErr == nil {
		select {
		case runErr = <-failures:
		default:
		}
	}
	l.logger.Info("lifecycle ended", zap.Duration("uptime", time.Since(began)))
	return runErr
}

// launch runs one service to completion and wraps its error with the service name.
func (l *Lifecycle) launch(ns namedService) error {
	log := l.logger.With(zap.String("service", ns.name))
	log.Info("service starting")
	began := time.Now()
	if err := ns.service.Start(); err != nil {
		log.Error("service failed", zap.Error(err), zap.Duration("ran", time.Since(began)))
		return fmt.Errorf("service %s: %w", ns.name, err)
	}
	log.Info("service returned", zap.Duration("ran", time.Since(began)))
	return nil
}

// shutdown stops services last-added first.
func shutdown(logger *zap.Logger, services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		began := time.Now()
		ns.service.Stop()
		logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("took", time.Since(began)),
		)
	}
}
