package eval

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Service is a long-lived resource started by a plugin that outlives the
// program run, such as an HTTP listener.
type Service interface {
	// Done is closed when the service stops on its own.
	Done() <-chan struct{}
	// Err returns the error that stopped the service, if any. It is only
	// meaningful after Done is closed.
	Err() error
	// Shutdown stops the service.
	Shutdown(ctx context.Context) error
}

const shutdownTimeout = 5 * time.Second

type serviceSet struct {
	mu       sync.Mutex
	services []Service
}

func (s *serviceSet) add(svc Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, svc)
}

func (s *serviceSet) list() []Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Service(nil), s.services...)
}

func (s *serviceSet) wait(ctx context.Context) error {
	services := s.list()
	if len(services) == 0 {
		return nil
	}
	allDone := make(chan struct{})
	go func() {
		for _, svc := range services {
			<-svc.Done()
		}
		close(allDone)
	}()

	select {
	case <-allDone:
		var errs []error
		for _, svc := range services {
			errs = append(errs, svc.Err())
		}
		return errors.Join(errs...)
	case <-ctx.Done():
		logger.Printf("shutting down %d services", len(services))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, svc := range services {
			errs = append(errs, svc.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	}
}
