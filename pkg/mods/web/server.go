package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Lantharos/flick/pkg/eval"
)

// server is an HTTP listener running as a service of the Evaler.
type server struct {
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
	err  error
}

func startServer(addr string, h http.Handler, readTimeout time.Duration) (*server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &server{
		srv:  &http.Server{Handler: h, ReadTimeout: readTimeout},
		ln:   ln,
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		err := s.srv.Serve(ln)
		if !errors.Is(err, http.ErrServerClosed) {
			s.err = err
		}
	}()
	return s, nil
}

// Addr returns the address the server listens on.
func (s *server) Addr() net.Addr { return s.ln.Addr() }

func (s *server) Done() <-chan struct{} { return s.done }

func (s *server) Err() error { return s.err }

func (s *server) Shutdown(ctx context.Context) error {
	logger.Printf("shutting down listener on %s", s.Addr())
	return s.srv.Shutdown(ctx)
}

// Addr returns the address the session's listener is bound to, or nil if
// the session is not listening.
func Addr(ev *eval.Evaler) net.Addr {
	st := getState(ev)
	if st == nil || st.server == nil {
		return nil
	}
	return st.server.Addr()
}
