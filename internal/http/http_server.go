package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/services/run"
	"gitlab.com/railsync.net/internal/core/services/syncer"
	"gitlab.com/railsync.net/internal/handlers"
	"gitlab.com/railsync.net/internal/handlers/runs"
	"gitlab.com/railsync.net/internal/handlers/specs"
)

type ServiceProvider struct {
	synchronizer syncer.ISynchronizer
	runService   run.IRunService

	// tokens is nil when the ingest API is left open
	tokens primary.TokenService
}

func NewServiceProvider(
	synchronizer syncer.ISynchronizer,
	runService run.IRunService,
	tokens primary.TokenService,
) *ServiceProvider {
	return &ServiceProvider{
		synchronizer: synchronizer,
		runService:   runService,
		tokens:       tokens,
	}
}

type Server struct {
	router          *mux.Router
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
	srv             *http.Server
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.synchronizer == nil || s.ServiceProvider.runService == nil {
		return errors.New("http server needs a synchronizer and a run service")
	}

	r := mux.NewRouter()
	handlers.RegisterHealth(r, s.ServiceName)

	api := r.PathPrefix("/api").Subrouter()
	if s.ServiceProvider.tokens != nil {
		api.Use(handlers.New(s.ServiceProvider.tokens, s.logger).JWTMiddleware)
	} else {
		s.logger.Warn("Ingest API is not protected, set SERVER_JWT_SECRET to require tokens")
	}

	specs.NewSpecHandler(s.ServiceProvider.synchronizer, s.logger).RegisterRoutes(api)
	runs.NewRunHandler(s.ServiceProvider.runService, s.logger).RegisterRoutes(api)

	s.router = r
	return nil
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background. Listen errors are sent on the returned channel.
func (s *Server) Start(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)

	// Set up server
	s.srv = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// syncing a spec waits on TestRail and screenshot uploads
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
