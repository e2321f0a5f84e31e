package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/internal/api/handler"
	"github.com/vfg2006/competitor-intel-api/internal/api/handler/router"
	"github.com/vfg2006/competitor-intel-api/internal/config"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/authenticating"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
	"github.com/vfg2006/competitor-intel-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	onShutdown []func() error
}

func New(
	config *config.Config,
	metricsReader insighting.MetricsReader,
	targetingReader targeting.IntelReader,
	authenticator authenticating.Authenticator,
	statusMonitor handler.StatusMonitor,
) (*Server, error) {
	statusServices := handler.StatusServices{
		MetricsReader:   metricsReader,
		TargetingReader: targetingReader,
		Monitor:         statusMonitor,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(metricsReader)...),
		router.WithRoutes(handler.Targeting(targetingReader)...),
		router.WithRoutes(handler.Status(statusServices)...),
	)
	rt.LogRoutes()

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}

	return srv, nil
}

// OnShutdown registra uma função de limpeza executada após o desligamento do HTTP
func (s *Server) OnShutdown(fn func() error) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Run atende até receber SIGINT/SIGTERM, o contexto ser cancelado ou o listener falhar
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		logrus.WithField("signal", sig.String()).Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-listenErr:
		logrus.WithError(err).Error("Servidor HTTP parou de aceitar conexões")
		s.runCleanup()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	s.runCleanup()
	return nil
}

func (s *Server) runCleanup() {
	for _, fn := range s.onShutdown {
		if err := fn(); err != nil {
			logrus.WithError(err).Warn("Erro ao executar limpeza no desligamento")
		}
	}
}
