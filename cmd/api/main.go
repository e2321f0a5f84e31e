package main

import (
	"context"
	"errors"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/infrastructure/database/postgres"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/api"
	"github.com/vfg2006/competitor-intel-api/internal/config"
	"github.com/vfg2006/competitor-intel-api/internal/scheduler"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/authenticating"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Store)
	gateway := store.NewGateway(pgConn)

	metricsReader := insighting.NewService(gateway)
	targetingReader := targeting.NewService(gateway)
	authenticator := authenticating.NewService(cfg)

	statusMonitor := scheduler.NewStatusMonitorService(metricsReader, targetingReader, cfg)
	if err := statusMonitor.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o monitor de status do banco")
	} else {
		logrus.Info("Monitor de status do banco iniciado com sucesso")
	}

	server, err := api.New(cfg, metricsReader, targetingReader, authenticator, statusMonitor)
	if err != nil {
		logrus.Fatal(err)
	}

	if pgConn != nil {
		server.OnShutdown(pgConn.Close)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria o handle do banco. Sem URL ou chave de acesso retorna nil e a
// aplicação segue em modo degradado; falha no ping apenas gera aviso.
func pgconn(ctx context.Context, storeConfig config.Store) *postgres.Connection {
	conn, err := postgres.NewConnection(storeConfig)
	if errors.Is(err, postgres.ErrNotConfigured) {
		logrus.Warn("STORE_URL ou STORE_ACCESS_KEY ausentes: leituras servidas pelo fallback e gravações desabilitadas")
		return nil
	}
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar conexão com o PostgreSQL")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.Ping(pingCtx); err != nil {
		logrus.WithError(err).Warn("Não foi possível testar a conexão com o PostgreSQL, leituras podem cair no fallback")
		return conn
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
