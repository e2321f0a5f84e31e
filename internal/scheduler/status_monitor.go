package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/internal/config"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/metrics"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
)

const probeTimeout = 30 * time.Second

// StatusMonitorConfig representa a configuração da verificação periódica do banco
type StatusMonitorConfig struct {
	CronSchedule string
	Enabled      bool
}

// StoreStatus é o último resultado das verificações de conectividade.
// É o indicador de conectado/degradado exibido pelo dashboard, obtido separado dos dados.
type StoreStatus struct {
	Available bool                             `json:"available"`
	Metrics   domain.MetricsConnectionReport   `json:"metrics"`
	Targeting domain.TargetingConnectionReport `json:"targeting"`
	CheckedAt time.Time                        `json:"checked_at"`
}

// StatusMonitorService agenda os health checks das tabelas e guarda o último resultado
type StatusMonitorService struct {
	scheduler        *gocron.Scheduler
	config           StatusMonitorConfig
	metricsReader    insighting.MetricsReader
	targetingReader  targeting.IntelReader
	probeRunning     bool
	mutex            sync.RWMutex
	lastStatus       *StoreStatus
	lastProbeStarted time.Time
}

func NewStatusMonitorService(
	metricsReader insighting.MetricsReader,
	targetingReader targeting.IntelReader,
	appConfig *config.Config,
) *StatusMonitorService {
	monitorConfig := StatusMonitorConfig{
		CronSchedule: appConfig.StatusMonitor.CronSchedule,
		Enabled:      appConfig.StatusMonitor.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": monitorConfig.CronSchedule,
		"enabled":       monitorConfig.Enabled,
	}).Info("Configuração do monitor de status do banco carregada")

	return &StatusMonitorService{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          monitorConfig,
		metricsReader:   metricsReader,
		targetingReader: targetingReader,
	}
}

// Start agenda a verificação e executa a primeira imediatamente
func (s *StatusMonitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Monitor de status do banco desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando monitor de status do banco")

	_, err := s.scheduler.Cron(s.config.CronSchedule).StartImmediately().Do(func() {
		s.runProbe(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar monitor de status do banco: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando monitor de status do banco")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *StatusMonitorService) runProbe(parent context.Context) {
	s.mutex.Lock()
	if s.probeRunning {
		s.mutex.Unlock()
		logrus.Info("Verificação de status do banco já em andamento, ignorando")
		return
	}
	s.probeRunning = true
	s.lastProbeStarted = time.Now()
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.probeRunning = false
		s.mutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()

	status := StoreStatus{
		Metrics:   s.metricsReader.TestDatabaseConnection(ctx),
		Targeting: s.targetingReader.TestTargetingIntelConnection(ctx),
		CheckedAt: time.Now(),
	}
	status.Available = status.Metrics.Connected && status.Targeting.Connected

	metrics.SetStoreAvailable(status.Available)

	logger := logrus.WithFields(logrus.Fields{
		"available":       status.Available,
		"summary_count":   status.Metrics.SummaryCount,
		"daily_count":     status.Metrics.DailyCount,
		"targeting_count": status.Targeting.Count,
	})
	if status.Available {
		logger.Info("Verificação de status do banco concluída")
	} else {
		logger.WithField("error", firstNonEmpty(status.Metrics.Error, status.Targeting.Error)).
			Warn("Banco indisponível, leituras servidas pelo fallback")
	}

	s.mutex.Lock()
	s.lastStatus = &status
	s.mutex.Unlock()
}

// TriggerManualProbe inicia uma verificação fora do agendamento
func (s *StatusMonitorService) TriggerManualProbe() {
	s.mutex.RLock()
	running := s.probeRunning
	s.mutex.RUnlock()

	if running {
		logrus.Info("Verificação de status do banco já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando verificação manual de status do banco")
	go s.runProbe(context.Background())
}

// LastStatus retorna o resultado da última verificação, ou nil se nenhuma terminou
func (s *StatusMonitorService) LastStatus() *StoreStatus {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.lastStatus == nil {
		return nil
	}
	status := *s.lastStatus
	return &status
}

// GetStatus retorna a configuração do agendador e a última verificação
func (s *StatusMonitorService) GetStatus() map[string]any {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return map[string]any{
		"monitor_enabled":       s.config.Enabled,
		"monitor_cron":          s.config.CronSchedule,
		"probe_running":         s.probeRunning,
		"last_probe_started_at": s.lastProbeStarted,
		"last_status":           s.lastStatus,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
