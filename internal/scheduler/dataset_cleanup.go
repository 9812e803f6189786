package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-performance-api/infrastructure/repository"
	"github.com/vfg2006/ad-performance-api/internal/config"
)

// DatasetCleanupConfig representa a configuração do agendador de limpeza
type DatasetCleanupConfig struct {
	CronSchedule string
	TTLHours     int
	Enabled      bool
}

// DatasetCleanupService remove da memória uploads de dataset mais antigos
// que o tempo de retenção configurado
type DatasetCleanupService struct {
	scheduler          *gocron.Scheduler
	config             DatasetCleanupConfig
	store              repository.DatasetStore
	runMutex           sync.Mutex
	running            bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunRemoved     int
}

// NewDatasetCleanupService cria uma nova instância do serviço de limpeza
func NewDatasetCleanupService(store repository.DatasetStore, appConfig *config.Config) *DatasetCleanupService {
	cleanupConfig := DatasetCleanupConfig{
		CronSchedule: appConfig.DatasetRetention.CronSchedule,
		TTLHours:     appConfig.DatasetRetention.TTLHours,
		Enabled:      appConfig.DatasetRetention.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"ttl_hours":     cleanupConfig.TTLHours,
		"enabled":       cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza de datasets carregada")

	return &DatasetCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cleanupConfig,
		store:     store,
	}
}

// Start inicia o agendador
func (s *DatasetCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de datasets desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de datasets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunCleanup(); err != nil {
			logrus.WithError(err).Error("Erro na limpeza agendada de datasets")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de datasets: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// RunCleanup executa uma rodada de limpeza imediatamente, removendo uploads
// mais antigos que o tempo de retenção. Execuções concorrentes são ignoradas.
func (s *DatasetCleanupService) RunCleanup() (int, error) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Limpeza de datasets já em andamento, ignorando")
		return 0, nil
	}
	s.running = true
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.runMutex.Unlock()
	}()

	s.lastRunStartedAt = time.Now()
	cutoff := time.Now().Add(-time.Duration(s.config.TTLHours) * time.Hour)

	removed, err := s.store.DeleteOlderThan(cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover datasets expirados")
		return 0, err
	}

	s.lastRunCompletedAt = time.Now()
	s.lastRunRemoved = removed

	logrus.WithFields(logrus.Fields{
		"removed":   removed,
		"ttl_hours": s.config.TTLHours,
		"duration":  s.lastRunCompletedAt.Sub(s.lastRunStartedAt).String(),
	}).Info("Limpeza de datasets concluída")

	return removed, nil
}

// Status retorna o estado da última execução para exposição na API
func (s *DatasetCleanupService) Status() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron_schedule":         s.config.CronSchedule,
		"ttl_hours":             s.config.TTLHours,
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_removed":      s.lastRunRemoved,
	}
}
