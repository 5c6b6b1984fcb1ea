package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/config"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/usecases/seeding"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// SeedSyncConfig representa a configuração do agendador do seed
type SeedSyncConfig struct {
	CronSchedule string
	CronEnabled  bool
	OnStartup    bool
}

// SeedSyncService agenda e executa o seed em segundo plano
type SeedSyncService struct {
	scheduler *gocron.Scheduler
	config    SeedSyncConfig
	seeder    seeding.Seeder

	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	syncGroup           sync.WaitGroup
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
	lastSummary         *domain.SeedSummary
}

func NewSeedSyncService(seeder seeding.Seeder, appConfig *config.Config) *SeedSyncService {
	syncConfig := SeedSyncConfig{
		CronSchedule: appConfig.Seed.CronSchedule,
		CronEnabled:  appConfig.Seed.CronEnabled,
		OnStartup:    appConfig.Seed.OnStartup,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"cron_enabled":  syncConfig.CronEnabled,
		"on_startup":    syncConfig.OnStartup,
	}).Info("Configuração do agendador do seed carregada")

	return &SeedSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		seeder:    seeder,
		baseCtx:   context.Background(),
	}
}

// Start dispara o seed inicial e o agendamento, conforme a configuração
func (s *SeedSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if s.config.OnStartup {
		logrus.Info("Executando seed na inicialização")
		s.TriggerManualSync()
	}

	if !s.config.CronEnabled {
		logrus.Info("Seed agendado desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do seed")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if s.tryStart() {
			s.syncSeed()
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar seed: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do seed")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync inicia um seed em segundo plano.
// Retorna false quando já existe uma execução em andamento.
func (s *SeedSyncService) TriggerManualSync() bool {
	if !s.tryStart() {
		logrus.Info("Seed já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando seed manual")
	go s.syncSeed()

	return true
}

// Wait bloqueia até que as execuções em andamento terminem
func (s *SeedSyncService) Wait() {
	s.syncGroup.Wait()
}

func (s *SeedSyncService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncGroup.Add(1)

	return true
}

// syncSeed só deve ser chamado depois de tryStart retornar true
func (s *SeedSyncService) syncSeed() {
	defer s.syncGroup.Done()

	summary, err := s.seeder.Seed(s.baseCtx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Seed em segundo plano falhou")
		return
	}

	s.lastError = ""
	s.lastSummary = summary
	logrus.WithField("run_id", summary.RunID).Info("Seed em segundo plano concluído")
}

// GetStatus retorna o status atual do agendador
func (s *SeedSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.CronEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_on_startup":        s.config.OnStartup,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"last_summary":           s.lastSummary,
	}
}
