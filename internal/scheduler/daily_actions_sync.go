// Package scheduler contém o serviço de agendamento do digest diário de ações
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/crm-intelligence-api/internal/config"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/profiling"
)

type DailyActionsSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DailyActionsSyncService recalcula a lista ranqueada de ações do dia a partir
// do snapshot mais recente e mantém em memória o último digest gerado
type DailyActionsSyncService struct {
	scheduler           *gocron.Scheduler
	snapshotLoader      repository.SnapshotLoader
	actionGenerator     profiling.ActionGenerator
	config              DailyActionsSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastDigest          []*domain.SmartAction
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewDailyActionsSyncService(
	snapshotLoader repository.SnapshotLoader,
	actionGenerator profiling.ActionGenerator,
	cfg *config.Config,
) *DailyActionsSyncService {
	syncConfig := DailyActionsSyncConfig{
		CronSchedule: cfg.DailyActionsSync.CronSchedule, // Default: 7h da manhã todos os dias
		SyncEnabled:  cfg.DailyActionsSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador do digest diário de ações carregada")

	return &DailyActionsSyncService{
		scheduler:       scheduler,
		snapshotLoader:  snapshotLoader,
		actionGenerator: actionGenerator,
		config:          syncConfig,
	}
}

func (s *DailyActionsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron do digest diário de ações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do digest diário de ações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateDailyActions(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização do digest diário de ações")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o digest diário de ações: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do digest diário de ações")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateDailyActions carrega o snapshot e regenera o digest de ações do dia
func (s *DailyActionsSyncService) UpdateDailyActions(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do digest diário de ações já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando atualização do digest diário de ações")

	snapshot, err := s.snapshotLoader.Load(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar o snapshot para o digest diário de ações")
		return err
	}

	actions := s.actionGenerator.GenerateDailyActions(snapshot, time.Now())

	s.syncMutex.Lock()
	s.lastDigest = actions
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"actions": len(actions),
	}).Info("Atualização do digest diário de ações concluída")

	return nil
}

// LastDigest retorna o último digest gerado, ou nil se nenhuma execução ocorreu
func (s *DailyActionsSyncService) LastDigest() []*domain.SmartAction {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.lastDigest
}

// TriggerManualSync inicia manualmente uma atualização do digest diário
func (s *DailyActionsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do digest diário já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do digest diário de ações")
	go func() {
		if err := s.UpdateDailyActions(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do digest diário de ações")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DailyActionsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_digest_size":       len(s.lastDigest),
	}
}
