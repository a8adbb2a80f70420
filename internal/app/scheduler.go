package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ConnectivityChecker проверяет доступность провайдера встреч
type ConnectivityChecker interface {
	TestConnectivity(ctx context.Context) bool
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	checker  ConnectivityChecker
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}

	// onCheck вызывается после каждой проверки (для тестов)
	onCheck func(healthy bool)
}

// NewScheduler создаёт новый планировщик
func NewScheduler(checker ConnectivityChecker, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		checker:  checker,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("health_check_interval", s.interval))

	go s.runHealthCheckTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

// runHealthCheckTask периодически проверяет доступность Google Calendar
func (s *Scheduler) runHealthCheckTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.checkProvider(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkProvider(ctx)
		case <-s.stopChan:
			s.logger.Info("Provider health check task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Provider health check task cancelled")
			return
		}
	}
}

func (s *Scheduler) checkProvider(ctx context.Context) {
	healthy := s.checker.TestConnectivity(ctx)
	if healthy {
		s.logger.Debug("Meeting provider is reachable")
	} else {
		// Встречи продолжат создаваться, но только как ссылки-заглушки
		s.logger.Warn("Meeting provider is unavailable, new meetings will use placeholder links")
	}

	if s.onCheck != nil {
		s.onCheck(healthy)
	}
}
