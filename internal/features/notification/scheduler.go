package notification

import (
	"context"
	"time"

	"go-marketplace/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the two background jobs of the notification store: pushing
// scheduled records whose time has come, and purging aged archived records.
type Scheduler struct {
	service   NotificationService
	log       *zap.Logger
	retention time.Duration
	cron      *cron.Cron
}

func NewScheduler(service NotificationService, cfg *config.Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		service:   service,
		log:       log,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}
}

func (s *Scheduler) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc("* * * * *", s.deliverDue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.purge); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *Scheduler) deliverDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	delivered, err := s.service.DeliverDueScheduled(ctx)
	if err != nil {
		s.log.Warn("scheduled delivery sweep failed", zap.Error(err))
		return
	}
	if delivered > 0 {
		s.log.Info("delivered scheduled notifications", zap.Int("count", delivered))
	}
}

func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.service.PurgeArchived(ctx, s.retention)
	if err != nil {
		s.log.Warn("archived notification purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("purged archived notifications", zap.Int64("count", deleted))
	}
}
