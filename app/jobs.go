package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"legacy-peptides/repository"
	"legacy-peptides/service"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// startJobs schedules the unpaid order expiry sweep
func startJobs(cfg *Config, orders repository.OrderRepositoryInterface) (*cron.Cron, error) {
	sched := cron.New(cron.WithParser(cronParser))

	_, err := sched.AddFunc(cfg.ExpirySchedule, func() {
		defer func() {
			if err := recover(); err != nil {
				zap.S().Error(err)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := service.ExpireUnpaidOrders(ctx, orders, cfg.UnpaidOrderTTL, time.Now()); err != nil {
			zap.S().Errorf("❌ ExpireUnpaidOrders: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	sched.Start()
	zap.S().Infof("⏰ Jobs: Unpaid order expiry scheduled %q, ttl=%s", cfg.ExpirySchedule, cfg.UnpaidOrderTTL)
	return sched, nil
}
