package cron

import (
	userRepo "workhive/database/repository/user"
	"workhive/utils"

	"github.com/hibiken/asynq"
	cronv3 "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartRankingSweep schedules a nightly full recompute over every
// worker. It is the backstop for any event-driven recompute that was
// dropped; recompute is idempotent so the overlap is harmless.
func StartRankingSweep(users userRepo.UserRepository, client *asynq.Client) *cronv3.Cron {
	logger := utils.GetLogger()
	c := cronv3.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		ids, err := users.AllWorkerIDs()
		if err != nil {
			logger.Error("ranking sweep: failed to list workers", zap.Error(err))
			return
		}
		enqueued := 0
		for _, id := range ids {
			task, err := NewRankingRecomputeTask(id)
			if err != nil {
				logger.Error("ranking sweep: failed to build task", zap.String("workerId", id), zap.Error(err))
				continue
			}
			if _, err := client.Enqueue(task); err != nil {
				logger.Error("ranking sweep: failed to enqueue", zap.String("workerId", id), zap.Error(err))
				continue
			}
			enqueued++
		}
		logger.Info("ranking sweep enqueued", zap.Int("workers", enqueued))
	})
	if err != nil {
		logger.Error("failed to schedule ranking sweep", zap.Error(err))
	}

	c.Start()
	return c
}
