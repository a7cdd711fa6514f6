package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"workhive/config"
	"workhive/models"
	"workhive/services/notification"
	"workhive/services/ranking"

	"github.com/hibiken/asynq"
)

// NewTaskClient builds the asynq client used by the write path to
// enqueue side-effect work.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
}

// InitTaskWorker runs the async worker in background. Ranking recompute
// and push dispatch land here so their failures retry out of band and
// never block the deal transition that triggered them.
func InitTaskWorker(rankingSvc ranking.RankingService, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRankingRecompute, handleRankingRecompute(rankingSvc))
	mux.HandleFunc(TypeNotifyPush, handleNotifyPush(notifSvc))

	go func() {
		log.Println("[TaskWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TaskWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TaskWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleRankingRecompute(svc ranking.RankingService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RankingRecomputePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid ranking payload: %w", err)
		}
		return svc.RecomputeForWorker(payload.WorkerID)
	}
}

func handleNotifyPush(svc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var n models.Notification
		if err := json.Unmarshal(t.Payload(), &n); err != nil {
			return fmt.Errorf("invalid notification payload: %w", err)
		}
		return svc.Dispatch(ctx, n)
	}
}
