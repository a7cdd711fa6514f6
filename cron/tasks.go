package cron

import (
	"encoding/json"
	"fmt"

	"workhive/models"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the narrow enqueue surface the write path depends
// on; *asynq.Client satisfies it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Task type names.
const (
	TypeRankingRecompute = "ranking:recompute"
	TypeNotifyPush       = "notification:push"
)

// RankingRecomputePayload identifies the worker whose rank to rebuild.
type RankingRecomputePayload struct {
	WorkerID string `json:"workerId"`
}

// NewRankingRecomputeTask builds an asynq task for a rank rebuild.
func NewRankingRecomputeTask(workerID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RankingRecomputePayload{WorkerID: workerID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ranking payload: %w", err)
	}
	return asynq.NewTask(TypeRankingRecompute, payload, asynq.MaxRetry(5)), nil
}

// NewNotifyPushTask builds an asynq task for a best-effort push.
func NewNotifyPushTask(n models.Notification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	return asynq.NewTask(TypeNotifyPush, payload, asynq.MaxRetry(3)), nil
}
