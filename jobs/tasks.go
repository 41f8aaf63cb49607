package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity verifies that posted entries stay balanced.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskBalanceWarmup pre-computes portfolio summaries per club.
	TaskBalanceWarmup = "balance:warmup"
)

// LedgerIntegrityPayload carries scheduling metadata for an integrity run.
type LedgerIntegrityPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLedgerIntegrityTask constructs an Asynq task for the integrity check.
func NewLedgerIntegrityTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LedgerIntegrityPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, body, asynq.Queue(QueueDefault)), nil
}

// BalanceWarmupPayload selects which periods to warm. An empty list warms the
// dashboard defaults.
type BalanceWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewBalanceWarmupTask constructs an Asynq task for cache warmup.
func NewBalanceWarmupTask(payload BalanceWarmupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBalanceWarmup, body, asynq.Queue(QueueDefault)), nil
}
