package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
	jobmetrics "github.com/aeroclub-erp/aeroclub-erp/internal/jobs"
)

// BalanceWarmupJob pre-populates the portfolio summary cache so the first
// dashboard hit of the day is served warm.
type BalanceWarmupJob struct {
	Ledger  *ledger.Service
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewBalanceWarmupJob wires dependencies for the warmup handler.
func NewBalanceWarmupJob(ledgerSvc *ledger.Service, pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *BalanceWarmupJob {
	return &BalanceWarmupJob{Ledger: ledgerSvc, Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes balance warmup tasks.
func (j *BalanceWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("balance warmup: handler not configured")
	}
	var payload BalanceWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	periods := payload.Periods
	if len(periods) == 0 {
		periods = []string{string(ledger.PeriodCurrentYear), string(ledger.PeriodCurrentMonth)}
	}

	tracker := j.metrics().Track(TaskBalanceWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting balance warmup", slog.Int("periods", len(periods)))

	clubs, err := j.fetchClubs(ctx)
	if err != nil {
		resultErr = err
		logger.Error("load clubs", slog.Any("error", err))
		return resultErr
	}
	if len(clubs) == 0 {
		logger.Info("no clubs discovered for warmup")
		return resultErr
	}

	warmed := 0
	for _, clubID := range clubs {
		for _, period := range periods {
			if err := j.warmClub(ctx, clubID, ledger.PeriodToken(period)); err != nil {
				resultErr = err
				logger.Error("warm club", slog.Int64("club_id", clubID), slog.String("period", period), slog.Any("error", err))
				return resultErr
			}
		}
		warmed++
	}

	logger.Info("completed balance warmup", slog.Int("clubs", warmed))
	return resultErr
}

func (j *BalanceWarmupJob) warmClub(ctx context.Context, clubID int64, token ledger.PeriodToken) error {
	if j.Ledger == nil {
		return nil
	}
	clubCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	_, err := j.Ledger.PortfolioSummary(clubCtx, clubID, token)
	return err
}

func (j *BalanceWarmupJob) fetchClubs(ctx context.Context) ([]int64, error) {
	if j.Pool == nil {
		return nil, errors.New("balance warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT DISTINCT club_id FROM accounts ORDER BY club_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []int64
	for rows.Next() {
		var clubID int64
		if err := rows.Scan(&clubID); err != nil {
			return nil, err
		}
		clubs = append(clubs, clubID)
	}
	return clubs, rows.Err()
}

func (j *BalanceWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskBalanceWarmup))
	}
	return slog.Default().With(slog.String("job", TaskBalanceWarmup))
}

func (j *BalanceWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
