package service

import (
	"context"
	"time"

	"rps-master/internal/config"
	"rps-master/internal/constants"
	"rps-master/internal/repository"

	"github.com/rs/zerolog"
)

// RetentionJob prunes round log entries older than the configured window.
type RetentionJob struct {
	rounds    *repository.RoundRepository
	retention time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

func NewRetentionJob(rounds *repository.RoundRepository, cfg *config.Config, logger zerolog.Logger) *RetentionJob {
	return &RetentionJob{
		rounds:    rounds,
		retention: cfg.RoundRetention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *RetentionJob) Name() string {
	return "round_retention"
}

func (j *RetentionJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	cutoff := j.now().Add(-j.retention)
	deleted, err := j.rounds.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("old rounds pruned")
	}
	return nil
}
