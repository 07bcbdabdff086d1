package fx

import (
	"context"
	"database/sql"

	"rps-master/internal/config"
	"rps-master/internal/database"
	"rps-master/internal/logger"
	"rps-master/internal/repository"
	"rps-master/internal/scheduler"
	"rps-master/internal/server"
	"rps-master/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// RegisterRetention schedules the round log pruning job and ties the
// scheduler to the app lifecycle.
func RegisterRetention(lc fx.Lifecycle, s *scheduler.Scheduler, job *service.RetentionJob, cfg *config.Config, db *sql.DB, log zerolog.Logger) error {
	if err := s.AddJob(cfg.PruneSchedule, job); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.RunNow(job); err != nil {
				log.Warn().Err(err).Msg("initial round pruning failed")
			}
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
	return nil
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewRoundRepository),
	// svc
	fx.Provide(service.NewRandom),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewRetentionJob),
	fx.Provide(scheduler.New),
	// server
	fx.Provide(server.NewGameServer),
	fx.Provide(server.NewHandler),
	fx.Invoke(RegisterRetention),
)
