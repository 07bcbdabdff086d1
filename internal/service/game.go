package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"rps-master/internal/constants"
	"rps-master/internal/domain"
	"rps-master/internal/game"
	"rps-master/internal/repository"
	"rps-master/internal/snapshot"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = errors.New("invalid player name")
	ErrInvalidSave    = errors.New("invalid save")
)

// Profile is a player's persisted progress plus the stats derived from it.
type Profile struct {
	Player       domain.Player
	Record       game.Record
	History      game.History
	Tier         game.Tier
	NextLevelExp int
	WinRate      float64
}

func newProfile(p domain.Progress) *Profile {
	return &Profile{
		Player:       p.Player,
		Record:       p.Record,
		History:      p.History,
		Tier:         game.TierFor(p.Record.Wins),
		NextLevelExp: game.ExpThreshold(p.Record.Level),
		WinRate:      p.Record.WinRate(),
	}
}

type RoundOutcome struct {
	Result  game.RoundResult
	Round   domain.Round
	Profile *Profile
}

type GameService struct {
	db      *sql.DB
	players *repository.PlayerRepository
	history *repository.HistoryRepository
	rounds  *repository.RoundRepository
	rnd     game.Random
	locks   *keyedMutex
	now     func() time.Time
	logger  zerolog.Logger
}

func NewGameService(
	db *sql.DB,
	players *repository.PlayerRepository,
	history *repository.HistoryRepository,
	rounds *repository.RoundRepository,
	rnd game.Random,
	logger zerolog.Logger,
) *GameService {
	return &GameService{
		db:      db,
		players: players,
		history: history,
		rounds:  rounds,
		rnd:     rnd,
		locks:   newKeyedMutex(),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *GameService) CreatePlayer(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > constants.MaxPlayerNameLen {
		return nil, fmt.Errorf("%w: must be 1 to %d characters", ErrInvalidName, constants.MaxPlayerNameLen)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	now := s.now().UTC()
	progress := domain.Progress{
		Player:  domain.Player{ID: id, Name: name, CreatedAt: now, UpdatedAt: now},
		Record:  game.FreshRecord(),
		History: game.EmptyHistory(),
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.players.WithTx(tx).Create(ctx, &progress.Player, progress.Record); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Info().Str("player_id", id).Str("name", name).Msg("player created")
	return newProfile(progress), nil
}

func (s *GameService) GetProfile(ctx context.Context, playerID string) (*Profile, error) {
	progress, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return newProfile(*progress), nil
}

// PlayRound resolves one round and persists the record, the move window and
// the round log entry in a single transaction.
func (s *GameService) PlayRound(ctx context.Context, playerID string, move game.Move) (*RoundOutcome, error) {
	if !move.Valid() {
		return nil, game.ErrInvalidMove
	}

	var out RoundOutcome
	profile, err := s.mutate(ctx, playerID, func(p *domain.Progress) (*domain.Round, error) {
		res := game.PlayRound(p.Record, p.History, move, s.rnd)
		p.Record, p.History = res.Record, res.History

		out.Result = res
		out.Round = domain.Round{
			PlayerID:     playerID,
			PlayerMove:   res.PlayerMove,
			OpponentMove: res.OpponentMove,
			Outcome:      res.Outcome,
			GoldDelta:    res.Reward.Gold + res.Reward.LevelUpGold,
			ExpGained:    res.Reward.Exp,
			LevelAfter:   res.Record.Level,
			StreakAfter:  res.Record.CurrentWinStreak,
			PlayedAt:     s.now().UTC(),
		}
		return &out.Round, nil
	})
	if err != nil {
		return nil, err
	}
	out.Profile = profile

	s.logger.Info().
		Str("player_id", playerID).
		Str("player_move", move.String()).
		Str("opponent_move", out.Result.OpponentMove.String()).
		Str("outcome", out.Result.Outcome.String()).
		Int("gold", out.Result.Reward.Gold).
		Int("levels_gained", out.Result.Reward.LevelsGained).
		Msg("round played")
	return &out, nil
}

func (s *GameService) Purchase(ctx context.Context, playerID string, id game.CosmeticID) (*Profile, error) {
	profile, err := s.mutate(ctx, playerID, func(p *domain.Progress) (*domain.Round, error) {
		rec, err := game.Purchase(p.Record, id)
		if err != nil {
			return nil, err
		}
		p.Record = rec
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("player_id", playerID).Str("cosmetic_id", string(id)).Msg("cosmetic purchased")
	return profile, nil
}

func (s *GameService) SelectCosmetic(ctx context.Context, playerID string, id game.CosmeticID) (*Profile, error) {
	return s.mutate(ctx, playerID, func(p *domain.Progress) (*domain.Round, error) {
		rec, err := game.Select(p.Record, id)
		if err != nil {
			return nil, err
		}
		p.Record = rec
		return nil, nil
	})
}

// Reset wipes progression and the move window. The round log is kept.
func (s *GameService) Reset(ctx context.Context, playerID string) (*Profile, error) {
	profile, err := s.mutate(ctx, playerID, func(p *domain.Progress) (*domain.Round, error) {
		p.Record = game.FreshRecord()
		p.History = game.EmptyHistory()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("player_id", playerID).Msg("progress reset")
	return profile, nil
}

func (s *GameService) ListRounds(ctx context.Context, playerID string, limit int) ([]domain.Round, error) {
	switch {
	case limit <= 0:
		limit = constants.DefaultRoundsLimit
	case limit > constants.MaxRoundsLimit:
		limit = constants.MaxRoundsLimit
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.players.Get(ctx, playerID); err != nil {
		return nil, s.wrapLoad(playerID, err)
	}
	rounds, err := s.rounds.ListByPlayer(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (s *GameService) ExportSave(ctx context.Context, playerID string) ([]byte, error) {
	progress, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return snapshot.Encode(progress.Record, progress.History)
}

// ImportSave replaces the player's progress with a decoded save. Fields the
// save lacks or mangles fall back to fresh values.
func (s *GameService) ImportSave(ctx context.Context, playerID string, data []byte) (*Profile, error) {
	rec, history, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSave, err)
	}
	profile, err := s.mutate(ctx, playerID, func(p *domain.Progress) (*domain.Round, error) {
		p.Record, p.History = rec, history
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("player_id", playerID).Int("total_games", rec.TotalGames).Msg("save imported")
	return profile, nil
}

func (s *GameService) Catalog() ([]game.Cosmetic, []game.Tier) {
	return game.Catalog(), game.Tiers()
}

func (s *GameService) load(ctx context.Context, playerID string) (*domain.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var progress domain.Progress
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		player, err := s.players.Get(gctx, playerID)
		if err != nil {
			return err
		}
		progress.Player = *player
		return nil
	})
	g.Go(func() error {
		rec, err := s.players.GetRecord(gctx, playerID)
		if err != nil {
			return err
		}
		progress.Record = rec
		return nil
	})
	g.Go(func() error {
		history, err := s.history.Get(gctx, playerID)
		if err != nil {
			return err
		}
		progress.History = history
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.wrapLoad(playerID, err)
	}
	return &progress, nil
}

func (s *GameService) wrapLoad(playerID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to load player")
	return fmt.Errorf("failed to load player: %w", err)
}

// mutate runs fn against the player's current progress under the player's
// lock and persists the result atomically. An error from fn aborts before
// anything is written.
func (s *GameService) mutate(ctx context.Context, playerID string, fn func(p *domain.Progress) (*domain.Round, error)) (*Profile, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	progress, err := s.load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	round, err := fn(progress)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.players.WithTx(tx).SaveRecord(ctx, playerID, progress.Record); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	if err := s.history.WithTx(tx).Replace(ctx, playerID, progress.History); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	if round != nil {
		if err := s.rounds.WithTx(tx).Insert(ctx, round); err != nil {
			return nil, fmt.Errorf("failed to log round: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	progress.Player.UpdatedAt = s.now().UTC()
	return newProfile(*progress), nil
}
