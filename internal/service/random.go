package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"rps-master/internal/config"
	"rps-master/internal/game"

	"github.com/rs/zerolog"
)

// lockedRandom makes a single *rand.Rand safe to share between requests.
type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// NewRandom builds the opponent's random source. RNG_SEED pins it for
// reproducible sessions; otherwise the seed comes from crypto/rand.
func NewRandom(cfg *config.Config, logger zerolog.Logger) (game.Random, error) {
	seed := cfg.RNGSeed
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	} else {
		logger.Warn().Uint64("seed", seed).Msg("opponent randomness is seeded")
	}
	return SeededRandom(seed), nil
}

func SeededRandom(seed uint64) game.Random {
	return &lockedRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
