package mcts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	Exploration float64
	Limits      *Limits
	Seed        uint64
	Minimax     bool
	MaxChildren int
	Overflow    OverflowPolicy
	MaxPly      int
	Logger      zerolog.Logger
	Context     context.Context
}

func defaultSettings() Settings {
	return Settings{
		Exploration: DefaultExploration,
		Limits:      EngineLimits(),
		Seed:        SeedGeneratorFn(),
		MaxChildren: DefaultMaxChildren,
		Overflow:    OverflowError,
		MaxPly:      DefaultMaxPly,
		Logger:      log.Logger,
		Context:     context.Background(),
	}
}

type Option func(s *Settings)

// Set the exploration constant of the UCT formula
func WithExploration(c float64) Option {
	return func(s *Settings) {
		if c >= 0 {
			s.Exploration = c
		}
	}
}

func WithLimits(limits *Limits) Option {
	return func(s *Settings) {
		if limits != nil {
			s.Limits = limits
		}
	}
}

// Seed of the rollout random number generator
func WithSeed(seed uint64) Option {
	return func(s *Settings) {
		s.Seed = seed
	}
}

// Backpropagate the best child average instead of the rollout reward
func WithMinimaxBackprop(enabled bool) Option {
	return func(s *Settings) {
		s.Minimax = enabled
	}
}

func WithMaxChildren(n int) Option {
	return func(s *Settings) {
		if n > 0 {
			s.MaxChildren = n
		}
	}
}

func WithOverflowPolicy(policy OverflowPolicy) Option {
	return func(s *Settings) {
		s.Overflow = policy
	}
}

func WithMaxPly(ply int) Option {
	return func(s *Settings) {
		if ply > 0 {
			s.MaxPly = ply
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// Cancelling the context stops the search before the next iteration
func WithContext(ctx context.Context) Option {
	return func(s *Settings) {
		if ctx != nil {
			s.Context = ctx
		}
	}
}
