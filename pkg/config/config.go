package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-ttmcts/pkg/mcts"
	"github.com/IlikeChooros/go-ttmcts/pkg/ttt"
)

type Engine struct {
	Exploration float64 `yaml:"exploration"`
	Minimax     bool    `yaml:"minimax"`
	MaxChildren int     `yaml:"max_children"`
	Overflow    string  `yaml:"overflow"`
	MaxPly      int     `yaml:"max_ply"`
	// 0 picks a time based seed
	Seed uint64 `yaml:"seed"`
}

// Zero means no limit
type Limits struct {
	Cycles     uint32 `yaml:"cycles"`
	MovetimeMs int    `yaml:"movetime_ms"`
	Nodes      uint32 `yaml:"nodes"`
	Depth      int    `yaml:"depth"`
}

type Board struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	InRow int `yaml:"in_row"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Arena struct {
	Games   int `yaml:"games"`
	Workers int `yaml:"workers"`
}

type Server struct {
	Addr string `yaml:"addr"`
	// upper bound of the per request iteration count
	MaxCycles uint32 `yaml:"max_cycles"`
}

type Config struct {
	Engine Engine `yaml:"engine"`
	Limits Limits `yaml:"limits"`
	Board  Board  `yaml:"board"`
	Log    Log    `yaml:"log"`
	Arena  Arena  `yaml:"arena"`
	Server Server `yaml:"server"`
}

func Default() *Config {
	return &Config{
		Engine: Engine{
			Exploration: mcts.DefaultExploration,
			MaxChildren: mcts.DefaultMaxChildren,
			Overflow:    mcts.OverflowError.String(),
			MaxPly:      mcts.DefaultMaxPly,
		},
		Limits: Limits{
			Cycles:     mcts.EngineCycles,
			MovetimeMs: mcts.EngineMovetime,
		},
		Board:  Board{Rows: 3, Cols: 3, InRow: 3},
		Log:    Log{Level: "info", Pretty: true},
		Arena:  Arena{Games: 100, Workers: 4},
		Server: Server{Addr: ":8080", MaxCycles: 200000},
	}
}

// Load the yaml file on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Engine.Exploration < 0 {
		return errors.Errorf("config: exploration must not be negative, got %v", c.Engine.Exploration)
	}
	if _, err := c.OverflowPolicy(); err != nil {
		return err
	}
	if _, err := c.Geometry(); err != nil {
		return errors.Wrap(err, "config: board")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "config: log level")
	}
	if c.Arena.Workers < 1 {
		return errors.Errorf("config: arena needs at least one worker, got %d", c.Arena.Workers)
	}
	return nil
}

func (c *Config) OverflowPolicy() (mcts.OverflowPolicy, error) {
	switch strings.ToLower(c.Engine.Overflow) {
	case "", "error":
		return mcts.OverflowError, nil
	case "grow":
		return mcts.OverflowGrow, nil
	}
	return mcts.OverflowError, errors.Errorf("config: unknown overflow policy %q", c.Engine.Overflow)
}

func (c *Config) Geometry() (*ttt.Geometry, error) {
	return ttt.NewGeometry(c.Board.Rows, c.Board.Cols, c.Board.InRow)
}

func (c *Config) SearchLimits() *mcts.Limits {
	limits := mcts.DefaultLimits().SetInfinite(false)
	if c.Limits.Cycles > 0 {
		limits.SetCycles(c.Limits.Cycles)
	}
	if c.Limits.MovetimeMs > 0 {
		limits.SetMovetime(c.Limits.MovetimeMs)
	}
	if c.Limits.Nodes > 0 {
		limits.SetNodes(c.Limits.Nodes)
	}
	if c.Limits.Depth > 0 {
		limits.SetDepth(c.Limits.Depth)
	}
	if c.Limits.Cycles == 0 && c.Limits.MovetimeMs == 0 && c.Limits.Nodes == 0 && c.Limits.Depth == 0 {
		// nothing set, fall back to the engine budget
		return mcts.EngineLimits()
	}
	return limits
}

// Engine options described by the config, limits are a fresh copy every call
func (c *Config) EngineOptions() []mcts.Option {
	overflow, _ := c.OverflowPolicy()
	opts := []mcts.Option{
		mcts.WithExploration(c.Engine.Exploration),
		mcts.WithMinimaxBackprop(c.Engine.Minimax),
		mcts.WithMaxChildren(c.Engine.MaxChildren),
		mcts.WithOverflowPolicy(overflow),
		mcts.WithMaxPly(c.Engine.MaxPly),
		mcts.WithLimits(c.SearchLimits()),
	}
	if c.Engine.Seed != 0 {
		opts = append(opts, mcts.WithSeed(c.Engine.Seed))
	}
	return opts
}

// Logger writing to stderr at the configured level
func (c *Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if c.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
