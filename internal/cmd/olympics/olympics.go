// Package olympics runs the tournament simulator from the command line.
package olympics

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/ezBadminton/hoopsim/basketball"
	"github.com/ezBadminton/hoopsim/dataset"
	"github.com/ezBadminton/hoopsim/internal"
	"github.com/ezBadminton/hoopsim/odds"
	"github.com/ezBadminton/hoopsim/render"
)

var (
	ErrFormat   = errors.New("unknown output format")
	ErrLocale   = errors.New("unsupported locale")
	ErrFormBias = errors.New("malformed form bias")
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the olympics command configuration.
type Config struct {
	GroupsFile      string         `env:"OLYMPICS_GROUPS_FILE"`
	ExhibitionsFile string         `env:"OLYMPICS_EXHIBITIONS_FILE"`
	Seed            int64          `env:"OLYMPICS_SEED"             envDefault:"0"`
	FormBias        map[string]int `env:"OLYMPICS_FORM_BIAS"        envDefault:"Srbija:100" envKeyValSeparator:":"`
	Locale          string         `env:"OLYMPICS_LOCALE"           envDefault:"en"`
	Format          string         `env:"OLYMPICS_FORMAT"           envDefault:"text"`
	OddsRuns        int            `env:"OLYMPICS_ODDS_RUNS"        envDefault:"0"`
	Workers         int            `env:"OLYMPICS_WORKERS"          envDefault:"4"`
	LogLevel        string         `env:"OLYMPICS_LOG_LEVEL"        envDefault:"warn"`
	LogJSON         bool           `env:"OLYMPICS_LOG_JSON"`
}

// ParseConfig parses the environment and then the flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.GroupsFile, "groups", cfg.GroupsFile, "path to the groups file (json or yaml), embedded Paris 2024 groups if empty")
	fs.StringVar(&cfg.ExhibitionsFile, "exhibitions", cfg.ExhibitionsFile, "path to the exhibitions file (json or yaml)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 draws a fresh one")
	fs.Func("form-bias", "form bonuses as country:bonus,... (replaces the default)", func(s string) error {
		bias, err := ParseFormBias(s)
		if err != nil {
			return err
		}
		cfg.FormBias = bias
		return nil
	})
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output language (en or sr)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format (text or json)")
	fs.IntVar(&cfg.OddsRuns, "odds", cfg.OddsRuns, "estimate medal odds over this many runs instead of a single tournament")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel runs for the odds estimate")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "log as json")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parses "country:bonus,country:bonus". An empty string is an empty bias.
func ParseFormBias(s string) (internal.FormBias, error) {
	bias := internal.FormBias{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", ErrFormBias, entry)
		}
		bonus, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrFormBias, entry)
		}
		bias[strings.TrimSpace(key)] = bonus
	}
	return bias, nil
}

// Run executes the olympics command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	if cfg.Format != FormatText && cfg.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrFormat, cfg.Format)
	}
	tag, err := parseLocale(cfg.Locale)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, errOut)
	if err != nil {
		return err
	}

	dataSet, err := loadDataSet(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = internal.NewSeed()
		if err != nil {
			return err
		}
	}
	logger.WithField("seed", seed).Info("seed selected")

	if cfg.OddsRuns > 0 {
		return runOdds(ctx, cfg, dataSet, seed, tag, logger, out)
	}
	return runTournament(cfg, dataSet, seed, tag, logger, out)
}

func runTournament(
	cfg Config,
	dataSet *dataset.DataSet,
	seed int64,
	tag language.Tag,
	logger *logrus.Logger,
	out io.Writer,
) error {
	simulator := basketball.NewSimulator(internal.NewRand(seed))
	tournament, err := internal.NewTournament(
		dataSet.BuildTeams(),
		dataSet.BuildExhibitions(),
		simulator,
		internal.Settings{FormBias: cfg.FormBias, Logger: logger},
	)
	if err != nil {
		return err
	}
	if err := tournament.Run(); err != nil {
		return err
	}

	if cfg.Format == FormatJSON {
		return json.NewEncoder(out).Encode(tournament)
	}

	renderer, err := render.New(out, tag)
	if err != nil {
		return err
	}
	return renderer.Tournament(tournament)
}

func runOdds(
	ctx context.Context,
	cfg Config,
	dataSet *dataset.DataSet,
	seed int64,
	tag language.Tag,
	logger *logrus.Logger,
	out io.Writer,
) error {
	predictions, err := odds.Estimate(ctx, dataSet, odds.Settings{
		Runs:     cfg.OddsRuns,
		Workers:  cfg.Workers,
		Seed:     seed,
		FormBias: cfg.FormBias,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if cfg.Format == FormatJSON {
		return json.NewEncoder(out).Encode(predictions)
	}

	renderer, err := render.New(out, tag)
	if err != nil {
		return err
	}
	return renderer.Odds(predictions, cfg.OddsRuns)
}

func loadDataSet(cfg Config) (*dataset.DataSet, error) {
	if cfg.GroupsFile == "" {
		return dataset.Default()
	}
	return dataset.Load(cfg.GroupsFile, cfg.ExhibitionsFile)
}

func parseLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrLocale, locale)
	}
	supported, err := render.Locales()
	if err != nil {
		return language.Und, err
	}
	for _, s := range supported {
		if s == tag {
			return tag, nil
		}
	}
	return language.Und, fmt.Errorf("%w: %q", ErrLocale, locale)
}

func newLogger(cfg Config, errOut io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(errOut)
	logger.SetLevel(level)
	if cfg.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}
