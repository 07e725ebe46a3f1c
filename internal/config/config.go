// Package config layers grammatch settings: built-in defaults, then the
// config file, then GRAMMATCH_* environment variables, then command flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// GRAMMATCH_WORKERS or GRAMMATCH_WEIGHTS_ACCEPT_THRESHOLD.
const EnvPrefix = "GRAMMATCH"

// Config is the resolved configuration of one run.
type Config struct {
	// Data is an external dataset file or directory. Empty means the
	// built-in curriculum.
	Data    string          `mapstructure:"data"`
	Workers int             `mapstructure:"workers"`
	Debug   bool            `mapstructure:"debug"`
	Weights matcher.Weights `mapstructure:"weights"`
}

// SetDefaults registers the default of every key on v. Weights are
// registered key by key so env overrides of single fields are seen by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data", "")
	v.SetDefault("workers", 4)
	v.SetDefault("debug", false)

	w := matcher.DefaultWeights()
	v.SetDefault("weights.title_keyword", w.TitleKeyword)
	v.SetDefault("weights.description_keyword", w.DescriptionKeyword)
	v.SetDefault("weights.phrase_bonus", w.PhraseBonus)
	v.SetDefault("weights.term_bonus", w.TermBonus)
	v.SetDefault("weights.max_suggestions", w.MaxSuggestions)
	v.SetDefault("weights.base_confidence", w.BaseConfidence)
	v.SetDefault("weights.hint_step", w.HintStep)
	v.SetDefault("weights.hint_cap", w.HintCap)
	v.SetDefault("weights.keyword_step", w.KeywordStep)
	v.SetDefault("weights.keyword_cap", w.KeywordCap)
	v.SetDefault("weights.multi_rule_bonus", w.MultiRuleBonus)
	v.SetDefault("weights.accept_threshold", w.AcceptThreshold)
}

// Init prepares v to read cfgFile, or $HOME/.grammatch.yaml when cfgFile is
// empty, and environment overrides. A missing default config file is not an
// error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".grammatch")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves the configuration held by v and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	var errs []string
	if c.Workers < 1 {
		errs = append(errs, fmt.Sprintf("workers must be >= 1, got %d", c.Workers))
	}
	if err := c.Weights.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
