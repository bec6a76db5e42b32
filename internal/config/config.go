package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// PoolConfig holds pool parameters as the user writes them: fees in percent,
// the liquidity target in tokens.
type PoolConfig struct {
	MaxFee    string
	MinFee    string
	LiqTarget string
}

// SimulateConfig holds configuration for the simulate command.
type SimulateConfig struct {
	Pool      PoolConfig
	In        string
	Out       string
	BatchSize int
	LogLevel  string
}

// QuoteConfig holds configuration for the quote command.
type QuoteConfig struct {
	Pool     PoolConfig
	Token    string
	Amount   string
	LogLevel string
}

// LoadSimulate merges config file, environment variables, and flags into SimulateConfig.
func LoadSimulate(cfgFile string, flags *pflag.FlagSet) (SimulateConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("out", "./data/results.jsonl")
		v.SetDefault("batch-size", 100)
	})
	if err != nil {
		return SimulateConfig{}, err
	}

	return SimulateConfig{
		Pool:      poolConfig(v),
		In:        v.GetString("in"),
		Out:       v.GetString("out"),
		BatchSize: v.GetInt("batch-size"),
		LogLevel:  v.GetString("log-level"),
	}, nil
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return QuoteConfig{}, err
	}

	return QuoteConfig{
		Pool:     poolConfig(v),
		Token:    v.GetString("token"),
		Amount:   v.GetString("amount"),
		LogLevel: v.GetString("log-level"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("UNSTAKEPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max-fee", "3")
	v.SetDefault("min-fee", "0.3")
	v.SetDefault("liq-target", "100000")
	v.SetDefault("log-level", "info")
	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func poolConfig(v *viper.Viper) PoolConfig {
	return PoolConfig{
		MaxFee:    v.GetString("max-fee"),
		MinFee:    v.GetString("min-fee"),
		LiqTarget: v.GetString("liq-target"),
	}
}
