// Package config loads engine settings from a config file and DLOOM_
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/Solana-ZH/dloom/pkg/pool/dlmm"
	"github.com/Solana-ZH/dloom/pkg/sol"
)

const (
	EnvPrefix         = "DLOOM"
	DefaultConfigName = "dloom"
	DefaultRPCURL     = "https://api.mainnet-beta.solana.com"
)

type Config struct {
	RPC struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"rpc"`
	ProgramID string `mapstructure:"program_id"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	DLMM struct {
		Official  []dlmm.Parameter `mapstructure:"official"`
		Community []dlmm.Parameter `mapstructure:"community"`
	} `mapstructure:"dlmm"`
}

// Load reads path, or dloom.{yaml,toml,json} from the working directory when
// path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("rpc.url", DefaultRPCURL)
	v.SetDefault("program_id", sol.ProgramID.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("dlmm.official", []dlmm.Parameter{})
	v.SetDefault("dlmm.community", []dlmm.Parameter{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Program parses the configured program id.
func (c *Config) Program() (solana.PublicKey, error) {
	id, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program id %q: %w", c.ProgramID, err)
	}
	return id, nil
}

// Parameters seeds the DLMM allow-lists.
func (c *Config) Parameters() *dlmm.Parameters {
	return &dlmm.Parameters{
		Official:  slices.Clone(c.DLMM.Official),
		Community: slices.Clone(c.DLMM.Community),
	}
}

// BinSteps lists the distinct bin steps across both lists in ascending order.
func (c *Config) BinSteps() []uint16 {
	var steps []uint16
	for _, p := range append(slices.Clone(c.DLMM.Official), c.DLMM.Community...) {
		steps = append(steps, p.BinStep)
	}
	slices.Sort(steps)
	return slices.Compact(steps)
}
