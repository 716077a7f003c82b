package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"medfund_ledger/contract"
	"medfund_ledger/sdk"
)

type ctxKey string

const configContextKey ctxKey = "medfund.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultHasher      = "sha256"
	DefaultMetricsAddr = "127.0.0.1:12799"
	DefaultLogLevel    = "info"
)

// GenesisConfig holds the values handed to Initialize by the init command.
type GenesisConfig struct {
	Admin           string `yaml:"admin"`
	FeeBp           uint64 `yaml:"feeBp"           split_words:"true"`
	RewardBp        uint64 `yaml:"rewardBp"        split_words:"true"`
	ExchangeRate    uint64 `yaml:"exchangeRate"    split_words:"true"`
	MinDonation     uint64 `yaml:"minDonation"     split_words:"true"`
	MaxCampaignDays uint64 `yaml:"maxCampaignDays" split_words:"true"`
	KYCRequired     bool   `yaml:"kycRequired"     envconfig:"KYC_REQUIRED"`
	SpeiConfig      string `yaml:"speiConfig"      split_words:"true"`
}

type Config struct {
	DataDir     string        `yaml:"dataDir"     split_words:"true"`
	JournalDir  string        `yaml:"journalDir"  split_words:"true"`
	Hasher      string        `yaml:"hasher"`
	MetricsAddr string        `yaml:"metricsAddr" split_words:"true"`
	LogLevel    string        `yaml:"logLevel"    split_words:"true"`
	ScoreCap    uint64        `yaml:"scoreCap"    split_words:"true"`
	DisableGc   bool          `yaml:"disableGc"   split_words:"true"`
	Genesis     GenesisConfig `yaml:"genesis"`
}

func defaultConfig() *Config {
	return &Config{
		DataDir:     "",
		JournalDir:  "",
		Hasher:      DefaultHasher,
		MetricsAddr: DefaultMetricsAddr,
		LogLevel:    DefaultLogLevel,
		Genesis: GenesisConfig{
			FeeBp:           100,
			RewardBp:        10,
			ExchangeRate:    contract.FallbackExchangeRate,
			MinDonation:     contract.FallbackMinDonation,
			MaxCampaignDays: contract.FallbackMaxCampaignDays,
		},
	}
}

// LoadConfig builds the config from defaults, the first YAML file found and
// MEDFUND_* environment variables, in that order.
func LoadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	if configFile == "" {
		// Check for config file in this path: ~/.medfund/medfund.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".medfund", "medfund.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/medfund/medfund.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/medfund/medfund.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Process environment variables
	if err := envconfig.Process("medfund", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := sdk.HasherByName(c.Hasher); err != nil {
		return fmt.Errorf("invalid hasher: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Genesis.FeeBp > contract.MaxPlatformFeeBp {
		return fmt.Errorf("genesis feeBp %d above %d", c.Genesis.FeeBp, contract.MaxPlatformFeeBp)
	}
	if c.Genesis.RewardBp > contract.MaxRewardRateBp {
		return fmt.Errorf("genesis rewardBp %d above %d", c.Genesis.RewardBp, contract.MaxRewardRateBp)
	}
	return nil
}

// SlogLevel maps the configured log level name
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid logLevel %q", c.LogLevel)
	}
	return lvl, nil
}

// IDHasher returns the configured id hasher.
func (c *Config) IDHasher() sdk.Hasher {
	h, err := sdk.HasherByName(c.Hasher)
	if err != nil {
		return sdk.SHA256Hasher{}
	}
	return h
}

// InitParams converts the genesis section for Initialize.
func (c *Config) InitParams() contract.InitParams {
	return contract.InitParams{
		FeeBp:                   c.Genesis.FeeBp,
		RewardBp:                c.Genesis.RewardBp,
		SpeiConfig:              c.Genesis.SpeiConfig,
		ExchangeRate:            c.Genesis.ExchangeRate,
		KYCRequired:             c.Genesis.KYCRequired,
		MinDonation:             c.Genesis.MinDonation,
		MaxCampaignDurationDays: c.Genesis.MaxCampaignDays,
	}
}
